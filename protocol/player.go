package protocol

import "fmt"

// Player is the identity the server assigns on connect.
type Player int

const (
	PlayerO Player = 0
	PlayerX Player = 1
)

// Valid reports whether p is one of the two seats.
func (p Player) Valid() bool {
	return p == PlayerO || p == PlayerX
}

// Symbol returns the mark the player places on the board.
func (p Player) Symbol() byte {
	if p == PlayerO {
		return 'O'
	}
	return 'X'
}

func (p Player) String() string {
	return string(p.Symbol())
}

// DecodeDigit converts one ASCII byte to its numeric value.
// The result is not range checked; callers validate what they need.
func DecodeDigit(b byte) int {
	return int(b) - '0'
}

// EncodeDigit converts v in 0..9 to its ASCII byte.
func EncodeDigit(v int) (byte, error) {
	if v < 0 || v > 9 {
		return 0, fmt.Errorf("digit %d out of range 0-9", v)
	}
	return byte('0' + v), nil
}
