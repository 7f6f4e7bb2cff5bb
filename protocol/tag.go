// Package protocol defines the tic-tac-toe wire vocabulary: the closed set of
// three byte tags, one byte digits and player identities.
package protocol

import "fmt"

// TagSize is the length of every tag on the wire.
const TagSize = 3

// Tag identifies the kind of message the server sent.
type Tag int

const (
	TagHold   Tag = iota // HLD: waiting for a second player
	TagStart             // SRT: game has begun
	TagTurn              // TRN: client must send a move
	TagInvalid           // INV: previous move was rejected
	TagCount             // CNT: followed by the active player count
	TagUpdate            // UPD: followed by player id and position
	TagWait              // WAT: opponent is moving
	TagWin               // WIN
	TagLose              // LSE
	TagDraw              // DRW
)

var tagCodes = [...]string{
	TagHold:    "HLD",
	TagStart:   "SRT",
	TagTurn:    "TRN",
	TagInvalid: "INV",
	TagCount:   "CNT",
	TagUpdate:  "UPD",
	TagWait:    "WAT",
	TagWin:     "WIN",
	TagLose:    "LSE",
	TagDraw:    "DRW",
}

// Tags returns every known tag in wire order.
func Tags() []Tag {
	tags := make([]Tag, len(tagCodes))
	for i := range tagCodes {
		tags[i] = Tag(i)
	}
	return tags
}

// ParseTag decodes three bytes into a Tag.
func ParseTag(b []byte) (Tag, error) {
	code := string(b)
	for i, c := range tagCodes {
		if c == code {
			return Tag(i), nil
		}
	}
	return 0, &UnknownMessageError{Raw: code}
}

// String returns the three letter wire code.
func (t Tag) String() string {
	if t < 0 || int(t) >= len(tagCodes) {
		return fmt.Sprintf("Tag(%d)", int(t))
	}
	return tagCodes[t]
}

// Bytes returns the wire encoding of t.
func (t Tag) Bytes() []byte {
	return []byte(t.String())
}

// Terminal reports whether t ends the game.
func (t Tag) Terminal() bool {
	return t == TagWin || t == TagLose || t == TagDraw
}

// UnknownMessageError reports a tag the client cannot handle: either bytes
// outside the closed tag set, or a known tag received in the wrong phase.
type UnknownMessageError struct {
	Raw   string // Bytes as received
	Phase string // Set when the tag is known but unexpected
}

func (e *UnknownMessageError) Error() string {
	if e.Phase != "" {
		return fmt.Sprintf("unexpected message %q while %s", e.Raw, e.Phase)
	}
	return fmt.Sprintf("unknown message %q", e.Raw)
}
