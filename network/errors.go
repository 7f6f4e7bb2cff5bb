package network

import (
	"errors"
	"fmt"
	"net"
)

// ConnectionSetupError reports a failure to resolve or reach the server.
type ConnectionSetupError struct {
	Address string
	Err     error
}

func (e *ConnectionSetupError) Error() string {
	return fmt.Sprintf("connecting to %s: %v", e.Address, e.Err)
}

func (e *ConnectionSetupError) Unwrap() error { return e.Err }

// NoSuchHost reports whether the failure was a name resolution miss.
func (e *ConnectionSetupError) NoSuchHost() bool {
	var dnsErr *net.DNSError
	return errors.As(e.Err, &dnsErr) && dnsErr.IsNotFound
}

// ProtocolIOError reports a failed or short read or write on an established
// connection. It means the server or the other player is gone.
type ProtocolIOError struct {
	Op  string
	Err error
}

func (e *ProtocolIOError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ProtocolIOError) Unwrap() error { return e.Err }
