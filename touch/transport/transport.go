package transport

import (
	"io"
)

// Driver delivers newline terminated text commands to a peer.
type Driver interface {
	io.Writer
	io.Closer
	Open() error
	Send(line string) error
}
