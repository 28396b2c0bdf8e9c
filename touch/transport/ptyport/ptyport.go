package ptyport

import (
	"errors"
	"github.com/allape/gogger"
	"github.com/allape/opentouch/touch/transport"
	"github.com/creack/pty"
	"golang.org/x/sys/unix"
	"os"
	"sync"
)

var l = gogger.New("touch.transport.ptyport")

// PairDriver emits lines on the master side of a pseudo terminal pair, so
// any serial monitor attached to the slave path sees the same traffic a
// real serial peer would. The master is non-blocking: with no monitor
// attached the kernel buffer fills up and further lines are dropped
// instead of stalling the caller.
type PairDriver struct {
	transport.Driver

	openLocker  sync.Locker
	writeLocker sync.Locker

	master *os.File
	tty    *os.File
	fd     int
}

func (d *PairDriver) Open() error {
	d.openLocker.Lock()
	defer d.openLocker.Unlock()

	if d.master != nil {
		return errors.New("pty already open")
	}

	master, tty, err := pty.Open()
	if err != nil {
		return err
	}

	fd := int(master.Fd())
	err = unix.SetNonblock(fd, true)
	if err != nil {
		_ = master.Close()
		_ = tty.Close()
		return err
	}

	d.master = master
	d.tty = tty
	d.fd = fd

	l.Info().Println("pty created, attach a monitor to", tty.Name())

	return nil
}

func (d *PairDriver) Close() error {
	d.openLocker.Lock()
	defer d.openLocker.Unlock()

	if d.master == nil {
		return nil
	}

	err := d.master.Close()
	if d.tty != nil {
		_ = d.tty.Close()
	}
	d.master = nil
	d.tty = nil
	return err
}

// TTYName is the slave path to attach an external monitor to, empty until
// Open succeeds.
func (d *PairDriver) TTYName() string {
	if d.tty == nil {
		return ""
	}
	return d.tty.Name()
}

func (d *PairDriver) Write(data []byte) (int, error) {
	d.writeLocker.Lock()
	defer d.writeLocker.Unlock()

	if d.master == nil {
		return 0, errors.New("pty is not open")
	}

	n, err := unix.Write(d.fd, data)
	if err != nil {
		return 0, err
	}

	return n, nil
}

// Send is best effort, a pty without a reader is not an error worth
// dropping the transport for.
func (d *PairDriver) Send(line string) error {
	_, err := d.Write([]byte(line + "\n"))
	if err != nil {
		l.Verbose().Println("pty write:", err)
	}
	return nil
}

func New() *PairDriver {
	return &PairDriver{
		openLocker:  &sync.Mutex{},
		writeLocker: &sync.Mutex{},
	}
}
