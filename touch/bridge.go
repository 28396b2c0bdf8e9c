package touch

import (
	"errors"
	"fmt"
	"github.com/allape/gogger"
	"github.com/allape/opentouch/touch/device"
	"github.com/allape/opentouch/touch/transport"
	evdev "github.com/holoplot/go-evdev"
	"io"
	"os"
	"sync"
)

var l = gogger.New("touch.bridge")

type Options struct {
	// Grab takes the device for exclusive use while the bridge runs, so
	// the desktop does not react to the same touches.
	Grab bool
	// DumpEvents logs every event read from the device.
	DumpEvents bool
	// Echo receives a copy of every emitted line, os.Stdout when nil.
	Echo io.Writer
	// OnLine is called after a line was emitted, regardless of transport
	// state.
	OnLine func(line string)
}

// Bridge drives the selected device's event stream through the contact
// tracker and writes the resulting lines to the transport. Every line is
// echoed to Echo no matter what happened to the transport.
type Bridge struct {
	device    device.Device
	transport transport.Driver
	tracker   *Tracker
	options   Options

	closeLocker sync.Locker
	closed      bool
}

func New(dev device.Device, trans transport.Driver, mapping Mapping, options Options) (*Bridge, error) {
	err := mapping.Validate()
	if err != nil {
		return nil, err
	}

	if options.Echo == nil {
		options.Echo = os.Stdout
	}

	return &Bridge{
		device:    dev,
		transport: trans,
		tracker:   NewTracker(mapping),
		options:   options,

		closeLocker: &sync.Mutex{},
	}, nil
}

// Run blocks on the device's event stream until the device fails or the
// bridge is closed. A read failure after Close is a normal shutdown.
func (b *Bridge) Run() error {
	if b.options.Grab {
		err := b.device.Grab()
		if err != nil {
			l.Warn().Println("grab device:", err)
		} else {
			defer func() {
				_ = b.device.Ungrab()
			}()
		}
	}

	l.Info().Printf("bridging %s (%s)", b.device.Name(), b.device.Path())

	for {
		event, err := b.device.ReadOne()
		if err != nil {
			if b.Closed() || errors.Is(err, os.ErrClosed) {
				return nil
			}
			return fmt.Errorf("read event: %w", err)
		}
		b.handle(event)
	}
}

// Close releases the device, which also unblocks a pending read in Run.
func (b *Bridge) Close() error {
	b.closeLocker.Lock()
	defer b.closeLocker.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true

	return b.device.Close()
}

func (b *Bridge) Closed() bool {
	b.closeLocker.Lock()
	defer b.closeLocker.Unlock()
	return b.closed
}

func (b *Bridge) handle(event *evdev.InputEvent) {
	if b.options.DumpEvents {
		l.Info().Printf("event: %s %s %d", evdev.TypeName(event.Type), evdev.CodeName(event.Type, event.Code), event.Value)
	}

	switch event.Type {
	case evdev.EV_ABS:
		switch event.Code {
		case evdev.ABS_X, evdev.ABS_MT_POSITION_X:
			b.emit(b.tracker.PointerX(int(event.Value)))
		case evdev.ABS_Y, evdev.ABS_MT_POSITION_Y:
			b.emit(b.tracker.PointerY(int(event.Value)))
		}
	case evdev.EV_KEY:
		if event.Code != evdev.BTN_TOUCH {
			return
		}
		switch event.Value {
		case 1:
			b.emit(b.tracker.Touch(true))
		case 0:
			b.emit(b.tracker.Touch(false))
		}
	}
}

func (b *Bridge) emit(msg Message, ok bool) {
	if !ok {
		return
	}

	line := msg.Line()

	if b.transport != nil {
		err := b.transport.Send(line)
		if err != nil {
			l.Error().Println("send:", err)
			_ = b.transport.Close()
			b.transport = nil
			l.Warn().Println("transport lost, console output only from now on")
		}
	}

	_, _ = fmt.Fprintln(b.options.Echo, "[OUT]", line)

	if b.options.OnLine != nil {
		b.options.OnLine(line)
	}
}
