package serialport

import (
	"errors"
	"github.com/allape/gogger"
	"github.com/allape/opentouch/touch/transport"
	"go.bug.st/serial"
	"strings"
	"sync"
)

var l = gogger.New("touch.transport.serialport")

type LineDriver struct {
	transport.Driver

	openLocker  sync.Locker
	writeLocker sync.Locker

	Port serial.Port

	Name string
	Baud int
}

func (d *LineDriver) Open() error {
	d.openLocker.Lock()
	defer d.openLocker.Unlock()

	if d.Port != nil {
		return errors.New("port already open")
	}

	mode := &serial.Mode{
		BaudRate: d.Baud,
	}
	port, err := serial.Open(d.Name, mode)
	if err != nil {
		return err
	}
	d.Port = port

	go func(port serial.Port) {
		buf := make([]byte, 1024)
		unfinishedLine := ""
		for {
			n, err := port.Read(buf)
			if err != nil {
				l.Verbose().Println("read error:", err)
				return
			}
			if n == 0 {
				l.Warn().Println("EOF")
				return
			}
			lines := strings.Split(unfinishedLine+string(buf[:n]), "\n")
			for i := 0; i < len(lines)-1; i++ {
				l.Verbose().Println(">", lines[i])
			}
			unfinishedLine = lines[len(lines)-1]
		}
	}(port)

	return nil
}

func (d *LineDriver) Close() error {
	d.openLocker.Lock()
	defer d.openLocker.Unlock()

	if d.Port == nil {
		return nil
	}

	err := d.Port.Close()
	d.Port = nil
	return err
}

// Write sends raw bytes to the port. A failed write closes the port, there
// is no reopening for the remainder of the run.
func (d *LineDriver) Write(data []byte) (int, error) {
	d.writeLocker.Lock()
	defer d.writeLocker.Unlock()

	if d.Port == nil {
		return 0, errors.New("port is not open")
	}

	n, err := d.Port.Write(data)
	if err != nil {
		_ = d.Close()
		return n, err
	}

	return n, nil
}

func (d *LineDriver) Send(line string) error {
	_, err := d.Write([]byte(line + "\n"))
	return err
}

func New(name string, baud int) transport.Driver {
	return &LineDriver{
		openLocker:  &sync.Mutex{},
		writeLocker: &sync.Mutex{},
		Name:        name,
		Baud:        baud,
	}
}
