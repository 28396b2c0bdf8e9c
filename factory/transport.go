package factory

import (
	"fmt"
	"github.com/allape/gogger"
	"github.com/allape/opentouch/config"
	"github.com/allape/opentouch/touch/transport"
	"github.com/allape/opentouch/touch/transport/ptyport"
	"github.com/allape/opentouch/touch/transport/serialport"
)

var l = gogger.New("factory")

// TransportFromConfig builds the transport the bridge writes to. A serial
// port that cannot be opened falls back to a pty pair, and a pty that
// cannot be created either leaves the bridge console only. Both drivers
// are returned already open.
func TransportFromConfig(conf config.Config) (td transport.Driver, err error) {
	switch conf.Transport.Type {
	case config.TransportNone:
		l.Warn().Println("transport driver is none, console output only")
		return nil, nil
	case config.TransportSerialPort:
		l.Info().Println("transport driver is serial port:", conf.Transport.Src)
		td = serialport.New(conf.Transport.Src, conf.Transport.Baud)
		err = td.Open()
		if err != nil {
			l.Error().Println("open serial port:", err)
			l.Warn().Println("falling back to pty")
			td = nil
		}
	case config.TransportPTY:
		l.Info().Println("transport driver is pty")
	default:
		return nil, fmt.Errorf("unknown transport driver: %s", conf.Transport.Type)
	}

	if td == nil {
		pair := ptyport.New()
		err = pair.Open()
		if err != nil {
			l.Error().Println("open pty:", err)
			l.Warn().Println("no transport available, console output only")
			return nil, nil
		}
		td = pair
	}

	return td, nil
}
