package factory

import (
	"github.com/allape/opentouch/config"
	"github.com/allape/opentouch/touch/transport/ptyport"
	"testing"
)

func TestTransportFromConfig_None(t *testing.T) {
	td, err := TransportFromConfig(config.Config{
		Transport: config.Transport{Type: config.TransportNone},
	})
	if err != nil {
		t.Fatal(err)
	}
	if td != nil {
		t.Fatalf("Expected no driver, got %T", td)
	}
}

func TestTransportFromConfig_SerialFallsBackToPTY(t *testing.T) {
	td, err := TransportFromConfig(config.Config{
		Transport: config.Transport{
			Type: config.TransportSerialPort,
			Src:  "/dev/does-not-exist",
			Baud: config.DefaultBaud,
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	pair, ok := td.(*ptyport.PairDriver)
	if !ok {
		t.Fatalf("Expected *ptyport.PairDriver, got %T", td)
	}
	defer func() {
		_ = pair.Close()
	}()

	if pair.TTYName() == "" {
		t.Fatal("fallback pty has no monitoring path")
	}

	// the line stream must still be deliverable over the fallback
	err = pair.Send("DOWN 0 0")
	if err != nil {
		t.Fatal(err)
	}
}

func TestTransportFromConfig_PTY(t *testing.T) {
	td, err := TransportFromConfig(config.Config{
		Transport: config.Transport{Type: config.TransportPTY},
	})
	if err != nil {
		t.Fatal(err)
	}

	pair, ok := td.(*ptyport.PairDriver)
	if !ok {
		t.Fatalf("Expected *ptyport.PairDriver, got %T", td)
	}
	defer func() {
		_ = pair.Close()
	}()

	if pair.TTYName() == "" {
		t.Fatal("pty has no monitoring path")
	}
}

func TestTransportFromConfig_Unknown(t *testing.T) {
	_, err := TransportFromConfig(config.Config{
		Transport: config.Transport{Type: "carrier-pigeon"},
	})
	if err == nil {
		t.Fatal("expected an error for an unknown driver type")
	}
}
