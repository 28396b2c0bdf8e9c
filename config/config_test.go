package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetConfig_Defaults(t *testing.T) {
	conf, err := GetConfig("")
	if err != nil {
		t.Fatal(err)
	}

	if conf.Transport.Type != TransportSerialPort {
		t.Fatalf("Expected %s, got %s", TransportSerialPort, conf.Transport.Type)
	}
	if conf.Transport.Src != DefaultSerialPort || conf.Transport.Baud != DefaultBaud {
		t.Fatalf("unexpected transport defaults: %+v", conf.Transport)
	}
	if conf.Mapping.ScreenW != DefaultScreenW || conf.Mapping.ScreenH != DefaultScreenH ||
		conf.Mapping.TargetW != DefaultTargetW || conf.Mapping.TargetH != DefaultTargetH {
		t.Fatalf("unexpected mapping defaults: %+v", conf.Mapping)
	}
	if conf.Device.Src != "" || conf.Device.Grab {
		t.Fatalf("unexpected device defaults: %+v", conf.Device)
	}
	if conf.Monitor.Addr != "" || conf.Monitor.Path != "/monitor" {
		t.Fatalf("unexpected monitor defaults: %+v", conf.Monitor)
	}
}

func TestGetConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "touch.toml")

	err := os.WriteFile(path, []byte(`
[device]
src = "/dev/input/event3"
grab = true

[transport]
type = "pty"

[mapping]
screen_w = 1024
screen_h = 600

[monitor]
addr = ":8080"
`), 0644)
	if err != nil {
		t.Fatal(err)
	}

	conf, err := GetConfig(path)
	if err != nil {
		t.Fatal(err)
	}

	if conf.Device.Src != "/dev/input/event3" || !conf.Device.Grab {
		t.Fatalf("unexpected device config: %+v", conf.Device)
	}
	if conf.Transport.Type != TransportPTY {
		t.Fatalf("Expected pty, got %s", conf.Transport.Type)
	}
	if conf.Mapping.ScreenW != 1024 || conf.Mapping.ScreenH != 600 {
		t.Fatalf("unexpected mapping: %+v", conf.Mapping)
	}

	// values the file does not mention keep their defaults
	if conf.Transport.Baud != DefaultBaud {
		t.Fatalf("Expected %d, got %d", DefaultBaud, conf.Transport.Baud)
	}
	if conf.Mapping.TargetW != DefaultTargetW || conf.Mapping.TargetH != DefaultTargetH {
		t.Fatalf("unexpected target dimensions: %+v", conf.Mapping)
	}
	if conf.Monitor.Addr != ":8080" || conf.Monitor.Path != "/monitor" {
		t.Fatalf("unexpected monitor config: %+v", conf.Monitor)
	}
}

func TestGetConfig_MissingExplicitFile(t *testing.T) {
	_, err := GetConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err == nil {
		t.Fatal("expected an error for an explicitly named missing file")
	}
}
