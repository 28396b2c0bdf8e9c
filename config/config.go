package config

import (
	"github.com/allape/opentouch/logger"
	"github.com/pelletier/go-toml/v2"
	"os"
)

var log = logger.New("[config]")
var vlog = logger.NewVerboseLogger("[config]")

const DefaultConfigPath = "touch.toml"

const (
	DefaultSerialPort = "/dev/ttyUSB0"
	DefaultBaud       = 115200

	DefaultScreenW = 800
	DefaultScreenH = 480
	DefaultTargetW = 828
	DefaultTargetH = 1792
)

type TransportDriverType string

const (
	TransportNone       TransportDriverType = "none"
	TransportSerialPort TransportDriverType = "serialport"
	TransportPTY        TransportDriverType = "pty"
)

type Device struct {
	// Src is an evdev path like /dev/input/event3. Empty means pick one by
	// the touch device heuristics.
	Src  string `toml:"src"`
	Grab bool   `toml:"grab"`
}

type Transport struct {
	Type TransportDriverType `toml:"type"`
	Src  string              `toml:"src"`
	Baud int                 `toml:"baud"`
}

type Mapping struct {
	ScreenW int `toml:"screen_w"`
	ScreenH int `toml:"screen_h"`
	TargetW int `toml:"target_w"`
	TargetH int `toml:"target_h"`
}

type Monitor struct {
	// Addr enables the websocket monitor page when not empty.
	Addr string `toml:"addr"`
	Path string `toml:"path"`
}

type Config struct {
	Device    Device    `toml:"device"`
	Transport Transport `toml:"transport"`
	Mapping   Mapping   `toml:"mapping"`
	Monitor   Monitor   `toml:"monitor"`
}

// GetConfig loads configFile over the defaults. An empty configFile means
// the default path, which is fine to be absent.
func GetConfig(configFile string) (Config, error) {
	config := Config{
		Device: Device{},
		Transport: Transport{
			Type: TransportSerialPort,
			Src:  DefaultSerialPort,
			Baud: DefaultBaud,
		},
		Mapping: Mapping{
			ScreenW: DefaultScreenW,
			ScreenH: DefaultScreenH,
			TargetW: DefaultTargetW,
			TargetH: DefaultTargetH,
		},
		Monitor: Monitor{
			Addr: "",
			Path: "/monitor",
		},
	}

	required := configFile != ""
	if configFile == "" {
		configFile = DefaultConfigPath
	}

	_, err := os.Stat(configFile)
	if err != nil {
		if required {
			return config, err
		}
		return config, nil
	}

	log.Println("reading config file:", configFile)

	configData, err := os.ReadFile(configFile)
	if err != nil {
		return config, err
	}

	err = toml.Unmarshal(configData, &config)
	if err != nil {
		return config, err
	}

	vlog.Println("use config:", config)

	return config, nil
}
