package factory

import (
	"github.com/allape/opentouch/config"
	"github.com/allape/opentouch/touch/device"
	"github.com/allape/opentouch/touch/device/evdev"
	"strings"
)

// TouchDeviceFromConfig opens the configured device, or walks the device
// listing with the touch heuristics when none is configured. The full
// listing is logged when nothing matches.
func TouchDeviceFromConfig(conf config.Config) (device.Device, error) {
	if conf.Device.Src != "" {
		l.Info().Println("touch device is", conf.Device.Src)
		return evdev.Open(conf.Device.Src)
	}

	infos, err := evdev.List()
	if err != nil {
		return nil, err
	}

	info, label, err := device.Select(infos)
	if err != nil {
		l.Error().Println("discovered devices:")
		for _, i := range infos {
			l.Error().Printf("  %s  %s  [%s]", i.Path, i.Name, strings.Join(i.AbsCodeNames(), " "))
		}
		return nil, err
	}

	l.Info().Printf("touch device chosen by %s: %s (%s)", label, info.Name, info.Path)

	return evdev.Open(info.Path)
}
