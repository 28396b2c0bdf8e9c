package evdev

import (
	"github.com/allape/gogger"
	"github.com/allape/opentouch/touch/device"
	goevdev "github.com/holoplot/go-evdev"
)

var l = gogger.New("touch.device.evdev")

type TouchDevice struct {
	device.Device

	dev  *goevdev.InputDevice
	name string
	path string
}

func (d *TouchDevice) Name() string {
	return d.name
}

func (d *TouchDevice) Path() string {
	return d.path
}

func (d *TouchDevice) Grab() error {
	return d.dev.Grab()
}

func (d *TouchDevice) Ungrab() error {
	return d.dev.Ungrab()
}

func (d *TouchDevice) ReadOne() (*goevdev.InputEvent, error) {
	return d.dev.ReadOne()
}

func (d *TouchDevice) Close() error {
	return d.dev.Close()
}

func Open(path string) (device.Device, error) {
	dev, err := goevdev.Open(path)
	if err != nil {
		return nil, err
	}

	name, err := dev.Name()
	if err != nil {
		l.Verbose().Println("device name:", err)
	}

	absInfos, err := dev.AbsInfos()
	if err == nil {
		for _, code := range device.TouchAbsCodes {
			if info, ok := absInfos[code]; ok {
				l.Verbose().Printf("%s: %d..%d", goevdev.CodeName(goevdev.EV_ABS, code), info.Minimum, info.Maximum)
			}
		}
	}

	return &TouchDevice{
		dev:  dev,
		name: name,
		path: dev.Path(),
	}, nil
}

// List enumerates every readable input device. Devices that cannot be
// opened, typically for lack of permission, are skipped.
func List() ([]device.Info, error) {
	paths, err := goevdev.ListDevicePaths()
	if err != nil {
		return nil, err
	}

	var infos []device.Info
	for _, p := range paths {
		dev, err := goevdev.Open(p.Path)
		if err != nil {
			l.Verbose().Println("open", p.Path, "error:", err)
			continue
		}

		info := device.Info{
			Path: p.Path,
			Name: p.Name,
		}
		name, err := dev.Name()
		if err == nil {
			info.Name = name
		}
		info.AbsCodes = dev.CapableEvents(goevdev.EV_ABS)

		_ = dev.Close()

		infos = append(infos, info)
	}

	return infos, nil
}
