package device

import (
	"errors"
	evdev "github.com/holoplot/go-evdev"
	"io"
	"slices"
	"strings"
)

var ErrNotFound = errors.New("no touch device found, check /dev/input permissions or run as root")

// TouchNameHints match common touchscreen names, including the goodix and
// focaltech ("ft") controllers found on small HDMI panels.
var TouchNameHints = []string{"touch", "touchscreen", "goodix", "ft"}

var TouchAbsCodes = []evdev.EvCode{
	evdev.ABS_X,
	evdev.ABS_Y,
	evdev.ABS_MT_POSITION_X,
	evdev.ABS_MT_POSITION_Y,
}

// Device is the minimal surface of a kernel input device the bridge needs.
type Device interface {
	io.Closer
	Name() string
	Path() string
	Grab() error
	Ungrab() error
	ReadOne() (*evdev.InputEvent, error)
}

type Info struct {
	Path     string
	Name     string
	AbsCodes []evdev.EvCode
}

func (i Info) AbsCodeNames() []string {
	names := make([]string, 0, len(i.AbsCodes))
	for _, code := range i.AbsCodes {
		names = append(names, evdev.CodeName(evdev.EV_ABS, code))
	}
	return names
}

type Heuristic struct {
	Label string
	Match func(info Info) bool
}

// Heuristics are tried in order over the whole listing, first match wins.
var Heuristics = []Heuristic{
	{
		Label: "name",
		Match: func(info Info) bool {
			name := strings.ToLower(info.Name)
			for _, hint := range TouchNameHints {
				if strings.Contains(name, hint) {
					return true
				}
			}
			return false
		},
	},
	{
		Label: "capability",
		Match: func(info Info) bool {
			for _, code := range TouchAbsCodes {
				if slices.Contains(info.AbsCodes, code) {
					return true
				}
			}
			return false
		},
	},
}

func Select(infos []Info) (Info, string, error) {
	for _, heuristic := range Heuristics {
		for _, info := range infos {
			if heuristic.Match(info) {
				return info, heuristic.Label, nil
			}
		}
	}
	return Info{}, "", ErrNotFound
}
