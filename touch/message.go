package touch

import (
	"fmt"
	"strconv"
	"strings"
)

type Verb string

const (
	Down Verb = "DOWN"
	Move Verb = "MOVE"
	Up   Verb = "UP"
)

// Message is one touch command in target space.
type Message struct {
	Verb Verb
	X    int
	Y    int
}

func (m Message) Line() string {
	return fmt.Sprintf("%s %d %d", m.Verb, m.X, m.Y)
}

func ParseMessage(line string) (Message, error) {
	fields := strings.Fields(strings.TrimSpace(line))
	if len(fields) != 3 {
		return Message{}, fmt.Errorf("malformed message: %q", line)
	}

	verb := Verb(fields[0])
	switch verb {
	case Down, Move, Up:
	default:
		return Message{}, fmt.Errorf("unknown verb: %q", fields[0])
	}

	x, err := strconv.Atoi(fields[1])
	if err != nil {
		return Message{}, fmt.Errorf("invalid x: %q", fields[1])
	}

	y, err := strconv.Atoi(fields[2])
	if err != nil {
		return Message{}, fmt.Errorf("invalid y: %q", fields[2])
	}

	return Message{Verb: verb, X: x, Y: y}, nil
}
