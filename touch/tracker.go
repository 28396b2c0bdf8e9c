package touch

// Tracker follows a single contact through press, move and release.
// Axis updates are recorded in both states, but messages are only produced
// while a contact is active, and a move that lands on the last emitted
// target point is suppressed.
type Tracker struct {
	mapping Mapping

	touching bool

	deviceX int
	deviceY int

	lastX   int
	lastY   int
	hasLast bool
}

func NewTracker(mapping Mapping) *Tracker {
	return &Tracker{mapping: mapping}
}

func (t *Tracker) PointerX(value int) (Message, bool) {
	t.deviceX = value
	return t.moved()
}

func (t *Tracker) PointerY(value int) (Message, bool) {
	t.deviceY = value
	return t.moved()
}

// Touch reports a press or release of the contact. Repeated presses and
// repeated releases are no-ops.
func (t *Tracker) Touch(active bool) (Message, bool) {
	if t.touching == active {
		return Message{}, false
	}
	t.touching = active

	x, y := t.mapping.Map(t.deviceX, t.deviceY)

	if active {
		t.lastX, t.lastY = x, y
		t.hasLast = true
		return Message{Verb: Down, X: x, Y: y}, true
	}

	t.hasLast = false
	return Message{Verb: Up, X: x, Y: y}, true
}

func (t *Tracker) moved() (Message, bool) {
	if !t.touching {
		return Message{}, false
	}

	x, y := t.mapping.Map(t.deviceX, t.deviceY)
	if t.hasLast && x == t.lastX && y == t.lastY {
		return Message{}, false
	}

	t.lastX, t.lastY = x, y
	t.hasLast = true
	return Message{Verb: Move, X: x, Y: y}, true
}
