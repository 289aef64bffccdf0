package tui

// holdTimer counts down the hold for a time-type exercise (e.g. a 30-second
// stretch). Driven by the app's one-second tick.
type holdTimer struct {
	exerciseID string
	label      string
	total      int
	remaining  int
	running    bool
}

func (t *holdTimer) start(exerciseID, label string, secs int) {
	if secs <= 0 {
		return
	}
	t.exerciseID = exerciseID
	t.label = label
	t.total = secs
	t.remaining = secs
	t.running = true
}

// tick advances the countdown one second. Returns true on the tick that
// finishes the hold.
func (t *holdTimer) tick() bool {
	if !t.running {
		return false
	}
	t.remaining--
	if t.remaining <= 0 {
		t.running = false
		t.remaining = 0
		return true
	}
	return false
}

func (t *holdTimer) stop() {
	t.running = false
	t.remaining = 0
}

func (t holdTimer) active() bool {
	return t.running
}
