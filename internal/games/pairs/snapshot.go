package pairs

// Snapshot captures the game state for determinism testing.
type Snapshot struct {
	Tick     uint64
	Mode     string
	Player   string
	Turns    int
	Elapsed  int
	Clock    string
	Cursor   int
	Faces    []FaceID
	States   []CardState
	Outcome  Outcome
	Locked   bool
	Confetti int // Live confetti pieces, 0 when the animation is off
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	deck := g.ctrl.Deck()
	faces := make([]FaceID, len(deck))
	states := make([]CardState, len(deck))
	for i, c := range deck {
		faces[i] = c.Face
		states[i] = c.State
	}

	confetti := 0
	if g.confetti != nil {
		confetti = g.confetti.Len()
	}

	return Snapshot{
		Tick:     g.tick,
		Mode:     g.ID(),
		Player:   g.ctrl.Player(),
		Turns:    g.ctrl.Turns(),
		Elapsed:  g.ctrl.Elapsed(),
		Clock:    g.ctrl.Display(),
		Cursor:   g.cursor,
		Faces:    faces,
		States:   states,
		Outcome:  g.ctrl.Outcome(),
		Locked:   g.ctrl.Locked(),
		Confetti: confetti,
	}
}
