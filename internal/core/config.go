package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int    // Screen width in characters
	ScreenH  int    // Screen height in characters
	TickRate int    // Simulation ticks per second (default 60)
	Seed     int64  // RNG seed for deterministic gameplay
	Player   string // Player label shown in the HUD and submitted with results
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Matched pairs so far
	GameOver bool // Whether the run has ended
	Won      bool // Whether the run ended in a win (only meaningful when GameOver)
	Paused   bool // Whether the game is paused (e.g. window too small)
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}

// RunResult summarizes a finished run for score keeping.
type RunResult struct {
	Player  string // Player label
	Mode    string // Game ID the run was played in
	Turns   int    // Mismatched pairs during the run
	Time    string // Clock display at the end of the run (mm:ss)
	Seconds int    // Elapsed seconds
	Won     bool   // Whether every pair was matched
}

// Outcome returns "won" or "lost".
func (r RunResult) Outcome() string {
	if r.Won {
		return "won"
	}
	return "lost"
}
