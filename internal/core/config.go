package core

// RuntimeConfig is passed to a game on Reset.
// The terminal frontend fills the screen size; the window frontend leaves it
// at the arena size.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second
	Seed     int64 // RNG seed, 0 means "pick one from the clock"
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
// 30 ticks per second matches the pacing the ball speed was tuned for.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  40,
		TickRate: 30,
	}
}

// GameState summarises a game for the platform layer.
type GameState struct {
	Score    int  // Wave reached; after a loss, the wave the run ended on
	Best     int  // Best score of this process
	GameOver bool // The loss screen is showing
	Paused   bool
}

// StepResult is returned by Game.Step after each tick.
type StepResult struct {
	State GameState
}
