package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and to derive the fixed tick duration.
type RuntimeConfig struct {
	ScreenW  int // Screen width in characters
	ScreenH  int // Screen height in characters
	TickRate int // Simulation ticks per second (default 60)
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  40,
		TickRate: 60,
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Level       int    // 1-based index of the level being played
	TotalLevels int    // Number of levels in the run
	Status      string // Short status label for captions
	GameOver    bool   // Whether the run has ended (all levels cleared)
	Paused      bool   // Whether the game is paused
}

// Outcome describes how a single level attempt ended.
type Outcome struct {
	LevelID string
	Cleared bool // false means the tide breached a priority zone
	Ticks   int  // Simulation ticks spent on the attempt
	Moves   int  // Barrier moves made during the attempt
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any level outcomes that occurred.
type StepResult struct {
	State    GameState
	Outcomes []Outcome
}
