package bevi

// Stage represents a scheduling stage in the engine execution pipeline.
// Startup stages run once at application start; update stages run every
// frame in order: PreUpdate → Update → PostUpdate.
type Stage int

const (
	// PreStartup runs once before the main Startup stage.
	PreStartup Stage = iota

	// Startup runs once at application initialization.
	Startup

	// PostStartup runs once after Startup for early initialization
	// finalization.
	PostStartup

	// PreUpdate runs before the main Update stage for preparatory systems
	// such as input handling.
	PreUpdate

	// Update runs every frame for game logic.
	Update

	// PostUpdate runs after the main Update stage for cleanup or
	// finalization.
	PostUpdate

	// stageCount is the total number of stages.
	stageCount
)

// String returns the string representation of a stage.
func (s Stage) String() string {
	switch s {
	case PreStartup:
		return "PreStartup"
	case Startup:
		return "Startup"
	case PostStartup:
		return "PostStartup"
	case PreUpdate:
		return "PreUpdate"
	case Update:
		return "Update"
	case PostUpdate:
		return "PostUpdate"
	default:
		return "Unknown"
	}
}

// IsStartup reports whether the stage belongs to the one-shot startup part
// of the pipeline.
func (s Stage) IsStartup() bool {
	return s >= PreStartup && s <= PostStartup
}
