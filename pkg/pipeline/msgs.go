package pipeline

// Progress messages printed to the console
const (
	MsgCheckingROMs = "Checking ROM ZIP files cache..."
	MsgCheckingMRAs = "Checking MRA files cache..."
	MsgBuilding     = "Building ARC files..."
)
