package recommendation

// CancelledStage is the RentalStage value of cancelled reservations.
const CancelledStage = "Cancel"

// Config holds configuration for the recommendation pipeline
type Config struct {
	// CancelledStage overrides the rental stage treated as cancelled.
	// Matching is exact and case-sensitive.
	CancelledStage string
}

// DefaultConfig returns the configuration used by the server and the CLI.
func DefaultConfig() Config {
	return Config{CancelledStage: CancelledStage}
}
