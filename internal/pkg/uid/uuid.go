package uid

import "github.com/google/uuid"

// UUID generates time-ordered v7 identifiers, used as correlation ids so log
// lines from one run sort together.
type UUID struct{}

// NewUUID returns a UUID generator.
func NewUUID() *UUID {
	return &UUID{}
}

// Generate returns a new UUID string, falling back to a random v4 when the
// v7 source fails.
func (*UUID) Generate() string {
	if id, err := uuid.NewV7(); err == nil {
		return id.String()
	}
	return uuid.NewString()
}
