package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to v4 if v7 fails
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// SnapshotID identifies one loaded dataset snapshot. A snapshot is created
// once at process start; every derived structure (mask, comparison table,
// chart payload) belongs to exactly one snapshot for the life of the session.
type SnapshotID ID

// NewSnapshotID creates an identifier for a freshly loaded dataset
func NewSnapshotID() SnapshotID {
	return SnapshotID(NewID())
}

func (id SnapshotID) String() string { return ID(id).String() }

// IsEmpty checks if the snapshot ID is empty
func (id SnapshotID) IsEmpty() bool { return ID(id).IsEmpty() }

// ParseSnapshotID parses a string into SnapshotID
func ParseSnapshotID(s string) (SnapshotID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("snapshot ID cannot be empty")
	}
	return SnapshotID(s), nil
}
