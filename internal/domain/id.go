package domain

import "github.com/google/uuid"

// NewID returns a time-ordered identifier. Ids generated by one process sort in
// creation order, which the message history relies on to break timestamp ties.
func NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}
