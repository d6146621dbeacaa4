package warm

import "errors"

var (
	// ErrSearcherRequired is returned when a searcher is not provided.
	ErrSearcherRequired = errors.New("searcher required")

	// ErrCheckpointsRequired is returned when a checkpoint repository is not provided.
	ErrCheckpointsRequired = errors.New("checkpoint repository required")
)
