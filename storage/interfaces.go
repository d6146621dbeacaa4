// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package storage

import (
	"context"
	"time"

	"github.com/poiesic/petplaces/core"
)

// Repository is the base interface for all storage repositories.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close releases resources held by the repository.
	Close() error
}

// DetailRepository caches place detail records keyed by provider place ID.
type DetailRepository interface {
	Repository

	// GetDetail retrieves the cached detail for a place.
	// Returns ErrNotFound if nothing is cached or the entry expired.
	GetDetail(ctx context.Context, placeID string) (*core.PlaceDetail, error)

	// PutDetail stores a detail record. A positive ttl expires the entry
	// after that duration; zero keeps it until deleted.
	PutDetail(ctx context.Context, detail *core.PlaceDetail, ttl time.Duration) error

	// DeleteDetail removes a cached detail.
	// Returns ErrNotFound if nothing is cached for the place.
	DeleteDetail(ctx context.Context, placeID string) error

	// CountDetails returns the number of live cached details.
	CountDetails(ctx context.Context) (int, error)
}

// CheckpointRepository persists sweep progress.
type CheckpointRepository interface {
	// SaveCheckpoint persists a checkpoint, stamping UpdatedAt.
	SaveCheckpoint(ctx context.Context, checkpoint *core.Checkpoint) error

	// LoadCheckpoint retrieves a checkpoint by name.
	// Returns nil, nil if no checkpoint exists.
	LoadCheckpoint(ctx context.Context, name string) (*core.Checkpoint, error)

	// ClearCheckpoint removes a checkpoint. Missing checkpoints are ignored.
	ClearCheckpoint(ctx context.Context, name string) error
}
