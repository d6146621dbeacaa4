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


package warm

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/poiesic/petplaces/core"
	"github.com/poiesic/petplaces/search"
	"github.com/poiesic/petplaces/storage"
)

// Summary describes one completed sweep.
type Summary struct {
	Categories int           // Categories searched by this run
	Skipped    int           // Categories already covered by a previous run
	Live       int           // Categories answered by the provider
	Offline    []string      // Categories that fell back to offline data
	Resources  int           // Live resources fetched
	Elapsed    time.Duration
}

// Warmer runs a search for every known category around one origin so the
// detail cache is populated before users ask. Sweeps are resumable: progress
// is checkpointed after each category.
type Warmer struct {
	searcher    *search.Searcher
	checkpoints storage.CheckpointRepository
	progress    io.Writer
	logger      *slog.Logger
}

// Option configures a Warmer.
type Option func(*Warmer) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(w *Warmer) error {
		if logger == nil {
			logger = slog.Default()
		}
		w.logger = logger
		return nil
	}
}

// WithProgress sets where progress lines are written.
// Default discards them.
func WithProgress(writer io.Writer) Option {
	return func(w *Warmer) error {
		w.progress = writer
		return nil
	}
}

// NewWarmer creates a warmer.
func NewWarmer(searcher *search.Searcher, checkpoints storage.CheckpointRepository, opts ...Option) (*Warmer, error) {
	if searcher == nil {
		return nil, ErrSearcherRequired
	}
	if checkpoints == nil {
		return nil, ErrCheckpointsRequired
	}

	w := &Warmer{
		searcher:    searcher,
		checkpoints: checkpoints,
		progress:    io.Discard,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(w); err != nil {
			return nil, err
		}
	}
	w.logger = w.logger.With("component", "warmer")

	return w, nil
}

// CheckpointName identifies the sweep around origin.
func CheckpointName(origin core.Coordinate) string {
	return fmt.Sprintf("warm:%.4f,%.4f", origin.Lat, origin.Lng)
}

// Run sweeps every category around origin in ID order. A sweep interrupted by
// ctx resumes after the last completed category on the next call; a
// completed sweep clears its checkpoint.
func (w *Warmer) Run(ctx context.Context, origin core.Coordinate) (*Summary, error) {
	if err := core.ValidateCoordinate(origin); err != nil {
		return nil, err
	}

	name := CheckpointName(origin)
	checkpoint, err := w.checkpoints.LoadCheckpoint(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to load checkpoint: %w", err)
	}
	if checkpoint == nil {
		checkpoint = &core.Checkpoint{Name: name}
	} else {
		w.logger.Info("resuming sweep", "checkpoint", name, "after", checkpoint.Position)
	}

	categories := w.searcher.Registry().Categories()
	summary := &Summary{}
	tracker := NewProgressTracker(w.progress, len(categories))

	pending := categories[:0:0]
	for _, cat := range categories {
		if checkpoint.Position != "" && cat.ID <= checkpoint.Position {
			summary.Skipped++
			continue
		}
		pending = append(pending, cat)
	}
	tracker.Start(summary.Skipped)

	for _, cat := range pending {
		if err := ctx.Err(); err != nil {
			tracker.Finish()
			return summary, err
		}

		result := w.searcher.Search(ctx, cat.ID, &origin, "")
		summary.Categories++
		if result.Offline() {
			summary.Offline = append(summary.Offline, cat.ID)
			w.logger.Warn("category answered offline", "category", cat.ID, "err", search.ErrNoResults, "run", result.RunID)
		} else {
			summary.Live++
			summary.Resources += len(result.Resources)
		}
		tracker.Done(cat.ID, !result.Offline())

		checkpoint.Position = cat.ID
		checkpoint.Completed = summary.Skipped + summary.Categories
		if err := w.checkpoints.SaveCheckpoint(ctx, checkpoint); err != nil {
			tracker.Finish()
			return summary, fmt.Errorf("failed to save checkpoint: %w", err)
		}
	}
	tracker.Finish()
	summary.Elapsed = tracker.Elapsed()

	if err := w.checkpoints.ClearCheckpoint(ctx, name); err != nil {
		return summary, fmt.Errorf("failed to clear checkpoint: %w", err)
	}

	w.logger.Info("sweep complete",
		"categories", summary.Categories,
		"skipped", summary.Skipped,
		"live", summary.Live,
		"resources", summary.Resources,
		"elapsed", summary.Elapsed)
	return summary, nil
}
