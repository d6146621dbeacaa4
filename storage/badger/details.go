package badger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/poiesic/petplaces/core"
	"github.com/poiesic/petplaces/storage"
)

// DetailRepository implements storage.DetailRepository for BadgerDB.
// Entries expire through badger's native TTL support.
type DetailRepository struct {
	backend *Backend
	logger  *slog.Logger
}

var _ storage.DetailRepository = (*DetailRepository)(nil)

// NewDetailRepository creates a detail cache on top of an open backend.
// The backend is owned by the caller.
func NewDetailRepository(backend *Backend) *DetailRepository {
	return &DetailRepository{
		backend: backend,
		logger:  backend.logger.With("repository", "details"),
	}
}

// Close is a no-op; the backend is closed by its owner.
func (r *DetailRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *DetailRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// GetDetail retrieves a cached detail by place ID.
func (r *DetailRepository) GetDetail(ctx context.Context, placeID string) (*core.PlaceDetail, error) {
	if r.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}

	var detail *core.PlaceDetail
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeDetailKey(placeID))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			var err error
			detail, err = storage.UnmarshalPlaceDetail(val)
			return err
		})
	}, false)
	if err != nil {
		return nil, err
	}

	// Hashed keys can collide; the stored ID settles it.
	if detail.PlaceID != placeID {
		r.logger.Debug("detail key collision", "want", placeID, "got", detail.PlaceID)
		return nil, storage.ErrNotFound
	}
	return detail, nil
}

// PutDetail stores a detail, replacing any previous entry for the place.
func (r *DetailRepository) PutDetail(ctx context.Context, detail *core.PlaceDetail, ttl time.Duration) error {
	if detail == nil || detail.PlaceID == "" {
		return fmt.Errorf("%w: detail without place ID", storage.ErrInvalidRecord)
	}
	if r.backend.IsClosed() {
		return storage.ErrStorageClosed
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		entry := badger.NewEntry(makeDetailKey(detail.PlaceID), storage.MarshalPlaceDetail(detail))
		if ttl > 0 {
			entry = entry.WithTTL(ttl)
		}
		if err := tx.SetEntry(entry); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// DeleteDetail removes a cached detail.
func (r *DetailRepository) DeleteDetail(ctx context.Context, placeID string) error {
	if r.backend.IsClosed() {
		return storage.ErrStorageClosed
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeDetailKey(placeID)
		if _, err := tx.Get(key); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}
		if err := tx.Delete(key); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// CountDetails returns the number of unexpired cached details.
func (r *DetailRepository) CountDetails(ctx context.Context) (int, error) {
	if r.backend.IsClosed() {
		return 0, storage.ErrStorageClosed
	}
	return r.backend.countPrefix([]byte(placeDetailPrefix))
}
