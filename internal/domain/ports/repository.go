package ports

import (
	"context"

	"bonarr/internal/domain"
)

// TorrentStore is the narrow contract the emulation needs from the
// persistence collaborator. List returns records ordered by added_on
// descending; category filters by exact equality, empty means all.
type TorrentStore interface {
	Upsert(ctx context.Context, t domain.TorrentRecord) error
	Get(ctx context.Context, hash domain.Hash) (domain.TorrentRecord, error)
	List(ctx context.Context, category string) ([]domain.TorrentRecord, error)
	DeleteMany(ctx context.Context, hashes []domain.Hash) error
}
