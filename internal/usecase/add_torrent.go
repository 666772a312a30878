package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"bonarr/internal/domain"
	"bonarr/internal/domain/ports"
	"bonarr/internal/magnet"
)

var ErrMissingMagnet = errors.New("missing magnet")

type AddTorrent struct {
	Repo ports.TorrentStore
	Now  func() time.Time
}

type AddTorrentInput struct {
	Magnet   string
	Name     string
	Category string
	SavePath string
}

// Execute normalizes the magnet into a canonical hash and upserts a new
// record in the "downloading" state. Re-adding the same magnet is an
// idempotent overwrite: the derived hash keys the upsert. A magnet
// without a parseable info hash still gets a deterministic synthetic id
// so the add never fails on malformed-but-present input.
func (uc AddTorrent) Execute(ctx context.Context, input AddTorrentInput) (domain.TorrentRecord, error) {
	if strings.TrimSpace(input.Magnet) == "" {
		return domain.TorrentRecord{}, ErrMissingMagnet
	}

	now := time.Now
	if uc.Now != nil {
		now = uc.Now
	}

	hash, err := magnet.ExtractInfoHash(input.Magnet)
	if err != nil {
		hash = magnet.FallbackID(input.Magnet)
	}

	name := input.Name
	if name == "" {
		name = hash
	}

	record := domain.TorrentRecord{
		Hash:     domain.Hash(hash),
		Name:     name,
		Category: input.Category,
		AddedOn:  now().Unix(),
		Progress: 0,
		State:    domain.StateDownloading,
		SavePath: input.SavePath,
	}

	if err := uc.Repo.Upsert(ctx, record); err != nil {
		return domain.TorrentRecord{}, wrapRepo(err)
	}
	return record, nil
}
