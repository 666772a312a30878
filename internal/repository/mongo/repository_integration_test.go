package mongo

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo/options"

	"bonarr/internal/domain"
)

// testMongoURI returns the MongoDB connection URI for integration tests.
// Defaults to localhost:27017. Set MONGO_TEST_URI to override.
func testMongoURI() string {
	if uri := os.Getenv("MONGO_TEST_URI"); uri != "" {
		return uri
	}
	return "mongodb://localhost:27017"
}

// setupTestRepo connects to MongoDB and returns a Repository using a unique
// test database. The cleanup function drops the database and disconnects.
// Calls t.Skip if MongoDB is unreachable.
func setupTestRepo(t *testing.T) (*Repository, func()) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	uri := testMongoURI()
	client, err := Connect(ctx, uri, options.Client().SetConnectTimeout(3*time.Second))
	if err != nil {
		t.Skipf("MongoDB not available at %s: %v", uri, err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		t.Skipf("MongoDB ping failed at %s: %v", uri, err)
	}

	dbName := fmt.Sprintf("bonarr_test_%d", time.Now().UnixNano())
	repo := NewRepository(client, dbName, "torrents")

	if err := repo.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		t.Fatalf("EnsureIndexes: %v", err)
	}

	cleanup := func() {
		ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel2()
		_ = client.Database(dbName).Drop(ctx2)
		_ = client.Disconnect(ctx2)
	}
	return repo, cleanup
}

func testRecord(hash string, addedOn int64) domain.TorrentRecord {
	return domain.TorrentRecord{
		Hash:    domain.Hash(hash),
		Name:    hash,
		AddedOn: addedOn,
		State:   domain.StateDownloading,
	}
}

func TestRepository_UpsertThenGet(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()
	ctx := context.Background()

	rec := testRecord("AAAA", 100)
	rec.Category = "tv"
	if err := repo.Upsert(ctx, rec); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	got, err := repo.Get(ctx, "AAAA")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != rec {
		t.Fatalf("Get returned %+v, want %+v", got, rec)
	}
}

func TestRepository_UpsertReplacesAllFields(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()
	ctx := context.Background()

	first := testRecord("AAAA", 100)
	first.Category = "tv"
	first.SavePath = "/downloads/tv"
	if err := repo.Upsert(ctx, first); err != nil {
		t.Fatalf("first Upsert: %v", err)
	}

	// Second write carries no category or save path: they must be
	// replaced, not merged.
	second := testRecord("AAAA", 200)
	second.Progress = 0.5
	if err := repo.Upsert(ctx, second); err != nil {
		t.Fatalf("second Upsert: %v", err)
	}

	got, err := repo.Get(ctx, "AAAA")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != second {
		t.Fatalf("Get returned %+v, want %+v", got, second)
	}
}

func TestRepository_GetMissing(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()

	_, err := repo.Get(context.Background(), "NOPE")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRepository_ListOrderedByAddedOnDesc(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()
	ctx := context.Background()

	for _, rec := range []domain.TorrentRecord{
		testRecord("OLD", 100),
		testRecord("NEW", 300),
		testRecord("MID", 200),
	} {
		if err := repo.Upsert(ctx, rec); err != nil {
			t.Fatalf("Upsert(%s): %v", rec.Hash, err)
		}
	}

	records, err := repo.List(ctx, "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []domain.Hash{"NEW", "MID", "OLD"}
	if len(records) != len(want) {
		t.Fatalf("List returned %d records, want %d", len(records), len(want))
	}
	for i, hash := range want {
		if records[i].Hash != hash {
			t.Errorf("records[%d].Hash = %q, want %q", i, records[i].Hash, hash)
		}
	}
}

func TestRepository_ListFiltersByCategory(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()
	ctx := context.Background()

	tv := testRecord("TV", 100)
	tv.Category = "tv"
	movie := testRecord("MOVIE", 200)
	movie.Category = "movies"
	for _, rec := range []domain.TorrentRecord{tv, movie} {
		if err := repo.Upsert(ctx, rec); err != nil {
			t.Fatalf("Upsert(%s): %v", rec.Hash, err)
		}
	}

	records, err := repo.List(ctx, "tv")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 1 || records[0].Hash != "TV" {
		t.Fatalf("List(tv) returned %+v", records)
	}
}

func TestRepository_DeleteManyEmptyIsNoop(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()
	ctx := context.Background()

	if err := repo.Upsert(ctx, testRecord("KEEP", 100)); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if err := repo.DeleteMany(ctx, nil); err != nil {
		t.Fatalf("DeleteMany(nil): %v", err)
	}
	if _, err := repo.Get(ctx, "KEEP"); err != nil {
		t.Fatalf("record removed by empty delete: %v", err)
	}
}

func TestRepository_DeleteManySkipsMissing(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()
	ctx := context.Background()

	if err := repo.Upsert(ctx, testRecord("A", 100)); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if err := repo.DeleteMany(ctx, []domain.Hash{"A", "B"}); err != nil {
		t.Fatalf("DeleteMany: %v", err)
	}
	if _, err := repo.Get(ctx, "A"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("A not deleted: %v", err)
	}
}
