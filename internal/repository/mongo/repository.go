package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"bonarr/internal/domain"
)

// Repository stores torrent records in a single collection keyed by hash.
type Repository struct {
	collection *mongo.Collection
}

type torrentDoc struct {
	Hash         string  `bson:"_id"`
	Name         string  `bson:"name"`
	Category     string  `bson:"category"`
	AddedOn      int64   `bson:"added_on"`
	CompletionOn int64   `bson:"completion_on"`
	Progress     float64 `bson:"progress"`
	State        string  `bson:"state"`
	SavePath     string  `bson:"save_path"`
	DlSpeed      int64   `bson:"dlspeed"`
	UpSpeed      int64   `bson:"upspeed"`
}

func NewRepository(client *mongo.Client, dbName, collectionName string) *Repository {
	return &Repository{collection: client.Database(dbName).Collection(collectionName)}
}

func Connect(ctx context.Context, uri string, extra ...*options.ClientOptions) (*mongo.Client, error) {
	opts := append([]*options.ClientOptions{options.Client().ApplyURI(uri)}, extra...)
	client, err := mongo.Connect(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return client, nil
}

// EnsureIndexes creates the collection's indexes. Idempotent; called once
// at startup.
func (r *Repository) EnsureIndexes(ctx context.Context) error {
	if r == nil || r.collection == nil {
		return nil
	}
	models := []mongo.IndexModel{
		{Keys: bson.D{{Key: "added_on", Value: -1}}},
		{Keys: bson.D{{Key: "category", Value: 1}}},
	}
	_, err := r.collection.Indexes().CreateMany(ctx, models)
	return err
}

// Upsert inserts or fully replaces the record with the same hash.
// Last committed write wins; no field-level merge.
func (r *Repository) Upsert(ctx context.Context, t domain.TorrentRecord) error {
	doc := toDoc(t)
	filter := bson.M{"_id": doc.Hash}
	_, err := r.collection.ReplaceOne(ctx, filter, doc, options.Replace().SetUpsert(true))
	return wrapStorage(err)
}

func (r *Repository) Get(ctx context.Context, hash domain.Hash) (domain.TorrentRecord, error) {
	var doc torrentDoc
	if err := r.collection.FindOne(ctx, bson.M{"_id": string(hash)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.TorrentRecord{}, domain.ErrNotFound
		}
		return domain.TorrentRecord{}, wrapStorage(err)
	}
	return fromDoc(doc), nil
}

// List returns all records ordered by added_on descending (ties resolved
// by the collaborator's insertion order). The category filter is applied
// after retrieval by exact equality; empty matches everything.
func (r *Repository) List(ctx context.Context, category string) ([]domain.TorrentRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "added_on", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, wrapStorage(err)
	}
	defer cursor.Close(ctx)

	var docs []torrentDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, wrapStorage(err)
	}

	records := make([]domain.TorrentRecord, 0, len(docs))
	for _, doc := range docs {
		if category != "" && doc.Category != category {
			continue
		}
		records = append(records, fromDoc(doc))
	}
	return records, nil
}

// DeleteMany removes the given hashes. An empty set is a no-op and issues
// no query; hashes that do not exist are not an error.
func (r *Repository) DeleteMany(ctx context.Context, hashes []domain.Hash) error {
	if len(hashes) == 0 {
		return nil
	}
	values := make([]string, 0, len(hashes))
	for _, h := range hashes {
		values = append(values, string(h))
	}
	_, err := r.collection.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": values}})
	return wrapStorage(err)
}

func toDoc(t domain.TorrentRecord) torrentDoc {
	return torrentDoc{
		Hash:         string(t.Hash),
		Name:         t.Name,
		Category:     t.Category,
		AddedOn:      t.AddedOn,
		CompletionOn: t.CompletionOn,
		Progress:     t.Progress,
		State:        t.State,
		SavePath:     t.SavePath,
		DlSpeed:      t.DlSpeed,
		UpSpeed:      t.UpSpeed,
	}
}

func fromDoc(doc torrentDoc) domain.TorrentRecord {
	return domain.TorrentRecord{
		Hash:         domain.Hash(doc.Hash),
		Name:         doc.Name,
		Category:     doc.Category,
		AddedOn:      doc.AddedOn,
		CompletionOn: doc.CompletionOn,
		Progress:     doc.Progress,
		State:        doc.State,
		SavePath:     doc.SavePath,
		DlSpeed:      doc.DlSpeed,
		UpSpeed:      doc.UpSpeed,
	}
}

func wrapStorage(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", domain.ErrStorage, err)
}
