package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Witch19/rrhh-console/internal/core/ports"
)

const collectionSessions = "sessions"

// CredentialStore keeps one document per browser session:
//
//	{_id: <session id>, token: "...", user: "...", updated_at: <date>}
//
// Reads and writes bump updated_at; a TTL index on it removes idle sessions.
type CredentialStore struct {
	col *mongo.Collection
	ttl time.Duration
}

func NewCredentialStore(db *mongo.Database, ttl time.Duration) *CredentialStore {
	return &CredentialStore{col: db.Collection(collectionSessions), ttl: ttl}
}

// Open returns the view of one session.
func (s *CredentialStore) Open(sessionID string) ports.CredentialStore {
	return &sessionDoc{col: s.col, id: sessionID}
}

// Ping checks the connection to the primary.
func (s *CredentialStore) Ping(ctx context.Context) error {
	if err := s.col.Database().Client().Ping(ctx, nil); err != nil {
		return fmt.Errorf("mongo ping: %w", err)
	}
	return nil
}

// EnsureIndexes creates the expiry index of the sessions collection.
func (s *CredentialStore) EnsureIndexes(ctx context.Context) error {
	if s.ttl <= 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := s.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "updated_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(int32(s.ttl.Seconds())),
	})
	if err != nil {
		return fmt.Errorf("create sessions ttl index: %w", err)
	}
	return nil
}

type sessionDoc struct {
	col *mongo.Collection
	id  string
}

// Get reads one entry and bumps updated_at, so reads keep the session
// alive as writes do.
func (d *sessionDoc) Get(ctx context.Context, key string) (string, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc bson.M
	opts := options.FindOneAndUpdate().
		SetProjection(bson.M{key: 1}).
		SetReturnDocument(options.After)
	err := d.col.FindOneAndUpdate(ctx,
		bson.M{"_id": d.id},
		bson.M{"$set": bson.M{"updated_at": time.Now().UTC()}},
		opts,
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("mongo get %s: %w", key, err)
	}
	v, ok := doc[key].(string)
	return v, ok, nil
}

// Put sets all entries with a single upsert, which is atomic per document.
func (d *sessionDoc) Put(ctx context.Context, entries map[string]string) error {
	if len(entries) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{"updated_at": time.Now().UTC()}
	for k, v := range entries {
		set[k] = v
	}
	_, err := d.col.UpdateOne(ctx,
		bson.M{"_id": d.id},
		bson.M{"$set": set},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("mongo put session: %w", err)
	}
	return nil
}

func (d *sessionDoc) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	unset := bson.M{}
	for _, k := range keys {
		unset[k] = ""
	}
	_, err := d.col.UpdateOne(ctx, bson.M{"_id": d.id}, bson.M{"$unset": unset})
	if err != nil {
		return fmt.Errorf("mongo delete session: %w", err)
	}
	return nil
}
