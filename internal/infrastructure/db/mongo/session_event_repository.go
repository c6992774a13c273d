package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Witch19/rrhh-console/internal/core/domain"
	"github.com/Witch19/rrhh-console/internal/core/ports"
)

const collectionSessionEvents = "session_events"

// SessionEventRepository implements ports.SessionEventRepository using MongoDB.
type SessionEventRepository struct {
	db *mongo.Database
}

// NewSessionEventRepository creates a new SessionEventRepository.
func NewSessionEventRepository(db *mongo.Database) ports.SessionEventRepository {
	return &SessionEventRepository{db: db}
}

// InsertEvent appends a session transition to the session_events audit
// collection. Tokens are never written.
func (r *SessionEventRepository) InsertEvent(ctx context.Context, change domain.SessionChange) error {
	doc := sessionEventDocument(change)
	doc["processed_at"] = time.Now().UTC()

	_, err := r.db.Collection(collectionSessionEvents).InsertOne(ctx, doc)
	return err
}

func sessionEventDocument(change domain.SessionChange) bson.M {
	doc := bson.M{
		"session_id": change.SessionID,
		"from":       string(change.From),
		"to":         string(change.To),
		"reason":     string(change.Reason),
		"timestamp":  change.At.UTC(),
	}
	if id := change.Identity; id != nil {
		user := bson.M{
			"id":       id.ID.String(),
			"username": id.Username,
			"role":     string(id.Role),
		}
		if id.WorkerID != nil {
			user["worker_id"] = int64(*id.WorkerID)
		}
		doc["user"] = user
	}
	return doc
}
