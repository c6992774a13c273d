package mongo

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/Witch19/rrhh-console/internal/core/ports"
)

// newIntegrationStore connects to MONGO_TEST_URI and returns a store on a
// throwaway database. The test is skipped when no server is configured or
// reachable.
func newIntegrationStore(t *testing.T, ttl time.Duration) *CredentialStore {
	t.Helper()
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}

	ctx := context.Background()
	conn, err := Connect(ctx, Config{
		URI:      uri,
		Database: "rrhh_test_" + uuid.NewString()[:8],
		Timeout:  3 * time.Second,
	})
	if err != nil {
		t.Skipf("mongo unavailable: %v", err)
	}
	t.Cleanup(func() {
		_ = conn.DB.Drop(context.Background())
		_ = conn.Close(context.Background())
	})

	store := NewCredentialStore(conn.DB, ttl)
	require.NoError(t, store.EnsureIndexes(ctx))
	return store
}

func updatedAt(t *testing.T, store *CredentialStore, sid string) time.Time {
	t.Helper()
	var doc struct {
		UpdatedAt time.Time `bson:"updated_at"`
	}
	require.NoError(t, store.col.FindOne(context.Background(), bson.M{"_id": sid}).Decode(&doc))
	return doc.UpdatedAt
}

func TestCredentialStore_PutGetDelete(t *testing.T) {
	ctx := context.Background()
	store := newIntegrationStore(t, time.Hour)
	s := store.Open("abc")

	require.NoError(t, s.Put(ctx, map[string]string{
		ports.KeyToken: "t1",
		ports.KeyUser:  `{"id":"1"}`,
	}))

	token, ok, err := s.Get(ctx, ports.KeyToken)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "t1", token)

	user, ok, err := s.Get(ctx, ports.KeyUser)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `{"id":"1"}`, user)

	require.NoError(t, s.Delete(ctx, ports.KeyToken, ports.KeyUser))
	_, ok, err = s.Get(ctx, ports.KeyToken)
	require.NoError(t, err)
	assert.False(t, ok)
	_, ok, err = s.Get(ctx, ports.KeyUser)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCredentialStore_MissingSession(t *testing.T) {
	store := newIntegrationStore(t, time.Hour)

	_, ok, err := store.Open("nobody").Get(context.Background(), ports.KeyToken)
	require.NoError(t, err)
	assert.False(t, ok)

	n, err := store.col.CountDocuments(context.Background(), bson.M{"_id": "nobody"})
	require.NoError(t, err)
	assert.Zero(t, n, "a read must not create the session document")
}

func TestCredentialStore_GetBumpsUpdatedAt(t *testing.T) {
	ctx := context.Background()
	store := newIntegrationStore(t, time.Hour)
	s := store.Open("abc")
	require.NoError(t, s.Put(ctx, map[string]string{ports.KeyToken: "t1"}))
	written := updatedAt(t, store, "abc")

	time.Sleep(20 * time.Millisecond)
	_, ok, err := s.Get(ctx, ports.KeyToken)
	require.NoError(t, err)
	require.True(t, ok)

	assert.True(t, updatedAt(t, store, "abc").After(written))
}

func TestCredentialStore_EnsureIndexesSetsTTL(t *testing.T) {
	store := newIntegrationStore(t, 90*time.Minute)

	cur, err := store.col.Indexes().List(context.Background())
	require.NoError(t, err)
	var indexes []bson.M
	require.NoError(t, cur.All(context.Background(), &indexes))

	var expireAfter any
	for _, idx := range indexes {
		if keys, ok := idx["key"].(bson.M); ok {
			if _, ok := keys["updated_at"]; ok {
				expireAfter = idx["expireAfterSeconds"]
			}
		}
	}
	require.NotNil(t, expireAfter, "updated_at ttl index missing")
	assert.EqualValues(t, 5400, expireAfter)
}
