package ports

import "context"

// Keys of the two entries a credential store holds.
const (
	KeyToken = "token"
	KeyUser  = "user"
)

// CredentialStore is the durable key-value storage of one browser session.
//
// Put and Delete apply all given entries together: a reader never observes
// the token without the user or the other way round.
type CredentialStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Put(ctx context.Context, entries map[string]string) error
	Delete(ctx context.Context, keys ...string) error
}

// CredentialStoreFactory hands out stores scoped to a session id.
type CredentialStoreFactory interface {
	Open(sessionID string) CredentialStore
	Ping(ctx context.Context) error
}
