package storage

import "context"

// KV is a blob store addressed by key. Get returns nil, nil for an absent key.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, payload []byte) error
}
