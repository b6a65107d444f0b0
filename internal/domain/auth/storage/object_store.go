package storage

import "context"

// ObjectStore durably persists an opaque binary payload and returns a
// retrievable URL. Implementations must honour the context deadline.
type ObjectStore interface {
	Upload(ctx context.Context, payload []byte, contentType string) (url string, err error)
}
