package mock

import (
	"context"
	"io"

	"github.com/papergrade/papergrade"
)

var _ papergrade.ObjectStore = (*ObjectStore)(nil)

// ObjectStore is a mock implementation of papergrade.ObjectStore.
type ObjectStore struct {
	PutFn func(ctx context.Context, key string, r io.Reader) (string, error)
}

func (s *ObjectStore) Put(ctx context.Context, key string, r io.Reader) (string, error) {
	return s.PutFn(ctx, key, r)
}
