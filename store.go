package papergrade

import (
	"context"
	"io"
)

// ObjectStore persists produced artifacts (assembled PDFs, downloaded
// whitepapers) under a key and returns a URL the artifact can be retrieved
// from.
type ObjectStore interface {
	Put(ctx context.Context, key string, r io.Reader) (url string, err error)
}
