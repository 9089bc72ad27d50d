// Package fs provides file-based object storage for assembled documents.
package fs

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/papergrade/papergrade"
)

// Ensure Store implements papergrade.ObjectStore at compile time.
var _ papergrade.ObjectStore = (*Store)(nil)

// Store writes objects to a directory and returns file:// URLs. It stands
// in for cloud object storage in local and test setups.
type Store struct {
	baseDir string
}

// NewStore creates a Store rooted at baseDir.
func NewStore(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

// Put writes the stream to baseDir/key and returns a file:// URL for it.
// Writes go through a temp file and a rename so a failed write never
// leaves a partial object behind.
func (s *Store) Put(ctx context.Context, key string, r io.Reader) (string, error) {
	if err := validateKey(key); err != nil {
		return "", err
	}

	fullPath := filepath.Join(s.baseDir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(filepath.Dir(fullPath), ".put-*")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}
	if err := os.Rename(tmp.Name(), fullPath); err != nil {
		return "", err
	}

	abs, err := filepath.Abs(fullPath)
	if err != nil {
		return "", err
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	return u.String(), nil
}

// ObjectKey derives a stable storage key for content: a short xxhash
// fingerprint keeps keys unique per content while the name keeps them
// readable.
func ObjectKey(name string, content []byte) string {
	h := xxhash.Sum64(content)
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	return fmt.Sprintf("%s-%x%s", sanitize(base), h, ext)
}

func validateKey(key string) error {
	if key == "" {
		return papergrade.Errorf(papergrade.EINVALID, "object key is required")
	}
	if strings.Contains(key, "..") || strings.HasPrefix(key, "/") {
		return papergrade.Errorf(papergrade.EINVALID, "invalid object key: %s", key)
	}
	return nil
}

// sanitize keeps keys filesystem-safe.
func sanitize(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	out := strings.Trim(b.String(), "-")
	if out == "" {
		return "object"
	}
	return out
}
