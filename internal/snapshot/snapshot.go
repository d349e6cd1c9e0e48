// Package snapshot persists rendered schema descriptions so that two runs can later be
// compared. A target is either a local file path or an S3 URL of the form
// s3://bucket/prefix/key?region=us-east-1&endpoint=http://localhost:9000.
package snapshot

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Store writes one snapshot.
type Store interface {
	Save(ctx context.Context, data []byte) error
	// Location describes where Save writes, for logging.
	Location() string
}

// Open returns the Store for target.
func Open(ctx context.Context, target string) (Store, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		return nil, errors.New("snapshot: empty target")
	}
	if strings.HasPrefix(target, "s3://") {
		t, err := ParseS3URL(target)
		if err != nil {
			return nil, err
		}
		return NewS3Store(ctx, t)
	}
	return &FileStore{Path: target}, nil
}

// FileStore writes snapshots to a local file, creating parent directories as needed.
type FileStore struct {
	Path string
}

func (s *FileStore) Save(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if dir := filepath.Dir(s.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("snapshot: create directory %q: %w", dir, err)
		}
	}
	if err := os.WriteFile(s.Path, data, 0o644); err != nil {
		return fmt.Errorf("snapshot: write file %q: %w", s.Path, err)
	}
	return nil
}

func (s *FileStore) Location() string { return s.Path }
