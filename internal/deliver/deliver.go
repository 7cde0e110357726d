// SPDX-License-Identifier: EPL-2.0

// Package deliver hands encoded files to their destination.
package deliver

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrInvalidName indicates a name that is empty or escapes its target.
	ErrInvalidName = errors.New("invalid object name")
	// ErrBucketNotFound indicates the configured bucket does not exist.
	ErrBucketNotFound = errors.New("bucket not found")
	// ErrAccessDenied indicates the store rejected the credentials.
	ErrAccessDenied = errors.New("access denied")
)

// Sink stores one encoded file and reports where it went.
type Sink interface {
	Deliver(ctx context.Context, name, contentType string, data []byte) (location string, err error)
}

func checkName(name string) error {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	return nil
}

// FileSink writes files into Dir.
type FileSink struct {
	Dir string
}

// Deliver writes data to Dir/name through a temporary file in the same
// directory, so readers never observe a partial file. Dir is created when
// missing. contentType is ignored.
func (s FileSink) Deliver(ctx context.Context, name, _ string, data []byte) (string, error) {
	if err := checkName(name); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w", err)
	}

	dir := s.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+name+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("writing %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("closing %s: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("chmod %s: %w", tmpName, err)
	}

	dst := filepath.Join(dir, name)
	if err := os.Rename(tmpName, dst); err != nil {
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("renaming to %s: %w", dst, err)
	}

	return dst, nil
}

var _ Sink = FileSink{}
