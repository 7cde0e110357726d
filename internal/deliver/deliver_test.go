// SPDX-License-Identifier: EPL-2.0

package deliver

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFileSink_Deliver(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "nested", "out")
	sink := FileSink{Dir: dir}
	data := []byte("RIFF....WAVEfmt ")

	loc, err := sink.Deliver(context.Background(), "take.wav", "audio/wav", data)
	if err != nil {
		t.Fatalf("Deliver() error = %v", err)
	}

	want := filepath.Join(dir, "take.wav")
	if loc != want {
		t.Errorf("location = %q, want %q", loc, want)
	}

	got, err := os.ReadFile(want)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("file content = %q, want %q", got, data)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("directory holds %d entries, want only the delivered file", len(entries))
	}
}

func TestFileSink_Overwrites(t *testing.T) {
	t.Parallel()

	sink := FileSink{Dir: t.TempDir()}
	ctx := context.Background()

	for _, content := range []string{"first version", "second"} {
		if _, err := sink.Deliver(ctx, "a.wav", "audio/wav", []byte(content)); err != nil {
			t.Fatalf("Deliver() error = %v", err)
		}
	}

	got, err := os.ReadFile(filepath.Join(sink.Dir, "a.wav"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(got) != "second" {
		t.Errorf("file content = %q, want second", got)
	}
}

func TestFileSink_InvalidName(t *testing.T) {
	t.Parallel()

	sink := FileSink{Dir: t.TempDir()}

	for _, name := range []string{"", ".", "..", "../escape.wav", "sub/dir.wav", `win\path.wav`} {
		_, err := sink.Deliver(context.Background(), name, "audio/wav", nil)
		if !errors.Is(err, ErrInvalidName) {
			t.Errorf("Deliver(%q) error = %v, want ErrInvalidName", name, err)
		}
	}
}

func TestFileSink_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sink := FileSink{Dir: t.TempDir()}
	_, err := sink.Deliver(ctx, "a.wav", "audio/wav", []byte("x"))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Deliver() error = %v, want context.Canceled", err)
	}

	if _, err := os.Stat(filepath.Join(sink.Dir, "a.wav")); !os.IsNotExist(err) {
		t.Error("file was written despite canceled context")
	}
}
