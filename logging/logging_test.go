package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRotateKeepsBackupAndResets(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.log")

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	s := &FileSink{file: f, path: path, maxSize: 64}

	if _, err := s.Write(bytes.Repeat([]byte("x"), 100)); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, err := os.Stat(path + ".1"); err != nil {
		t.Fatalf("expected rotated backup: %v", err)
	}
	if s.size != 0 {
		t.Fatalf("expected size reset after rotation, got %d", s.size)
	}
}

func TestWriteRecoversAfterFailedReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.log")

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	s := &FileSink{file: f, path: path, maxSize: 64}

	// A missing parent directory makes the post-rotation reopen fail.
	s.path = filepath.Join(dir, "missing", "app.log")
	if _, err := s.Write(bytes.Repeat([]byte("x"), 100)); err != nil {
		t.Fatalf("write triggering rotation: %v", err)
	}
	if s.file != nil {
		t.Fatal("expected no open file after failed reopen")
	}

	// With the sink down, writes are dropped without error.
	if n, err := s.Write([]byte("dropped")); err != nil || n != len("dropped") {
		t.Fatalf("degraded write: n=%d err=%v", n, err)
	}

	// Once the path is usable again the next write reopens the file.
	s.path = path
	if _, err := s.Write([]byte("recovered")); err != nil {
		t.Fatalf("write after recovery: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "recovered") {
		t.Fatalf("log file missing post-recovery write, got %q", data)
	}
}
