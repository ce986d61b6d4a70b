package logging

import (
	"io"
	"log"
	"os"
	"sync"
)

const defaultMaxSize = 2 * 1024 * 1024 // 2MB

// FileSink is a size-capped log file with a single rotated backup.
type FileSink struct {
	mu      sync.Mutex
	file    *os.File
	path    string
	size    int64
	maxSize int64
}

// Setup routes the standard logger to stdout plus a rotating file.
// Returns the sink so the caller can close it on shutdown.
func Setup(logPath string) (*FileSink, error) {
	if info, err := os.Stat(logPath); err == nil && info.Size() > defaultMaxSize {
		os.Truncate(logPath, 0)
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}

	var size int64
	if info, err := f.Stat(); err == nil {
		size = info.Size()
	}

	sink := &FileSink{
		file:    f,
		path:    logPath,
		size:    size,
		maxSize: defaultMaxSize,
	}

	log.SetOutput(io.MultiWriter(os.Stdout, sink))
	return sink, nil
}

func (s *FileSink) Write(p []byte) (n int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file == nil && !s.reopen() {
		// File sink unavailable, drop the write so stdout still logs.
		return len(p), nil
	}

	n, err = s.file.Write(p)
	s.size += int64(n)

	if s.size > s.maxSize {
		s.rotate()
	}

	return n, err
}

func (s *FileSink) rotate() {
	s.file.Close()
	s.file = nil
	s.size = 0
	os.Rename(s.path, s.path+".1")

	// On failure the nil file makes the next Write retry the open.
	s.reopen()
}

func (s *FileSink) reopen() bool {
	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return false
	}
	s.file = f
	return true
}

func (s *FileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.file == nil {
		return nil
	}
	return s.file.Close()
}
