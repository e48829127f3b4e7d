package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const sessionExt = ".json"

// FileStore keeps one JSON document per session in a directory. Writes go
// through a temporary file and a rename, so a crash never leaves a
// half-written session behind.
type FileStore struct {
	mu  sync.RWMutex
	dir string
}

// NewFileStore opens (and creates) dir. An empty dir selects [DefaultDir].
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		d, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create session dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// DefaultDir returns ~/.config/aspectpath/sessions.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".config", "aspectpath", "sessions"), nil
}

// readSession decodes the session stored at path. A missing file yields
// (nil, nil).
func readSession(path string) (*Session, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("parse session %s: %w", filepath.Base(path), err)
	}
	return &sess, nil
}

func (s *FileStore) Get(_ context.Context, id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	path := s.SessionPath(id)
	sess, err := readSession(path)
	if err != nil || sess == nil {
		return nil, err
	}
	if sess.IsExpired() {
		_ = os.Remove(path)
		return nil, nil
	}
	sess.normalize()
	return sess, nil
}

func (s *FileStore) Set(_ context.Context, sess *Session) error {
	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(s.dir, sess.ID+".*.tmp")
	if err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write session: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.SessionPath(sess.ID)); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

func (s *FileStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.SessionPath(id)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// Cleanup removes expired sessions. Unreadable files are left alone.
func (s *FileStore) Cleanup(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return fmt.Errorf("list sessions: %w", err)
	}
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		if e.IsDir() || !strings.HasSuffix(e.Name(), sessionExt) {
			continue
		}
		path := filepath.Join(s.dir, e.Name())
		if sess, err := readSession(path); err == nil && sess != nil && sess.IsExpired() {
			_ = os.Remove(path)
		}
	}
	return nil
}

func (s *FileStore) Close() error { return nil }

// Path returns the session directory.
func (s *FileStore) Path() string { return s.dir }

// SessionPath returns the file holding the session with the given ID.
func (s *FileStore) SessionPath(id string) string {
	return filepath.Join(s.dir, id+sessionExt)
}

var _ Store = (*FileStore)(nil)
