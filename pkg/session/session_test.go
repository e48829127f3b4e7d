package session

import (
	"context"
	"slices"
	"testing"
	"time"

	apperrors "github.com/matzehuels/aspectpath/pkg/errors"
)

func TestNew(t *testing.T) {
	a, b := New(time.Hour), New(time.Hour)
	if a.ID == "" || a.ID == b.ID {
		t.Errorf("New() ids %q and %q should be unique", a.ID, b.ID)
	}
	if a.IsExpired() {
		t.Error("new session should not be expired")
	}
	if ttl := a.TTL(); ttl <= 0 || ttl > time.Hour {
		t.Errorf("TTL() = %v", ttl)
	}

	forever := NewNamed(DefaultID, 0)
	if !forever.ExpiresAt.IsZero() || forever.IsExpired() || forever.TTL() != 0 {
		t.Errorf("session without ttl: expires %v", forever.ExpiresAt)
	}
}

func TestSessionPath(t *testing.T) {
	s := NewNamed("t", 0)
	s.Push("ignis", "hex", "aer")
	s.Push("aqua")
	if !slices.Equal(s.Path, []string{"ignis", "hex", "aer", "aqua"}) {
		t.Fatalf("Path = %v", s.Path)
	}

	if err := s.RemoveAt(1); err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(s.Path, []string{"ignis", "aer", "aqua"}) {
		t.Errorf("after RemoveAt(1) Path = %v", s.Path)
	}
	for _, i := range []int{-1, 3} {
		if err := s.RemoveAt(i); !apperrors.Is(err, apperrors.ErrCodeInvalidInput) {
			t.Errorf("RemoveAt(%d) error = %v", i, err)
		}
	}

	if !s.Pop() || len(s.Path) != 2 {
		t.Errorf("Pop() left %v", s.Path)
	}
	s.Clear()
	if len(s.Path) != 0 || s.Pop() {
		t.Errorf("Clear() left %v", s.Path)
	}

	in := []string{"a", "b"}
	s.SetPath(in)
	in[0] = "changed"
	if s.Path[0] != "a" {
		t.Error("SetPath should copy its argument")
	}
}

func TestSessionPreferred(t *testing.T) {
	s := NewNamed("t", 0)
	if !s.Toggle("lux") || !s.Toggle("aer") {
		t.Fatal("Toggle of new aspect should report preferred")
	}
	s.Prefer("lux")
	if !slices.Equal(s.Preferred, []string{"aer", "lux"}) {
		t.Errorf("Preferred = %v, want sorted without duplicates", s.Preferred)
	}
	if s.Toggle("aer") {
		t.Error("Toggle of preferred aspect should report not preferred")
	}
	if !s.Preferences().Contains("lux") || s.Preferences().Contains("aer") {
		t.Errorf("Preferences() = %v", s.Preferences().Sorted())
	}
	s.Unprefer("lux")
	s.Unprefer("missing")
	if len(s.Preferred) != 0 {
		t.Errorf("Preferred = %v", s.Preferred)
	}
	s.Prefer("ordo")
	s.ClearPreferred()
	if len(s.Preferred) != 0 {
		t.Errorf("ClearPreferred left %v", s.Preferred)
	}
}

func TestLoad(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	sess, err := Load(ctx, store, "work", 0)
	if err != nil || sess.ID != "work" || len(sess.Path) != 0 {
		t.Fatalf("Load() = %+v, %v", sess, err)
	}
	sess.Push("ignis")
	if err := store.Set(ctx, sess); err != nil {
		t.Fatal(err)
	}
	again, err := Load(ctx, store, "work", 0)
	if err != nil || !slices.Equal(again.Path, []string{"ignis"}) {
		t.Errorf("Load() after Set = %+v, %v", again, err)
	}

	if _, err := Load(ctx, store, "../etc", 0); !apperrors.Is(err, apperrors.ErrCodeInvalidInput) {
		t.Errorf("Load(../etc) error = %v", err)
	}
	if _, err := MustExist(ctx, store, "other"); !apperrors.Is(err, apperrors.ErrCodeSessionNotFound) {
		t.Errorf("MustExist(other) error = %v", err)
	}
	if _, err := MustExist(ctx, store, "work"); err != nil {
		t.Errorf("MustExist(work) error = %v", err)
	}
}
