package session

import (
	"context"
	"os"
	"slices"
	"testing"
	"time"
)

func testStores(t *testing.T) map[string]Store {
	t.Helper()
	fs, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return map[string]Store{
		"memory": NewMemoryStore(),
		"file":   fs,
	}
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			defer store.Close()

			if sess, err := store.Get(ctx, "missing"); sess != nil || err != nil {
				t.Errorf("Get(missing) = %v, %v; want nil, nil", sess, err)
			}

			sess := New(time.Hour)
			sess.Push("ignis", "hex", "aer")
			sess.Toggle("lux")
			if err := store.Set(ctx, sess); err != nil {
				t.Fatal(err)
			}

			got, err := store.Get(ctx, sess.ID)
			if err != nil || got == nil {
				t.Fatalf("Get() = %v, %v", got, err)
			}
			if !slices.Equal(got.Path, sess.Path) || !slices.Equal(got.Preferred, []string{"lux"}) {
				t.Errorf("Get() = %+v, want %+v", got, sess)
			}

			got.Push("aqua")
			if again, _ := store.Get(ctx, sess.ID); len(again.Path) != 3 {
				t.Error("modifying a loaded session must not change the store")
			}

			if err := store.Delete(ctx, sess.ID); err != nil {
				t.Fatal(err)
			}
			if got, _ := store.Get(ctx, sess.ID); got != nil {
				t.Error("deleted session should be gone")
			}
			if err := store.Delete(ctx, sess.ID); err != nil {
				t.Errorf("Delete of missing session: %v", err)
			}
		})
	}
}

func TestStoreExpiry(t *testing.T) {
	ctx := context.Background()
	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			expired := New(time.Hour)
			expired.ExpiresAt = time.Now().Add(-time.Minute)
			forever := NewNamed(DefaultID, 0)
			for _, s := range []*Session{expired, forever} {
				if err := store.Set(ctx, s); err != nil {
					t.Fatal(err)
				}
			}

			if got, err := store.Get(ctx, expired.ID); got != nil || err != nil {
				t.Errorf("Get(expired) = %v, %v", got, err)
			}
			if err := store.Cleanup(ctx); err != nil {
				t.Fatal(err)
			}
			if got, _ := store.Get(ctx, DefaultID); got == nil {
				t.Error("session without expiry should survive cleanup")
			}
		})
	}
}

func TestMemoryStoreCleanup(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	expired := New(time.Hour)
	expired.ExpiresAt = time.Now().Add(-time.Second)
	store.Set(ctx, expired)
	store.Set(ctx, New(time.Hour))

	if err := store.Cleanup(ctx); err != nil {
		t.Fatal(err)
	}
	if store.Len() != 1 {
		t.Errorf("Len() = %d after cleanup, want 1", store.Len())
	}
}

func TestFileStoreNormalizes(t *testing.T) {
	ctx := context.Background()
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	data := `{"id": "hand", "preferred": ["lux", "aer", "lux"]}`
	if err := os.WriteFile(store.SessionPath("hand"), []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}
	sess, err := store.Get(ctx, "hand")
	if err != nil || sess == nil {
		t.Fatalf("Get() = %v, %v", sess, err)
	}
	if !slices.Equal(sess.Preferred, []string{"aer", "lux"}) || sess.Path == nil {
		t.Errorf("Get() = %+v", sess)
	}
}

func TestFileStoreCorrupt(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(store.SessionPath("bad"), []byte("{"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Get(context.Background(), "bad"); err == nil {
		t.Error("corrupt session file should be an error")
	}
}

func TestFileStoreLeavesNoTempFiles(t *testing.T) {
	ctx := context.Background()
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for range 3 {
		if err := store.Set(ctx, &Session{ID: "line", Path: []string{"ignis", "aer"}}); err != nil {
			t.Fatal(err)
		}
	}
	entries, err := os.ReadDir(store.Path())
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "line.json" {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("session dir = %v, want [line.json]", names)
	}
}
