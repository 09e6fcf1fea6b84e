package store_test

import (
	"context"
	"testing"

	"github.com/carbonclash/go-server/internal/game"
	"github.com/carbonclash/go-server/internal/store"
)

func TestSaveAndGet(t *testing.T) {
	st := store.NewMemoryStore()
	ctx := context.Background()

	sess := &store.Session{ID: "abc", State: game.New(nil)}
	if err := st.Save(ctx, sess); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := st.Get(ctx, "abc")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ID != "abc" || got.State.Status != game.StatusOngoing {
		t.Fatalf("got %+v", got)
	}
}

func TestGetMissing(t *testing.T) {
	st := store.NewMemoryStore()
	if _, err := st.Get(context.Background(), "nope"); err == nil {
		t.Fatal("expected error for missing session")
	}
}
