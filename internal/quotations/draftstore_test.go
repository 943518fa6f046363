package quotations

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

type stubKV struct {
	values  map[string]string
	ttls    map[string]time.Duration
	deleted []string
}

func newStubKV() *stubKV {
	return &stubKV{values: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (s *stubKV) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	s.values[key] = string(value.([]byte))
	s.ttls[key] = ttl
	return nil
}

func (s *stubKV) Get(_ context.Context, key string) (string, error) {
	if v, ok := s.values[key]; ok {
		return v, nil
	}
	return "", redis.Nil
}

func (s *stubKV) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(s.values, key)
		s.deleted = append(s.deleted, key)
	}
	return nil
}

func (s *stubKV) DraftKey(username string) string {
	return "qtn:draft:" + username
}

func TestDraftStoreRoundTrip(t *testing.T) {
	kv := newStubKV()
	store := &DraftStore{kv: kv, ttl: 24 * time.Hour}
	ctx := context.Background()

	if err := store.Save(ctx, "staff1", completeSnapshot()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if kv.ttls["qtn:draft:staff1"] != 24*time.Hour {
		t.Fatalf("unexpected ttl %s", kv.ttls["qtn:draft:staff1"])
	}

	loaded, err := store.Load(ctx, "staff1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded == nil || loaded.Customer != "ACME Traders" || len(loaded.Items) != 2 {
		t.Fatalf("round trip lost data: %+v", loaded)
	}
	if loaded.Step != StepFinalize {
		t.Fatalf("unexpected step %s", loaded.Step)
	}
}

func TestDraftStoreLoadMissing(t *testing.T) {
	store := &DraftStore{kv: newStubKV(), ttl: time.Hour}

	loaded, err := store.Load(context.Background(), "ghost")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded != nil {
		t.Fatalf("expected nil for missing draft, got %+v", loaded)
	}
}

func TestDraftStoreCorruptSnapshotDropped(t *testing.T) {
	kv := newStubKV()
	kv.values["qtn:draft:staff1"] = "{not json"
	store := &DraftStore{kv: kv, ttl: time.Hour}

	loaded, err := store.Load(context.Background(), "staff1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded != nil {
		t.Fatal("corrupt snapshot must be treated as absent")
	}
	if len(kv.deleted) != 1 {
		t.Fatal("corrupt snapshot must be deleted")
	}
}

func TestDraftStoreDelete(t *testing.T) {
	kv := newStubKV()
	store := &DraftStore{kv: kv, ttl: time.Hour}
	ctx := context.Background()

	if err := store.Save(ctx, "staff1", completeSnapshot()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Delete(ctx, "staff1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok := kv.values["qtn:draft:staff1"]; ok {
		t.Fatal("delete must remove the snapshot")
	}
}
