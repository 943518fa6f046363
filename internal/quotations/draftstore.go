package quotations

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/enginequip/quotation-backend/pkg/config"
	redisclient "github.com/enginequip/quotation-backend/pkg/redis"
)

type draftKV interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	DraftKey(username string) string
}

// DraftStore retains one draft snapshot per user in redis, TTL-bound, so
// an editing session survives a page reload.
type DraftStore struct {
	kv  draftKV
	ttl time.Duration
}

// NewDraftStore builds a store over the redis client.
func NewDraftStore(client *redisclient.Client, cfg config.DraftConfig) (*DraftStore, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	if cfg.TTL <= 0 {
		return nil, fmt.Errorf("draft ttl must be positive")
	}
	return &DraftStore{kv: client, ttl: cfg.TTL}, nil
}

// Save overwrites the user's retained draft and refreshes its TTL.
func (s *DraftStore) Save(ctx context.Context, username string, snapshot Snapshot) error {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("encoding draft snapshot: %w", err)
	}
	return s.kv.Set(ctx, s.kv.DraftKey(username), payload, s.ttl)
}

// Load returns the user's retained draft, or nil when none exists.
func (s *DraftStore) Load(ctx context.Context, username string) (*Snapshot, error) {
	raw, err := s.kv.Get(ctx, s.kv.DraftKey(username))
	if err != nil {
		if redisclient.IsNil(err) {
			return nil, nil
		}
		return nil, err
	}

	var snapshot Snapshot
	if err := json.Unmarshal([]byte(raw), &snapshot); err != nil {
		// a corrupt snapshot is dropped rather than blocking the session
		_ = s.kv.Del(ctx, s.kv.DraftKey(username))
		return nil, nil
	}
	return &snapshot, nil
}

// Delete discards the user's retained draft.
func (s *DraftStore) Delete(ctx context.Context, username string) error {
	return s.kv.Del(ctx, s.kv.DraftKey(username))
}
