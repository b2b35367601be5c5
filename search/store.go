// Package search keeps the per-user search history and saved searches in
// Redis, behind an explicit store type instead of ambient client state.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	maxHistory     = 20
	maxQueryLength = 100
	maxFavorites   = 20
)

type HistoryItem struct {
	Query       string    `json:"query"`
	ResultCount int       `json:"resultCount"`
	Count       int       `json:"count"`
	LastUsedAt  time.Time `json:"lastUsedAt"`
}

type Favorite struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Query     string    `json:"query"`
	CreatedAt time.Time `json:"createdAt"`
}

type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewStore(rdb *redis.Client, ttl time.Duration) *Store { return &Store{rdb: rdb, ttl: ttl} }

func historyKey(uid string) string  { return fmt.Sprintf("search:history:%s", uid) }
func favoriteKey(uid string) string { return fmt.Sprintf("search:favorites:%s", uid) }

// RecordSearch prepends the query to the user's history, folding repeats
// into a single entry with a bumped count. Over-long queries are dropped.
func (s *Store) RecordSearch(ctx context.Context, userID, query string, resultCount int) error {
	query = strings.TrimSpace(query)
	if query == "" || len(query) > maxQueryLength {
		return nil
	}
	items, err := s.History(ctx, userID)
	if err != nil {
		return err
	}
	updated := []HistoryItem{{
		Query:       query,
		ResultCount: resultCount,
		Count:       1,
		LastUsedAt:  time.Now().UTC(),
	}}
	for _, it := range items {
		if it.Query == query {
			updated[0].Count += it.Count
			continue
		}
		updated = append(updated, it)
	}
	if len(updated) > maxHistory {
		updated = updated[:maxHistory]
	}
	return s.save(ctx, historyKey(userID), updated)
}

func (s *Store) History(ctx context.Context, userID string) ([]HistoryItem, error) {
	var items []HistoryItem
	if err := s.load(ctx, historyKey(userID), &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Suggest returns history queries with the given prefix, most recent first.
func (s *Store) Suggest(ctx context.Context, userID, prefix string, limit int) ([]string, error) {
	items, err := s.History(ctx, userID)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 5
	}
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	var out []string
	for _, it := range items {
		if strings.HasPrefix(strings.ToLower(it.Query), prefix) {
			out = append(out, it.Query)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (s *Store) ClearHistory(ctx context.Context, userID string) error {
	return s.rdb.Del(ctx, historyKey(userID)).Err()
}

func (s *Store) AddFavorite(ctx context.Context, userID, name, query string) (*Favorite, error) {
	favs, err := s.Favorites(ctx, userID)
	if err != nil {
		return nil, err
	}
	fav := Favorite{
		ID:        uuid.NewString(),
		Name:      name,
		Query:     query,
		CreatedAt: time.Now().UTC(),
	}
	favs = append([]Favorite{fav}, favs...)
	if len(favs) > maxFavorites {
		favs = favs[:maxFavorites]
	}
	if err := s.save(ctx, favoriteKey(userID), favs); err != nil {
		return nil, err
	}
	return &fav, nil
}

func (s *Store) Favorites(ctx context.Context, userID string) ([]Favorite, error) {
	var favs []Favorite
	if err := s.load(ctx, favoriteKey(userID), &favs); err != nil {
		return nil, err
	}
	return favs, nil
}

func (s *Store) RemoveFavorite(ctx context.Context, userID, id string) error {
	favs, err := s.Favorites(ctx, userID)
	if err != nil {
		return err
	}
	kept := favs[:0]
	for _, f := range favs {
		if f.ID != id {
			kept = append(kept, f)
		}
	}
	return s.save(ctx, favoriteKey(userID), kept)
}

func (s *Store) save(ctx context.Context, key string, v interface{}) error {
	b, _ := json.Marshal(v)
	return s.rdb.Set(ctx, key, b, s.ttl).Err()
}

func (s *Store) load(ctx context.Context, key string, v interface{}) error {
	b, err := s.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}
