package db

import (
	"context"

	"memoflow/models"
)

// Search logs

func (r *Repo) LogSearch(ctx context.Context, log *models.SearchLog) error {
	return r.DB.WithContext(ctx).Create(log).Error
}

type PopularSearch struct {
	Query string `json:"query"`
	Count int64  `json:"count"`
}

func (r *Repo) PopularSearches(ctx context.Context, userID string, limit int) ([]PopularSearch, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	var out []PopularSearch
	err := r.DB.WithContext(ctx).Model(&models.SearchLog{}).
		Select("query, COUNT(*) AS count").
		Where("user_id = ?", userID).
		Group("query").
		Order("count DESC").
		Limit(limit).
		Scan(&out).Error
	return out, err
}

// TitleSuggestions matches memo titles by prefix for autocomplete.
func (r *Repo) TitleSuggestions(ctx context.Context, userID, prefix string, limit int) ([]string, error) {
	if limit <= 0 || limit > 20 {
		limit = 5
	}
	var titles []string
	err := r.DB.WithContext(ctx).Model(&models.Memo{}).
		Where("user_id = ? AND title ILIKE ?", userID, prefix+"%").
		Order("updated_at DESC").
		Limit(limit).
		Pluck("title", &titles).Error
	return titles, err
}

func (r *Repo) TagSuggestions(ctx context.Context, userID, prefix string, limit int) ([]string, error) {
	if limit <= 0 || limit > 20 {
		limit = 5
	}
	var names []string
	err := r.DB.WithContext(ctx).Model(&models.Tag{}).
		Where("user_id = ? AND name ILIKE ?", userID, prefix+"%").
		Order("name ASC").
		Limit(limit).
		Pluck("name", &names).Error
	return names, err
}
