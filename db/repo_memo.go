package db

import (
	"context"
	"strings"
	"time"

	"memoflow/models"

	"gorm.io/gorm"
)

// Memos

// MemoQuery carries the list filters. Zero values are ignored.
type MemoQuery struct {
	Search    string
	TagIDs    []string
	StartDate *time.Time
	EndDate   *time.Time
	SortBy    string // title | createdAt | updatedAt
	SortOrder string // asc | desc
	Page      int
	Size      int
}

type ListMemosResult struct {
	Memos []models.Memo `json:"memos"`
	Total int64         `json:"total"`
}

// Normalize clamps page and size to sane values. Callers computing
// pagination from the query must normalize first so the effective size
// they divide by matches what the repo queried with.
func (q *MemoQuery) Normalize() {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.Size <= 0 || q.Size > 100 {
		q.Size = 10
	}
}

func (q *MemoQuery) orderClause() string {
	col := "updated_at"
	switch q.SortBy {
	case "title":
		col = "title"
	case "createdAt":
		col = "created_at"
	}
	dir := "DESC"
	if q.SortOrder == "asc" {
		dir = "ASC"
	}
	return col + " " + dir
}

func (r *Repo) ListMemos(ctx context.Context, userID string, q MemoQuery) (ListMemosResult, error) {
	q.Normalize()

	// 每个 finisher 用独立的查询，避免语句复用污染
	base := func() *gorm.DB {
		tx := r.DB.WithContext(ctx).Model(&models.Memo{}).Where("memos.user_id = ?", userID)
		if s := strings.TrimSpace(q.Search); s != "" {
			like := "%" + s + "%"
			tx = tx.Where("title LIKE ? OR content LIKE ?", like, like)
		}
		if q.StartDate != nil {
			tx = tx.Where("memos.created_at >= ?", *q.StartDate)
		}
		if q.EndDate != nil {
			tx = tx.Where("memos.created_at <= ?", *q.EndDate)
		}
		// 要求包含所有指定标签
		if len(q.TagIDs) > 0 {
			tx = tx.Joins("JOIN memo_tags mt ON mt.memo_id = memos.id").
				Where("mt.tag_id IN ?", q.TagIDs).
				Group("memos.id").
				Having("COUNT(DISTINCT mt.tag_id) = ?", len(q.TagIDs))
		}
		return tx
	}

	var total int64
	if len(q.TagIDs) > 0 {
		// grouped query: count the groups
		var ids []string
		if err := base().Pluck("memos.id", &ids).Error; err != nil {
			return ListMemosResult{}, err
		}
		total = int64(len(ids))
	} else if err := base().Count(&total).Error; err != nil {
		return ListMemosResult{}, err
	}

	var memos []models.Memo
	if err := base().
		Preload("Tags").
		Order(q.orderClause()).
		Offset((q.Page - 1) * q.Size).
		Limit(q.Size).
		Find(&memos).Error; err != nil {
		return ListMemosResult{}, err
	}
	return ListMemosResult{Memos: memos, Total: total}, nil
}

// CreateMemo writes the memo and its tag links in one transaction. Tags
// are restricted to the caller's own.
func (r *Repo) CreateMemo(ctx context.Context, m *models.Memo, tagIDs []string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(m).Error; err != nil {
			return err
		}
		return linkTags(tx, m, tagIDs)
	})
}

func (r *Repo) FindMemoByID(ctx context.Context, id string) (*models.Memo, error) {
	var m models.Memo
	if err := r.DB.WithContext(ctx).Preload("Tags").First(&m, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// UpdateMemo applies field updates and relinks tags atomically. A nil
// tagIDs slice leaves the links untouched.
func (r *Repo) UpdateMemo(ctx context.Context, id string, fields map[string]interface{}, tagIDs []string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m models.Memo
		if err := tx.First(&m, "id = ?", id).Error; err != nil {
			return err
		}
		if len(fields) > 0 {
			if err := tx.Model(&m).Updates(fields).Error; err != nil {
				return err
			}
		}
		if tagIDs == nil {
			return nil
		}
		if err := tx.Where("memo_id = ?", id).Delete(&models.MemoTag{}).Error; err != nil {
			return err
		}
		return linkTags(tx, &m, tagIDs)
	})
}

func (r *Repo) DeleteMemo(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("memo_id = ?", id).Delete(&models.MemoTag{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Memo{ID: id}).Error
	})
}

func linkTags(tx *gorm.DB, m *models.Memo, tagIDs []string) error {
	if len(tagIDs) == 0 {
		return nil
	}
	// 只能关联自己的标签
	var tags []models.Tag
	if err := tx.Where("id IN ? AND user_id = ?", tagIDs, m.UserID).Find(&tags).Error; err != nil {
		return err
	}
	links := make([]models.MemoTag, 0, len(tags))
	for _, t := range tags {
		links = append(links, models.MemoTag{MemoID: m.ID, TagID: t.ID})
	}
	if len(links) == 0 {
		return nil
	}
	return tx.Create(&links).Error
}

// Team memos

func (r *Repo) ListTeamMemos(ctx context.Context, teamID string, page, size int) (ListMemosResult, error) {
	if page <= 0 {
		page = 1
	}
	if size <= 0 || size > 100 {
		size = 20
	}
	base := func() *gorm.DB {
		return r.DB.WithContext(ctx).Model(&models.Memo{}).Where("team_id = ?", teamID)
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return ListMemosResult{}, err
	}
	var memos []models.Memo
	if err := base().
		Preload("Tags").
		Order("updated_at DESC").
		Offset((page - 1) * size).
		Limit(size).
		Find(&memos).Error; err != nil {
		return ListMemosResult{}, err
	}
	return ListMemosResult{Memos: memos, Total: total}, nil
}

func (r *Repo) SearchTeamMemos(ctx context.Context, teamID, query string, limit int) ([]models.Memo, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	like := "%" + strings.TrimSpace(query) + "%"
	var memos []models.Memo
	err := r.DB.WithContext(ctx).
		Where("team_id = ? AND (title LIKE ? OR content LIKE ?)", teamID, like, like).
		Order("updated_at DESC").
		Limit(limit).
		Find(&memos).Error
	return memos, err
}

type TeamMemoStats struct {
	MemoCount        int64 `json:"memoCount"`
	ContributorCount int64 `json:"contributorCount"`
	PublicCount      int64 `json:"publicCount"`
}

func (r *Repo) TeamMemoStats(ctx context.Context, teamID string) (TeamMemoStats, error) {
	var st TeamMemoStats
	base := func() *gorm.DB {
		return r.DB.WithContext(ctx).Model(&models.Memo{}).Where("team_id = ?", teamID)
	}
	if err := base().Count(&st.MemoCount).Error; err != nil {
		return st, err
	}
	if err := base().Distinct("user_id").Count(&st.ContributorCount).Error; err != nil {
		return st, err
	}
	err := base().Where("is_public = TRUE").Count(&st.PublicCount).Error
	return st, err
}

// ListUserMemosForSearch returns every memo of a user, trimmed to the
// columns the semantic ranker needs.
func (r *Repo) ListUserMemosForSearch(ctx context.Context, userID string) ([]models.Memo, error) {
	var memos []models.Memo
	err := r.DB.WithContext(ctx).
		Select("id", "title", "content", "updated_at").
		Where("user_id = ?", userID).
		Find(&memos).Error
	return memos, err
}
