package db

import (
	"context"

	"memoflow/models"
)

// Tags

func (r *Repo) CreateTag(ctx context.Context, t *models.Tag) error {
	var n int64
	if err := r.DB.WithContext(ctx).Model(&models.Tag{}).
		Where("user_id = ? AND name = ?", t.UserID, t.Name).
		Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return ErrTagNameTaken
	}
	err := r.DB.WithContext(ctx).Create(t).Error
	if err != nil && isUniqueViolation(err) {
		return ErrTagNameTaken
	}
	return err
}

func (r *Repo) FindTagByID(ctx context.Context, id string) (*models.Tag, error) {
	var t models.Tag
	if err := r.DB.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *Repo) ListTags(ctx context.Context, userID string) ([]models.Tag, error) {
	var tags []models.Tag
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name ASC").
		Find(&tags).Error
	return tags, err
}

func (r *Repo) UpdateTag(ctx context.Context, id string, fields map[string]interface{}) error {
	err := r.DB.WithContext(ctx).Model(&models.Tag{}).
		Where("id = ?", id).Updates(fields).Error
	if err != nil && isUniqueViolation(err) {
		return ErrTagNameTaken
	}
	return err
}

func (r *Repo) DeleteTag(ctx context.Context, id string) error {
	// 先删关联再删标签
	if err := r.DB.WithContext(ctx).Where("tag_id = ?", id).Delete(&models.MemoTag{}).Error; err != nil {
		return err
	}
	return r.DB.WithContext(ctx).Delete(&models.Tag{ID: id}).Error
}

func (r *Repo) ListTagMemos(ctx context.Context, tagID, userID string) ([]models.Memo, error) {
	var memos []models.Memo
	err := r.DB.WithContext(ctx).
		Joins("JOIN memo_tags mt ON mt.memo_id = memos.id AND mt.tag_id = ?", tagID).
		Where("memos.user_id = ?", userID).
		Order("memos.updated_at DESC").
		Preload("Tags").
		Find(&memos).Error
	return memos, err
}
