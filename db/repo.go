package db

import (
	"context"
	"errors"
	"strings"

	"memoflow/models"

	"gorm.io/gorm"
)

type Repo struct{ DB *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{DB: db} }

// Sentinel errors shared by the repo methods. Controllers translate these
// to HTTP statuses with errors.Is.
var (
	ErrEmailTaken        = errors.New("email already registered")
	ErrTeamNameTaken     = errors.New("team name already taken")
	ErrTagNameTaken      = errors.New("tag name already taken")
	ErrDuplicateInvite   = errors.New("a pending invitation already exists for this email")
	ErrAlreadyTeamMember = errors.New("user is already a team member")
	ErrLastOwner         = errors.New("a team must keep at least one owner")
)

func IsNotFound(err error) bool { return errors.Is(err, gorm.ErrRecordNotFound) }

// Users

func (r *Repo) CreateUser(ctx context.Context, u *models.User) error {
	err := r.DB.WithContext(ctx).Create(u).Error
	if err != nil && isUniqueViolation(err) {
		return ErrEmailTaken
	}
	return err
}

func (r *Repo) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := r.DB.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *Repo) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *Repo) UpdateUserProfile(ctx context.Context, id string, fields map[string]interface{}) error {
	return r.DB.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		Updates(fields).Error
}

// isUniqueViolation matches Postgres duplicate-key failures without pulling
// the pgx error types into every call site.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "duplicate key value")
}
