package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AdminRepository stores the approval allow-list.
type AdminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

func (r *AdminRepository) Exists(ctx context.Context, profileID string) (bool, error) {
	if profileID == "" {
		return false, nil
	}
	var cnt int64
	err := r.db.WithContext(ctx).Model(&adminModel{}).Where("id = ?", profileID).Count(&cnt).Error
	if err != nil {
		return false, err
	}
	return cnt > 0, nil
}

// Grant adds the profile to the allow-list; granting twice is a no-op.
func (r *AdminRepository) Grant(ctx context.Context, profileID string) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&adminModel{ID: profileID, CreatedAt: time.Now().UTC()}).Error
}
