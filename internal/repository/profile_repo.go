package repository

import (
	"context"
	"strings"
	"time"

	"expertbridge/internal/domain"

	"gorm.io/gorm"
)

type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func toDomainProfile(m profileModel) *domain.Profile {
	return &domain.Profile{
		ID:           m.ID,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		FullName:     m.FullName,
		AvatarURL:    deref(m.AvatarURL),
		Bio:          deref(m.Bio),
		Role:         domain.UserRole(m.Role),
		Status:       domain.ProfileStatus(m.Status),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func toProfileModel(p *domain.Profile) profileModel {
	return profileModel{
		ID:           p.ID,
		Email:        strings.TrimSpace(strings.ToLower(p.Email)),
		PasswordHash: p.PasswordHash,
		FullName:     p.FullName,
		AvatarURL:    nullable(p.AvatarURL),
		Bio:          nullable(p.Bio),
		Role:         string(p.Role),
		Status:       string(p.Status),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// CreateAccount writes a profile together with exactly one of its
// sub-profiles in a single transaction. On any failure nothing is persisted.
func (r *ProfileRepository) CreateAccount(ctx context.Context, p *domain.Profile, expert *domain.ExpertProfile, seeker *domain.SeekerProfile) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if p.ID == "" {
			p.ID = newID()
		}
		pm := toProfileModel(p)
		if err := tx.Create(&pm).Error; err != nil {
			return err
		}

		if expert != nil {
			expert.ProfileID = pm.ID
			if expert.ID == "" {
				expert.ID = newID()
			}
			em := toExpertModel(expert)
			if err := tx.Create(&em).Error; err != nil {
				return err
			}
		}

		if seeker != nil {
			seeker.ProfileID = pm.ID
			if seeker.ID == "" {
				seeker.ID = newID()
			}
			sm := toSeekerModel(seeker)
			if err := tx.Create(&sm).Error; err != nil {
				return err
			}
		}

		*p = *toDomainProfile(pm)
		return nil
	})
}

func (r *ProfileRepository) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	var m profileModel
	tx := r.db.WithContext(ctx).Where("id = ?", id).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainProfile(m), nil
}

func (r *ProfileRepository) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	var m profileModel
	tx := r.db.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainProfile(m), nil
}

func (r *ProfileRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).
		Model(&profileModel{}).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		Count(&cnt)
	if tx.Error != nil {
		return false, tx.Error
	}
	return cnt > 0, nil
}

// GetByIDs returns the profiles keyed by id. Unknown ids are absent.
func (r *ProfileRepository) GetByIDs(ctx context.Context, ids []string) (map[string]*domain.Profile, error) {
	out := make(map[string]*domain.Profile, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var rows []profileModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, m := range rows {
		out[m.ID] = toDomainProfile(m)
	}
	return out, nil
}

// ListByRoleAndStatus orders by creation time, oldest first when ascending.
func (r *ProfileRepository) ListByRoleAndStatus(ctx context.Context, role domain.UserRole, status domain.ProfileStatus, ascending bool) ([]domain.Profile, error) {
	order := "created_at DESC"
	if ascending {
		order = "created_at ASC"
	}

	var rows []profileModel
	if err := r.db.WithContext(ctx).
		Where("role = ? AND status = ?", string(role), string(status)).
		Order(order).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Profile, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainProfile(m))
	}
	return out, nil
}

func (r *ProfileRepository) CountByRoleAndStatus(ctx context.Context, role domain.UserRole, status domain.ProfileStatus) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&profileModel{}).
		Where("role = ? AND status = ?", string(role), string(status)).
		Count(&cnt).Error
	return cnt, err
}

// UpdateStatusIf sets status=to only when the profile has the given role and
// is currently in status from. It returns ErrStatusConflict when the
// profile exists but the precondition failed, gorm.ErrRecordNotFound when
// the profile does not exist.
func (r *ProfileRepository) UpdateStatusIf(ctx context.Context, id string, role domain.UserRole, from, to domain.ProfileStatus) error {
	tx := r.db.WithContext(ctx).
		Model(&profileModel{}).
		Where("id = ? AND role = ? AND status = ?", id, string(role), string(from)).
		Updates(map[string]any{"status": string(to), "updated_at": time.Now().UTC()})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 1 {
		return nil
	}

	var cnt int64
	if err := r.db.WithContext(ctx).Model(&profileModel{}).Where("id = ? AND role = ?", id, string(role)).Count(&cnt).Error; err != nil {
		return err
	}
	if cnt == 0 {
		return gorm.ErrRecordNotFound
	}
	return ErrStatusConflict
}
