package repository

import (
	"context"

	"github.com/devconnect/devconnect-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProfileRepository handles the per-user profile documents. Reads preload the
// owning user so responses can carry the owner's name and avatar.
type ProfileRepository interface {
	Create(ctx context.Context, profile *models.Profile) error
	Save(ctx context.Context, profile *models.Profile) error
	FindByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
	FindAll(ctx context.Context) ([]models.Profile, error)
	DeleteWithUser(ctx context.Context, userID uuid.UUID) error
}

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Create(ctx context.Context, profile *models.Profile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

func (r *profileRepository) Save(ctx context.Context, profile *models.Profile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}

func (r *profileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.WithContext(ctx).Preload("User").Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) FindAll(ctx context.Context) ([]models.Profile, error) {
	var profiles []models.Profile
	if err := r.db.WithContext(ctx).Preload("User").Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

// DeleteWithUser removes the profile document and the owning user record in
// one transaction. The profile goes first; a user without a profile is a
// valid state, the reverse is not.
func (r *profileRepository) DeleteWithUser(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.Profile{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, "id = ?", userID).Error
	})
}
