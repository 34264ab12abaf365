package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/devconnect/devconnect-backend/internal/dto"
	"github.com/devconnect/devconnect-backend/internal/models"
	"github.com/devconnect/devconnect-backend/internal/repository"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrProfileNotFound = errors.New("Profile not found.")
	ErrEntryNotFound   = errors.New("entry not found")
)

// ProfileService owns the profile document lifecycle: lazy creation on first
// submission, whole-document field overwrite on resubmission, and the ordered
// experience/education sub-collections.
type ProfileService struct {
	profiles repository.ProfileRepository
}

func NewProfileService(profiles repository.ProfileRepository) *ProfileService {
	return &ProfileService{profiles: profiles}
}

// Upsert creates the profile on first submission, otherwise overwrites every
// caller-editable field with the submitted set — an omitted field is cleared,
// never merged around. The sub-collections are left untouched. Re-running the
// same input yields the same document.
func (s *ProfileService) Upsert(ctx context.Context, userID uuid.UUID, req *dto.ProfileRequest) (*models.Profile, error) {
	profile, err := s.profiles.FindByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to load profile: %w", err)
		}
		fresh := models.Profile{ID: uuid.New(), UserID: userID}
		if err := applyFields(&fresh, req); err != nil {
			return nil, err
		}
		if err := s.profiles.Create(ctx, &fresh); err != nil {
			return nil, fmt.Errorf("failed to create profile: %w", err)
		}
		return s.profiles.FindByUserID(ctx, userID)
	}

	if err := applyFields(profile, req); err != nil {
		return nil, err
	}
	if err := s.profiles.Save(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return profile, nil
}

func applyFields(profile *models.Profile, req *dto.ProfileRequest) error {
	skills, err := json.Marshal(req.Skills)
	if err != nil {
		return err
	}
	social, err := json.Marshal(req.Social)
	if err != nil {
		return err
	}

	profile.Company = req.Company
	profile.Website = req.Website
	profile.Location = req.Location
	profile.Status = req.Status
	profile.Skills = datatypes.JSON(skills)
	profile.Bio = req.Bio
	profile.GithubUsername = req.GithubUsername
	profile.Social = datatypes.JSON(social)
	return nil
}

// Get returns the profile owned by userID with the owner preloaded.
func (s *ProfileService) Get(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	profile, err := s.profiles.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}

// GetAll returns every profile with owner name and avatar populated.
func (s *ProfileService) GetAll(ctx context.Context) ([]models.Profile, error) {
	return s.profiles.FindAll(ctx)
}

// AddExperience assigns the entry a fresh id and prepends it, keeping the
// sub-collection ordered most-recent-first. The profile must already exist.
func (s *ProfileService) AddExperience(ctx context.Context, userID uuid.UUID, req *dto.ExperienceRequest) (*models.Profile, error) {
	profile, err := s.loadForEdit(ctx, userID)
	if err != nil {
		return nil, err
	}

	entries, err := profile.ExperienceEntries()
	if err != nil {
		return nil, err
	}

	entry := models.Experience{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		From:        req.From,
		To:          req.To,
		Current:     req.Current,
		Description: req.Description,
	}
	entries = append([]models.Experience{entry}, entries...)

	if err := profile.SetExperienceEntries(entries); err != nil {
		return nil, err
	}
	if err := s.profiles.Save(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}
	return profile, nil
}

// RemoveExperience deletes the entry with the given id. An unknown id fails
// closed: the list is never mutated on a miss.
func (s *ProfileService) RemoveExperience(ctx context.Context, userID uuid.UUID, entryID string) (*models.Profile, error) {
	profile, err := s.loadForEdit(ctx, userID)
	if err != nil {
		return nil, err
	}

	entries, err := profile.ExperienceEntries()
	if err != nil {
		return nil, err
	}

	idx := -1
	for i, e := range entries {
		if e.ID == entryID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrEntryNotFound
	}
	entries = append(entries[:idx], entries[idx+1:]...)

	if err := profile.SetExperienceEntries(entries); err != nil {
		return nil, err
	}
	if err := s.profiles.Save(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}
	return profile, nil
}

// AddEducation mirrors AddExperience for the education sub-collection.
func (s *ProfileService) AddEducation(ctx context.Context, userID uuid.UUID, req *dto.EducationRequest) (*models.Profile, error) {
	profile, err := s.loadForEdit(ctx, userID)
	if err != nil {
		return nil, err
	}

	entries, err := profile.EducationEntries()
	if err != nil {
		return nil, err
	}

	entry := models.Education{
		ID:           uuid.NewString(),
		School:       req.School,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		From:         req.From,
		To:           req.To,
		Current:      req.Current,
		Description:  req.Description,
	}
	entries = append([]models.Education{entry}, entries...)

	if err := profile.SetEducationEntries(entries); err != nil {
		return nil, err
	}
	if err := s.profiles.Save(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}
	return profile, nil
}

func (s *ProfileService) RemoveEducation(ctx context.Context, userID uuid.UUID, entryID string) (*models.Profile, error) {
	profile, err := s.loadForEdit(ctx, userID)
	if err != nil {
		return nil, err
	}

	entries, err := profile.EducationEntries()
	if err != nil {
		return nil, err
	}

	idx := -1
	for i, e := range entries {
		if e.ID == entryID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrEntryNotFound
	}
	entries = append(entries[:idx], entries[idx+1:]...)

	if err := profile.SetEducationEntries(entries); err != nil {
		return nil, err
	}
	if err := s.profiles.Save(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}
	return profile, nil
}

// DeleteAccount removes the profile document and the user record together.
// Outstanding tokens for the account stay verifiable until they expire.
// The user's posts are not cascaded here yet.
func (s *ProfileService) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	return s.profiles.DeleteWithUser(ctx, userID)
}

func (s *ProfileService) loadForEdit(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	profile, err := s.profiles.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return profile, nil
}
