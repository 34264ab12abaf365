package services

import (
	"context"
	"testing"

	"github.com/devconnect/devconnect-backend/internal/dto"
	"github.com/devconnect/devconnect-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeProfileRepo is an in-memory repository.ProfileRepository. It hands out
// copies, like a real store, so services cannot mutate persisted state
// without going through Save.
type fakeProfileRepo struct {
	profiles     map[uuid.UUID]models.Profile
	saves        int
	deletedUsers []uuid.UUID
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[uuid.UUID]models.Profile)}
}

func (f *fakeProfileRepo) Create(_ context.Context, profile *models.Profile) error {
	if _, ok := f.profiles[profile.UserID]; ok {
		return gorm.ErrDuplicatedKey
	}
	f.profiles[profile.UserID] = *profile
	return nil
}

func (f *fakeProfileRepo) Save(_ context.Context, profile *models.Profile) error {
	f.saves++
	f.profiles[profile.UserID] = *profile
	return nil
}

func (f *fakeProfileRepo) FindByUserID(_ context.Context, userID uuid.UUID) (*models.Profile, error) {
	stored, ok := f.profiles[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := stored
	return &copied, nil
}

func (f *fakeProfileRepo) FindAll(_ context.Context) ([]models.Profile, error) {
	out := make([]models.Profile, 0, len(f.profiles))
	for _, p := range f.profiles {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeProfileRepo) DeleteWithUser(_ context.Context, userID uuid.UUID) error {
	delete(f.profiles, userID)
	f.deletedUsers = append(f.deletedUsers, userID)
	return nil
}

func profileReq(status string, skills ...string) *dto.ProfileRequest {
	return &dto.ProfileRequest{Status: status, Skills: skills}
}

func TestProfileUpsertCreatesLazily(t *testing.T) {
	repo := newFakeProfileRepo()
	svc := NewProfileService(repo)
	userID := uuid.New()

	req := profileReq("Dev", "go", "rust")
	req.Company = "Acme"

	profile, err := svc.Upsert(context.Background(), userID, req)
	require.NoError(t, err)
	assert.Equal(t, userID, profile.UserID)
	assert.Equal(t, "Dev", profile.Status)
	assert.Equal(t, "Acme", profile.Company)
	assert.JSONEq(t, `["go","rust"]`, string(profile.Skills))
}

func TestProfileUpsertIsIdempotent(t *testing.T) {
	repo := newFakeProfileRepo()
	svc := NewProfileService(repo)
	userID := uuid.New()

	first, err := svc.Upsert(context.Background(), userID, profileReq("Dev", "go"))
	require.NoError(t, err)

	second, err := svc.Upsert(context.Background(), userID, profileReq("Dev", "go"))
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.Status, second.Status)
	assert.Equal(t, string(first.Skills), string(second.Skills))
}

func TestProfileUpsertOverwritesNotMerges(t *testing.T) {
	repo := newFakeProfileRepo()
	svc := NewProfileService(repo)
	userID := uuid.New()

	req := profileReq("Dev", "go", "rust")
	req.Company = "Acme"
	req.Website = "https://a.example"
	_, err := svc.Upsert(context.Background(), userID, req)
	require.NoError(t, err)

	// Add an experience entry, then resubmit fields without company/website.
	_, err = svc.AddExperience(context.Background(), userID, &dto.ExperienceRequest{
		Title: "Eng", Company: "Acme", From: "2020",
	})
	require.NoError(t, err)

	updated, err := svc.Upsert(context.Background(), userID, profileReq("Lead", "go"))
	require.NoError(t, err)

	assert.Equal(t, "Lead", updated.Status)
	assert.Empty(t, updated.Company, "omitted field must be cleared")
	assert.Empty(t, updated.Website, "omitted field must be cleared")
	assert.JSONEq(t, `["go"]`, string(updated.Skills))

	// Sub-collections are not part of the upsert field set.
	entries, err := updated.ExperienceEntries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Eng", entries[0].Title)
}

func TestAddExperienceRequiresProfile(t *testing.T) {
	svc := NewProfileService(newFakeProfileRepo())

	_, err := svc.AddExperience(context.Background(), uuid.New(), &dto.ExperienceRequest{
		Title: "Eng", Company: "Acme", From: "2020",
	})
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestAddExperiencePrependsMostRecentFirst(t *testing.T) {
	repo := newFakeProfileRepo()
	svc := NewProfileService(repo)
	userID := uuid.New()

	_, err := svc.Upsert(context.Background(), userID, profileReq("Dev", "go"))
	require.NoError(t, err)

	_, err = svc.AddExperience(context.Background(), userID, &dto.ExperienceRequest{
		Title: "Eng", Company: "Acme", From: "2020",
	})
	require.NoError(t, err)

	profile, err := svc.AddExperience(context.Background(), userID, &dto.ExperienceRequest{
		Title: "Sr Eng", Company: "Acme", From: "2022",
	})
	require.NoError(t, err)

	entries, err := profile.ExperienceEntries()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Sr Eng", entries[0].Title)
	assert.Equal(t, "Eng", entries[1].Title)

	// Entry ids are assigned at creation and unique within the collection.
	assert.NotEmpty(t, entries[0].ID)
	assert.NotEmpty(t, entries[1].ID)
	assert.NotEqual(t, entries[0].ID, entries[1].ID)
}

func TestRemoveExperience(t *testing.T) {
	repo := newFakeProfileRepo()
	svc := NewProfileService(repo)
	userID := uuid.New()

	_, err := svc.Upsert(context.Background(), userID, profileReq("Dev", "go"))
	require.NoError(t, err)

	_, err = svc.AddExperience(context.Background(), userID, &dto.ExperienceRequest{
		Title: "Eng", Company: "Acme", From: "2020",
	})
	require.NoError(t, err)
	profile, err := svc.AddExperience(context.Background(), userID, &dto.ExperienceRequest{
		Title: "Sr Eng", Company: "Acme", From: "2022",
	})
	require.NoError(t, err)

	entries, err := profile.ExperienceEntries()
	require.NoError(t, err)
	require.Len(t, entries, 2)

	updated, err := svc.RemoveExperience(context.Background(), userID, entries[1].ID)
	require.NoError(t, err)

	remaining, err := updated.ExperienceEntries()
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "Sr Eng", remaining[0].Title)
}

func TestRemoveExperienceUnknownIDFailsClosed(t *testing.T) {
	repo := newFakeProfileRepo()
	svc := NewProfileService(repo)
	userID := uuid.New()

	_, err := svc.Upsert(context.Background(), userID, profileReq("Dev", "go"))
	require.NoError(t, err)
	_, err = svc.AddExperience(context.Background(), userID, &dto.ExperienceRequest{
		Title: "Eng", Company: "Acme", From: "2020",
	})
	require.NoError(t, err)

	savesBefore := repo.saves

	_, err = svc.RemoveExperience(context.Background(), userID, "no-such-entry")
	assert.ErrorIs(t, err, ErrEntryNotFound)
	assert.Equal(t, savesBefore, repo.saves, "a miss must not write")

	profile, err := svc.Get(context.Background(), userID)
	require.NoError(t, err)
	entries, err := profile.ExperienceEntries()
	require.NoError(t, err)
	require.Len(t, entries, 1, "a miss must not mutate the collection")
}

func TestEducationSubCollection(t *testing.T) {
	repo := newFakeProfileRepo()
	svc := NewProfileService(repo)
	userID := uuid.New()

	_, err := svc.Upsert(context.Background(), userID, profileReq("Dev", "go"))
	require.NoError(t, err)

	profile, err := svc.AddEducation(context.Background(), userID, &dto.EducationRequest{
		School: "MIT", Degree: "BSc", FieldOfStudy: "CS", From: "2016",
	})
	require.NoError(t, err)

	entries, err := profile.EducationEntries()
	require.NoError(t, err)
	require.Len(t, entries, 1)

	_, err = svc.RemoveEducation(context.Background(), userID, "missing")
	assert.ErrorIs(t, err, ErrEntryNotFound)

	updated, err := svc.RemoveEducation(context.Background(), userID, entries[0].ID)
	require.NoError(t, err)
	remaining, err := updated.EducationEntries()
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

func TestDeleteAccountRemovesProfileAndUser(t *testing.T) {
	repo := newFakeProfileRepo()
	svc := NewProfileService(repo)
	userID := uuid.New()

	_, err := svc.Upsert(context.Background(), userID, profileReq("Dev", "go"))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteAccount(context.Background(), userID))

	_, err = svc.Get(context.Background(), userID)
	assert.ErrorIs(t, err, ErrProfileNotFound)
	assert.Contains(t, repo.deletedUsers, userID)
}
