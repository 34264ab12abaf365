package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Profile is the professional profile document owned by exactly one user.
// Skills, social links and the two ordered sub-collections are stored as
// jsonb columns, keeping the original document shape within one row.
type Profile struct {
	ID             uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID         uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"user"`
	Company        string         `gorm:"size:255" json:"company,omitempty"`
	Website        string         `gorm:"size:255" json:"website,omitempty"`
	Location       string         `gorm:"size:255" json:"location,omitempty"`
	Status         string         `gorm:"size:255;not null" json:"status"`
	Skills         datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"skills"`
	Bio            string         `gorm:"type:text" json:"bio,omitempty"`
	GithubUsername string         `gorm:"size:255" json:"githubusername,omitempty"`
	Social         datatypes.JSON `gorm:"type:jsonb;default:'{}'" json:"social"`
	Experience     datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"experience"`
	Education      datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"education"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	User           User           `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// Experience is one entry in the profile's experience sub-collection.
// IDs are assigned at entry creation and unique within the collection only.
type Experience struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location,omitempty"`
	From        string `json:"from"`
	To          string `json:"to,omitempty"`
	Current     bool   `json:"current"`
	Description string `json:"description,omitempty"`
}

// Education is one entry in the profile's education sub-collection.
type Education struct {
	ID           string `json:"id"`
	School       string `json:"school"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"fieldofstudy"`
	From         string `json:"from"`
	To           string `json:"to,omitempty"`
	Current      bool   `json:"current"`
	Description  string `json:"description,omitempty"`
}

// SocialLinks mirrors the optional social block of the profile document.
type SocialLinks struct {
	Youtube   string `json:"youtube,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	Linkedin  string `json:"linkedin,omitempty"`
	Instagram string `json:"instagram,omitempty"`
}

func (p *Profile) ExperienceEntries() ([]Experience, error) {
	return decodeEntries[Experience](p.Experience)
}

func (p *Profile) SetExperienceEntries(entries []Experience) error {
	raw, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	p.Experience = datatypes.JSON(raw)
	return nil
}

func (p *Profile) EducationEntries() ([]Education, error) {
	return decodeEntries[Education](p.Education)
}

func (p *Profile) SetEducationEntries(entries []Education) error {
	raw, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	p.Education = datatypes.JSON(raw)
	return nil
}

func decodeEntries[T any](raw datatypes.JSON) ([]T, error) {
	if len(raw) == 0 {
		return []T{}, nil
	}
	var entries []T
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []T{}
	}
	return entries, nil
}

// ProfileOwner is the populated owner block attached to profile reads.
type ProfileOwner struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Avatar string    `json:"avatar"`
}

// ProfileView is the safe serialization of a profile — the owner is reduced
// to name and avatar, never the full user record.
type ProfileView struct {
	ID             uuid.UUID      `json:"id"`
	User           ProfileOwner   `json:"user"`
	Company        string         `json:"company,omitempty"`
	Website        string         `json:"website,omitempty"`
	Location       string         `json:"location,omitempty"`
	Status         string         `json:"status"`
	Skills         datatypes.JSON `json:"skills"`
	Bio            string         `json:"bio,omitempty"`
	GithubUsername string         `json:"githubusername,omitempty"`
	Social         datatypes.JSON `json:"social"`
	Experience     datatypes.JSON `json:"experience"`
	Education      datatypes.JSON `json:"education"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

func (p *Profile) ToView() ProfileView {
	return ProfileView{
		ID: p.ID,
		User: ProfileOwner{
			ID:     p.UserID,
			Name:   p.User.Name,
			Avatar: p.User.Avatar,
		},
		Company:        p.Company,
		Website:        p.Website,
		Location:       p.Location,
		Status:         p.Status,
		Skills:         p.Skills,
		Bio:            p.Bio,
		GithubUsername: p.GithubUsername,
		Social:         p.Social,
		Experience:     p.Experience,
		Education:      p.Education,
		UpdatedAt:      p.UpdatedAt,
	}
}
