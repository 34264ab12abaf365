package dto

// ProfileRequest is the full set of caller-editable profile fields. Upsert
// overwrites the whole set: a field omitted here clears the stored value.
// The experience/education sub-collections are edited through their own
// endpoints and are never touched by an upsert.
type ProfileRequest struct {
	Company        string   `json:"company"`
	Website        string   `json:"website"`
	Location       string   `json:"location"`
	Status         string   `json:"status" validate:"required"`
	Skills         []string `json:"skills" validate:"required,min=1,max=10,dive,required"`
	Bio            string   `json:"bio"`
	GithubUsername string   `json:"githubusername"`
	Social         Social   `json:"social"`
}

type Social struct {
	Youtube   string `json:"youtube,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	Linkedin  string `json:"linkedin,omitempty"`
	Instagram string `json:"instagram,omitempty"`
}

type ExperienceRequest struct {
	Title       string `json:"title" validate:"required"`
	Company     string `json:"company" validate:"required"`
	Location    string `json:"location"`
	From        string `json:"from" validate:"required"`
	To          string `json:"to"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

type EducationRequest struct {
	School       string `json:"school" validate:"required"`
	Degree       string `json:"degree" validate:"required"`
	FieldOfStudy string `json:"fieldofstudy" validate:"required"`
	From         string `json:"from" validate:"required"`
	To           string `json:"to"`
	Current      bool   `json:"current"`
	Description  string `json:"description"`
}
