package types

import "time"

// Profile is a user's public developer profile. Each user owns at most one.
// Experience and Education are ordered newest-first; new entries are
// prepended on insert.
type Profile struct {
	ID             int          `json:"id" db:"id"`
	UserID         int          `json:"user" db:"user_id"`
	Status         string       `json:"status" db:"status"`
	Company        string       `json:"company,omitempty" db:"company"`
	Website        string       `json:"website,omitempty" db:"website"`
	Location       string       `json:"location,omitempty" db:"location"`
	Bio            string       `json:"bio,omitempty" db:"bio"`
	GithubUsername string       `json:"githubusername,omitempty" db:"github_username"`
	Skills         []string     `json:"skills" db:"skills"`
	Social         Social       `json:"social" db:"social"`
	Experience     []Experience `json:"experience" db:"experience"`
	Education      []Education  `json:"education" db:"education"`
	CreatedAt      time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at" db:"updated_at"`
}

// Social holds the profile's optional social network links.
type Social struct {
	Youtube   string `json:"youtube,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	Linkedin  string `json:"linkedin,omitempty"`
	Instagram string `json:"instagram,omitempty"`
}

// Experience is one work-history entry in a profile.
// ID is assigned by the server on insert.
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

// Education is one study-history entry in a profile.
// ID is assigned by the server on insert.
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
