package model

import (
	"strings"
	"time"
)

// Personal detail keys the renderer understands. Any other keys are stored untouched.
const (
	DetailFullName = "full_name"
	DetailEmail    = "email"
	DetailPhone    = "phone"
	DetailLocation = "location"
)

// Structured field names as they appear in stored records and JSON payloads.
const (
	FieldPersonalDetails = "personal_details"
	FieldEducation       = "education"
	FieldExperience      = "experience"
	FieldSkills          = "skills"
)

// PersonalDetails is an open string map; missing keys are treated as absent.
type PersonalDetails map[string]string

// Get returns the trimmed value for key.
func (p PersonalDetails) Get(key string) string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(p[key])
}

// Education is one entry of the education list.
type Education struct {
	Institution  string  `json:"institution"`
	Degree       string  `json:"degree"`
	FieldOfStudy string  `json:"field_of_study"`
	StartDate    string  `json:"start_date"`
	EndDate      *string `json:"end_date"`
	Grade        *string `json:"grade"`
}

// Experience is one entry of the experience list.
type Experience struct {
	Company     string  `json:"company"`
	Position    string  `json:"position"`
	StartDate   string  `json:"start_date"`
	EndDate     *string `json:"end_date"`
	Description string  `json:"description"`
	Location    *string `json:"location"`
}

// Resume is a stored resume record owned by a single user.
type Resume struct {
	ID              string          `json:"id"`
	UserID          string          `json:"user_id"`
	Title           string          `json:"title"`
	PersonalDetails PersonalDetails `json:"personal_details"`
	Education       []Education     `json:"education"`
	Experience      []Experience    `json:"experience"`
	Skills          []string        `json:"skills"`
	Summary         *string         `json:"summary"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`

	// Undecoded holds the raw stored text of structured fields that could not be decoded.
	Undecoded map[string]string `json:"undecoded,omitempty"`
}

// SummaryText returns the trimmed summary or "".
func (r Resume) SummaryText() string {
	if r.Summary == nil {
		return ""
	}
	return strings.TrimSpace(*r.Summary)
}

// Deref returns the trimmed value of an optional string.
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}
