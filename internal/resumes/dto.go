package resumes

import (
	"fmt"
	"strings"

	"resume-platform/resume/model"
)

// CreateInput is the payload for a new resume. Nil lists are stored as empty.
type CreateInput struct {
	Title           string                `json:"title" binding:"required"`
	PersonalDetails model.PersonalDetails `json:"personal_details" binding:"required"`
	Education       []model.Education     `json:"education"`
	Experience      []model.Experience    `json:"experience"`
	Skills          []string              `json:"skills"`
	Summary         *string               `json:"summary"`
}

// UpdateInput is a partial update. A nil field, whether omitted or sent as null,
// leaves the stored value unchanged.
type UpdateInput struct {
	Title           *string               `json:"title"`
	PersonalDetails model.PersonalDetails `json:"personal_details"`
	Education       []model.Education     `json:"education"`
	Experience      []model.Experience    `json:"experience"`
	Skills          []string              `json:"skills"`
	Summary         *string               `json:"summary"`
}

func (in CreateInput) validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	return nil
}

func (in UpdateInput) validate() error {
	if in.Title != nil && strings.TrimSpace(*in.Title) == "" {
		return fmt.Errorf("%w: title must not be empty", ErrInvalidInput)
	}
	return nil
}
