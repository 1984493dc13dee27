package resumes

import (
	"encoding/json"
	"fmt"

	"resume-platform/internal/shared/util"
	"resume-platform/resume/model"
)

const (
	fieldID        = "id"
	fieldUserID    = "user_id"
	fieldTitle     = "title"
	fieldSummary   = "summary"
	fieldCreatedAt = "created_at"
	fieldUpdatedAt = "updated_at"
)

// encodeResume flattens a full record into string fields; structured fields become JSON.
func encodeResume(r model.Resume) (map[string]string, error) {
	fields := map[string]string{
		fieldID:        r.ID,
		fieldUserID:    r.UserID,
		fieldTitle:     r.Title,
		fieldCreatedAt: util.FormatTimestamp(r.CreatedAt),
		fieldUpdatedAt: util.FormatTimestamp(r.UpdatedAt),
	}
	if r.Summary != nil {
		fields[fieldSummary] = *r.Summary
	}
	structured := map[string]any{
		model.FieldPersonalDetails: r.PersonalDetails,
		model.FieldEducation:       r.Education,
		model.FieldExperience:      r.Experience,
		model.FieldSkills:          r.Skills,
	}
	for name, value := range structured {
		encoded, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", name, err)
		}
		fields[name] = string(encoded)
	}
	return fields, nil
}

// encodePatch flattens only the fields present in the update.
func encodePatch(in UpdateInput) (map[string]string, error) {
	fields := map[string]string{}
	if in.Title != nil {
		fields[fieldTitle] = *in.Title
	}
	if in.Summary != nil {
		fields[fieldSummary] = *in.Summary
	}
	structured := map[string]any{}
	if in.PersonalDetails != nil {
		structured[model.FieldPersonalDetails] = in.PersonalDetails
	}
	if in.Education != nil {
		structured[model.FieldEducation] = in.Education
	}
	if in.Experience != nil {
		structured[model.FieldExperience] = in.Experience
	}
	if in.Skills != nil {
		structured[model.FieldSkills] = in.Skills
	}
	for name, value := range structured {
		encoded, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", name, err)
		}
		fields[name] = string(encoded)
	}
	return fields, nil
}

// decodeResume rebuilds a record. A structured field that is not valid JSON is
// left empty and its raw text is kept in Undecoded.
func decodeResume(fields map[string]string) model.Resume {
	r := model.Resume{
		ID:              fields[fieldID],
		UserID:          fields[fieldUserID],
		Title:           fields[fieldTitle],
		PersonalDetails: model.PersonalDetails{},
		Education:       []model.Education{},
		Experience:      []model.Experience{},
		Skills:          []string{},
	}
	if summary, ok := fields[fieldSummary]; ok {
		r.Summary = &summary
	}
	if t, err := util.ParseTimestamp(fields[fieldCreatedAt]); err == nil {
		r.CreatedAt = t
	}
	if t, err := util.ParseTimestamp(fields[fieldUpdatedAt]); err == nil {
		r.UpdatedAt = t
	}

	undecoded := map[string]string{}
	if v, ok := decodeField[model.PersonalDetails](fields, model.FieldPersonalDetails, undecoded); ok && v != nil {
		r.PersonalDetails = v
	}
	if v, ok := decodeField[[]model.Education](fields, model.FieldEducation, undecoded); ok && v != nil {
		r.Education = v
	}
	if v, ok := decodeField[[]model.Experience](fields, model.FieldExperience, undecoded); ok && v != nil {
		r.Experience = v
	}
	if v, ok := decodeField[[]string](fields, model.FieldSkills, undecoded); ok && v != nil {
		r.Skills = v
	}
	if len(undecoded) > 0 {
		r.Undecoded = undecoded
	}
	return r
}

func decodeField[T any](fields map[string]string, name string, undecoded map[string]string) (T, bool) {
	var out T
	raw, ok := fields[name]
	if !ok || raw == "" {
		return out, false
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		undecoded[name] = raw
		var zero T
		return zero, false
	}
	return out, true
}
