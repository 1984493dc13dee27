package resumes

import (
	"context"
	"time"

	"resume-platform/resume/model"
)

// Repo enforces ownership on every read and write; a resume owned by another
// user is reported as ErrNotFound.
type Repo interface {
	Create(ctx context.Context, resume model.Resume) error
	Get(ctx context.Context, resumeID, ownerID string) (model.Resume, error)
	// ListByOwner returns the owner's resumes, newest updated_at first.
	ListByOwner(ctx context.Context, ownerID string) ([]model.Resume, error)
	Update(ctx context.Context, resumeID, ownerID string, patch UpdateInput, updatedAt time.Time) (model.Resume, error)
	// Delete reports false when nothing owned by ownerID was deleted.
	Delete(ctx context.Context, resumeID, ownerID string) (bool, error)
}
