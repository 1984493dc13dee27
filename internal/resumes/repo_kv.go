package resumes

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"resume-platform/internal/shared/storage/kv"
	"resume-platform/internal/shared/telemetry"
	"resume-platform/internal/shared/util"
	"resume-platform/resume/model"
)

// KVRepo stores each resume as a hash under resume:{id} and indexes ids per
// owner in the set user_resumes:{owner}. Writes go record first, index second,
// so a partial failure leaves at worst an index entry without a record.
type KVRepo struct {
	Store kv.Store
}

func NewKVRepo(store kv.Store) *KVRepo {
	return &KVRepo{Store: store}
}

func (r *KVRepo) Create(ctx context.Context, resume model.Resume) error {
	fields, err := encodeResume(resume)
	if err != nil {
		return err
	}
	if err := r.Store.HSet(ctx, kv.ResumeKey(resume.ID), fields); err != nil {
		return fmt.Errorf("write resume: %w", err)
	}
	if err := r.Store.SAdd(ctx, kv.UserResumesKey(resume.UserID), resume.ID); err != nil {
		return fmt.Errorf("index resume: %w", err)
	}
	return nil
}

func (r *KVRepo) Get(ctx context.Context, resumeID, ownerID string) (model.Resume, error) {
	fields, err := r.load(ctx, resumeID, ownerID)
	if err != nil {
		return model.Resume{}, err
	}
	return decodeLogged(fields), nil
}

func (r *KVRepo) ListByOwner(ctx context.Context, ownerID string) ([]model.Resume, error) {
	ids, err := r.Store.SMembers(ctx, kv.UserResumesKey(ownerID))
	if err != nil {
		return nil, fmt.Errorf("read resume index: %w", err)
	}

	type listed struct {
		resume    model.Resume
		updatedAt string
	}
	items := make([]listed, 0, len(ids))
	for _, id := range ids {
		fields, err := r.Store.HGetAll(ctx, kv.ResumeKey(id))
		if err != nil {
			return nil, fmt.Errorf("read resume %s: %w", id, err)
		}
		// Index entries whose record is gone are skipped.
		if len(fields) == 0 {
			continue
		}
		if fields[fieldUserID] != ownerID {
			continue
		}
		items = append(items, listed{resume: decodeLogged(fields), updatedAt: fields[fieldUpdatedAt]})
	}

	// Stored timestamps share one fixed-width layout, so string order is time order.
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].updatedAt > items[j].updatedAt
	})

	out := make([]model.Resume, 0, len(items))
	for _, item := range items {
		out = append(out, item.resume)
	}
	return out, nil
}

func (r *KVRepo) Update(ctx context.Context, resumeID, ownerID string, patch UpdateInput, updatedAt time.Time) (model.Resume, error) {
	existing, err := r.load(ctx, resumeID, ownerID)
	if err != nil {
		return model.Resume{}, err
	}

	fields, err := encodePatch(patch)
	if err != nil {
		return model.Resume{}, err
	}
	fields[fieldUpdatedAt] = updatedTimestamp(existing, updatedAt)
	if err := r.Store.HSet(ctx, kv.ResumeKey(resumeID), fields); err != nil {
		return model.Resume{}, fmt.Errorf("update resume: %w", err)
	}
	return r.Get(ctx, resumeID, ownerID)
}

func (r *KVRepo) Delete(ctx context.Context, resumeID, ownerID string) (bool, error) {
	if _, err := r.load(ctx, resumeID, ownerID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	if err := r.Store.Del(ctx, kv.ResumeKey(resumeID)); err != nil {
		return false, fmt.Errorf("delete resume: %w", err)
	}
	if err := r.Store.SRem(ctx, kv.UserResumesKey(ownerID), resumeID); err != nil {
		return false, fmt.Errorf("unindex resume: %w", err)
	}
	return true, nil
}

// load returns the raw record when it exists and belongs to ownerID.
func (r *KVRepo) load(ctx context.Context, resumeID, ownerID string) (map[string]string, error) {
	if resumeID == "" || ownerID == "" {
		return nil, ErrNotFound
	}
	fields, err := r.Store.HGetAll(ctx, kv.ResumeKey(resumeID))
	if err != nil {
		return nil, fmt.Errorf("read resume: %w", err)
	}
	if len(fields) == 0 || fields[fieldUserID] != ownerID {
		return nil, ErrNotFound
	}
	return fields, nil
}

// updatedTimestamp never moves updated_at before created_at.
func updatedTimestamp(existing map[string]string, now time.Time) string {
	stamp := util.FormatTimestamp(now)
	if created := existing[fieldCreatedAt]; created > stamp && len(created) == len(stamp) {
		return created
	}
	return stamp
}

func decodeLogged(fields map[string]string) model.Resume {
	resume := decodeResume(fields)
	for field := range resume.Undecoded {
		telemetry.Warn("resume.decode_failed", map[string]any{
			"resume_id": resume.ID,
			"field":     field,
		})
	}
	return resume
}
