package resumes

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"resume-platform/resume/model"
)

type Service struct {
	Repo Repo
	now  func() time.Time
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo, now: time.Now}
}

// Create assigns an id and both timestamps, then stores the record and indexes it for the owner.
func (s *Service) Create(ctx context.Context, ownerID string, in CreateInput) (model.Resume, error) {
	if err := s.ready(); err != nil {
		return model.Resume{}, err
	}
	if strings.TrimSpace(ownerID) == "" {
		return model.Resume{}, errors.New("owner id is required")
	}
	if err := in.validate(); err != nil {
		return model.Resume{}, err
	}

	now := s.clock()
	resume := model.Resume{
		ID:              uuid.NewString(),
		UserID:          ownerID,
		Title:           in.Title,
		PersonalDetails: in.PersonalDetails,
		Education:       in.Education,
		Experience:      in.Experience,
		Skills:          in.Skills,
		Summary:         in.Summary,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if resume.PersonalDetails == nil {
		resume.PersonalDetails = model.PersonalDetails{}
	}
	if resume.Education == nil {
		resume.Education = []model.Education{}
	}
	if resume.Experience == nil {
		resume.Experience = []model.Experience{}
	}
	if resume.Skills == nil {
		resume.Skills = []string{}
	}

	if err := s.Repo.Create(ctx, resume); err != nil {
		return model.Resume{}, err
	}
	return resume, nil
}

func (s *Service) List(ctx context.Context, ownerID string) ([]model.Resume, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.Repo.ListByOwner(ctx, ownerID)
}

func (s *Service) Get(ctx context.Context, resumeID, ownerID string) (model.Resume, error) {
	if err := s.ready(); err != nil {
		return model.Resume{}, err
	}
	return s.Repo.Get(ctx, resumeID, ownerID)
}

// Update overwrites only the fields set in the patch and always refreshes updated_at.
func (s *Service) Update(ctx context.Context, resumeID, ownerID string, patch UpdateInput) (model.Resume, error) {
	if err := s.ready(); err != nil {
		return model.Resume{}, err
	}
	if err := patch.validate(); err != nil {
		return model.Resume{}, err
	}
	return s.Repo.Update(ctx, resumeID, ownerID, patch, s.clock())
}

func (s *Service) Delete(ctx context.Context, resumeID, ownerID string) (bool, error) {
	if err := s.ready(); err != nil {
		return false, err
	}
	return s.Repo.Delete(ctx, resumeID, ownerID)
}

func (s *Service) ready() error {
	if s == nil || s.Repo == nil {
		return errors.New("resumes service not configured")
	}
	return nil
}

// clock returns now at the precision timestamps are stored with.
func (s *Service) clock() time.Time {
	now := time.Now
	if s.now != nil {
		now = s.now
	}
	return now().UTC().Truncate(time.Microsecond)
}
