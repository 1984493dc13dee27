package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// PasswordHasher is the one-way credential check used by the service.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

type Service struct {
	Repo   Repo
	Hasher PasswordHasher

	validate *validator.Validate
	now      func() time.Time

	// dummyHash is verified against when the email is unknown.
	dummyHash string
}

// maxPasswordBytes is the bcrypt input limit.
const maxPasswordBytes = 72

// fixedDummyHash is a well-formed cost-10 bcrypt hash used when the
// configured hasher cannot produce one.
const fixedDummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

func NewService(repo Repo, hasher PasswordHasher) *Service {
	dummy := fixedDummyHash
	if hasher != nil {
		if hash, err := hasher.Hash(uuid.NewString()); err == nil {
			dummy = hash
		}
	}
	return &Service{
		Repo:      repo,
		Hasher:    hasher,
		validate:  validator.New(),
		now:       time.Now,
		dummyHash: dummy,
	}
}

// CreateUser registers a new account and returns it without the hash.
func (s *Service) CreateUser(ctx context.Context, email, password string) (PublicView, error) {
	if err := s.ready(); err != nil {
		return PublicView{}, err
	}
	email, err := s.normalizeEmail(email)
	if err != nil {
		return PublicView{}, err
	}
	if password == "" {
		return PublicView{}, fmt.Errorf("%w: password is required", ErrInvalidInput)
	}
	if len(password) > maxPasswordBytes {
		return PublicView{}, fmt.Errorf("%w: password must be at most %d bytes", ErrInvalidInput, maxPasswordBytes)
	}

	if _, err := s.Repo.GetByEmail(ctx, email); err == nil {
		return PublicView{}, ErrDuplicateEmail
	} else if !errors.Is(err, ErrNotFound) {
		return PublicView{}, err
	}

	hash, err := s.Hasher.Hash(password)
	if err != nil {
		return PublicView{}, err
	}
	user := User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC().Truncate(time.Microsecond),
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return PublicView{}, err
	}
	return user.Public(), nil
}

// Authenticate returns ErrAuthFailure for an unknown email and for a wrong password alike.
// Unknown emails are still checked against a hash so both paths cost one bcrypt comparison.
func (s *Service) Authenticate(ctx context.Context, email, password string) (PublicView, error) {
	if err := s.ready(); err != nil {
		return PublicView{}, err
	}
	email, err := s.normalizeEmail(email)
	if err != nil {
		return PublicView{}, ErrAuthFailure
	}

	user, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.Hasher.Verify(password, s.dummyHash)
			return PublicView{}, ErrAuthFailure
		}
		return PublicView{}, err
	}
	if !s.Hasher.Verify(password, user.PasswordHash) {
		return PublicView{}, ErrAuthFailure
	}
	return user.Public(), nil
}

func (s *Service) GetByEmail(ctx context.Context, email string) (PublicView, error) {
	if err := s.ready(); err != nil {
		return PublicView{}, err
	}
	email, err := s.normalizeEmail(email)
	if err != nil {
		return PublicView{}, ErrNotFound
	}
	user, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return PublicView{}, err
	}
	return user.Public(), nil
}

func (s *Service) GetByID(ctx context.Context, userID string) (PublicView, error) {
	if err := s.ready(); err != nil {
		return PublicView{}, err
	}
	if strings.TrimSpace(userID) == "" {
		return PublicView{}, ErrNotFound
	}
	user, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return PublicView{}, err
	}
	return user.Public(), nil
}

// ResolveSubject maps a token subject (the user's email) to a user id.
func (s *Service) ResolveSubject(ctx context.Context, subject string) (string, bool, error) {
	user, err := s.GetByEmail(ctx, subject)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return user.ID, true, nil
}

// EnsureUser creates the account unless the email is already registered.
func (s *Service) EnsureUser(ctx context.Context, email, password string) (bool, error) {
	_, err := s.CreateUser(ctx, email, password)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, ErrDuplicateEmail):
		return false, nil
	default:
		return false, err
	}
}

func (s *Service) ready() error {
	if s == nil || s.Repo == nil || s.Hasher == nil {
		return errors.New("users service not configured")
	}
	return nil
}

func (s *Service) normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	v := s.validate
	if v == nil {
		v = validator.New()
	}
	if err := v.Var(email, "required,email"); err != nil {
		return "", fmt.Errorf("%w: a valid email is required", ErrInvalidInput)
	}
	return email, nil
}
