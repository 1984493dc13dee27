package users

import (
	"context"
	"fmt"

	"resume-platform/internal/shared/storage/kv"
	"resume-platform/internal/shared/util"
)

const (
	fieldID        = "id"
	fieldEmail     = "email"
	fieldPassword  = "password"
	fieldCreatedAt = "created_at"
)

// KVRepo stores users as hashes under user:{id} with an email -> id index hash.
type KVRepo struct {
	Store kv.Store
}

func NewKVRepo(store kv.Store) *KVRepo {
	return &KVRepo{Store: store}
}

func (r *KVRepo) Create(ctx context.Context, user User) error {
	taken, err := r.Store.HExists(ctx, kv.UsersByEmailKey, user.Email)
	if err != nil {
		return fmt.Errorf("check email index: %w", err)
	}
	if taken {
		return ErrDuplicateEmail
	}
	record := map[string]string{
		fieldID:        user.ID,
		fieldEmail:     user.Email,
		fieldPassword:  user.PasswordHash,
		fieldCreatedAt: util.FormatTimestamp(user.CreatedAt),
	}
	if err := r.Store.HSet(ctx, kv.UserKey(user.ID), record); err != nil {
		return fmt.Errorf("write user: %w", err)
	}
	if err := r.Store.HSet(ctx, kv.UsersByEmailKey, map[string]string{user.Email: user.ID}); err != nil {
		return fmt.Errorf("write email index: %w", err)
	}
	return nil
}

func (r *KVRepo) GetByID(ctx context.Context, userID string) (User, error) {
	fields, err := r.Store.HGetAll(ctx, kv.UserKey(userID))
	if err != nil {
		return User{}, fmt.Errorf("read user: %w", err)
	}
	if len(fields) == 0 {
		return User{}, ErrNotFound
	}
	return decodeUser(fields), nil
}

func (r *KVRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	userID, ok, err := r.Store.HGet(ctx, kv.UsersByEmailKey, email)
	if err != nil {
		return User{}, fmt.Errorf("read email index: %w", err)
	}
	if !ok || userID == "" {
		return User{}, ErrNotFound
	}
	return r.GetByID(ctx, userID)
}

func decodeUser(fields map[string]string) User {
	user := User{
		ID:           fields[fieldID],
		Email:        fields[fieldEmail],
		PasswordHash: fields[fieldPassword],
	}
	if created, err := util.ParseTimestamp(fields[fieldCreatedAt]); err == nil {
		user.CreatedAt = created
	}
	return user
}
