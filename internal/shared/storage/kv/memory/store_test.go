package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"resume-platform/internal/shared/storage/kv"
)

func TestHashRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := New()

	require.NoError(t, s.HSet(ctx, "resume:1", map[string]string{"title": "A", "summary": "x"}))
	require.NoError(t, s.HSet(ctx, "resume:1", map[string]string{"title": "B"}))

	got, err := s.HGetAll(ctx, "resume:1")
	require.NoError(t, err)
	require.Equal(t, map[string]string{"title": "B", "summary": "x"}, got)

	value, ok, err := s.HGet(ctx, "resume:1", "summary")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "x", value)

	exists, err := s.HExists(ctx, "resume:1", "missing")
	require.NoError(t, err)
	require.False(t, exists)
}

func TestHGetAllMissingKeyIsEmpty(t *testing.T) {
	got, err := New().HGetAll(context.Background(), "nope")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Empty(t, got)
}

func TestHGetAllReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := New()
	require.NoError(t, s.HSet(ctx, "k", map[string]string{"a": "1"}))

	got, err := s.HGetAll(ctx, "k")
	require.NoError(t, err)
	got["a"] = "mutated"

	again, err := s.HGetAll(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, "1", again["a"])
}

func TestSetMembership(t *testing.T) {
	ctx := context.Background()
	s := New()

	require.NoError(t, s.SAdd(ctx, "user_resumes:u1", "b"))
	require.NoError(t, s.SAdd(ctx, "user_resumes:u1", "a"))
	require.NoError(t, s.SAdd(ctx, "user_resumes:u1", "a"))

	members, err := s.SMembers(ctx, "user_resumes:u1")
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, members)

	require.NoError(t, s.SRem(ctx, "user_resumes:u1", "a"))
	require.NoError(t, s.SRem(ctx, "user_resumes:u1", "never-added"))
	members, err = s.SMembers(ctx, "user_resumes:u1")
	require.NoError(t, err)
	require.Equal(t, []string{"b"}, members)
}

func TestDelRemovesHashAndSet(t *testing.T) {
	ctx := context.Background()
	s := New()
	require.NoError(t, s.HSet(ctx, "k", map[string]string{"a": "1"}))
	require.NoError(t, s.SAdd(ctx, "k", "m"))

	require.NoError(t, s.Del(ctx, "k"))

	got, err := s.HGetAll(ctx, "k")
	require.NoError(t, err)
	require.Empty(t, got)
	members, err := s.SMembers(ctx, "k")
	require.NoError(t, err)
	require.Empty(t, members)
}

func TestClosedStoreFails(t *testing.T) {
	s := New()
	require.NoError(t, s.Close())

	err := s.Ping(context.Background())
	require.True(t, errors.Is(err, kv.ErrClosed))
	_, err = s.HGetAll(context.Background(), "k")
	require.True(t, errors.Is(err, kv.ErrClosed))
}

func TestCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, New().SAdd(ctx, "k", "m"), context.Canceled)
}
