package session_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jhoicas/goldfolio-api/internal/infrastructure/session"
	"github.com/jhoicas/goldfolio-api/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_Failures(t *testing.T) {
	ctx := context.Background()
	s := session.NewMemory()
	defer s.Close()

	for i := 1; i <= 3; i++ {
		n, err := s.RegisterFailure(ctx, "a@b.com", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, i, n)
	}
	n, err := s.Failures(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	require.NoError(t, s.ResetFailures(ctx, "a@b.com"))
	n, _ = s.Failures(ctx, "a@b.com")
	assert.Zero(t, n)
}

func TestMemory_FailuresExpire(t *testing.T) {
	ctx := context.Background()
	s := session.NewMemory()
	_, err := s.RegisterFailure(ctx, "k", 20*time.Millisecond)
	require.NoError(t, err)
	time.Sleep(40 * time.Millisecond)
	n, _ := s.Failures(ctx, "k")
	assert.Zero(t, n)
}

func TestMemory_ConcurrentFailures(t *testing.T) {
	ctx := context.Background()
	s := session.NewMemory()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.RegisterFailure(ctx, "k", time.Minute)
		}()
	}
	wg.Wait()
	n, _ := s.Failures(ctx, "k")
	assert.Equal(t, 50, n)
}

func TestMemory_Revoke(t *testing.T) {
	ctx := context.Background()
	s := session.NewMemory()

	revoked, err := s.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, s.Revoke(ctx, "jti-1", time.Minute))
	revoked, _ = s.IsRevoked(ctx, "jti-1")
	assert.True(t, revoked)

	require.NoError(t, s.Revoke(ctx, "", time.Minute))
	revoked, _ = s.IsRevoked(ctx, "")
	assert.False(t, revoked)
}

func TestNew_UnknownStore(t *testing.T) {
	_, err := session.New(context.Background(), config.SessionConfig{Store: "memcached"})
	assert.Error(t, err)

	s, err := session.New(context.Background(), config.SessionConfig{Store: config.SessionStoreMemory})
	require.NoError(t, err)
	assert.NoError(t, s.Close())
}
