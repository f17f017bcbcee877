//go:build integration

package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"supplierfront/internal/session"
	"supplierfront/pkg/domain"
	"supplierfront/pkg/platform/sentinel"
	"supplierfront/pkg/testutil/containers"
)

type RedisStoreSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *session.RedisStore
}

func TestRedisStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisStoreSuite))
}

func (s *RedisStoreSuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())
	s.store = session.NewRedisStore(s.redis.Client)
}

func (s *RedisStoreSuite) TearDownSuite() {
	_ = s.redis.Close(context.Background())
}

func (s *RedisStoreSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisStoreSuite) TestSaveGetDelete() {
	ctx := context.Background()
	data := &session.Data{
		ID:        "session-1",
		User:      &domain.CurrentUser{ID: 1, EmailAddress: "a@b.com", Role: domain.RoleSupplier, SupplierID: 1234},
		Flashes:   []session.Flash{{Category: "success", Message: "message_sent"}},
		ExpiresAt: time.Now().Add(time.Hour),
	}
	s.Require().NoError(s.store.Save(ctx, data))

	got, err := s.store.Get(ctx, "session-1")
	s.Require().NoError(err)
	s.Equal(int64(1234), got.User.SupplierID)
	s.Equal(data.Flashes, got.Flashes)

	ttl, err := s.redis.Client.TTL(ctx, "supplier-frontend:session:session-1").Result()
	s.Require().NoError(err)
	s.Greater(ttl, 50*time.Minute)

	s.Require().NoError(s.store.Delete(ctx, "session-1"))
	_, err = s.store.Get(ctx, "session-1")
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *RedisStoreSuite) TestExpiredSessionNotSaved() {
	ctx := context.Background()
	s.Require().NoError(s.store.Save(ctx, &session.Data{ID: "old", ExpiresAt: time.Now().Add(-time.Minute)}))
	_, err := s.store.Get(ctx, "old")
	s.ErrorIs(err, sentinel.ErrNotFound)
}
