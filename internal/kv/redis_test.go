//go:build integration

package kv

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

type RedisStoreTestSuite struct {
	suite.Suite
	container testcontainers.Container
	client    *redis.Client
	store     *RedisStore
}

func TestRedisStoreTestSuite(t *testing.T) {
	suite.Run(t, new(RedisStoreTestSuite))
}

func (s *RedisStoreTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	s.Require().NoError(err)
	s.container = container

	host, err := container.Host(ctx)
	s.Require().NoError(err)
	port, err := container.MappedPort(ctx, "6379")
	s.Require().NoError(err)

	s.client = redis.NewClient(&redis.Options{Addr: fmt.Sprintf("%s:%s", host, port.Port())})
}

func (s *RedisStoreTestSuite) TearDownSuite() {
	if s.client != nil {
		s.client.Close()
	}
	if s.container != nil {
		s.container.Terminate(context.Background())
	}
}

func (s *RedisStoreTestSuite) SetupTest() {
	s.Require().NoError(s.client.FlushDB(context.Background()).Err())
	s.store = NewRedisStore(s.client, "market", 0)
}

func (s *RedisStoreTestSuite) TestSetGetDelete() {
	ctx := context.Background()

	s.Require().NoError(s.store.Ping(ctx))

	_, err := s.store.Get(ctx, "artisan-cart")
	s.ErrorIs(err, ErrKeyNotFound)

	s.Require().NoError(s.store.Set(ctx, "artisan-cart", `[{"id":1,"quantity":2}]`))

	value, err := s.store.Get(ctx, "artisan-cart")
	s.Require().NoError(err)
	s.Equal(`[{"id":1,"quantity":2}]`, value)

	raw, err := s.client.Get(ctx, "market:artisan-cart").Result()
	s.Require().NoError(err)
	s.Equal(value, raw)

	s.Require().NoError(s.store.Delete(ctx, "artisan-cart"))
	_, err = s.store.Get(ctx, "artisan-cart")
	s.ErrorIs(err, ErrKeyNotFound)
}

func (s *RedisStoreTestSuite) TestSessionPrefixOverRedis() {
	ctx := context.Background()
	session := WithPrefix(s.store, SessionPrefix("abc"))

	s.Require().NoError(session.Set(ctx, "userRole", "admin"))

	raw, err := s.client.Get(ctx, "market:session:abc:userRole").Result()
	s.Require().NoError(err)
	s.Equal("admin", raw)
}

func (s *RedisStoreTestSuite) TestTTLApplied() {
	ctx := context.Background()
	store := NewRedisStore(s.client, "market", time.Hour)

	s.Require().NoError(store.Set(ctx, "userRole", "seller"))

	ttl, err := s.client.TTL(ctx, "market:userRole").Result()
	s.Require().NoError(err)
	s.Greater(ttl, time.Duration(0))
}
