package usernames_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/cobblemon-transporter/internal/errors"
	"github.com/KirkDiggler/cobblemon-transporter/internal/repositories/usernames"
	"github.com/KirkDiggler/cobblemon-transporter/internal/testutils"
)

// StoreTestSuite runs the same contract against every backend
type StoreTestSuite struct {
	suite.Suite
	ctx context.Context
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}

func (s *StoreTestSuite) SetupTest() {
	s.ctx = context.Background()
}

func (s *StoreTestSuite) stores() map[string]usernames.Store {
	dir := s.T().TempDir()

	file, err := usernames.NewFileStore(dir)
	s.Require().NoError(err)

	client, _ := testutils.CreateTestRedisClient(s.T())
	rs, err := usernames.NewRedisStore(&usernames.RedisConfig{Client: client})
	s.Require().NoError(err)

	sq, err := usernames.NewSQLiteStore(filepath.Join(dir, "usernames.db"))
	s.Require().NoError(err)
	s.T().Cleanup(func() { _ = sq.Close() })

	return map[string]usernames.Store{"file": file, "redis": rs, "sqlite": sq}
}

func (s *StoreTestSuite) TestRoundTrip() {
	for name, store := range s.stores() {
		s.Run(name, func() {
			empty, err := store.Load(s.ctx)
			s.Require().NoError(err)
			s.Empty(empty)

			s.Require().NoError(store.Save(s.ctx, map[string]string{"abc": "Alex", "def": "Steve"}))
			s.Require().NoError(store.Save(s.ctx, map[string]string{"abc": "Alexandra", "def": "Steve"}))

			loaded, err := store.Load(s.ctx)
			s.Require().NoError(err)
			s.Equal(map[string]string{"abc": "Alexandra", "def": "Steve"}, loaded)
		})
	}
}

func (s *StoreTestSuite) TestCacheFlushesThroughStore() {
	for name, store := range s.stores() {
		s.Run(name, func() {
			cache, err := usernames.NewCache(&usernames.CacheConfig{Store: store})
			s.Require().NoError(err)
			cache.Remember(testutils.TestTrainerUUID, testutils.TestTrainerName)
			s.Require().NoError(cache.Flush(s.ctx))

			reloaded, err := usernames.NewCache(&usernames.CacheConfig{Store: store})
			s.Require().NoError(err)
			s.Require().NoError(reloaded.Load(s.ctx))
			got, ok := reloaded.Lookup(testutils.TestTrainerUUID)
			s.True(ok)
			s.Equal(testutils.TestTrainerName, got)
		})
	}
}

func (s *StoreTestSuite) TestFileStoreFormat() {
	dir := s.T().TempDir()
	store, err := usernames.NewFileStore(dir)
	s.Require().NoError(err)
	s.Equal(filepath.Join(dir, usernames.CacheFile), store.Path())

	s.Require().NoError(store.Save(s.ctx, map[string]string{"abc": "Alex"}))
	raw, err := os.ReadFile(store.Path())
	s.Require().NoError(err)
	s.JSONEq(`{"abc":"Alex"}`, string(raw))

	s.Require().NoError(os.WriteFile(store.Path(), []byte("not json"), 0o600))
	_, err = store.Load(s.ctx)
	s.True(errors.IsDataLoss(err))
}

func (s *StoreTestSuite) TestRedisStoreUnavailable() {
	client, mr := testutils.CreateTestRedisClient(s.T())
	store, err := usernames.NewRedisStore(&usernames.RedisConfig{Client: client, Key: "names"})
	s.Require().NoError(err)

	s.Require().NoError(store.Save(s.ctx, map[string]string{"abc": "Alex"}))
	s.Equal("Alex", mr.HGet("names", "abc"))

	mr.Close()
	_, err = store.Load(s.ctx)
	s.True(errors.IsUnavailable(err))
}
