package usernames_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	mojangmock "github.com/KirkDiggler/cobblemon-transporter/internal/clients/mojang/mock"
	"github.com/KirkDiggler/cobblemon-transporter/internal/errors"
	"github.com/KirkDiggler/cobblemon-transporter/internal/repositories/usernames"
	usernamesmock "github.com/KirkDiggler/cobblemon-transporter/internal/repositories/usernames/mock"
	"github.com/KirkDiggler/cobblemon-transporter/internal/testutils"
)

type CacheTestSuite struct {
	suite.Suite
	ctrl       *gomock.Controller
	mockStore  *usernamesmock.MockStore
	mockClient *mojangmock.MockClient
	cache      *usernames.Cache
	ctx        context.Context
}

func TestCacheSuite(t *testing.T) {
	suite.Run(t, new(CacheTestSuite))
}

func (s *CacheTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockStore = usernamesmock.NewMockStore(s.ctrl)
	s.mockClient = mojangmock.NewMockClient(s.ctrl)
	s.ctx = context.Background()

	var err error
	s.cache, err = usernames.NewCache(&usernames.CacheConfig{Store: s.mockStore})
	s.Require().NoError(err)
}

func (s *CacheTestSuite) TestLoadThenLookup() {
	s.mockStore.EXPECT().Load(s.ctx).Return(map[string]string{
		testutils.TestTrainerUUID: testutils.TestTrainerName,
	}, nil)

	s.Require().NoError(s.cache.Load(s.ctx))
	name, ok := s.cache.Lookup(testutils.TestTrainerUUID)
	s.True(ok)
	s.Equal(testutils.TestTrainerName, name)

	_, ok = s.cache.Lookup("someone-else")
	s.False(ok)
}

func (s *CacheTestSuite) TestLookupIgnoresCase() {
	s.cache.Remember("ABC-DEF", "Steve")
	name, ok := s.cache.Lookup("abc-def")
	s.True(ok)
	s.Equal("Steve", name)
}

func (s *CacheTestSuite) TestLoadError() {
	s.mockStore.EXPECT().Load(s.ctx).Return(nil, errors.DataLoss("bad json"))
	err := s.cache.Load(s.ctx)
	s.True(errors.IsDataLoss(err))
}

func (s *CacheTestSuite) TestRememberedEntriesSurviveLoad() {
	s.cache.Remember("abc", "Alex")
	s.mockStore.EXPECT().Load(s.ctx).Return(map[string]string{"abc": "OldName", "def": "Steve"}, nil)

	s.Require().NoError(s.cache.Load(s.ctx))
	name, _ := s.cache.Lookup("abc")
	s.Equal("Alex", name)
	s.Equal(2, s.cache.Len())
}

func (s *CacheTestSuite) TestFlushOnlyWhenDirty() {
	s.Require().NoError(s.cache.Flush(s.ctx))

	s.cache.Remember("abc", "Alex")
	s.mockStore.EXPECT().Save(s.ctx, map[string]string{"abc": "Alex"}).Return(nil)
	s.Require().NoError(s.cache.Flush(s.ctx))

	// nothing new since the last flush
	s.Require().NoError(s.cache.Flush(s.ctx))
}

func (s *CacheTestSuite) TestFlushErrorKeepsDirty() {
	s.cache.Remember("abc", "Alex")
	gomock.InOrder(
		s.mockStore.EXPECT().Save(s.ctx, gomock.Any()).Return(errors.Unavailable("redis down")),
		s.mockStore.EXPECT().Save(s.ctx, gomock.Any()).Return(nil),
	)

	s.Error(s.cache.Flush(s.ctx))
	s.NoError(s.cache.Flush(s.ctx))
}

func (s *CacheTestSuite) TestResolverUsesCacheFirst() {
	resolver, err := usernames.NewResolver(&usernames.ResolverConfig{Cache: s.cache, Client: s.mockClient})
	s.Require().NoError(err)

	s.mockClient.EXPECT().Username(s.ctx, "abc").Return("Alex", nil).Times(1)

	for i := 0; i < 2; i++ {
		name, err := resolver.Username(s.ctx, "abc")
		s.Require().NoError(err)
		s.Equal("Alex", name)
	}
}

func (s *CacheTestSuite) TestResolverDoesNotCacheFailures() {
	resolver, err := usernames.NewResolver(&usernames.ResolverConfig{Cache: s.cache, Client: s.mockClient})
	s.Require().NoError(err)

	s.mockClient.EXPECT().Username(s.ctx, "abc").Return("", errors.Unavailable("offline")).Times(2)

	for i := 0; i < 2; i++ {
		_, err := resolver.Username(s.ctx, "abc")
		s.True(errors.IsUnavailable(err))
	}
	s.Equal(0, s.cache.Len())
}

func (s *CacheTestSuite) TestNewValidates() {
	_, err := usernames.NewCache(&usernames.CacheConfig{})
	s.True(errors.IsInvalidArgument(err))

	_, err = usernames.NewResolver(&usernames.ResolverConfig{})
	s.True(errors.IsInvalidArgument(err))
}
