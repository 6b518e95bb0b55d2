package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/turtacn/SPAC-Sentinel/internal/infrastructure/monitoring/logging"
)

type cachePayload struct {
	SpacID string `json:"spac_id"`
	Count  int    `json:"count"`
}

type CacheTestSuite struct {
	suite.Suite
	mock  redismock.ClientMock
	cache Cache
}

func (s *CacheTestSuite) SetupTest() {
	client, mock := redismock.NewClientMock()
	s.mock = mock
	s.cache = NewCache(client, logging.NewNopLogger(), WithPrefix("test:"))
}

func (s *CacheTestSuite) TearDownTest() {
	assert.NoError(s.T(), s.mock.ExpectationsWereMet())
}

func (s *CacheTestSuite) TestGetJSON_Hit() {
	val := cachePayload{SpacID: "spac-1", Count: 4}
	raw, err := json.Marshal(val)
	require.NoError(s.T(), err)

	s.mock.ExpectGet("test:deadlines:spac-1:2025-02-01").SetVal(string(raw))

	var dest cachePayload
	hit, err := s.cache.GetJSON(context.Background(), "deadlines:spac-1:2025-02-01", &dest)
	require.NoError(s.T(), err)
	assert.True(s.T(), hit)
	assert.Equal(s.T(), val, dest)
}

func (s *CacheTestSuite) TestGetJSON_Miss() {
	s.mock.ExpectGet("test:absent").RedisNil()

	var dest cachePayload
	hit, err := s.cache.GetJSON(context.Background(), "absent", &dest)
	require.NoError(s.T(), err)
	assert.False(s.T(), hit)
}

func (s *CacheTestSuite) TestGetJSON_CorruptEntry() {
	s.mock.ExpectGet("test:bad").SetVal("{not json")

	var dest cachePayload
	_, err := s.cache.GetJSON(context.Background(), "bad", &dest)
	assert.ErrorIs(s.T(), err, ErrSerializationFailed)
}

func (s *CacheTestSuite) TestSetJSON() {
	// The expiry carries jitter, so match on command and key only.
	s.mock.CustomMatch(func(expected, actual []interface{}) error {
		if len(actual) < 3 {
			return fmt.Errorf("unexpected args: %v", actual)
		}
		if actual[0] != "set" || actual[1] != "test:k" {
			return fmt.Errorf("unexpected command: %v", actual)
		}
		return nil
		// A nonzero placeholder expiry keeps the expected arg count equal to
		// the actual command's (redismock compares lengths before invoking
		// the custom matcher); its value is ignored by the matcher above.
	}).ExpectSet("test:k", nil, time.Millisecond).SetVal("OK")

	err := s.cache.SetJSON(context.Background(), "k",
		cachePayload{SpacID: "spac-1"}, time.Minute)
	require.NoError(s.T(), err)
}

func (s *CacheTestSuite) TestDelete() {
	s.mock.ExpectDel("test:a", "test:b").SetVal(2)

	require.NoError(s.T(), s.cache.Delete(context.Background(), "a", "b"))
}

func (s *CacheTestSuite) TestDelete_NoKeysIsNoop() {
	require.NoError(s.T(), s.cache.Delete(context.Background()))
}

func (s *CacheTestSuite) TestDeleteByPrefix() {
	s.mock.ExpectScan(0, "test:deadlines:spac-1:*", 100).
		SetVal([]string{"test:deadlines:spac-1:2025-02-01", "test:deadlines:spac-1:2025-02-02"}, 0)
	s.mock.ExpectDel("test:deadlines:spac-1:2025-02-01", "test:deadlines:spac-1:2025-02-02").SetVal(2)

	deleted, err := s.cache.DeleteByPrefix(context.Background(), "deadlines:spac-1:")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), int64(2), deleted)
}

func (s *CacheTestSuite) TestGetOrLoad_MissInvokesLoader() {
	s.mock.ExpectGet("test:k").RedisNil()
	// The backfill Set is unexpected by the mock and fails; GetOrLoad still
	// returns the loaded value because backfill failures are non-fatal.

	var dest cachePayload
	loaded := false
	err := s.cache.GetOrLoad(context.Background(), "k", &dest, time.Minute,
		func(ctx context.Context) (interface{}, error) {
			loaded = true
			return cachePayload{SpacID: "spac-9", Count: 1}, nil
		})
	require.NoError(s.T(), err)
	assert.True(s.T(), loaded)
	assert.Equal(s.T(), "spac-9", dest.SpacID)
}

func (s *CacheTestSuite) TestGetOrLoad_HitSkipsLoader() {
	raw, _ := json.Marshal(cachePayload{SpacID: "spac-2"})
	s.mock.ExpectGet("test:k").SetVal(string(raw))

	var dest cachePayload
	err := s.cache.GetOrLoad(context.Background(), "k", &dest, time.Minute,
		func(ctx context.Context) (interface{}, error) {
			s.T().Fatal("loader must not run on a cache hit")
			return nil, nil
		})
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "spac-2", dest.SpacID)
}

func (s *CacheTestSuite) TestGetOrLoad_LoaderError() {
	s.mock.ExpectGet("test:k").RedisNil()

	var dest cachePayload
	err := s.cache.GetOrLoad(context.Background(), "k", &dest, time.Minute,
		func(ctx context.Context) (interface{}, error) {
			return nil, fmt.Errorf("snapshot store unavailable")
		})
	assert.Error(s.T(), err)
}

func TestCacheTestSuite(t *testing.T) {
	suite.Run(t, new(CacheTestSuite))
}
