package adapter

import (
	"context"
	"errors"
	"testing"
	"time"

	"finlearn/internal/domain"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisCacheAdapter_Get(t *testing.T) {
	t.Run("hit", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		cache := NewRedisCacheAdapter(db)
		mock.ExpectGet("finlearn:module:catalog:all").SetVal("[]")

		val, err := cache.Get(context.Background(), "finlearn:module:catalog:all")

		require.NoError(t, err)
		assert.Equal(t, "[]", val)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("miss maps to ErrCacheMiss", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		cache := NewRedisCacheAdapter(db)
		mock.ExpectGet("missing").RedisNil()

		_, err := cache.Get(context.Background(), "missing")

		assert.ErrorIs(t, err, domain.ErrCacheMiss)
	})

	t.Run("transport error passes through", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		cache := NewRedisCacheAdapter(db)
		mock.ExpectGet("key").SetErr(errors.New("connection refused"))

		_, err := cache.Get(context.Background(), "key")

		require.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrCacheMiss)
	})
}

func TestRedisCacheAdapter_SetAndDelete(t *testing.T) {
	db, mock := redismock.NewClientMock()
	cache := NewRedisCacheAdapter(db)

	mock.ExpectSet("key", "value", 5*time.Minute).SetVal("OK")
	assert.NoError(t, cache.Set(context.Background(), "key", "value", 5*time.Minute))

	mock.ExpectDel("key").SetVal(1)
	assert.NoError(t, cache.Delete(context.Background(), "key"))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCacheAdapter_Ping(t *testing.T) {
	db, mock := redismock.NewClientMock()
	cache := NewRedisCacheAdapter(db)

	mock.ExpectPing().SetVal("PONG")
	assert.NoError(t, cache.Ping(context.Background()))
}
