package cache

import (
	"encoding/json"
	"testing"
	"time"

	"bookhaven_back_end/internal/database"
	"bookhaven_back_end/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()

	mr := miniredis.RunT(t)
	database.Redis = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	database.RedisClient = database.Redis

	return mr
}

func TestAccessCodeLifecycle(t *testing.T) {
	setupTestRedis(t)

	t.Run("store then get", func(t *testing.T) {
		record, err := StoreAccessCode("Reader@Example.com", "123456")
		require.NoError(t, err)
		assert.Equal(t, "reader@example.com", record.Email)
		assert.WithinDuration(t, time.Now().Add(AccessCodeTTL), record.ExpiresAt, 2*time.Second)

		// Lookup is case-insensitive
		got, err := GetAccessCode("reader@EXAMPLE.com")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "123456", got.Code)
	})

	t.Run("reissue overwrites the prior code", func(t *testing.T) {
		_, err := StoreAccessCode("reader@example.com", "111111")
		require.NoError(t, err)
		_, err = StoreAccessCode("reader@example.com", "222222")
		require.NoError(t, err)

		got, err := GetAccessCode("reader@example.com")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "222222", got.Code)
	})

	t.Run("consume deletes the code", func(t *testing.T) {
		_, err := StoreAccessCode("reader@example.com", "333333")
		require.NoError(t, err)

		ConsumeAccessCode("reader@example.com")

		got, err := GetAccessCode("reader@example.com")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("missing email yields nil", func(t *testing.T) {
		got, err := GetAccessCode("nobody@example.com")
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestAccessCodeExpiryCheckedAtReadTime(t *testing.T) {
	setupTestRedis(t)

	// A record whose stored timestamp is past must be refused even if
	// the storage layer has not cleaned it up yet.
	stale := models.AccessCode{
		Email:     "reader@example.com",
		Code:      "999999",
		IssuedAt:  time.Now().Add(-11 * time.Minute),
		ExpiresAt: time.Now().Add(-1 * time.Minute),
	}
	data, err := json.Marshal(stale)
	require.NoError(t, err)
	require.NoError(t, database.Redis.Set(ctx, codeKey(stale.Email), data, time.Hour).Err())

	got, err := GetAccessCode("reader@example.com")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisOutagePropagatesAsError(t *testing.T) {
	// An unreachable Redis is an infrastructure failure, not a miss:
	// the caller must answer 500, never "invalid code".
	mr := setupTestRedis(t)

	_, err := StoreAccessCode("reader@example.com", "123456")
	require.NoError(t, err)
	_, err = StoreVaultSession("reader@example.com", "tok-abc")
	require.NoError(t, err)

	mr.Close()

	got, err := GetAccessCode("reader@example.com")
	assert.Error(t, err)
	assert.Nil(t, got)

	session, err := GetVaultSession("reader@example.com", "tok-abc")
	assert.Error(t, err)
	assert.Nil(t, session)
}

func TestVaultSessionLifecycle(t *testing.T) {
	setupTestRedis(t)

	t.Run("token and email must both match", func(t *testing.T) {
		session, err := StoreVaultSession("Reader@Example.com", "tok-abc")
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now().Add(VaultSessionTTL), session.ExpiresAt, 2*time.Second)

		got, err := GetVaultSession("reader@example.com", "tok-abc")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "reader@example.com", got.Email)

		// Right token, wrong email: fails closed
		got, err = GetVaultSession("other@example.com", "tok-abc")
		require.NoError(t, err)
		assert.Nil(t, got)

		// Right email, tampered token: fails closed
		got, err = GetVaultSession("reader@example.com", "tok-abd")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("expired session is refused at read time", func(t *testing.T) {
		stale := models.VaultSession{
			Email:     "reader@example.com",
			Token:     "tok-old",
			IssuedAt:  time.Now().Add(-31 * 24 * time.Hour),
			ExpiresAt: time.Now().Add(-time.Hour),
		}
		data, err := json.Marshal(stale)
		require.NoError(t, err)
		require.NoError(t, database.Redis.Set(ctx, sessionKey("tok-old"), data, time.Hour).Err())

		got, err := GetVaultSession("reader@example.com", "tok-old")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("delete revokes the token", func(t *testing.T) {
		_, err := StoreVaultSession("reader@example.com", "tok-del")
		require.NoError(t, err)

		DeleteVaultSession("tok-del")

		got, err := GetVaultSession("reader@example.com", "tok-del")
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}
