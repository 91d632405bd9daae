package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"bookhaven_back_end/internal/database"
	"bookhaven_back_end/internal/models"
)

const (
	AccessCodeTTL   = 10 * time.Minute
	VaultSessionTTL = 30 * 24 * time.Hour
)

var ctx = context.Background()

func codeKey(email string) string {
	return "vault_code:" + models.EmailKey(email)
}

func sessionKey(token string) string {
	return "vault_session:" + token
}

// StoreAccessCode upserts the one-time code for an email. A reissue
// replaces the previous record and restarts the expiry clock, so at
// most one code is ever live per email.
func StoreAccessCode(email, code string) (models.AccessCode, error) {
	now := time.Now()
	record := models.AccessCode{
		Email:     models.EmailKey(email),
		Code:      code,
		IssuedAt:  now,
		ExpiresAt: now.Add(AccessCodeTTL),
	}

	data, err := json.Marshal(record)
	if err != nil {
		return models.AccessCode{}, err
	}

	err = database.Redis.Set(ctx, codeKey(email), data, AccessCodeTTL).Err()
	return record, err
}

// GetAccessCode returns the live code for an email, or nil if none
// exists. Expiry is re-checked from the stored timestamp; Redis TTL
// cleanup is hygiene, not the source of truth. Only an absent key is a
// miss: a Redis failure propagates so an outage never reads as an
// invalid code.
func GetAccessCode(email string) (*models.AccessCode, error) {
	data, err := database.Redis.Get(ctx, codeKey(email)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var record models.AccessCode
	if err := json.Unmarshal([]byte(data), &record); err != nil {
		return nil, err
	}
	if time.Now().After(record.ExpiresAt) {
		return nil, nil
	}
	return &record, nil
}

// ConsumeAccessCode deletes a code after successful verification,
// closing the replay window between verification and passive expiry.
func ConsumeAccessCode(email string) {
	database.Redis.Del(ctx, codeKey(email))
}

// StoreVaultSession persists a device session token for an email.
func StoreVaultSession(email, token string) (models.VaultSession, error) {
	now := time.Now()
	session := models.VaultSession{
		Email:     models.EmailKey(email),
		Token:     token,
		IssuedAt:  now,
		ExpiresAt: now.Add(VaultSessionTTL),
	}

	data, err := json.Marshal(session)
	if err != nil {
		return models.VaultSession{}, err
	}

	err = database.Redis.Set(ctx, sessionKey(token), data, VaultSessionTTL).Err()
	return session, err
}

// GetVaultSession validates a stored token against an email. Both
// halves must match a live, unexpired record; anything else fails
// closed.
func GetVaultSession(email, token string) (*models.VaultSession, error) {
	data, err := database.Redis.Get(ctx, sessionKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var session models.VaultSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, err
	}
	if session.Email != models.EmailKey(email) {
		return nil, nil
	}
	if time.Now().After(session.ExpiresAt) {
		return nil, nil
	}
	return &session, nil
}

// DeleteVaultSession revokes a session token (explicit vault lock).
func DeleteVaultSession(token string) {
	database.Redis.Del(ctx, sessionKey(token))
}
