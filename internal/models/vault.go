package models

import "time"

// AccessCode is the one-time 6-digit code mailed for vault access.
// At most one live code per email: a new request overwrites the
// previous record and resets its expiry clock.
type AccessCode struct {
	Email     string    `json:"email"`
	Code      string    `json:"code"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// VaultSession is the longer-lived opaque token that lets a device
// skip the code exchange on revisit.
type VaultSession struct {
	Email     string    `json:"email"`
	Token     string    `json:"token"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// VaultItem is one entry of the vault view: title comes from the order
// snapshot, cover and file references from the live product record.
type VaultItem struct {
	ProductID   string    `json:"product_id"`
	Title       string    `json:"title"`
	Kind        string    `json:"kind"`
	CoverURL    string    `json:"cover_url"`
	FileURL     string    `json:"file_url"`
	PurchasedAt time.Time `json:"purchased_at"`
}
