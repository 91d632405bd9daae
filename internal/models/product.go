package models

import (
	"time"

	"github.com/gocql/gocql"
)

// Asset kinds sold by the store. The kind drives how the frontend
// presents an unlocked item (reader, player, course outline).
const (
	KindEbook  = "ebook"
	KindAudio  = "audio"
	KindVideo  = "video"
	KindCourse = "course"
)

func IsValidKind(kind string) bool {
	switch kind {
	case KindEbook, KindAudio, KindVideo, KindCourse:
		return true
	}
	return false
}

type Product struct {
	ID          gocql.UUID `json:"id" db:"product_id"`
	Title       string     `json:"title" db:"title"`
	Description string     `json:"description" db:"description"`
	PriceNGN    float64    `json:"price_ngn" db:"price_ngn"`
	PriceUSD    float64    `json:"price_usd" db:"price_usd"`
	Kind        string     `json:"kind" db:"kind"`
	CoverURL    string     `json:"cover_url" db:"cover_url"`
	FileURL     string     `json:"file_url,omitempty" db:"file_url"`
	PreviewURL  string     `json:"preview_url" db:"preview_url"`
	Published   bool       `json:"published" db:"published"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// PublicView strips the secure file reference. Only settled orders may
// expose file_url, via the vault.
func (p Product) PublicView() Product {
	p.FileURL = ""
	return p
}

// Price returns the list price for the given currency code.
func (p Product) Price(currency string) float64 {
	if currency == "USD" {
		return p.PriceUSD
	}
	return p.PriceNGN
}
