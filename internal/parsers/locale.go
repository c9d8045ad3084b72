// Package parsers normalizes raw database rows into display-ready view
// objects: every timestamp gains a locale/timezone-formatted twin, every
// enum a human label, every money amount a formatted string. Parse
// functions are pure; composition ("serialize") functions attach parsed
// relation collections in the order the query returned them.
package parsers

import (
	"encoding/json"
	"fmt"
	"time"
)

// Locale carries the rendering context threaded through every parser.
type Locale struct {
	Lang     string
	Location *time.Location

	// Strict makes malformed JSON columns an error instead of being
	// silently replaced with a safe default.
	Strict bool
}

// NewLocale constructs a Locale.
func NewLocale(lang string, loc *time.Location, strict bool) *Locale {
	return &Locale{Lang: lang, Location: loc, Strict: strict}
}

var userStatusLabels = map[string]string{
	"active":   "Aktif",
	"inactive": "Tidak Aktif",
}

var userTypeLabels = map[string]string{
	"internal": "Internal",
	"external": "Pelanggan",
}

var addressTypeLabels = map[string]string{
	"main":        "Alamat Utama",
	"alternative": "Alamat Alternatif",
}

var serviceTypeLabels = map[string]string{
	"qurban":  "Qurban",
	"aqiqah":  "Aqiqah",
	"regular": "Reguler",
}

var productStatusLabels = map[string]string{
	"active":   "Aktif",
	"inactive": "Tidak Aktif",
}

var discountTypeLabels = map[string]string{
	"percentage": "Persentase",
	"fixed":      "Nominal",
}

var orderStatusLabels = map[string]string{
	"pending":   "Menunggu Pembayaran",
	"paid":      "Dibayar",
	"processed": "Diproses",
	"completed": "Selesai",
	"cancelled": "Dibatalkan",
}

func label(table map[string]string, key string) string {
	if v, ok := table[key]; ok {
		return v
	}
	return key
}

// decodeJSON unmarshals a raw JSON column. Outside strict mode a
// malformed column yields the fallback so one bad row cannot fail a
// whole response.
func decodeJSON[T any](raw string, fallback T, lc *Locale) (T, error) {
	if raw == "" {
		return fallback, nil
	}

	var out T
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		if lc.Strict {
			return fallback, fmt.Errorf("malformed json column: %w", err)
		}
		return fallback, nil
	}
	return out, nil
}
