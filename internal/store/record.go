package store

import (
	"errors"
	"math"
	"strings"
)

// ErrInvalidRecord is returned when a record fails validation.
// Use [errors.Is] to test for it; the wrapped message carries the detail.
var ErrInvalidRecord = errors.New("invalid record")

// Record is the storage representation of a single priced instrument.
//
// Record is optimized for JSON serialization (used by the REST API and the
// SSE stream). A Record is immutable by convention: mutations go through
// [NewRecord] or [Record.WithPrice], which reapply normalization, and are
// committed via the [Store] accessors.
type Record struct {
	// Symbol is the unique ticker symbol identifying the record.
	// Immutable after creation.
	Symbol string `json:"tickerSymbol"`

	// Name is the company display name.
	Name string `json:"companyName"`

	// Price is the current price. Always >= 0 with at most two
	// decimal places after normalization.
	Price float64 `json:"price"`
}

// NewRecord constructs a normalized [Record].
//
// Normalization is the single entry point for every write path (seeding,
// CRUD create, CRUD patch, simulated updates): the name is trimmed, the
// price is clamped to >= 0 and rounded to two decimal places.
//
// Returns [ErrInvalidRecord] if the symbol or the trimmed name is empty.
func NewRecord(symbol, name string, price float64) (Record, error) {
	symbol = strings.TrimSpace(symbol)
	name = strings.TrimSpace(name)

	if symbol == "" {
		return Record{}, errors.Join(ErrInvalidRecord, errors.New("symbol must not be empty"))
	}
	if name == "" {
		return Record{}, errors.Join(ErrInvalidRecord, errors.New("name must not be empty"))
	}

	return Record{
		Symbol: symbol,
		Name:   name,
		Price:  normalizePrice(price),
	}, nil
}

// WithPrice returns a copy of the record with the given price applied.
//
// The price passes through the same normalization as [NewRecord]: negative
// values clamp to zero, and the result is rounded to two decimal places.
func (r Record) WithPrice(price float64) Record {
	r.Price = normalizePrice(price)
	return r
}

// normalizePrice clamps to >= 0 and rounds to two decimal places.
func normalizePrice(price float64) float64 {
	if price < 0 {
		price = 0
	}
	return math.Round(price*100) / 100
}
