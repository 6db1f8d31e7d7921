package tickerfeed

// Record is the public representation of a single priced instrument.
//
// Records are handed to [New] as the seed dataset via [WithRecord] or
// [WithRecords]. Normalization (name trimming, clamping the price to >= 0,
// rounding to two decimal places) is applied when the feed is constructed;
// a record with an empty symbol or name makes [New] fail.
type Record struct {
	// Symbol is the unique ticker symbol. Immutable once the feed starts.
	Symbol string

	// Name is the company display name.
	Name string

	// Price is the starting price.
	Price float64
}
