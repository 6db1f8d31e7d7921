package config

import (
	"github.com/tickerfeed/tickerfeed"
)

// BuildRecords converts parsed configuration into SDK Record values.
//
// Validation beyond what [Parse] performs (trimming, price normalization)
// happens in the SDK when the records are handed to tickerfeed.New.
func BuildRecords(cfg *Config) []tickerfeed.Record {
	records := make([]tickerfeed.Record, len(cfg.Stocks))
	for i, sc := range cfg.Stocks {
		records[i] = tickerfeed.Record{
			Symbol: sc.Symbol,
			Name:   sc.Name,
			Price:  sc.Price,
		}
	}
	return records
}
