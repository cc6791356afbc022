package offer

import (
	"math"
	"strconv"
	"strings"
)

// RawOffer is one unvalidated textual record as the extractor reads it off
// a listing page. Prices and durations are free text; the layover list may
// be absent or shorter than the stop count when the source markup is
// incomplete.
type RawOffer struct {
	Airline       string   `json:"airline" mapstructure:"airline"`
	Price         string   `json:"price" mapstructure:"price"`
	TotalDuration string   `json:"total_duration" mapstructure:"total_duration"`
	Stops         int      `json:"stops" mapstructure:"stops"`
	Layovers      []string `json:"layovers,omitempty" mapstructure:"layovers"`
	DepartureDate string   `json:"departure_date,omitempty" mapstructure:"departure_date"`
}

// Offer is the canonical numeric form of a RawOffer. Tag records the query
// unit (usually the departure date) the record was collected under.
type Offer struct {
	Airline        string  `json:"airline"`
	Price          float64 `json:"price"`
	TotalMinutes   int     `json:"total_minutes"`
	Stops          int     `json:"stops"`
	LayoverMinutes []int   `json:"layover_minutes"`
	Tag            string  `json:"tag"`
}

// ValidPrice reports whether the price text parsed to a usable number.
// Price text with no digits normalizes to NaN, never to zero.
func (o Offer) ValidPrice() bool {
	return !math.IsNaN(o.Price)
}

// Normalize converts one raw record into its canonical form, tagged with
// the query unit it came from. The layover sequence keeps exactly the
// entries present in the source; a mismatch with the stop count is
// tolerated, not padded or rejected.
func Normalize(raw RawOffer, tag string) Offer {
	layovers := make([]int, 0, len(raw.Layovers))
	for _, l := range raw.Layovers {
		layovers = append(layovers, ParseDuration(l))
	}
	return Offer{
		Airline:        raw.Airline,
		Price:          parsePrice(raw.Price),
		TotalMinutes:   ParseDuration(raw.TotalDuration),
		Stops:          raw.Stops,
		LayoverMinutes: layovers,
		Tag:            tag,
	}
}

func parsePrice(text string) float64 {
	var cleaned strings.Builder
	for _, r := range text {
		if (r >= '0' && r <= '9') || r == '.' {
			cleaned.WriteRune(r)
		}
	}
	price, err := strconv.ParseFloat(cleaned.String(), 64)
	if err != nil {
		return math.NaN()
	}
	return price
}
