package models

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Product is a listing owned by the user whose email equals Owner.
type Product struct {
	ID          string `json:"id"`
	Owner       string `json:"owner"`
	Name        string `json:"name"`
	Description string `json:"desc"`
	Price       Price  `json:"price"`
	// Image is a data URL (data:<mime>;base64,...) or empty.
	Image string `json:"img"`
}

// Price is persisted as a JSON number. Older records hold the raw form
// value as a string, so decoding accepts both. A value that is not a
// number reads as 0 instead of failing the whole table; "12,5" reads as
// 12.5.
type Price float64

func (p *Price) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		*p = Price(value)
	case string:
		*p = parseLegacyPrice(value)
	default:
		*p = 0
	}
	return nil
}

func parseLegacyPrice(raw string) Price {
	s := strings.TrimSpace(raw)
	if !strings.Contains(s, ".") && strings.Count(s, ",") == 1 {
		s = strings.Replace(s, ",", ".", 1)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return Price(f)
}

// String formats the price with two decimals.
func (p Price) String() string {
	return strconv.FormatFloat(float64(p), 'f', 2, 64)
}
