package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Itinerary is the day-by-day plan attached to a trip. It is stored as a
// single JSON document.
type Itinerary struct {
	Destination string         `json:"destination"`
	Duration    string         `json:"duration"`
	Days        []ItineraryDay `json:"days"`
}

// ItineraryDay is one entry of an itinerary.
type ItineraryDay struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Insight     *Insight `json:"insight,omitempty"`
}

// Insight is an optional typed tip attached to a day ("cultural" or "food").
type Insight struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Value encodes the itinerary for a JSONB column.
func (it *Itinerary) Value() (driver.Value, error) {
	if it == nil {
		return nil, nil
	}
	return json.Marshal(it)
}

// Scan decodes a JSONB column into the itinerary.
func (it *Itinerary) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("itinerary: unsupported scan type %T", src)
	}
	return json.Unmarshal(raw, it)
}
