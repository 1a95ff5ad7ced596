package model

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// FlexibleID handles both string and number IDs in exported data.
// Exports from the hosted backend use UUID strings, hand-written
// fixtures often use plain numbers; both are stored as strings.
type FlexibleID string

// UnmarshalJSON implements json.Unmarshaler for FlexibleID
func (f *FlexibleID) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*f = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = FlexibleID(s)
		return nil
	}

	var n int64
	if err := json.Unmarshal(b, &n); err == nil {
		*f = FlexibleID(strconv.FormatInt(n, 10))
		return nil
	}

	return fmt.Errorf("FlexibleID: cannot unmarshal %s", string(b))
}

// String returns string representation
func (f FlexibleID) String() string {
	return string(f)
}

// Client represents a billable customer or project
type Client struct {
	ID    FlexibleID `json:"id"`
	Name  string     `json:"name"`
	Color string     `json:"color"`
}

// TimeEntry represents hours logged against a client on a calendar day
type TimeEntry struct {
	ID          FlexibleID `json:"id"`
	ClientID    FlexibleID `json:"client_id"`
	Date        string     `json:"date"` // YYYY-MM-DD
	Hours       float64    `json:"hours"`
	Description *string    `json:"description,omitempty"`
}

// DescriptionText returns the description or an empty string
func (e TimeEntry) DescriptionText() string {
	if e.Description == nil {
		return ""
	}
	return *e.Description
}
