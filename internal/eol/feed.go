// Package eol reconciles the external framework end-of-life feed against the
// stored framework version records. The feed's `eol` and `support` fields
// arrive as an ISO date, a boolean, or nothing at all; they are normalized
// into an explicit three-case edge at the parse boundary so the mapping and
// diff logic never touches a raw dynamic value.
package eol

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const feedDateLayout = "2006-01-02"

// EdgeKind is the normalized state of a lifecycle boundary field.
type EdgeKind int

const (
	// EdgeUnknown means the feed carried no value for the field.
	EdgeUnknown EdgeKind = iota
	// EdgeDate means the boundary falls on a known date.
	EdgeDate
	// EdgeIndefinite means no boundary is scheduled.
	EdgeIndefinite
	// EdgePassed means the boundary has already been crossed, date unknown.
	EdgePassed
)

// LifecycleEdge is the tagged variant for a lifecycle boundary. Date is only
// meaningful when Kind is EdgeDate.
type LifecycleEdge struct {
	Kind EdgeKind
	Date time.Time
}

// parseEdge decodes a date-or-boolean field, mapping the two boolean values
// to the kinds the enclosing field dictates.
func parseEdge(data []byte, trueKind, falseKind EdgeKind) (LifecycleEdge, error) {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		return LifecycleEdge{Kind: EdgeUnknown}, nil
	}

	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		if b {
			return LifecycleEdge{Kind: trueKind}, nil
		}
		return LifecycleEdge{Kind: falseKind}, nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return LifecycleEdge{}, fmt.Errorf("lifecycle field is neither date nor boolean: %s", trimmed)
	}
	parsed, err := time.Parse(feedDateLayout, s)
	if err != nil {
		return LifecycleEdge{}, fmt.Errorf("invalid lifecycle date %q: %w", s, err)
	}
	return LifecycleEdge{Kind: EdgeDate, Date: parsed}, nil
}

// EolField is the `eol` feed field. Boolean true means the cycle is already
// end-of-life; false means no end-of-life is scheduled.
type EolField struct {
	LifecycleEdge
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *EolField) UnmarshalJSON(data []byte) error {
	edge, err := parseEdge(data, EdgePassed, EdgeIndefinite)
	if err != nil {
		return fmt.Errorf("eol: %w", err)
	}
	f.LifecycleEdge = edge
	return nil
}

// SupportField is the `support` feed field. Boolean true means active
// support is ongoing; false means active support has already ended.
type SupportField struct {
	LifecycleEdge
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *SupportField) UnmarshalJSON(data []byte) error {
	edge, err := parseEdge(data, EdgeIndefinite, EdgePassed)
	if err != nil {
		return fmt.Errorf("support: %w", err)
	}
	f.LifecycleEdge = edge
	return nil
}

// LtsFlag tolerates the feed's two LTS encodings: a plain boolean, or the
// date the cycle entered LTS (which implies true).
type LtsFlag bool

// UnmarshalJSON implements json.Unmarshaler.
func (f *LtsFlag) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		*f = false
		return nil
	}

	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*f = LtsFlag(b)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("lts is neither boolean nor date: %s", trimmed)
	}
	*f = s != ""
	return nil
}

// FeedDate is a plain ISO date field.
type FeedDate struct {
	time.Time
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *FeedDate) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		d.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("release date is not a string: %s", trimmed)
	}
	parsed, err := time.Parse(feedDateLayout, s)
	if err != nil {
		return fmt.Errorf("invalid release date %q: %w", s, err)
	}
	d.Time = parsed
	return nil
}

// Cycle tolerates numeric cycle labels (e.g. 8 instead of "8").
type Cycle string

// UnmarshalJSON implements json.Unmarshaler.
func (c *Cycle) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*c = Cycle(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("cycle is neither string nor number: %s", string(data))
	}
	*c = Cycle(n.String())
	return nil
}

// FeedEntry is one release cycle as published by the external feed. This is
// the only externally versioned wire shape the engine parses directly.
type FeedEntry struct {
	Cycle       Cycle        `json:"cycle"`
	ReleaseDate *FeedDate    `json:"releaseDate,omitempty"`
	EOL         EolField     `json:"eol"`
	Support     SupportField `json:"support"`
	LTS         LtsFlag      `json:"lts"`
	Latest      string       `json:"latest,omitempty"`
}
