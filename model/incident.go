// Package model - incident history consumed by the health score calculator.
package model

import "time"

// Incident is a closed or open production incident attributed to an
// application, as mirrored from the ticketing system.
type Incident struct {
	Key            string     `json:"_key,omitempty"`
	ApplicationKey string     `json:"application_key"`
	Number         string     `json:"number,omitempty"`
	OpenedAt       time.Time  `json:"opened_at"`
	ResolvedAt     *time.Time `json:"resolved_at,omitempty"`
	CloseCode      string     `json:"close_code,omitempty"`
	ObjType        string     `json:"objtype,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// NewIncident creates an incident record with default values.
func NewIncident(applicationKey string, openedAt time.Time) *Incident {
	return &Incident{
		ApplicationKey: applicationKey,
		OpenedAt:       openedAt,
		ObjType:        "Incident",
		CreatedAt:      time.Now().UTC(),
	}
}
