// Package model defines the data structures used by portview-backend,
// including applications, lifecycle tasks, framework versions, and incidents.
package model

import (
	"strings"
	"time"
)

// Severity classifies a security finding. The set is closed; code that
// branches on severity must handle every value explicitly.
type Severity string

const (
	// SeverityCritical represents findings requiring immediate remediation.
	SeverityCritical Severity = "Critical"
	// SeverityHigh represents findings requiring prompt remediation.
	SeverityHigh Severity = "High"
	// SeverityMedium represents findings to be scheduled into normal work.
	SeverityMedium Severity = "Medium"
	// SeverityLow represents informational or low-impact findings.
	SeverityLow Severity = "Low"
)

// ParseSeverity normalizes a severity string to one of the closed values.
// Unknown input maps to SeverityLow so a bad scanner record never escalates.
func ParseSeverity(s string) Severity {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "critical":
		return SeverityCritical
	case "high":
		return SeverityHigh
	case "medium", "moderate":
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// UsageLevel classifies how heavily an application is used, as reported by
// the internal usage database. A nil *UsageLevel means no usage data exists.
type UsageLevel string

const (
	UsageNone     UsageLevel = "None"
	UsageVeryLow  UsageLevel = "VeryLow"
	UsageLow      UsageLevel = "Low"
	UsageModerate UsageLevel = "Moderate"
	UsageHigh     UsageLevel = "High"
)

// RoleType identifies the function a user fills on an application.
type RoleType string

const (
	RoleOwner               RoleType = "Owner"
	RoleBusinessOwner       RoleType = "BusinessOwner"
	RoleProductManager      RoleType = "ProductManager"
	RoleFunctionalArchitect RoleType = "FunctionalArchitect"
	RoleTechnicalArchitect  RoleType = "TechnicalArchitect"
	RoleTechnicalLead       RoleType = "TechnicalLead"
	RoleSecurityChampion    RoleType = "SecurityChampion"
	RoleDeveloper           RoleType = "Developer"
)

// SecurityFinding is an immutable fact ingested from a scanner. Resolution is
// a status flip owned by the scanner adapter, never by the rules engine.
type SecurityFinding struct {
	Key      string   `json:"_key,omitempty"`
	Severity Severity `json:"severity"`
	Title    string   `json:"title,omitempty"`
	Resolved bool     `json:"resolved"`
	FilePath string   `json:"file_path,omitempty"`
	Line     int      `json:"line,omitempty"`
}

// RoleAssignment links a user to a role on an application.
type RoleAssignment struct {
	UserID            string     `json:"user_id"`
	UserName          string     `json:"user_name,omitempty"`
	Role              RoleType   `json:"role"`
	AssignedDate      time.Time  `json:"assigned_date"`
	LastValidatedDate *time.Time `json:"last_validated_date,omitempty"`
	NeedsRevalidation bool       `json:"needs_revalidation"`
}

// LastValidated returns the effective validation timestamp for the
// assignment: the explicit validation date when present, otherwise the
// assignment date.
func (r RoleAssignment) LastValidated() time.Time {
	if r.LastValidatedDate != nil {
		return *r.LastValidatedDate
	}
	return r.AssignedDate
}

// Documentation holds the completeness flags tracked per application.
type Documentation struct {
	HasArchitectureDiagram  bool `json:"has_architecture_diagram"`
	HasSystemDocumentation  bool `json:"has_system_documentation"`
	HasUserDocumentation    bool `json:"has_user_documentation"`
	HasSupportDocumentation bool `json:"has_support_documentation"`
}

// CompletenessScore returns the percentage of documentation flags set.
func (d Documentation) CompletenessScore() int {
	present := 0
	for _, flag := range []bool{
		d.HasArchitectureDiagram,
		d.HasSystemDocumentation,
		d.HasUserDocumentation,
		d.HasSupportDocumentation,
	} {
		if flag {
			present++
		}
	}
	return present * 100 / 4
}

// KeyDate is a dated milestone attached to an application, such as a
// completed audit or a planned decommission.
type KeyDate struct {
	Type        string    `json:"type"` // e.g. "audit", "review", "go-live"
	Description string    `json:"description,omitempty"`
	Date        time.Time `json:"date"`
}

// Repository describes the source-control signals consumed by the engine.
// The repository adapter that populates it is an external collaborator.
type Repository struct {
	URL               string `json:"url,omitempty"`
	HasReadme         bool   `json:"has_readme"`
	ReadmeQualityGood bool   `json:"readme_quality_good"`
	HasExposedSecrets bool   `json:"has_exposed_secrets"`
}

// Application is a portfolio entry. The rules engine only reads it; all
// mutation happens through explicit store operations.
type Application struct {
	Key              string            `json:"_key,omitempty"`
	Name             string            `json:"name"`
	HealthScore      int               `json:"health_score"`
	HealthCategory   HealthCategory    `json:"health_category,omitempty"`
	SecurityFindings []SecurityFinding `json:"security_findings,omitempty"`
	Usage            *UsageLevel       `json:"usage,omitempty"`
	LastActivityDate *time.Time        `json:"last_activity_date,omitempty"`
	Documentation    Documentation     `json:"documentation"`
	RoleAssignments  []RoleAssignment  `json:"role_assignments,omitempty"`
	KeyDates         []KeyDate         `json:"key_dates,omitempty"`
	Repository       *Repository       `json:"repository,omitempty"`
	LastSyncedAt     *time.Time        `json:"last_synced_at,omitempty"`
	HasDataConflicts bool              `json:"has_data_conflicts"`
	ObjType          string            `json:"objtype,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

// NewApplication creates a new Application with default values.
func NewApplication(name string) *Application {
	now := time.Now().UTC()
	return &Application{
		Name:      name,
		ObjType:   "Application",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// UnresolvedFindings returns the findings still awaiting remediation.
func (a *Application) UnresolvedFindings() []SecurityFinding {
	var open []SecurityFinding
	for _, f := range a.SecurityFindings {
		if !f.Resolved {
			open = append(open, f)
		}
	}
	return open
}

// RolesOfType returns all assignments matching the given role.
func (a *Application) RolesOfType(role RoleType) []RoleAssignment {
	var matched []RoleAssignment
	for _, ra := range a.RoleAssignments {
		if ra.Role == role {
			matched = append(matched, ra)
		}
	}
	return matched
}
