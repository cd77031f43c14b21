// Package portfolio implements the resolvers for portfolio dashboard metrics.
package portfolio

import (
	"context"

	"github.com/arangodb/go-driver/v2/arangodb"

	"github.com/portview/portview-backend/database"
)

// ResolveOverview handles fetching the high-level portfolio metrics
func ResolveOverview(db database.DBConnection) (interface{}, error) {
	ctx := context.Background()

	query := `
		LET scores = (FOR a IN application RETURN a.health_score)
		LET open = (
			FOR t IN lifecycle_task
				FILTER t.status NOT IN ["Completed", "Cancelled"]
				RETURN t
		)
		LET overdue = (
			FOR t IN open
				FILTER t.due_date != null AND DATE_TIMESTAMP(t.due_date) < DATE_NOW()
				RETURN 1
		)
		RETURN {
			total_applications: LENGTH(scores),
			average_score: LENGTH(scores) == 0 ? 0 : AVERAGE(scores),
			open_tasks: LENGTH(open),
			overdue_tasks: LENGTH(overdue)
		}
	`

	cursor, err := db.Database.Query(ctx, query, &arangodb.QueryOptions{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close()

	var result map[string]interface{}
	if cursor.HasMore() {
		if _, err := cursor.ReadDocument(ctx, &result); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// ResolveHealthDistribution counts applications per health category
func ResolveHealthDistribution(db database.DBConnection) (interface{}, error) {
	ctx := context.Background()

	query := `
		FOR a IN application
			COLLECT category = a.health_category WITH COUNT INTO n
			RETURN { category: category, count: n }
	`

	cursor, err := db.Database.Query(ctx, query, &arangodb.QueryOptions{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close()

	dist := map[string]interface{}{
		"healthy":         0,
		"needs_attention": 0,
		"at_risk":         0,
		"critical":        0,
		"unscored":        0,
	}

	for cursor.HasMore() {
		var row struct {
			Category string `json:"category"`
			Count    int    `json:"count"`
		}
		if _, err := cursor.ReadDocument(ctx, &row); err != nil {
			return nil, err
		}
		switch row.Category {
		case "Healthy":
			dist["healthy"] = row.Count
		case "NeedsAttention":
			dist["needs_attention"] = row.Count
		case "AtRisk":
			dist["at_risk"] = row.Count
		case "Critical":
			dist["critical"] = row.Count
		default:
			dist["unscored"] = dist["unscored"].(int) + row.Count
		}
	}
	return dist, nil
}

// ResolveOpenTasksByType counts non-terminal tasks per task type
func ResolveOpenTasksByType(db database.DBConnection) (interface{}, error) {
	ctx := context.Background()

	query := `
		FOR t IN lifecycle_task
			FILTER t.status NOT IN ["Completed", "Cancelled"]
			COLLECT type = t.type WITH COUNT INTO n
			SORT n DESC
			RETURN { type: type, count: n }
	`

	cursor, err := db.Database.Query(ctx, query, &arangodb.QueryOptions{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close()

	var rows []map[string]interface{}
	for cursor.HasMore() {
		var row map[string]interface{}
		if _, err := cursor.ReadDocument(ctx, &row); err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ResolveSeverityDistribution counts unresolved findings per severity
func ResolveSeverityDistribution(db database.DBConnection) (interface{}, error) {
	ctx := context.Background()

	query := `
		FOR a IN application
			FOR f IN (a.security_findings != null ? a.security_findings : [])
				FILTER f.resolved == false
				COLLECT severity = f.severity WITH COUNT INTO n
				RETURN { severity: severity, count: n }
	`

	cursor, err := db.Database.Query(ctx, query, &arangodb.QueryOptions{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close()

	dist := map[string]interface{}{"critical": 0, "high": 0, "medium": 0, "low": 0}
	for cursor.HasMore() {
		var row struct {
			Severity string `json:"severity"`
			Count    int    `json:"count"`
		}
		if _, err := cursor.ReadDocument(ctx, &row); err != nil {
			return nil, err
		}
		switch row.Severity {
		case "Critical":
			dist["critical"] = row.Count
		case "High":
			dist["high"] = row.Count
		case "Medium":
			dist["medium"] = row.Count
		case "Low":
			dist["low"] = row.Count
		}
	}
	return dist, nil
}

// ResolveEolExposure summarizes stored framework cycles per lifecycle status
// and lists the end-of-life cycles, soonest-expired first.
func ResolveEolExposure(db database.DBConnection, limit int) (interface{}, error) {
	ctx := context.Background()

	countQuery := `
		FOR f IN framework_version
			COLLECT status = f.status WITH COUNT INTO n
			RETURN { status: status, count: n }
	`

	cursor, err := db.Database.Query(ctx, countQuery, &arangodb.QueryOptions{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close()

	exposure := map[string]interface{}{
		"active":      0,
		"maintenance": 0,
		"end_of_life": 0,
		"unknown":     0,
	}
	for cursor.HasMore() {
		var row struct {
			Status string `json:"status"`
			Count  int    `json:"count"`
		}
		if _, err := cursor.ReadDocument(ctx, &row); err != nil {
			return nil, err
		}
		switch row.Status {
		case "Active":
			exposure["active"] = row.Count
		case "Maintenance":
			exposure["maintenance"] = row.Count
		case "EndOfLife":
			exposure["end_of_life"] = row.Count
		default:
			exposure["unknown"] = exposure["unknown"].(int) + row.Count
		}
	}

	listQuery := `
		FOR f IN framework_version
			FILTER f.status == "EndOfLife"
			SORT f.end_of_life_date DESC
			LIMIT @limit
			RETURN {
				framework: f.framework,
				version: f.version,
				end_of_life_date: f.end_of_life_date
			}
	`
	listCursor, err := db.Database.Query(ctx, listQuery, &arangodb.QueryOptions{
		BindVars: map[string]interface{}{"limit": limit},
	})
	if err != nil {
		return nil, err
	}
	defer listCursor.Close()

	var eolVersions []map[string]interface{}
	for listCursor.HasMore() {
		var row map[string]interface{}
		if _, err := listCursor.ReadDocument(ctx, &row); err != nil {
			return nil, err
		}
		eolVersions = append(eolVersions, row)
	}
	exposure["eol_versions"] = eolVersions

	return exposure, nil
}
