package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/arangodb/go-driver/v2/arangodb"

	"github.com/portview/portview-backend/database"
	"github.com/portview/portview-backend/internal/eol"
	"github.com/portview/portview-backend/model"
	"github.com/portview/portview-backend/util"
)

// FeedClient is the fetch side of the EOL refresh, satisfied by eol.Client.
type FeedClient interface {
	FetchFamily(ctx context.Context, family string) ([]eol.FeedEntry, error)
}

// EolService reconciles the external end-of-life feed into the framework
// version collection.
type EolService struct {
	DB       database.DBConnection
	Client   FeedClient
	Families []string
}

// NewEolService builds the service with the family list taken from the
// EOL_FAMILIES env var (comma-separated) when families is empty.
func NewEolService(db database.DBConnection, client FeedClient, families []string) *EolService {
	if len(families) == 0 {
		raw := util.GetEnvDefault("EOL_FAMILIES", "")
		for _, f := range strings.Split(raw, ",") {
			if util.IsNotEmpty(f) {
				families = append(families, strings.TrimSpace(f))
			}
		}
	}
	return &EolService{DB: db, Client: client, Families: families}
}

// FamilyRefresh summarizes one family's reconciliation.
type FamilyRefresh struct {
	Family    string   `json:"family"`
	Added     int      `json:"added"`
	Updated   int      `json:"updated"`
	Unchanged int      `json:"unchanged"`
	Errors    []string `json:"errors,omitempty"`
}

// RefreshResult aggregates a full refresh across families. Failed counts
// families whose fetch failed outright; their names land in Errors.
type RefreshResult struct {
	Families []FamilyRefresh `json:"families"`
	Failed   int             `json:"failed"`
	Errors   []string        `json:"errors,omitempty"`
}

// ListFrameworkVersions returns the stored records for one family, or all
// families when family is empty.
func (s *EolService) ListFrameworkVersions(ctx context.Context, family string) ([]model.FrameworkVersion, error) {
	query := `
		FOR f IN framework_version
			FILTER @family == "" OR f.framework == @family
			SORT f.framework ASC, f.version DESC
			RETURN f
	`
	cursor, err := s.DB.Database.Query(ctx, query, &arangodb.QueryOptions{
		BindVars: map[string]interface{}{"family": family},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close()

	var versions []model.FrameworkVersion
	for cursor.HasMore() {
		var fv model.FrameworkVersion
		if _, err := cursor.ReadDocument(ctx, &fv); err != nil {
			return nil, err
		}
		versions = append(versions, fv)
	}
	return versions, nil
}

// RefreshFamily fetches one family's feed, diffs it against the store, and
// applies the additions and updates.
func (s *EolService) RefreshFamily(ctx context.Context, family string) (FamilyRefresh, error) {
	entries, err := s.Client.FetchFamily(ctx, family)
	if err != nil {
		return FamilyRefresh{Family: family}, err
	}

	stored, err := s.ListFrameworkVersions(ctx, family)
	if err != nil {
		return FamilyRefresh{Family: family}, fmt.Errorf("load stored versions for %s: %w", family, err)
	}

	now := time.Now().UTC()
	diff := eol.Diff(family, entries, stored, now)

	refresh := FamilyRefresh{
		Family:    family,
		Unchanged: len(diff.Unchanged),
		Errors:    diff.Errors,
	}

	for _, added := range diff.Added {
		if _, err := s.DB.Collections[database.CollectionFrameworkVersion].CreateDocument(ctx, added); err != nil {
			refresh.Errors = append(refresh.Errors, fmt.Sprintf("insert %s %s: %v", family, added.Version, err))
			continue
		}
		refresh.Added++
	}

	for _, change := range diff.Updated {
		if _, err := s.DB.Collections[database.CollectionFrameworkVersion].ReplaceDocument(ctx, change.Before.Key, change.After); err != nil {
			refresh.Errors = append(refresh.Errors, fmt.Sprintf("update %s %s: %v", family, change.Before.Version, err))
			continue
		}
		logger.Infof("Framework %s %s: %s", family, change.Before.Version, change.Description)
		refresh.Updated++
	}

	return refresh, nil
}

// RefreshAll reconciles every configured family. One family failing never
// stops the others; the result carries the partial outcome.
func (s *EolService) RefreshAll(ctx context.Context) RefreshResult {
	var result RefreshResult

	for _, family := range s.Families {
		refresh, err := s.RefreshFamily(ctx, family)
		if err != nil {
			logger.Errorf("EOL refresh failed for family %s: %v", family, err)
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", family, err))
			continue
		}
		result.Families = append(result.Families, refresh)
	}

	logger.Infof("EOL refresh complete: %d families refreshed, %d failed", len(result.Families), result.Failed)
	return result
}
