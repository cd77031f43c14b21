// Package portfolio defines the GraphQL queries for the portfolio dashboard.
package portfolio

import (
	"github.com/graphql-go/graphql"

	"github.com/portview/portview-backend/database"
)

// GetQueryFields returns the portfolio queries to be mounted in the root schema
func GetQueryFields(db database.DBConnection) graphql.Fields {
	return graphql.Fields{
		// Top cards
		"portfolioOverview": &graphql.Field{
			Type: PortfolioOverviewType,
			Resolve: func(_ graphql.ResolveParams) (interface{}, error) {
				return ResolveOverview(db)
			},
		},
		// Health category pie chart
		"healthDistribution": &graphql.Field{
			Type: HealthDistributionType,
			Resolve: func(_ graphql.ResolveParams) (interface{}, error) {
				return ResolveHealthDistribution(db)
			},
		},
		// Open workload per task type
		"openTasksByType": &graphql.Field{
			Type: graphql.NewList(TaskTypeCountType),
			Resolve: func(_ graphql.ResolveParams) (interface{}, error) {
				return ResolveOpenTasksByType(db)
			},
		},
		// Unresolved security findings across the portfolio
		"severityDistribution": &graphql.Field{
			Type: SeverityDistributionType,
			Resolve: func(_ graphql.ResolveParams) (interface{}, error) {
				return ResolveSeverityDistribution(db)
			},
		},
		// Framework end-of-life posture
		"eolExposure": &graphql.Field{
			Type: EolExposureType,
			Args: graphql.FieldConfigArgument{
				"limit": &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 20},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				limit := p.Args["limit"].(int)
				return ResolveEolExposure(db, limit)
			},
		},
	}
}
