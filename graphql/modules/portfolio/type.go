// Package portfolio defines the GraphQL types for the portfolio dashboard.
package portfolio

import (
	"github.com/graphql-go/graphql"
)

// PortfolioOverviewType represents the high-level metrics for the top cards
var PortfolioOverviewType = graphql.NewObject(graphql.ObjectConfig{
	Name: "PortfolioOverview",
	Fields: graphql.Fields{
		"total_applications": &graphql.Field{Type: graphql.Int},
		"average_score":      &graphql.Field{Type: graphql.Float},
		"open_tasks":         &graphql.Field{Type: graphql.Int},
		"overdue_tasks":      &graphql.Field{Type: graphql.Int},
	},
})

// HealthDistributionType represents application counts per health category
var HealthDistributionType = graphql.NewObject(graphql.ObjectConfig{
	Name: "HealthDistribution",
	Fields: graphql.Fields{
		"healthy":         &graphql.Field{Type: graphql.Int},
		"needs_attention": &graphql.Field{Type: graphql.Int},
		"at_risk":         &graphql.Field{Type: graphql.Int},
		"critical":        &graphql.Field{Type: graphql.Int},
		"unscored":        &graphql.Field{Type: graphql.Int},
	},
})

// TaskTypeCountType represents open task counts for one task type
var TaskTypeCountType = graphql.NewObject(graphql.ObjectConfig{
	Name: "TaskTypeCount",
	Fields: graphql.Fields{
		"type":  &graphql.Field{Type: graphql.String},
		"count": &graphql.Field{Type: graphql.Int},
	},
})

// SeverityDistributionType represents unresolved finding counts per severity
var SeverityDistributionType = graphql.NewObject(graphql.ObjectConfig{
	Name: "SeverityDistribution",
	Fields: graphql.Fields{
		"critical": &graphql.Field{Type: graphql.Int},
		"high":     &graphql.Field{Type: graphql.Int},
		"medium":   &graphql.Field{Type: graphql.Int},
		"low":      &graphql.Field{Type: graphql.Int},
	},
})

// EolVersionType represents one framework cycle already past end-of-life
var EolVersionType = graphql.NewObject(graphql.ObjectConfig{
	Name: "EolVersion",
	Fields: graphql.Fields{
		"framework":        &graphql.Field{Type: graphql.String},
		"version":          &graphql.Field{Type: graphql.String},
		"end_of_life_date": &graphql.Field{Type: graphql.String},
	},
})

// EolExposureType represents the portfolio's framework lifecycle posture
var EolExposureType = graphql.NewObject(graphql.ObjectConfig{
	Name: "EolExposure",
	Fields: graphql.Fields{
		"active":       &graphql.Field{Type: graphql.Int},
		"maintenance":  &graphql.Field{Type: graphql.Int},
		"end_of_life":  &graphql.Field{Type: graphql.Int},
		"unknown":      &graphql.Field{Type: graphql.Int},
		"eol_versions": &graphql.Field{Type: graphql.NewList(EolVersionType)},
	},
})
