// Package graphql assembles the root schema from the module query fields.
package graphql

import (
	"github.com/graphql-go/graphql"

	"github.com/portview/portview-backend/database"
	"github.com/portview/portview-backend/graphql/modules/portfolio"
)

var dbConn database.DBConnection

// InitDB stores the database connection used by the resolvers.
func InitDB(db database.DBConnection) {
	dbConn = db
}

// CreateSchema builds the root query schema.
func CreateSchema() (graphql.Schema, error) {
	fields := graphql.Fields{}
	for name, field := range portfolio.GetQueryFields(dbConn) {
		fields[name] = field
	}

	rootQuery := graphql.NewObject(graphql.ObjectConfig{
		Name:   "Query",
		Fields: fields,
	})

	return graphql.NewSchema(graphql.SchemaConfig{Query: rootQuery})
}
