// Package restapi provides the main router and initialization for REST API endpoints.
package restapi

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"

	"github.com/portview/portview-backend/database"
	"github.com/portview/portview-backend/internal/scoring"
	"github.com/portview/portview-backend/internal/services"
	"github.com/portview/portview-backend/restapi/modules/applications"
	"github.com/portview/portview-backend/restapi/modules/frameworks"
	"github.com/portview/portview-backend/restapi/modules/taskgen"
	"github.com/portview/portview-backend/restapi/modules/tasks"
)

// SetupRoutes configures all REST API routes and the GraphQL endpoint.
func SetupRoutes(app *fiber.App, db database.DBConnection, schema graphql.Schema, events services.EventPublisher, feed services.FeedClient) {
	taskService := &services.TaskService{DB: db, Events: events}
	healthService := &services.HealthService{
		DB:         db,
		Calculator: scoring.NewCalculator(),
		Tasks:      taskService,
		Events:     events,
	}
	taskGenService := &services.TaskGenService{DB: db, Tasks: taskService, Health: healthService}
	eolService := services.NewEolService(db, feed, nil)

	// API Group /api/v1
	api := app.Group("/api/v1")

	// GraphQL Route - Mounted within the api group to inherit path prefixes
	api.Post("/graphql", GraphQLHandler(schema))

	// Portfolio
	appGroup := api.Group("/applications")
	appGroup.Get("/", applications.ListApplications(healthService))
	appGroup.Post("/health/recompute", applications.RecomputeAll(healthService))
	appGroup.Get("/:key", applications.GetApplication(healthService))
	appGroup.Get("/:key/health", applications.GetHealth(healthService))
	appGroup.Get("/:key/tasks", tasks.ListForApplication(taskService))

	// Lifecycle tasks
	taskGroup := api.Group("/tasks")
	taskGroup.Get("/", tasks.ListTasks(taskService))
	taskGroup.Get("/:key", tasks.GetTask(taskService))
	taskGroup.Patch("/:key/status", tasks.UpdateStatus(taskService))

	// Rule evaluation
	genGroup := api.Group("/taskgen")
	genGroup.Post("/run", taskgen.RunNow(taskGenService))
	genGroup.Post("/run/:key", taskgen.RunForApplication(taskGenService))
	genGroup.Get("/config", taskgen.GetConfig(taskGenService))
	genGroup.Put("/config", taskgen.PutConfig(taskGenService))

	// Framework lifecycle
	api.Get("/frameworks", frameworks.ListVersions(eolService))
	eolGroup := api.Group("/eol")
	eolGroup.Post("/refresh", frameworks.RefreshAll(eolService))
	eolGroup.Post("/refresh/:family", frameworks.RefreshFamily(eolService))

	log.Println("API routes initialized successfully")
}
