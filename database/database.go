// Package database - Handles all interaction with ArangoDB
package database

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/arangodb/go-driver/v2/arangodb"
	"github.com/arangodb/go-driver/v2/connection"
	"github.com/cenkalti/backoff"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/portview/portview-backend/model"
)

var logger = InitLogger() // setup the logger

// Collection names used across the backend.
const (
	CollectionApplication      = "application"
	CollectionLifecycleTask    = "lifecycle_task"
	CollectionFrameworkVersion = "framework_version"
	CollectionIncident         = "incident"
	CollectionTaskConfig       = "task_config"
)

// DBConnection is the structure that defined the database engine and collections
type DBConnection struct {
	Collections map[string]arangodb.Collection
	Database    arangodb.Database
}

// Define a struct to hold the index definition
type indexConfig struct {
	Collection string
	IdxName    string
	IdxField   string
}

var initDone = false          // has the data been initialized
var dbConnection DBConnection // database connection definition

// GetEnvDefault is a convenience function for handling env vars
func GetEnvDefault(key, defVal string) string {
	val, ex := os.LookupEnv(key) // get the env var
	if !ex {                     // not found return default
		return defVal
	}
	return val // return value for env var
}

// InitLogger sets up the Zap Logger to log to the console in a human readable format
func InitLogger() *zap.Logger {
	prodConfig := zap.NewProductionConfig()
	prodConfig.Encoding = "console"
	prodConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	prodConfig.EncoderConfig.EncodeDuration = zapcore.StringDurationEncoder
	logger, _ := prodConfig.Build()
	return logger
}

func dbConnectionConfig(endpoint connection.Endpoint, dbuser string, dbpass string) connection.HttpConfiguration {
	return connection.HttpConfiguration{
		Authentication: connection.NewBasicAuth(dbuser, dbpass),
		Endpoint:       endpoint,
		ContentType:    connection.ApplicationJSON,
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{
				InsecureSkipVerify: true, // #nosec G402
			},
			DialContext: (&net.Dialer{
				Timeout:   30 * time.Second,
				KeepAlive: 90 * time.Second,
			}).DialContext,
			MaxIdleConns:          100,
			IdleConnTimeout:       90 * time.Second,
			TLSHandshakeTimeout:   10 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,
		},
	}
}

// InitializeDatabase is the function for connecting to the db engine, creating the database and collections
func InitializeDatabase() DBConnection {
	const initialInterval = 10 * time.Second
	const maxInterval = 2 * time.Minute

	var db arangodb.Database
	var collections map[string]arangodb.Collection
	const databaseName = "portview"

	ctx := context.Background()

	if initDone {
		return dbConnection
	}

	False := false
	True := true
	dbhost := GetEnvDefault("ARANGO_HOST", "localhost")
	dbport := GetEnvDefault("ARANGO_PORT", "8529")
	dbuser := GetEnvDefault("ARANGO_USER", "root")
	dbpass := GetEnvDefault("ARANGO_PASS", "mypassword")
	dburl := GetEnvDefault("ARANGO_URL", "http://"+dbhost+":"+dbport)

	var client arangodb.Client

	//
	// Database connection with backoff retry
	//

	// Configure exponential backoff
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = initialInterval
	bo.MaxInterval = maxInterval
	bo.MaxElapsedTime = 0 // Set to 0 for indefinite retries

	// Retry logic
	err := backoff.RetryNotify(func() error {
		fmt.Println("Attempting to connect to ArangoDB")
		endpoint := connection.NewRoundRobinEndpoints([]string{dburl})
		conn := connection.NewHttpConnection(dbConnectionConfig(endpoint, dbuser, dbpass))

		client = arangodb.NewClient(conn)

		// Ask the version of the server
		versionInfo, err := client.Version(context.Background())
		if err != nil {
			return err
		}

		logger.Sugar().Infof("Database has version '%s' and license '%s'\n", versionInfo.Version, versionInfo.License)
		return nil

	}, bo, func(err error, _ time.Duration) {
		fmt.Printf("Retrying connection to ArangoDB: %v\n", err)
	})

	if err != nil {
		logger.Sugar().Fatalf("Backoff Error %v\n", err)
	}

	//
	// Database creation
	//

	exists := false
	dblist, _ := client.Databases(ctx)

	for _, dbinfo := range dblist {
		if dbinfo.Name() == databaseName {
			exists = true
			break
		}
	}

	if exists {
		var options arangodb.GetDatabaseOptions
		if db, err = client.GetDatabase(ctx, databaseName, &options); err != nil {
			logger.Sugar().Fatalf("Failed to get Database: %v", err)
		}
	} else {
		if db, err = client.CreateDatabase(ctx, databaseName, nil); err != nil {
			logger.Sugar().Fatalf("Failed to create Database: %v", err)
		}
	}

	//
	// Collection creation for document storage
	//

	collections = make(map[string]arangodb.Collection)
	collectionNames := []string{
		CollectionApplication,
		CollectionLifecycleTask,
		CollectionFrameworkVersion,
		CollectionIncident,
		CollectionTaskConfig,
	}

	for _, collectionName := range collectionNames {
		var col arangodb.Collection

		exists, _ = db.CollectionExists(ctx, collectionName)
		if exists {
			var options arangodb.GetCollectionOptions
			if col, err = db.GetCollection(ctx, collectionName, &options); err != nil {
				logger.Sugar().Fatalf("Failed to use collection: %v", err)
			}
		} else {
			if col, err = db.CreateCollection(ctx, collectionName, nil); err != nil {
				logger.Sugar().Fatalf("Failed to create collection: %v", err)
			}
		}

		collections[collectionName] = col
	}

	//
	// Index creation for document collections
	//

	idxList := []indexConfig{
		// Application collection indexes
		{Collection: CollectionApplication, IdxName: "application_name", IdxField: "name"},
		{Collection: CollectionApplication, IdxName: "application_health_category", IdxField: "health_category"},
		{Collection: CollectionApplication, IdxName: "application_last_synced", IdxField: "last_synced_at"},

		// Lifecycle task indexes - the duplicate-suppression lookups filter
		// by application + type + status, with assignee or priority stacked on
		{Collection: CollectionLifecycleTask, IdxName: "task_application", IdxField: "application_key"},
		{Collection: CollectionLifecycleTask, IdxName: "task_type", IdxField: "type"},
		{Collection: CollectionLifecycleTask, IdxName: "task_status", IdxField: "status"},
		{Collection: CollectionLifecycleTask, IdxName: "task_assignee", IdxField: "assignee_user_id"},
		{Collection: CollectionLifecycleTask, IdxName: "task_priority", IdxField: "priority"},
		{Collection: CollectionLifecycleTask, IdxName: "task_due_date", IdxField: "due_date"},

		// Framework version indexes
		{Collection: CollectionFrameworkVersion, IdxName: "framework_family", IdxField: "framework"},
		{Collection: CollectionFrameworkVersion, IdxName: "framework_status", IdxField: "status"},
		{Collection: CollectionFrameworkVersion, IdxName: "framework_eol_date", IdxField: "end_of_life_date"},

		// Incident indexes for the 90-day window and close-code pattern scans
		{Collection: CollectionIncident, IdxName: "incident_application", IdxField: "application_key"},
		{Collection: CollectionIncident, IdxName: "incident_opened_at", IdxField: "opened_at"},
		{Collection: CollectionIncident, IdxName: "incident_close_code", IdxField: "close_code"},
	}

	for _, idx := range idxList {
		found := false

		if indexes, err := collections[idx.Collection].Indexes(ctx); err == nil {
			for _, index := range indexes {
				if idx.IdxName == index.Name {
					found = true
					break
				}
			}
		}

		if !found {
			// Define the index options
			indexOptions := arangodb.CreatePersistentIndexOptions{
				Unique: &False,
				Sparse: &False,
				Name:   idx.IdxName,
			}

			// Create the index
			_, _, err = collections[idx.Collection].EnsurePersistentIndex(ctx, []string{idx.IdxField}, &indexOptions)
			if err != nil {
				logger.Sugar().Fatalln("Error creating index:", err)
			} else {
				logger.Sugar().Infof("Created index: %s on %s.%s", idx.IdxName, idx.Collection, idx.IdxField)
			}
		}
	}

	//
	// Create composite indexes (multi-field indexes)
	//

	// Composite index covering the task idempotency lookup
	taskDedupIdx := "task_app_type_status"
	found := false
	if indexes, err := collections[CollectionLifecycleTask].Indexes(ctx); err == nil {
		for _, index := range indexes {
			if taskDedupIdx == index.Name {
				found = true
				break
			}
		}
	}
	if !found {
		compositeIdxOptions := arangodb.CreatePersistentIndexOptions{
			Unique: &False,
			Sparse: &False,
			Name:   taskDedupIdx,
		}
		_, _, err = collections[CollectionLifecycleTask].EnsurePersistentIndex(ctx, []string{"application_key", "type", "status"}, &compositeIdxOptions)
		if err != nil {
			logger.Sugar().Fatalln("Error creating composite index:", err)
		} else {
			logger.Sugar().Infof("Created composite index: %s on lifecycle_task", taskDedupIdx)
		}
	}

	// Unique index on framework family + version cycle
	frameworkUniqueIdx := "framework_family_version_unique"
	found = false
	if indexes, err := collections[CollectionFrameworkVersion].Indexes(ctx); err == nil {
		for _, index := range indexes {
			if frameworkUniqueIdx == index.Name {
				found = true
				break
			}
		}
	}
	if !found {
		uniqueIdxOptions := arangodb.CreatePersistentIndexOptions{
			Unique: &True,
			Sparse: &False,
			Name:   frameworkUniqueIdx,
		}
		_, _, err = collections[CollectionFrameworkVersion].EnsurePersistentIndex(ctx, []string{"framework", "version"}, &uniqueIdxOptions)
		if err != nil {
			logger.Sugar().Fatalln("Error creating unique index on framework_version:", err)
		} else {
			logger.Sugar().Infof("Created unique index: %s on framework_version", frameworkUniqueIdx)
		}
	}

	// Unique index on application name to prevent duplicates
	applicationUniqueIdx := "application_name_unique"
	found = false
	if indexes, err := collections[CollectionApplication].Indexes(ctx); err == nil {
		for _, index := range indexes {
			if applicationUniqueIdx == index.Name {
				found = true
				break
			}
		}
	}
	if !found {
		uniqueIdxOptions := arangodb.CreatePersistentIndexOptions{
			Unique: &True,
			Sparse: &False,
			Name:   applicationUniqueIdx,
		}
		_, _, err = collections[CollectionApplication].EnsurePersistentIndex(ctx, []string{"name"}, &uniqueIdxOptions)
		if err != nil {
			logger.Sugar().Fatalln("Error creating unique index on application name:", err)
		} else {
			logger.Sugar().Infof("Created unique index: %s on application", applicationUniqueIdx)
		}
	}

	// Composite index for incident window queries per application
	incidentWindowIdx := "incident_app_opened_at"
	found = false
	if indexes, err := collections[CollectionIncident].Indexes(ctx); err == nil {
		for _, index := range indexes {
			if incidentWindowIdx == index.Name {
				found = true
				break
			}
		}
	}
	if !found {
		compositeIdxOptions := arangodb.CreatePersistentIndexOptions{
			Unique: &False,
			Sparse: &False,
			Name:   incidentWindowIdx,
		}
		_, _, err = collections[CollectionIncident].EnsurePersistentIndex(ctx, []string{"application_key", "opened_at"}, &compositeIdxOptions)
		if err != nil {
			logger.Sugar().Fatalln("Error creating composite index:", err)
		} else {
			logger.Sugar().Infof("Created composite index: %s on incident", incidentWindowIdx)
		}
	}

	initDone = true

	dbConnection = DBConnection{
		Database:    db,
		Collections: collections,
	}

	logger.Sugar().Infof("Database initialization complete for portfolio health tracking")

	return dbConnection
}

// FindOpenTaskKey looks up a non-terminal task matching the duplicate
// suppression identity for its type. Assignee and priority are optional
// filters; pass "" to skip them. Returns "" when no open task matches.
func FindOpenTaskKey(ctx context.Context, db arangodb.Database, appKey string, taskType model.TaskType, assignee, priority string) (string, error) {
	query := `
		FOR t IN lifecycle_task
			FILTER t.application_key == @app
			   AND t.type == @type
			   AND t.status NOT IN ["Completed", "Cancelled"]
			   AND (@assignee == "" OR t.assignee_user_id == @assignee)
			   AND (@priority == "" OR t.priority == @priority)
			LIMIT 1
			RETURN t._key
	`
	bindVars := map[string]interface{}{
		"app":      appKey,
		"type":     string(taskType),
		"assignee": assignee,
		"priority": priority,
	}

	cursor, err := db.Query(ctx, query, &arangodb.QueryOptions{
		BindVars: bindVars,
	})
	if err != nil {
		return "", err
	}
	defer cursor.Close()

	if cursor.HasMore() {
		var key string
		_, err := cursor.ReadDocument(ctx, &key)
		if err != nil {
			return "", err
		}
		return key, nil
	}

	return "", nil
}

// FindFrameworkVersionKey checks if a framework cycle is already stored,
// matching the version label case-insensitively.
func FindFrameworkVersionKey(ctx context.Context, db arangodb.Database, family, version string) (string, error) {
	query := `
		FOR f IN framework_version
			FILTER f.framework == @family
			   AND LOWER(TRIM(f.version)) == LOWER(TRIM(@version))
			LIMIT 1
			RETURN f._key
	`
	bindVars := map[string]interface{}{
		"family":  family,
		"version": version,
	}

	cursor, err := db.Query(ctx, query, &arangodb.QueryOptions{
		BindVars: bindVars,
	})
	if err != nil {
		return "", err
	}
	defer cursor.Close()

	if cursor.HasMore() {
		var key string
		_, err := cursor.ReadDocument(ctx, &key)
		if err != nil {
			return "", err
		}
		return key, nil
	}

	return "", nil
}
