package taskgen

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/portview/portview-backend/model"
)

var testNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func testConfig() model.TaskGenerationConfig {
	cfg := model.DefaultTaskGenerationConfig()
	cfg.RoleRevalidationDays = 180
	cfg.DocumentationReviewDays = 365
	cfg.ApplicationInfoReviewDays = 365
	return cfg
}

func assignment(userID string, role model.RoleType, validatedDaysAgo int) model.RoleAssignment {
	validated := testNow.AddDate(0, 0, -validatedDaysAgo)
	return model.RoleAssignment{
		UserID:            userID,
		UserName:          userID,
		Role:              role,
		AssignedDate:      testNow.AddDate(0, 0, -400),
		LastValidatedDate: &validated,
	}
}

// freshApp returns an application that triggers no rule on its own: all
// roles recently validated, documentation recently reviewed, facts recently
// synced, and no findings.
func freshApp(key string) *model.Application {
	app := model.NewApplication(key)
	app.Key = key
	app.RoleAssignments = []model.RoleAssignment{
		assignment("alice", model.RoleOwner, 10),
		assignment("bob", model.RoleTechnicalLead, 10),
	}
	app.KeyDates = []model.KeyDate{
		{Type: "review", Description: "annual documentation review", Date: testNow.AddDate(0, 0, -30)},
		{Type: "audit", Date: testNow.AddDate(0, 0, -30)},
	}
	synced := testNow.AddDate(0, 0, -5)
	app.LastSyncedAt = &synced
	return app
}

func TestRun_DisabledConfigShortCircuits(t *testing.T) {
	cfg := testConfig()
	cfg.Enabled = false

	app := model.NewApplication("anything")
	app.Key = "anything"
	app.RoleAssignments = []model.RoleAssignment{assignment("alice", model.RoleOwner, 400)}

	result := NewEvaluator(cfg).Run([]model.Application{*app}, nil, testNow)

	assert.Zero(t, result.Created)
	assert.Zero(t, result.Skipped)
	assert.Zero(t, result.ApplicationsProcessed)
	assert.Empty(t, result.Errors)
	assert.NotEmpty(t, result.Note)
}

func TestRoleRevalidation_StaleAssignmentCreatesTask(t *testing.T) {
	app := freshApp("crm")
	app.RoleAssignments = []model.RoleAssignment{assignment("alice", model.RoleOwner, 200)}

	result := NewEvaluator(testConfig()).RunForApplication(app, nil, testNow)

	require.Equal(t, 1, result.CreatedByType[model.TaskTypeRoleValidation])
	var task model.LifecycleTask
	for _, candidate := range result.Tasks {
		if candidate.Type == model.TaskTypeRoleValidation {
			task = candidate
		}
	}
	assert.Equal(t, "alice", task.AssigneeUserID)
	assert.Equal(t, model.TaskPriorityMedium, task.Priority)
	assert.Equal(t, testNow.AddDate(0, 0, 30), task.DueDate)
	assert.Equal(t, model.TaskStatusPending, task.Status)
}

func TestRoleRevalidation_RecentValidationSkips(t *testing.T) {
	app := freshApp("crm")

	result := NewEvaluator(testConfig()).RunForApplication(app, nil, testNow)

	assert.Zero(t, result.CreatedByType[model.TaskTypeRoleValidation])
}

func TestRoleRevalidation_ExplicitFlagOverridesRecency(t *testing.T) {
	app := freshApp("crm")
	flagged := assignment("alice", model.RoleOwner, 10)
	flagged.NeedsRevalidation = true
	app.RoleAssignments = []model.RoleAssignment{flagged}

	result := NewEvaluator(testConfig()).RunForApplication(app, nil, testNow)

	assert.Equal(t, 1, result.CreatedByType[model.TaskTypeRoleValidation])
}

func TestRoleRevalidation_FallsBackToAssignedDate(t *testing.T) {
	app := freshApp("crm")
	never := model.RoleAssignment{
		UserID:       "carol",
		Role:         model.RoleDeveloper,
		AssignedDate: testNow.AddDate(0, 0, -300),
	}
	app.RoleAssignments = []model.RoleAssignment{never}

	result := NewEvaluator(testConfig()).RunForApplication(app, nil, testNow)

	assert.Equal(t, 1, result.CreatedByType[model.TaskTypeRoleValidation])
}

func TestDocumentationReview_NeverReviewedForcesStale(t *testing.T) {
	app := freshApp("erp")
	app.KeyDates = nil // no review history

	result := NewEvaluator(testConfig()).RunForApplication(app, nil, testNow)

	assert.Equal(t, 1, result.CreatedByType[model.TaskTypeDocumentationReview])
}

func TestDocumentationReview_PriorityFollowsCompleteness(t *testing.T) {
	app := freshApp("erp")
	app.KeyDates = nil
	app.Documentation = model.Documentation{HasArchitectureDiagram: true} // 25% complete

	result := NewEvaluator(testConfig()).RunForApplication(app, nil, testNow)

	require.NotEmpty(t, result.Tasks)
	for _, task := range result.Tasks {
		if task.Type == model.TaskTypeDocumentationReview {
			assert.Equal(t, model.TaskPriorityHigh, task.Priority)
			assert.Equal(t, testNow.AddDate(0, 0, 30), task.DueDate)
			return
		}
	}
	t.Fatal("no documentation review task created")
}

func TestDocumentationReview_AssigneeChainFallsBackToProductManager(t *testing.T) {
	app := model.NewApplication("helpdesk")
	app.Key = "helpdesk"
	app.RoleAssignments = []model.RoleAssignment{assignment("pm-user", model.RoleProductManager, 10)}
	synced := testNow.AddDate(0, 0, -5)
	app.LastSyncedAt = &synced

	result := NewEvaluator(testConfig()).RunForApplication(app, nil, testNow)

	require.Equal(t, 1, result.CreatedByType[model.TaskTypeDocumentationReview])
	for _, task := range result.Tasks {
		if task.Type == model.TaskTypeDocumentationReview {
			assert.Equal(t, "pm-user", task.AssigneeUserID)
		}
	}
}

func TestDocumentationReview_NoAssigneeRecordsErrorWithoutTask(t *testing.T) {
	app := model.NewApplication("orphaned")
	app.Key = "orphaned"

	result := NewEvaluator(testConfig()).RunForApplication(app, nil, testNow)

	assert.Zero(t, result.CreatedByType[model.TaskTypeDocumentationReview])
	assert.NotEmpty(t, result.Errors)
}

func TestApplicationInfoReview_RecentSyncIsFreshnessProxy(t *testing.T) {
	app := freshApp("inventory")
	app.KeyDates = nil // no audit history, but synced 5 days ago

	result := NewEvaluator(testConfig()).RunForApplication(app, nil, testNow)

	assert.Zero(t, result.CreatedByType[model.TaskTypeApplicationInfo])
}

func TestApplicationInfoReview_StaleInfoCreatesLowPriorityTask(t *testing.T) {
	app := freshApp("inventory")
	app.KeyDates = []model.KeyDate{
		{Type: "review", Description: "annual documentation review", Date: testNow.AddDate(0, 0, -30)},
	}
	app.LastSyncedAt = nil

	result := NewEvaluator(testConfig()).RunForApplication(app, nil, testNow)

	require.Equal(t, 1, result.CreatedByType[model.TaskTypeApplicationInfo])
	for _, task := range result.Tasks {
		if task.Type == model.TaskTypeApplicationInfo {
			assert.Equal(t, model.TaskPriorityLow, task.Priority)
			assert.Equal(t, testNow.AddDate(0, 0, 60), task.DueDate)
			assert.Equal(t, "alice", task.AssigneeUserID) // Owner heads the chain
		}
	}
}

func TestSecurityRemediation_OneTaskPerSeverityBucket(t *testing.T) {
	cfg := testConfig()
	app := freshApp("payments")
	app.SecurityFindings = []model.SecurityFinding{
		{Severity: model.SeverityCritical},
		{Severity: model.SeverityCritical},
		{Severity: model.SeverityHigh},
		{Severity: model.SeverityMedium},
		{Severity: model.SeverityLow},            // low findings never get a task
		{Severity: model.SeverityHigh, Resolved: true}, // resolved findings ignored
	}

	result := NewEvaluator(cfg).RunForApplication(app, nil, testNow)

	require.Equal(t, 3, result.CreatedByType[model.TaskTypeSecurityRemediation])

	dueByPriority := map[model.TaskPriority]time.Time{}
	for _, task := range result.Tasks {
		if task.Type == model.TaskTypeSecurityRemediation {
			dueByPriority[task.Priority] = task.DueDate
			assert.Equal(t, "bob", task.AssigneeUserID) // TechnicalLead, no TechnicalArchitect present
		}
	}
	assert.Equal(t, testNow.AddDate(0, 0, cfg.CriticalVulnerabilityDueDays), dueByPriority[model.TaskPriorityCritical])
	assert.Equal(t, testNow.AddDate(0, 0, cfg.HighVulnerabilityDueDays), dueByPriority[model.TaskPriorityHigh])
	assert.Equal(t, testNow.AddDate(0, 0, cfg.MediumVulnerabilityDueDays), dueByPriority[model.TaskPriorityMedium])
}

func TestSecurityRemediation_ExposedSecretsEscalateToCritical(t *testing.T) {
	app := freshApp("webshop")
	app.Repository = &model.Repository{HasExposedSecrets: true}

	result := NewEvaluator(testConfig()).RunForApplication(app, nil, testNow)

	require.Equal(t, 1, result.CreatedByType[model.TaskTypeSecurityRemediation])
	for _, task := range result.Tasks {
		if task.Type == model.TaskTypeSecurityRemediation {
			assert.Equal(t, model.TaskPriorityCritical, task.Priority)
			assert.Contains(t, task.Description, "exposed secrets")
		}
	}
}

func TestSecurityRemediation_SecretsRespectConfigFlag(t *testing.T) {
	cfg := testConfig()
	cfg.TreatExposedSecretsAsCritical = false

	app := freshApp("webshop")
	app.Repository = &model.Repository{HasExposedSecrets: true}

	result := NewEvaluator(cfg).RunForApplication(app, nil, testNow)

	assert.Zero(t, result.CreatedByType[model.TaskTypeSecurityRemediation])
}

func TestSecurityRemediation_NoTechnicalAssigneeSkipsAllBuckets(t *testing.T) {
	app := freshApp("mainframe")
	// Owner only; the security chain never falls back to non-technical roles.
	app.RoleAssignments = []model.RoleAssignment{assignment("alice", model.RoleOwner, 10)}
	app.SecurityFindings = []model.SecurityFinding{
		{Severity: model.SeverityCritical},
		{Severity: model.SeverityHigh},
	}

	result := NewEvaluator(testConfig()).RunForApplication(app, nil, testNow)

	assert.Zero(t, result.CreatedByType[model.TaskTypeSecurityRemediation])
	require.NotEmpty(t, result.Errors)
	assert.Contains(t, result.Errors[0], "no technical role")
}

func TestRun_SecondPassAgainstUpdatedSnapshotIsIdempotent(t *testing.T) {
	cfg := testConfig()
	evaluator := NewEvaluator(cfg)

	app := model.NewApplication("liferaft")
	app.Key = "liferaft"
	app.RoleAssignments = []model.RoleAssignment{
		assignment("alice", model.RoleOwner, 400),
		assignment("bob", model.RoleTechnicalLead, 10),
	}
	app.SecurityFindings = []model.SecurityFinding{
		{Severity: model.SeverityCritical},
		{Severity: model.SeverityMedium},
	}

	first := evaluator.Run([]model.Application{*app}, nil, testNow)
	require.Greater(t, first.Created, 0)

	snapshot := map[string][]model.LifecycleTask{"liferaft": first.Tasks}
	second := evaluator.Run([]model.Application{*app}, snapshot, testNow)

	assert.Zero(t, second.Created, "re-running without new facts must create nothing")
	assert.Greater(t, second.Skipped, 0)
}

func TestRun_AggregatesAcrossApplications(t *testing.T) {
	appA := freshApp("app-a")
	appA.RoleAssignments[0] = assignment("alice", model.RoleOwner, 400)

	appB := freshApp("app-b")
	appB.SecurityFindings = []model.SecurityFinding{{Severity: model.SeverityHigh}}

	result := NewEvaluator(testConfig()).Run([]model.Application{*appA, *appB}, nil, testNow)

	assert.Equal(t, 2, result.ApplicationsProcessed)
	assert.Equal(t, 1, result.CreatedByType[model.TaskTypeRoleValidation])
	assert.Equal(t, 1, result.CreatedByType[model.TaskTypeSecurityRemediation])
	assert.Equal(t, 2, result.Created)
	assert.Len(t, result.Tasks, 2)
}

func TestTerminalTasksDoNotBlockNewOnes(t *testing.T) {
	app := freshApp("crm")
	app.RoleAssignments = []model.RoleAssignment{assignment("alice", model.RoleOwner, 400)}

	done := model.NewLifecycleTask(model.TaskTypeRoleValidation, "crm", "old")
	done.AssigneeUserID = "alice"
	done.Status = model.TaskStatusCompleted

	result := NewEvaluator(testConfig()).RunForApplication(app, []model.LifecycleTask{*done}, testNow)

	assert.Equal(t, 1, result.CreatedByType[model.TaskTypeRoleValidation])
}
