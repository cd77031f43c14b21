// Package taskgen - assignee resolution chains.
package taskgen

import (
	"github.com/portview/portview-backend/model"
)

// Assignee resolution chains, evaluated in priority order. The precedence is
// part of the generation contract and is tested independently.
var (
	documentationReviewChain = []model.RoleType{
		model.RoleOwner,
		model.RoleFunctionalArchitect,
		model.RoleProductManager,
	}

	applicationInfoChain = []model.RoleType{
		model.RoleOwner,
		model.RoleBusinessOwner,
		model.RoleProductManager,
	}

	securityRemediationChain = []model.RoleType{
		model.RoleTechnicalArchitect,
		model.RoleTechnicalLead,
		model.RoleSecurityChampion,
		model.RoleDeveloper,
	}
)

// firstAssignee walks the role chain in order and returns the first matching
// assignment. With anyRoleFallback set, any remaining assignment is accepted
// when no chained role matches; the security chain never falls back.
func firstAssignee(app *model.Application, chain []model.RoleType, anyRoleFallback bool) (model.RoleAssignment, bool) {
	for _, role := range chain {
		if matches := app.RolesOfType(role); len(matches) > 0 {
			return matches[0], true
		}
	}
	if anyRoleFallback && len(app.RoleAssignments) > 0 {
		return app.RoleAssignments[0], true
	}
	return model.RoleAssignment{}, false
}
