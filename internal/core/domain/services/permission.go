package services

import (
	"context"

	"workplans/internal/core/domain/model/kernel"
	"workplans/internal/core/domain/model/workplan"
)

// Permission is the kind of access being requested on a work plan.
type Permission string

const (
	// PermissionRead allows viewing a plan and its orders.
	PermissionRead Permission = "read"

	// PermissionCreate allows creating new plans.
	PermissionCreate Permission = "create"

	// PermissionWrite allows modifying a plan: editing during construction,
	// dispatching, and acting on its orders.
	PermissionWrite Permission = "write"
)

// SpendPermissionChecker looks up whether a user may spend against a project.
// The study service owns this decision.
type SpendPermissionChecker interface {
	HasSpendPermission(ctx context.Context, user kernel.User, projectID int64) (bool, error)
}

// PermissionEvaluator decides whether a user may act on a work plan.
//
// Business rules:
//   - Anyone may read any plan and create new plans
//   - The plan's owner always has write access
//   - A user belonging to a group named after the owner has write access
//   - Any other user with spend permission on the plan's project has write
//     access, but only once the plan has left construction
type PermissionEvaluator struct {
	spendChecker SpendPermissionChecker
}

// NewPermissionEvaluator creates a PermissionEvaluator backed by the given
// spend-permission checker.
func NewPermissionEvaluator(spendChecker SpendPermissionChecker) *PermissionEvaluator {
	return &PermissionEvaluator{spendChecker: spendChecker}
}

// Permitted reports whether the user may perform the requested kind of
// access on the plan. The spend-permission lookup is only performed when the
// cheaper ownership and group checks have failed.
func (e *PermissionEvaluator) Permitted(
	ctx context.Context,
	user kernel.User,
	plan *workplan.WorkPlan,
	permission Permission,
) (bool, error) {
	if err := user.Validate(); err != nil {
		return false, err
	}
	if permission == PermissionRead || permission == PermissionCreate {
		return true, nil
	}
	if err := plan.Validate(); err != nil {
		return false, err
	}

	if user.Email().IsEqual(plan.Owner()) {
		return true, nil
	}
	if user.InGroup(plan.Owner().String()) {
		return true, nil
	}

	// Spend permission never grants access to plans still being drafted.
	if plan.InConstruction() || plan.ProjectID() == nil {
		return false, nil
	}

	return e.spendChecker.HasSpendPermission(ctx, user, *plan.ProjectID())
}
