// Package queries contains read operations of the CQRS architecture: plan
// listings, status lookups and the submission document assembler. Listing
// queries read the database directly for performance; the assembler composes
// repositories and remote gateways instead.
package queries

import (
	"errors"

	"workplans/internal/core/domain/model/kernel"
	"workplans/internal/pkg/guard"
)

var ErrGetPlansForUserQueryIsNotConstructed = errors.New(
	"GetPlansForUserQuery must be created via NewGetPlansForUserQuery constructor",
)

// GetPlansForUserQuery lists the work plans visible to a user: plans they
// own plus plans billed against projects they hold spend permission on.
//
// Example:
//
//	query, err := NewGetPlansForUserQuery(user, spendableProjectIDs)
//	if err != nil {
//	    return err
//	}
//	plans, err := handler.Handle(ctx, query)
type GetPlansForUserQuery struct { //nolint:recvcheck //using for validation
	user                kernel.User
	spendableProjectIDs []int64

	guard guard.ConstructorGuard
}

// NewGetPlansForUserQuery creates a query for one user's plan listing.
// spendableProjectIDs comes from the study gateway and may be empty.
func NewGetPlansForUserQuery(user kernel.User, spendableProjectIDs []int64) (GetPlansForUserQuery, error) {
	planQuery := GetPlansForUserQuery{
		spendableProjectIDs: spendableProjectIDs,
		guard:               guard.NewConstructorGuard(),
	}

	if err := planQuery.setUser(user); err != nil {
		return GetPlansForUserQuery{}, err
	}

	return planQuery, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetPlansForUserQueryIsNotConstructed if validation fails.
func (q GetPlansForUserQuery) Validate() error {
	return q.guard.Validate(ErrGetPlansForUserQueryIsNotConstructed)
}

// User returns the user the listing is for.
func (q GetPlansForUserQuery) User() kernel.User {
	return q.user
}

// SpendableProjectIDs returns the project ids the user may spend against.
func (q GetPlansForUserQuery) SpendableProjectIDs() []int64 {
	return q.spendableProjectIDs
}

func (q *GetPlansForUserQuery) setUser(user kernel.User) error {
	if err := user.Validate(); err != nil {
		return err
	}

	q.user = user
	return nil
}

// GetPlansForUserQueryResponse is one row of the plan listing.
type GetPlansForUserQueryResponse struct {
	ID         kernel.UUID
	Owner      string
	Status     string
	OrderCount int
}
