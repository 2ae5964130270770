package queries

import (
	"errors"

	"workplans/internal/core/domain/model/kernel"
	"workplans/internal/pkg/errs"
	"workplans/internal/pkg/guard"
)

var ErrBuildSubmissionQueryIsNotConstructed = errors.New(
	"BuildSubmissionQuery must be created via NewBuildSubmissionQuery constructor",
)

// ErrSetNotFound is returned when the order's working set cannot be
// resolved in the set service.
var ErrSetNotFound = errors.New("order set not found")

// ErrMaterialUnavailable is returned when any material of the working set
// is not available for work. The export produces no partial document.
var ErrMaterialUnavailable = errors.New("material is not available")

// BuildSubmissionQuery requests assembly of the submission document for one
// work order. The same assembly serves two callers: the submission flow,
// which delivers the document to a LIMS, and the read API, which previews
// it with the order's current status embedded.
type BuildSubmissionQuery struct {
	orderID       kernel.UUID
	includeStatus bool

	guard guard.ConstructorGuard
}

// NewBuildSubmissionQuery creates an assembly query for one order.
//
// Parameters:
//   - orderID: identifier of the order to assemble the document for.
//   - includeStatus: when true, the order's current status is embedded in
//     the document. Used by the preview endpoint; submissions omit it.
//
// Errors:
//   - errs.ValueIsRequiredError: orderID is empty.
func NewBuildSubmissionQuery(orderID kernel.UUID, includeStatus bool) (BuildSubmissionQuery, error) {
	if err := orderID.Validate(); err != nil {
		return BuildSubmissionQuery{}, errs.NewValueIsRequiredErrorWithCause("orderID", err)
	}

	return BuildSubmissionQuery{
		orderID:       orderID,
		includeStatus: includeStatus,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrBuildSubmissionQueryIsNotConstructed if validation fails.
func (q BuildSubmissionQuery) Validate() error {
	return q.guard.Validate(ErrBuildSubmissionQueryIsNotConstructed)
}

// OrderID returns the identifier of the order to assemble for.
func (q BuildSubmissionQuery) OrderID() kernel.UUID {
	return q.orderID
}

// IncludeStatus reports whether the order status is embedded in the
// document.
func (q BuildSubmissionQuery) IncludeStatus() bool {
	return q.includeStatus
}
