package ports

import (
	"context"
	"errors"

	"workplans/internal/core/domain/model/kernel"
	"workplans/internal/core/domain/model/remote"
	"workplans/internal/core/domain/model/submission"
	"workplans/internal/core/domain/model/workorder"
	"workplans/internal/pkg/pagination"
)

// ErrRemoteTimeout is returned by gateway implementations when a remote
// service did not answer in time. Callers match it with errors.Is to
// distinguish transient failures from hard errors.
var ErrRemoteTimeout = errors.New("remote service timed out")

// SetGateway is the client port for the set service, which owns the named
// material collections that plans and orders reference by UUID.
type SetGateway interface {
	// Find retrieves a set without resolving its materials.
	Find(ctx context.Context, setUUID kernel.UUID) (*remote.Set, error)

	// FindWithMaterials retrieves a set together with its material ids.
	FindWithMaterials(ctx context.Context, setUUID kernel.UUID) (*remote.Set, error)

	// CreateLockedClone copies the given set into a new locked set with the
	// given name. A locked set can never change again, which freezes the
	// order's input materials at dispatch time.
	CreateLockedClone(ctx context.Context, setUUID kernel.UUID, name string) (*remote.Set, error)
}

// MaterialGateway is the client port for the material service.
type MaterialGateway interface {
	// QueryByIDs retrieves the materials with the given ids as a paginated
	// cursor. Missing ids are simply absent from the result.
	QueryByIDs(ctx context.Context, materialIDs []string) (pagination.Cursor[*remote.Material], error)
}

// ContainerGateway is the client port for the container service.
type ContainerGateway interface {
	// QueryBySlotMaterialIDs retrieves, as a paginated cursor, every
	// container holding at least one of the given materials in its slots.
	QueryBySlotMaterialIDs(ctx context.Context, materialIDs []string) (pagination.Cursor[*remote.Container], error)
}

// StudyGateway is the client port for the study service, which owns the
// project tree that plans are billed against.
type StudyGateway interface {
	// FindNode retrieves one node of the project tree by id.
	FindNode(ctx context.Context, nodeID int64) (*remote.ProjectNode, error)

	// HasSpendPermission reports whether the user may spend against the
	// given project node.
	HasSpendPermission(ctx context.Context, user kernel.User, nodeID int64) (bool, error)

	// SpendableProjectIDs lists every project node id the user may spend
	// against. Used to batch permission checks over plan listings.
	SpendableProjectIDs(ctx context.Context, user kernel.User) ([]int64, error)
}

// SubmissionChannel delivers finished submission documents to the execution
// LIMS named by the product's catalogue.
type SubmissionChannel interface {
	// Post delivers the document to the given LIMS URL. Delivery is not
	// idempotent on the receiving side; callers must not retry blindly.
	Post(ctx context.Context, url string, doc *submission.Document) error
}

// EventPublisher broadcasts work order lifecycle events to interested
// parties (billing among them).
type EventPublisher interface {
	// Publish emits one lifecycle event. Publishing failures do not undo
	// the state change that produced the event.
	Publish(ctx context.Context, event workorder.Event) error
}
