// Package workorder provides domain entities and business logic for the
// single processing stages that make up a work plan. It implements the
// WorkOrder aggregate root with lifecycle management and state transitions.
//
// The package includes:
//   - WorkOrder: The aggregate root for one processing stage dispatched to an
//     external execution system (a LIMS)
//   - Status: A state machine that enforces valid lifecycle transitions
//   - ModuleChoice: The ordered module selections configured for the stage
//   - Event: Lifecycle notifications emitted on submission and closure
//
// Key business rules:
//   - Orders are created queued, in bulk, when their plan is dispatched
//   - Status follows a defined workflow: Queued -> Active -> Completed/Cancelled
//   - Broken is reachable from any non-terminal state and is one-way; only a
//     manual administrative repair can leave it
//   - Lifecycle events may only be built from an order in a qualifying state
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package workorder
