// Package services contains domain services for the work plans context.
//
// Domain services implement business logic that doesn't naturally belong to a
// single aggregate. The package holds two services:
//
//   - OrderDispatcher instantiates the full ordered sequence of work orders
//     for a plan from its product definition and the user's per-stage module
//     selections.
//   - PermissionEvaluator decides whether a user may read or modify a plan,
//     combining ownership, group membership and spend permission on the
//     plan's project.
//
// Services are stateless and safe for concurrent use.
package services
