// Package workplan provides the WorkPlan aggregate root: a user-owned,
// ordered collection of work orders created for a particular product.
//
// The package includes:
//   - WorkPlan: The aggregate root managing ownership, wizard references and
//     the ordered orders
//   - Status: The plan-level lifecycle status, derived and never stored
//
// Key business rules:
//   - Plan status is a pure function of the cancelled flag, the project
//     reference and the aggregate state of the child orders
//   - Orders are attached exactly once, at dispatch
//   - Destroying a plan cascades to its orders and their module choices
package workplan
