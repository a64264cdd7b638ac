// Package services provides domain services that span aggregates of the restaurant
// front-of-house.
//
// The package includes:
//   - StatusTransitionEngine: validates and applies Request, Order and order item
//     status changes and produces the audit entry for each committed change
//   - the duplicate "ready to pay" guard checked when a Request is created
//
// Services here are pure with respect to storage: command handlers load aggregates,
// call the engine and persist what it returns inside one unit of work.
package services
