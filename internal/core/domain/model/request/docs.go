// Package request models service requests raised from a table: "more napkins",
// "the bill please", "ready to pay". A Request is owned by the customer session that
// raised it and is progressed by waiters and admins.
//
// The package includes:
//   - Request: the aggregate root carrying owner, table, free-text content and status
//   - Status: the lifecycle enum with its role-keyed transition table
//
// Key business rules:
//   - Requests start in New
//   - Customers may only cancel their request while it is not being worked on
//   - Staff move requests along New -> Acknowledged -> InProgress -> Completed/Done,
//     with OnHold as a parking state that can return to New
//   - Completed, Done and Cancelled are terminal
//   - Moving to the current status is always allowed and changes nothing
package request
