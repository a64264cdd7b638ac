// Package order provides the Order aggregate: a table session's running order with its
// line items, the order and item status machines, and the running total.
//
// The package includes:
//   - Order: the aggregate root, created New when the first item is added for a session
//   - Item: a line item with its own status, price and quantity
//   - Status and ItemStatus: role-aware transition tables for the order and its items
//
// Key business rules:
//   - Paid, Cancelled and Rejected orders accept no further changes
//   - Customers may cancel an order until the kitchen starts on it, and may reject a delivery
//   - Roles outside customer, waiter and admin may move a non-terminal order to any status
//   - Total is the sum of price times quantity over items that are not cancelled
package order
