// Package kernel provides the shared value objects of the restaurant domain.
//
// The package includes:
//   - UUID: identifier value object used by every aggregate
//   - Role: the privilege class of the actor performing an action
//   - TableNumber: a validated dining table number
//   - Money: a non-negative decimal amount used for prices and totals
//
// Values are immutable and validated at construction; zero values are invalid
// and are rejected by Validate.
package kernel
