// Package ports defines the contracts between the application core and its adapters:
// repositories bound to a unit of work, and the notification sink.
package ports
