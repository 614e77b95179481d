// Package driving provides interfaces for application entry points
// (primary/inbound ports).
//
// The CLI adapter calls the core exclusively through these interfaces;
// the service implementations live in internal/core/services.
package driving
