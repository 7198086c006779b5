// Package domain implements the domain layer for the taskboard task tracker.
//
// This package follows Domain-Driven Design (DDD) principles:
//   - Contains only pure Go code (no infrastructure dependencies)
//   - Defines the Task entity and the Status value object
//   - Implements the lifecycle state machine and its pre-condition checks
//   - Declares the TaskRepository port that storage backends implement
//
// # Core Types
//
// Task represents one unit of work moving through a fixed lifecycle:
// todo -> doing -> done. The lifecycle only ever moves forward; there is no
// revert, no skip, and no self-loop.
//
// Status is the task's position in that lifecycle.
//
// TaskRepository is the port implemented by the in-memory repository and the
// SQLite repository. A conforming implementation is the sole authority for
// identity assignment and name uniqueness.
package domain
