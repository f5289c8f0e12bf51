// Package errors provides structured error handling for the anima-api project.
//
// This package provides:
//   - Structured errors with codes, messages, and metadata
//   - Domain error codes for the progression and consumable rules
//   - HTTP status mapping per code
//   - Error context preservation through wrapping
//   - Validation error helpers
//   - Type-safe error checking
//
// # Basic Usage
//
// Creating errors:
//
//	err := errors.NotFound("character not found")
//	err := errors.InsufficientPointsf("no %s points available", group)
//
// Adding metadata:
//
//	err := errors.NotFound("character not found").
//	    WithMeta("character_id", charID)
//
// Wrapping errors:
//
//	if err := repo.Get(id); err != nil {
//	    return errors.Wrap(err, "failed to get character")
//	}
//
// # Error Checking
//
// Type checking:
//
//	if errors.IsNotFound(err) {
//	    // Handle not found case
//	}
//
// Extracting information:
//
//	code := errors.GetCode(err)
//	message := errors.GetMessage(err)
//
// # Layer-Specific Guidelines
//
// Repository layer:
//   - Return domain-specific errors (NotFound, AlreadyExists, Unavailable on
//     transaction conflicts)
//   - Include relevant IDs in metadata
//
// Orchestrator layer:
//   - Validate inputs and return InvalidArgument errors before any mutation
//   - Return the domain codes (InsufficientPoints, AtFloor, InvalidFormula,
//     InvalidMode) for rule violations; these always fail closed
//
// Handler layer:
//   - Map errors to HTTP responses via Code.HTTPStatus
//   - Extract user-friendly messages with GetMessage
package errors
