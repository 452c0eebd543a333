package lifecycle

import "fmt"

// The engine is the only place these error kinds are raised; the API layer
// translates them to HTTP statuses. All of them are terminal for a single
// invocation, the engine never retries.

// ValidationError means caller-supplied input violates a field constraint.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// PolicyViolation means the actor lacks the capability for the requested
// operation or transition. No state change occurs.
type PolicyViolation struct {
	Reason string
}

func (e *PolicyViolation) Error() string {
	return "policy violation: " + e.Reason
}

// NotFoundError means a referenced complaint, user, or status does not
// exist, or does not hold an expected capability.
type NotFoundError struct {
	Entity string
	ID     uint
}

func (e *NotFoundError) Error() string {
	if e.ID != 0 {
		return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
	}
	return e.Entity + " not found"
}

// StateError means the complaint is not in a state compatible with the
// operation, for example responding before staff resolved it, or losing the
// optimistic version check to a concurrent transition.
type StateError struct {
	Reason string
}

func (e *StateError) Error() string {
	return "invalid state: " + e.Reason
}

// ConfigurationError means required reference data is missing, such as no
// closed status existing at all. An operator fault, not a user error; it is
// logged at error level so setup problems stand out from user mistakes.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Reason
}
