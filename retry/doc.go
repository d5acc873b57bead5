// Package retry provides a generic exponential backoff helper for
// calls against rate-limited external services.
//
// A Policy is a plain value describing the schedule (base delay,
// multiplier, cap, attempt budget). Do runs an operation under a policy
// together with an error classifier that decides which failures are
// worth retrying. Waits are cancellable through the caller's context.
package retry
