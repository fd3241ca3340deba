// Package diagnostic provides structured warnings and errors collected while
// loading packages and validating inspection queries.
//
// Key capabilities:
//   - Loader warnings (variadic or generic constructors, assertions on foreign types)
//   - Query validation errors (unknown type, duplicate query, empty marker)
//   - A combined error for callers that only need pass/fail
package diagnostic
