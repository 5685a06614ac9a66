// Package oaserrors provides structured error types for the schemadiff module.
//
// Import path: github.com/erraggy/schemadiff/oaserrors
//
// Each error type has a sentinel for use with errors.Is():
//
//   - [ErrParse]: matches any [ParseError]
//   - [ErrResourceLimit]: matches any [ResourceLimitError]
//   - [ErrConfig]: matches any [ConfigError]
//
// Extract details with errors.As():
//
//	var parseErr *oaserrors.ParseError
//	if errors.As(err, &parseErr) {
//	    fmt.Printf("could not decode %s\n", parseErr.Path)
//	}
package oaserrors
