// Package utils provides input validation for text sent to remote flows.
//
// Validation:
//   - Required and length checks counted in characters
//   - Null byte and UTF-8 rejection
//   - Hospital query and location limits
package utils
