// Package apperrors defines the application's error taxonomy and exit codes.
// The taxonomy is intentionally narrow: configuration and validation errors
// are caller-visible, while arithmetic overflow and threshold breaches are
// recovered into the Unknown classification by the generator.
package apperrors
