// Package logging provides structured logging utilities for roomaudit.
//
// This package centralizes logging patterns to ensure consistent,
// structured logging throughout the codebase using the standard
// library's slog package.
//
// # Key Features
//
//   - Structured logging with slog
//   - PII sanitization (email anonymization)
//   - Consistent attribute naming across the codebase
//
// # Usage Patterns
//
// Create a logger with standard attributes:
//
//	logger := logging.WithOperation(slog.Default(), "calendar.fetch")
//	logger.Info("fetched window", logging.Resource(room.Address))
//
// Sanitize sensitive data before logging:
//
//	logger.Info("classified organizer",
//	    logging.UserHash(organizer))
//
// # Security Considerations
//
// Organizer and attendee addresses are PII. Log the hashed form
// (UserHash) or the domain only (Domain) unless the log stream is an
// access-controlled audit trail.
package logging
