// Package log provides secure logging functionality with automatic sanitization
// of sensitive information, built on top of the standard slog package.
//
// This package extends slog to provide:
//   - Automatic sanitization of sensitive values (tokens, passwords, headers)
//   - Configurable log levels with verbose mode support
//   - Consistent log formatting across the application
//
// # Security Features
//
// The SecureHandler automatically sanitizes sensitive information in log output:
//   - HTTP headers (Authorization, Cookie, Set-Cookie, X-Api-Key)
//   - Bearer tokens and JWTs detected by pattern matching
//   - Account passwords and API credentials
//   - Session identifiers
//
// Even in verbose mode, sensitive values are masked. The session token used
// for backend requests must never appear in logs that may be shared when
// reporting problems.
//
// # Usage
//
//	// Create a secure logger
//	logger := log.NewSecureLogger(os.Stderr, true) // verbose=true
//
//	// Use as a standard slog.Logger
//	logger.Info("request sent",
//	    "authorization", "Bearer eyJhbGci...",  // Will be sanitized
//	    "url", "https://api.astromeric.app/v1/forecast",
//	)
//
//	// Set as default logger
//	slog.SetDefault(logger)
package log
