package model

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for tenant user operations
var (
	// Configuration
	ErrMissingCredential = goerr.New("API key is not set")
	ErrInvalidConfig     = goerr.New("invalid configuration")

	// Input
	ErrFileNotFound   = goerr.New("input file not found")
	ErrMalformedInput = goerr.New("malformed input file")
	ErrNoEmails       = goerr.New("no valid email addresses found in input")

	// Directory
	ErrUserNotFound = goerr.New("user not found")
	ErrUserExists   = goerr.New("user already exists")

	// Run control
	ErrListUsers      = goerr.New("failed to fetch tenant users")
	ErrAborted        = goerr.New("aborted by user")
	ErrPartialFailure = goerr.New("some emails could not be processed")
)
