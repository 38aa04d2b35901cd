package file

import "errors"

var (
	// File system errors
	ErrFileNotFound      = errors.New("file not found")
	ErrIsDirectory       = errors.New("path is a directory")
	ErrFailedToReadFile  = errors.New("failed to read file")
	ErrFailedToWriteFile = errors.New("failed to write file")

	// Codec errors
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrFailedToDecode    = errors.New("failed to decode file contents")
	ErrFailedToEncode    = errors.New("failed to encode entries")

	// S3-specific errors for proper error classification
	ErrBucketNotFound     = errors.New("bucket not found")
	ErrAccessDenied       = errors.New("access denied")
	ErrRequestTimeout     = errors.New("request timed out")
	ErrServiceUnavailable = errors.New("service temporarily unavailable") // throttling
	ErrInvalidObjectState = errors.New("invalid object state")

	// Context and cancellation errors
	ErrOperationTimeout  = errors.New("operation timed out")
	ErrOperationCanceled = errors.New("operation canceled")

	// Configuration errors
	ErrInvalidConfig      = errors.New("invalid configuration")
	ErrFailedToLoadConfig = errors.New("failed to load AWS config")
)
