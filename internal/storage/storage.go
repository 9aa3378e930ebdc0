package storage

import "context"

// Archiver stores raw uploaded history files for audit. Archiving is best
// effort: failures are logged by the caller and never fail the upload itself.
type Archiver interface {
	// Archive stores data under key and returns the stored object key.
	Archive(ctx context.Context, key string, contentType string, data []byte) (string, error)
}

// NoopArchiver is used when no object storage is configured.
type NoopArchiver struct{}

func (NoopArchiver) Archive(ctx context.Context, key, contentType string, data []byte) (string, error) {
	return "", nil
}
