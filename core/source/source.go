package source

import (
	"context"
	"fmt"

	"world-manager/core/storage"
)

// Loader reads authored world documents from a backing source.
type Loader interface {
	// List returns the JSON document names available from the source.
	List(ctx context.Context) ([]string, error)
	// Read returns the raw bytes of one document.
	Read(ctx context.Context, name string) ([]byte, error)
}

// New selects a document source from configuration. Bucket mode requires a
// storage client; file mode ignores it.
func New(cfg Config, client storage.Client, bucket string) (Loader, error) {
	switch cfg.Mode {
	case ModeFile:
		return NewFileSource(cfg.Dir), nil
	case ModeBucket:
		if client == nil {
			return nil, fmt.Errorf("bucket source requires a storage client")
		}
		return NewBucketSource(client, bucket, cfg.Prefix), nil
	default:
		return nil, fmt.Errorf("unknown source mode: %s", cfg.Mode)
	}
}
