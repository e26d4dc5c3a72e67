package port

import "context"

// AssetStore fetches previously uploaded image assets such as logos and
// signatures. It is read-only; invoices themselves are never stored.
type AssetStore interface {
	Download(ctx context.Context, bucket, key string) ([]byte, error)
}
