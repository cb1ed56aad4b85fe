package ingestion

import (
	"context"

	"github.com/dshills/boxlayout/pkg/layout"
)

// DataSource fetches a flat box document from wherever it lives — a local
// file, a remote HR API, a cache — and resolves it into a BoxContainer. A
// ContentHash is returned alongside so a caller can skip re-ingestion when
// the underlying data has not changed (see storage.SnapshotCache).
type DataSource interface {
	Fetch(ctx context.Context) (container *layout.BoxContainer, contentHash string, err error)
}
