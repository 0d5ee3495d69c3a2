package store

import (
	"context"

	"github.com/project-tktt/go-ausjobs/internal/domain"
)

// Result is the outcome of an upsert. Duplicate is a normal, idempotent
// outcome, not a failure.
type Result int

const (
	ResultCreated Result = iota
	ResultDuplicate
)

// Store is the storage collaborator boundary. The pipeline guarantees
// records are fully normalized and within field-length constraints before
// they arrive here.
type Store interface {
	// UpsertIfNew inserts the record unless it already exists, keyed by
	// external URL with a secondary (title, company) semantic check.
	UpsertIfNew(ctx context.Context, rec *domain.JobRecord) (Result, error)
}

// Indexer feeds a search backend; separate from Store because indexing is
// best-effort and batched.
type Indexer interface {
	BulkIndex(ctx context.Context, recs []*domain.JobRecord) error
}
