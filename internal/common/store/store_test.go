package store

import (
	"testing"

	"github.com/project-tktt/go-ausjobs/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestUpsertOutcome(t *testing.T) {
	// A fresh insert is the only path to Created.
	assert.Equal(t, ResultCreated, upsertOutcome(false, 1))

	// ON CONFLICT DO NOTHING reports zero affected rows for a known URL.
	assert.Equal(t, ResultDuplicate, upsertOutcome(false, 0))

	// The (source, title, company) check wins regardless of the insert.
	assert.Equal(t, ResultDuplicate, upsertOutcome(true, 0))
	assert.Equal(t, ResultDuplicate, upsertOutcome(true, 1))
}

func TestDocumentIDPrefersExternalID(t *testing.T) {
	rec := &domain.JobRecord{
		Source:      "seek",
		ExternalID:  "84930112",
		ExternalURL: "https://www.seek.com.au/job/84930112",
	}
	assert.Equal(t, "seek:84930112", documentID(rec))
}

func TestDocumentIDFallsBackToURL(t *testing.T) {
	rec := &domain.JobRecord{
		Source:      "jora",
		ExternalURL: "https://au.jora.com/job/abc",
	}
	assert.Equal(t, "https://au.jora.com/job/abc", documentID(rec))
}
