package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/project-tktt/go-ausjobs/internal/domain"
)

// ElasticsearchIndexer mirrors normalized records into a search index.
type ElasticsearchIndexer struct {
	client    *elasticsearch.Client
	indexName string
}

// NewElasticsearchIndexer creates an indexer and verifies connectivity.
func NewElasticsearchIndexer(addresses []string, indexName string) (*ElasticsearchIndexer, error) {
	cfg := elasticsearch.Config{
		Addresses: addresses,
	}

	client, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("create es client: %w", err)
	}

	res, err := client.Info()
	if err != nil {
		return nil, fmt.Errorf("es info: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("es error: %s", res.Status())
	}

	return &ElasticsearchIndexer{
		client:    client,
		indexName: indexName,
	}, nil
}

// EnsureIndex creates the index with field mappings if it doesn't exist.
func (i *ElasticsearchIndexer) EnsureIndex(ctx context.Context) error {
	res, err := i.client.Indices.Exists([]string{i.indexName},
		i.client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("index exists: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode == 200 {
		return nil
	}

	mapping := `{
		"mappings": {
			"properties": {
				"title": {"type": "text"},
				"company": {"type": "keyword"},
				"location": {
					"properties": {
						"city": {"type": "keyword"},
						"state": {"type": "keyword"},
						"country": {"type": "keyword"}
					}
				},
				"salary": {
					"properties": {
						"min": {"type": "double"},
						"max": {"type": "double"},
						"currency": {"type": "keyword"},
						"period": {"type": "keyword"}
					}
				},
				"job_type": {"type": "keyword"},
				"work_mode": {"type": "keyword"},
				"description": {"type": "text"},
				"skills": {"type": "keyword"},
				"preferred_skills": {"type": "keyword"},
				"posted_at": {"type": "date"},
				"scraped_at": {"type": "date"}
			}
		}
	}`

	createRes, err := i.client.Indices.Create(i.indexName,
		i.client.Indices.Create.WithContext(ctx),
		i.client.Indices.Create.WithBody(strings.NewReader(mapping)))
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	defer createRes.Body.Close()

	if createRes.IsError() {
		return fmt.Errorf("create index: %s", createRes.Status())
	}
	return nil
}

// Index indexes a single record.
func (i *ElasticsearchIndexer) Index(ctx context.Context, rec *domain.JobRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}

	req := esapi.IndexRequest{
		Index:      i.indexName,
		DocumentID: documentID(rec),
		Body:       bytes.NewReader(data),
		Refresh:    "false",
	}

	res, err := req.Do(ctx, i.client)
	if err != nil {
		return fmt.Errorf("index request: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("index error: %s", res.Status())
	}

	return nil
}

// BulkIndex indexes multiple records in one bulk request.
func (i *ElasticsearchIndexer) BulkIndex(ctx context.Context, recs []*domain.JobRecord) error {
	if len(recs) == 0 {
		return nil
	}

	var buf bytes.Buffer

	for _, rec := range recs {
		meta := map[string]any{
			"index": map[string]any{
				"_index": i.indexName,
				"_id":    documentID(rec),
			},
		}
		metaBytes, _ := json.Marshal(meta)
		buf.Write(metaBytes)
		buf.WriteByte('\n')

		docBytes, err := json.Marshal(rec)
		if err != nil {
			log.Printf("marshal record %s: %v", rec.ExternalID, err)
			continue
		}
		buf.Write(docBytes)
		buf.WriteByte('\n')
	}

	res, err := i.client.Bulk(bytes.NewReader(buf.Bytes()), i.client.Bulk.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("bulk request: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("bulk error: %s", res.Status())
	}

	var bulkRes struct {
		Errors bool `json:"errors"`
		Items  []struct {
			Index struct {
				ID     string `json:"_id"`
				Status int    `json:"status"`
				Error  *struct {
					Type   string `json:"type"`
					Reason string `json:"reason"`
				} `json:"error"`
			} `json:"index"`
		} `json:"items"`
	}
	body, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("read bulk response: %w", err)
	}
	if err := json.Unmarshal(body, &bulkRes); err != nil {
		return fmt.Errorf("parse bulk response: %w", err)
	}
	if bulkRes.Errors {
		for _, item := range bulkRes.Items {
			if item.Index.Error != nil {
				log.Printf("bulk index %s failed: %s (%s)",
					item.Index.ID, item.Index.Error.Reason, item.Index.Error.Type)
			}
		}
	}

	return nil
}

// documentID prefers the derived external ID, falling back to the URL.
func documentID(rec *domain.JobRecord) string {
	if rec.ExternalID != "" {
		return rec.Source + ":" + rec.ExternalID
	}
	return rec.ExternalURL
}
