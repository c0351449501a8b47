// audit/repository.go
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

type Repository interface {
	IndexEvent(ctx context.Context, event Event) error
	QueryEvents(ctx context.Context, from, to time.Time, userID, resource string) ([]Event, error)
}

type ElasticsearchRepository struct {
	esClient *elasticsearch.Client
	index    string
}

// NewElasticsearchRepository creates a repository against the given
// Elasticsearch URL, writing to the given index.
func NewElasticsearchRepository(esURL, index string) (*ElasticsearchRepository, error) {
	cfg := elasticsearch.Config{
		Addresses: []string{esURL},
	}
	esClient, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return nil, err
	}
	return &ElasticsearchRepository{esClient: esClient, index: index}, nil
}

// IndexEvent writes one audit event to Elasticsearch.
func (r *ElasticsearchRepository) IndexEvent(ctx context.Context, event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	req := esapi.IndexRequest{
		Index:      r.index,
		DocumentID: event.ID,
		Body:       strings.NewReader(string(data)),
		Refresh:    "true",
	}

	res, err := req.Do(ctx, r.esClient)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("error indexing audit event: %s", res.String())
	}

	return nil
}

// QueryEvents searches audit events within a time frame, optionally filtered
// by userID and resource.
func (r *ElasticsearchRepository) QueryEvents(ctx context.Context, from, to time.Time, userID, resource string) ([]Event, error) {
	must := []interface{}{
		map[string]interface{}{
			"range": map[string]interface{}{
				"timestamp": map[string]interface{}{
					"gte": from.Format(time.RFC3339),
					"lte": to.Format(time.RFC3339),
				},
			},
		},
	}

	if userID != "" {
		must = append(must, map[string]interface{}{
			"match": map[string]interface{}{
				"user_id": userID,
			},
		})
	}

	if resource != "" {
		must = append(must, map[string]interface{}{
			"match": map[string]interface{}{
				"resource": resource,
			},
		})
	}

	query := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must": must,
			},
		},
	}

	var buf strings.Builder
	if err := json.NewEncoder(&buf).Encode(query); err != nil {
		return nil, err
	}

	res, err := r.esClient.Search(
		r.esClient.Search.WithContext(ctx),
		r.esClient.Search.WithIndex(r.index),
		r.esClient.Search.WithBody(strings.NewReader(buf.String())),
	)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("error searching audit events: %s", res.String())
	}

	var rmap map[string]interface{}
	if err := json.NewDecoder(res.Body).Decode(&rmap); err != nil {
		return nil, err
	}

	hitsWrapper, ok := rmap["hits"].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("unexpected search response shape")
	}
	hits, _ := hitsWrapper["hits"].([]interface{})

	events := make([]Event, len(hits))
	for i, hit := range hits {
		source := hit.(map[string]interface{})["_source"]
		data, _ := json.Marshal(source)
		json.Unmarshal(data, &events[i])
	}

	return events, nil
}
