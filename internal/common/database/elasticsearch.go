// internal/common/database/elasticsearch.go
package database

import (
	"context"
	"fmt"

	"matching-workers/internal/common/config"

	"github.com/elastic/go-elasticsearch/v8"
)

// ElasticsearchClient is the offer index connection. OffersIndex is the
// index the offer repository reads from.
type ElasticsearchClient struct {
	Client      *elasticsearch.Client
	OffersIndex string
}

func NewElasticsearch(cfg config.ElasticsearchConfig) (*ElasticsearchClient, error) {
	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses:  cfg.Addresses,
		Username:   cfg.Username,
		Password:   cfg.Password,
		MaxRetries: cfg.MaxRetries,
	})
	if err != nil {
		return nil, fmt.Errorf("elasticsearch client for %v: %w", cfg.Addresses, err)
	}
	return &ElasticsearchClient{Client: es, OffersIndex: cfg.OffersIndex}, nil
}

// Ping checks that the cluster answers. The offers index itself may not
// exist yet; lookups against it report OFFER_NOT_FOUND.
func (c *ElasticsearchClient) Ping(ctx context.Context) error {
	res, err := c.Client.Ping(c.Client.Ping.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("elasticsearch ping: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("elasticsearch ping: %s", res.Status())
	}
	return nil
}
