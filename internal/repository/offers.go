package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/elastic/go-elasticsearch/v8"

	apperrors "matching-workers/internal/common/errors"
	"matching-workers/internal/common/logger"
	"matching-workers/internal/models"
)

// OfferRepository reads offers from the search index.
type OfferRepository struct {
	es     *elasticsearch.Client
	index  string
	logger logger.Logger
}

func NewOfferRepository(es *elasticsearch.Client, index string, log logger.Logger) *OfferRepository {
	return &OfferRepository{es: es, index: index, logger: log}
}

type getResponse struct {
	ID      string          `json:"_id"`
	Version int64           `json:"_version"`
	Found   bool            `json:"found"`
	Source  json.RawMessage `json:"_source"`
}

// Get fetches one offer document by id. A missing document is
// OFFER_NOT_FOUND; transport or cluster errors are OFFER_LOOKUP_FAILED.
// The document's id and version fill the offer's when its source omits them.
func (r *OfferRepository) Get(ctx context.Context, id string) (*models.Offer, error) {
	res, err := r.es.Get(r.index, id, r.es.Get.WithContext(ctx))
	if err != nil {
		return nil, apperrors.NewOfferLookupFailedError(id, err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, apperrors.NewOfferNotFoundError(id)
	}
	if res.IsError() {
		return nil, apperrors.NewOfferLookupFailedError(id, fmt.Errorf("elasticsearch error: %s", res.Status()))
	}

	var doc getResponse
	if err := json.NewDecoder(res.Body).Decode(&doc); err != nil {
		return nil, apperrors.NewOfferLookupFailedError(id, fmt.Errorf("failed to decode response: %w", err))
	}
	if !doc.Found {
		return nil, apperrors.NewOfferNotFoundError(id)
	}

	var offer models.Offer
	if err := json.Unmarshal(doc.Source, &offer); err != nil {
		return nil, apperrors.NewOfferLookupFailedError(id, fmt.Errorf("failed to decode offer: %w", err))
	}
	if offer.ID == "" {
		offer.ID = doc.ID
	}
	if offer.Version == "" && doc.Version > 0 {
		offer.Version = strconv.FormatInt(doc.Version, 10)
	}

	r.logger.Debug("offer loaded", map[string]interface{}{
		"offerId": offer.ID,
		"version": offer.Version,
		"index":   r.index,
	})
	return &offer, nil
}
