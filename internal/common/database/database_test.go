package database

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"matching-workers/internal/common/config"
)

func TestPostgresDSN(t *testing.T) {
	cfg := config.PostgresConfig{
		Host: "db", Port: 5432, User: "matching", Password: "secret",
		Database: "matching", SSLMode: "disable", MaxConnections: 4, MaxIdle: 2,
	}
	assert.Equal(t, "host=db port=5432 user=matching password=secret dbname=matching sslmode=disable", cfg.GetDSN())

	pg, err := NewPostgres(cfg)
	require.NoError(t, err)
	assert.Equal(t, 4, pg.DB.Stats().MaxOpenConnections)
	assert.NoError(t, pg.Close())
}

func TestRedisPing(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := NewRedis(config.RedisConfig{Address: mr.Addr()})
	defer rdb.Close()

	require.NoError(t, rdb.Ping(context.Background()))

	mr.Close()
	assert.Error(t, rdb.Ping(context.Background()))
}

func TestElasticsearchPing(t *testing.T) {
	status := http.StatusOK
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.WriteHeader(status)
	}))
	defer srv.Close()

	es, err := NewElasticsearch(config.ElasticsearchConfig{Addresses: []string{srv.URL}, OffersIndex: "offers"})
	require.NoError(t, err)
	assert.Equal(t, "offers", es.OffersIndex)
	require.NoError(t, es.Ping(context.Background()))

	status = http.StatusServiceUnavailable
	assert.Error(t, es.Ping(context.Background()))
}
