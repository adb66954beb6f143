package history

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/fadedpez/pokersquares/internal/logging"
	"github.com/fadedpez/pokersquares/pkg/entities"
)

// ElasticsearchConfig holds configuration options for the Elasticsearch repository
type ElasticsearchConfig struct {
	URL         string
	Username    string
	Password    string
	IndexPrefix string
	SearchSize  int // Maximum hits returned by a leaderboard search
}

// DefaultElasticsearchConfig returns a default configuration for Elasticsearch
func DefaultElasticsearchConfig() *ElasticsearchConfig {
	return &ElasticsearchConfig{
		URL:         "http://localhost:9200",
		IndexPrefix: "pokersquares",
		SearchSize:  500,
	}
}

const resultsMapping = `{
	"mappings": {
		"properties": {
			"result_id": { "type": "keyword" },
			"game_id": { "type": "keyword" },
			"player_id": { "type": "keyword" },
			"game": { "type": "keyword" },
			"game_key": { "type": "keyword" },
			"score": { "type": "integer" },
			"categories": { "type": "keyword" },
			"hands": { "type": "object", "enabled": false },
			"share": { "type": "text", "index": false },
			"completed_at": { "type": "date" }
		}
	}
}`

// ElasticsearchRepository wraps a base repository. Results are also indexed in
// Elasticsearch and daily leaderboards are served from a search; everything
// else goes to the base repository.
type ElasticsearchRepository struct {
	baseRepo     Repository
	client       *elasticsearch.Client
	config       *ElasticsearchConfig
	resultsIndex string
	logger       *logging.Logger
}

// NewElasticsearchRepository creates the client and the results index if it is missing
func NewElasticsearchRepository(ctx context.Context, baseRepo Repository, config *ElasticsearchConfig) (*ElasticsearchRepository, error) {
	cfg := elasticsearch.Config{
		Addresses: []string{config.URL},
	}
	if config.Username != "" && config.Password != "" {
		cfg.Username = config.Username
		cfg.Password = config.Password
	}

	client, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("error creating Elasticsearch client: %w", err)
	}

	if config.IndexPrefix == "" {
		config.IndexPrefix = "pokersquares"
	}
	if config.SearchSize == 0 {
		config.SearchSize = 500
	}

	repo := &ElasticsearchRepository{
		baseRepo:     baseRepo,
		client:       client,
		config:       config,
		resultsIndex: config.IndexPrefix + "_results",
		logger:       logging.Default,
	}

	if err := repo.initIndices(ctx); err != nil {
		return nil, fmt.Errorf("error initializing indices: %w", err)
	}

	return repo, nil
}

// initIndices creates the results index if it doesn't exist
func (r *ElasticsearchRepository) initIndices(ctx context.Context) error {
	res, err := r.client.Indices.Exists(
		[]string{r.resultsIndex},
		r.client.Indices.Exists.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("error checking if results index exists: %w", err)
	}
	res.Body.Close()

	if res.StatusCode != 404 {
		return nil
	}

	req := esapi.IndicesCreateRequest{
		Index: r.resultsIndex,
		Body:  bytes.NewReader([]byte(resultsMapping)),
	}
	res, err = req.Do(ctx, r.client)
	if err != nil {
		return fmt.Errorf("error creating results index: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("error creating results index: %s", res.String())
	}
	return nil
}

// IndexResult writes a result document, keyed by the result ID
func (r *ElasticsearchRepository) IndexResult(ctx context.Context, result *Result) error {
	jsonData, err := json.Marshal(result.ToESResult())
	if err != nil {
		return fmt.Errorf("error marshaling result: %w", err)
	}

	res, err := r.client.Index(
		r.resultsIndex,
		bytes.NewReader(jsonData),
		r.client.Index.WithContext(ctx),
		r.client.Index.WithDocumentID(result.ID.String()),
		r.client.Index.WithRefresh("true"),
	)
	if err != nil {
		return fmt.Errorf("error indexing result: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("error indexing result: %s", res.String())
	}
	return nil
}

// SaveResult stores the result in the base repository, then indexes it
func (r *ElasticsearchRepository) SaveResult(ctx context.Context, result *Result) error {
	if err := r.baseRepo.SaveResult(ctx, result); err != nil {
		return fmt.Errorf("error saving result to base repository: %w", err)
	}
	return r.IndexResult(ctx, result)
}

// SearchDailyResults runs the leaderboard query for one day key
func (r *ElasticsearchRepository) SearchDailyResults(ctx context.Context, game entities.GameType, key string) ([]*Result, error) {
	query := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"filter": []interface{}{
					map[string]interface{}{"term": map[string]interface{}{"game": string(game)}},
					map[string]interface{}{"term": map[string]interface{}{"game_key": key}},
				},
			},
		},
		"sort": []interface{}{
			map[string]interface{}{"score": map[string]interface{}{"order": "desc"}},
			map[string]interface{}{"completed_at": map[string]interface{}{"order": "asc"}},
		},
	}
	body, err := json.Marshal(query)
	if err != nil {
		return nil, fmt.Errorf("error building search: %w", err)
	}

	res, err := r.client.Search(
		r.client.Search.WithContext(ctx),
		r.client.Search.WithIndex(r.resultsIndex),
		r.client.Search.WithBody(bytes.NewReader(body)),
		r.client.Search.WithSize(r.config.SearchSize),
	)
	if err != nil {
		return nil, fmt.Errorf("error searching daily results: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("error searching daily results: %s", res.String())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source ESResult `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("error parsing daily results: %w", err)
	}

	results := make([]*Result, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		result, err := hit.Source.ToResult()
		if err != nil {
			r.logger.Warn("Skipping malformed result document %q: %v", hit.Source.ResultID, err)
			continue
		}
		results = append(results, result)
	}
	return results, nil
}

// GetDailyResults serves the leaderboard from Elasticsearch, falling back to
// the base repository when the search fails
func (r *ElasticsearchRepository) GetDailyResults(ctx context.Context, game entities.GameType, key string) ([]*Result, error) {
	results, err := r.SearchDailyResults(ctx, game, key)
	if err != nil {
		r.logger.Warn("Elasticsearch leaderboard unavailable, using base repository: %v", err)
		return r.baseRepo.GetDailyResults(ctx, game, key)
	}
	return results, nil
}

// SaveGame delegates to the base repository
func (r *ElasticsearchRepository) SaveGame(ctx context.Context, record *Record) error {
	return r.baseRepo.SaveGame(ctx, record)
}

// GetGame delegates to the base repository
func (r *ElasticsearchRepository) GetGame(ctx context.Context, playerID string, game entities.GameType, key string) (*Record, error) {
	return r.baseRepo.GetGame(ctx, playerID, game, key)
}

// LatestGame delegates to the base repository
func (r *ElasticsearchRepository) LatestGame(ctx context.Context, playerID string, game entities.GameType) (*Record, error) {
	return r.baseRepo.LatestGame(ctx, playerID, game)
}

// DeleteGamesBefore delegates to the base repository
func (r *ElasticsearchRepository) DeleteGamesBefore(ctx context.Context, key string) (int, error) {
	return r.baseRepo.DeleteGamesBefore(ctx, key)
}

// GetPlayerResults delegates to the base repository
func (r *ElasticsearchRepository) GetPlayerResults(ctx context.Context, playerID string, game entities.GameType) ([]*Result, error) {
	return r.baseRepo.GetPlayerResults(ctx, playerID, game)
}

// Close closes the base repository
func (r *ElasticsearchRepository) Close() error {
	return r.baseRepo.Close()
}

// GetIndexPrefix returns the index prefix used by the repository
func (r *ElasticsearchRepository) GetIndexPrefix() string {
	return r.config.IndexPrefix
}
