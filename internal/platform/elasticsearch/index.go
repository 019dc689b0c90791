package elasticsearch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/elastic/go-elasticsearch/v8/esapi"
	"go.uber.org/zap"
)

const CarsIndexName = "cars"

// CarsMapping returns the JSON mapping for the cars index.
func CarsMapping() (string, error) {
	keywordSubfield := map[string]interface{}{
		"keyword": map[string]interface{}{"type": "keyword", "ignore_above": 256},
	}
	mapping := map[string]interface{}{
		"mappings": map[string]interface{}{
			"properties": map[string]interface{}{
				"title":         map[string]interface{}{"type": "text"},
				"make":          map[string]interface{}{"type": "text", "fields": keywordSubfield},
				"model":         map[string]interface{}{"type": "text", "fields": keywordSubfield},
				"year":          map[string]interface{}{"type": "integer"},
				"price":         map[string]interface{}{"type": "long"},
				"mileage":       map[string]interface{}{"type": "integer"},
				"location":      map[string]interface{}{"type": "text", "fields": keywordSubfield},
				"condition":     map[string]interface{}{"type": "keyword"},
				"transmission":  map[string]interface{}{"type": "keyword"},
				"description":   map[string]interface{}{"type": "text"},
				"features":      map[string]interface{}{"type": "keyword"},
				"images":        map[string]interface{}{"type": "keyword", "index": false},
				"seller_id":     map[string]interface{}{"type": "keyword"},
				"seller_name":   map[string]interface{}{"type": "text", "fields": keywordSubfield},
				"seller_status": map[string]interface{}{"type": "keyword"},
				"position":      map[string]interface{}{"type": "integer"},
				"suggest":       map[string]interface{}{"type": "completion"},
			},
		},
	}
	mappingBytes, err := json.Marshal(mapping)
	if err != nil {
		return "", fmt.Errorf("error marshalling cars mapping to JSON: %w", err)
	}
	return string(mappingBytes), nil
}

// CreateCarsIndexIfNotExists creates the cars index with its mapping if it does not already exist.
func CreateCarsIndexIfNotExists(ctx context.Context, client *ESClientWrapper, logger *zap.Logger) error {
	log := logger.Named("elasticsearch_index_setup")

	res, err := esapi.IndicesExistsRequest{Index: []string{CarsIndexName}}.Do(ctx, client.Client)
	if err != nil {
		return fmt.Errorf("error checking if cars index exists: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusOK {
		log.Info("Cars index already exists", zap.String("index_name", CarsIndexName))
		return nil
	}
	if res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("error checking if cars index exists: status %s", res.Status())
	}

	mappingJSON, err := CarsMapping()
	if err != nil {
		return err
	}
	log.Debug("Cars index mapping defined", zap.String("mapping", mappingJSON))

	createRes, err := esapi.IndicesCreateRequest{
		Index: CarsIndexName,
		Body:  strings.NewReader(mappingJSON),
	}.Do(ctx, client.Client)
	if err != nil {
		return fmt.Errorf("error creating cars index %s: %w", CarsIndexName, err)
	}
	defer createRes.Body.Close()

	if createRes.IsError() {
		var errorBody map[string]interface{}
		if err := json.NewDecoder(createRes.Body).Decode(&errorBody); err == nil {
			log.Error("Failed to create cars index",
				zap.String("status", createRes.Status()),
				zap.Any("error_details", errorBody),
			)
		}
		return fmt.Errorf("failed to create cars index %s: status %s", CarsIndexName, createRes.Status())
	}

	log.Info("Cars index created successfully", zap.String("index_name", CarsIndexName))
	return nil
}
