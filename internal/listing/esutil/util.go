package esutil

import (
	"encoding/json"
	"errors"
	"fmt"

	"mottars_backend/internal/listing"
)

// CarToElasticsearchDoc converts a listing.Car to its Elasticsearch document representation.
// The Seller association should be preloaded; seller fields are omitted otherwise.
func CarToElasticsearchDoc(c *listing.Car) (string, error) {
	if c == nil {
		return "", errors.New("car cannot be nil")
	}
	if !c.IsVisible() {
		return "", fmt.Errorf("car %s has no usable images", c.ID)
	}

	doc := map[string]interface{}{
		"title":        c.Title(),
		"make":         c.Make,
		"model":        c.Model,
		"year":         c.Year,
		"price":        c.Price,
		"mileage":      c.Mileage,
		"location":     c.Location,
		"condition":    string(c.Condition),
		"transmission": string(c.Transmission),
		"description":  c.Description,
		"features":     c.Features,
		"images":       c.Images,
		"seller_id":    c.SellerID,
		"position":     c.Position,
		"suggest": map[string]interface{}{
			"input": []string{c.Make + " " + c.Model, c.Model},
		},
	}

	if c.Seller != nil {
		doc["seller_name"] = c.Seller.Name
		doc["seller_status"] = string(c.Seller.VerificationStatus)
	}

	docBytes, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("error marshalling car to JSON for ES: %w", err)
	}
	return string(docBytes), nil
}
