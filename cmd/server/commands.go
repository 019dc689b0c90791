// File: cmd/server/commands.go
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"mottars_backend/internal/config"
	"mottars_backend/internal/domain"
	"mottars_backend/internal/listing"
	"mottars_backend/internal/listing/esutil"
	platformElasticsearch "mottars_backend/internal/platform/elasticsearch"
	"mottars_backend/internal/verification"

	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// commands carries what the maintenance commands need.
type commands struct {
	Logger        *zap.Logger
	Listings      listing.Service
	Verifications verification.Service
}

func runCommand(name string, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	cmds, cleanup, err := initializeCommands(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	defer cleanup()

	ctx := context.Background()
	switch name {
	case "sync-listings":
		fs := flag.NewFlagSet(name, flag.ExitOnError)
		batchSize := fs.Int("batch-size", 100, "Batch size for syncing cars")
		esRefresh := fs.String("es-refresh", "false", "Elasticsearch refresh policy (true, false, wait_for)")
		_ = fs.Parse(args)
		return cmds.syncListings(ctx, cfg, *batchSize, *esRefresh)
	case "list-verifications":
		fs := flag.NewFlagSet(name, flag.ExitOnError)
		status := fs.String("status", string(domain.VerificationPending), "Submission status to list (empty for all)")
		_ = fs.Parse(args)
		return cmds.listVerifications(ctx, domain.VerificationStatus(*status))
	case "review-verification":
		fs := flag.NewFlagSet(name, flag.ExitOnError)
		id := fs.String("id", "", "Submission id")
		status := fs.String("status", "", "Decision: verified or rejected")
		_ = fs.Parse(args)
		return cmds.reviewVerification(ctx, *id, domain.VerificationStatus(*status))
	}
	return fmt.Errorf("unknown command %q", name)
}

func (c *commands) listVerifications(ctx context.Context, status domain.VerificationStatus) error {
	subs, err := c.Verifications.ListSubmissions(ctx, status)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSELLER\tNAME\tID TYPE\tSTATUS\tSUBMITTED")
	for _, s := range subs {
		fmt.Fprintf(w, "%s\t%s\t%s %s\t%s\t%s\t%s\n",
			s.ID, s.SellerID, s.FirstName, s.LastName, s.IDType, s.Status, s.CreatedAt.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}

func (c *commands) reviewVerification(ctx context.Context, rawID string, status domain.VerificationStatus) error {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return fmt.Errorf("invalid submission id %q: %w", rawID, err)
	}
	sub, err := c.Verifications.Review(ctx, id, status)
	if err != nil {
		return err
	}
	fmt.Printf("Submission %s is now %s\n", sub.ID, sub.Status)
	return nil
}

// syncListings bulk-indexes every visible car into the cars index.
func (c *commands) syncListings(ctx context.Context, cfg *config.Config, batchSize int, esRefresh string) error {
	logger := c.Logger.Named("sync-listings")
	if batchSize <= 0 {
		return fmt.Errorf("batch-size must be positive, got %d", batchSize)
	}

	esClient, err := platformElasticsearch.NewClient(cfg, logger)
	if err != nil {
		return err
	}
	if err := platformElasticsearch.CreateCarsIndexIfNotExists(ctx, esClient, logger); err != nil {
		return fmt.Errorf("failed to create/verify cars index: %w", err)
	}

	cars, err := c.Listings.ExportableCars(ctx)
	if err != nil {
		return fmt.Errorf("failed to load cars: %w", err)
	}
	logger.Info("Starting car synchronization to Elasticsearch...",
		zap.Int("cars", len(cars)),
		zap.Int("batchSize", batchSize),
		zap.String("esRefreshPolicy", esRefresh),
	)

	totalSynced, totalFailed := 0, 0
	for start, batchNumber := 0, 1; start < len(cars); start, batchNumber = start+batchSize, batchNumber+1 {
		end := start + batchSize
		if end > len(cars) {
			end = len(cars)
		}
		synced, failed := indexBatch(ctx, esClient, logger, cars[start:end], esRefresh)
		totalSynced += synced
		totalFailed += failed
		logger.Info("Batch processed.",
			zap.Int("batchNumber", batchNumber),
			zap.Int("syncedInBatch", synced),
			zap.Int("failedInBatch", failed),
		)
	}

	logger.Info("Car synchronization finished.",
		zap.Int("totalSynced", totalSynced),
		zap.Int("totalFailed", totalFailed),
	)
	if totalFailed > 0 {
		return fmt.Errorf("%d cars failed to sync", totalFailed)
	}
	return nil
}

func indexBatch(ctx context.Context, client *platformElasticsearch.ESClientWrapper, logger *zap.Logger, cars []listing.Car, esRefresh string) (synced, failed int) {
	var body strings.Builder
	docs := 0
	for i := range cars {
		car := &cars[i]
		docJSON, err := esutil.CarToElasticsearchDoc(car)
		if err != nil {
			logger.Error("Failed to convert car to Elasticsearch document", zap.String("carID", car.ID), zap.Error(err))
			failed++
			continue
		}
		fmt.Fprintf(&body, `{ "index" : { "_index" : "%s", "_id" : "%s" } }`+"\n", platformElasticsearch.CarsIndexName, car.ID)
		body.WriteString(docJSON)
		body.WriteString("\n")
		docs++
	}
	if docs == 0 {
		return 0, failed
	}

	res, err := esapi.BulkRequest{
		Body:    strings.NewReader(body.String()),
		Refresh: esRefresh,
	}.Do(ctx, client.Client)
	if err != nil {
		logger.Error("Failed to send bulk request to Elasticsearch", zap.Error(err))
		return 0, failed + docs
	}
	defer res.Body.Close()

	if res.IsError() {
		logger.Error("Elasticsearch bulk request returned an error", zap.String("status", res.Status()))
		return 0, failed + docs
	}

	var bulkResponse struct {
		Errors bool `json:"errors"`
		Items  []struct {
			Index struct {
				ID     string                 `json:"_id"`
				Status int                    `json:"status"`
				Error  map[string]interface{} `json:"error,omitempty"`
			} `json:"index"`
		} `json:"items"`
	}
	if err := json.NewDecoder(res.Body).Decode(&bulkResponse); err != nil {
		logger.Error("Failed to parse Elasticsearch bulk response body", zap.Error(err))
		return 0, failed + docs
	}
	for _, item := range bulkResponse.Items {
		if item.Index.Error != nil {
			logger.Error("Failed to index car",
				zap.String("carID", item.Index.ID),
				zap.Any("error", item.Index.Error),
				zap.Int("status", item.Index.Status),
			)
			failed++
			continue
		}
		synced++
	}
	return synced, failed
}
