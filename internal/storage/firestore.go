package storage

import (
	"context"
	"fmt"
	"log/slog"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/firestore/apiv1/firestorepb"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/pauljones0/skysold-bot/internal/models"
	"github.com/pauljones0/skysold-bot/internal/validator"
)

const firestoreCollection = "sales"

// Client is the sale ledger. It only ever appends reported sales and trims
// old ones; it is never read back to rebuild the poller's state.
type Client struct {
	client    *firestore.Client
	validator *validator.Validator
}

func New(ctx context.Context, projectID string) (*Client, error) {
	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("firestore.NewClient: %w", err)
	}
	return &Client{client: client, validator: validator.New()}, nil
}

func (c *Client) Close() error {
	return c.client.Close()
}

// RecordSale stores a sale keyed by its listing id. Returns
// models.ErrSaleExists if the sale was already recorded.
func (c *Client) RecordSale(ctx context.Context, sale models.SaleRecord) error {
	if err := c.validator.ValidateStruct(sale); err != nil {
		return err
	}

	docRef := c.client.Collection(firestoreCollection).Doc(sale.ListingID)
	// Create fails if the document already exists.
	if _, err := docRef.Create(ctx, sale); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return models.ErrSaleExists
		}
		return fmt.Errorf("failed to record sale %s: %w", sale.ListingID, err)
	}
	return nil
}

// TrimOldSales deletes the oldest sales (by DetectedAt) so at most maxSales remain.
func (c *Client) TrimOldSales(ctx context.Context, maxSales int) error {
	collectionRef := c.client.Collection(firestoreCollection)

	countSnapshot, err := collectionRef.NewAggregationQuery().WithCount("all").Get(ctx)
	if err != nil {
		return fmt.Errorf("failed to get sale count for trimming: %w", err)
	}

	currentCount, err := countFromAggregation(countSnapshot["all"])
	if err != nil {
		return err
	}
	if currentCount <= int64(maxSales) {
		return nil
	}

	numToDelete := int(currentCount) - maxSales
	slog.Info("Trimming sale ledger", "current", currentCount, "max", maxSales, "deleting", numToDelete)

	iter := collectionRef.
		OrderBy("detectedAt", firestore.Asc).
		Limit(numToDelete).
		Documents(ctx)
	defer iter.Stop()

	bulkWriter := c.client.BulkWriter(ctx)
	defer bulkWriter.End()

	deletedCount := 0
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to iterate sales for trimming: %w", err)
		}

		if _, err := bulkWriter.Delete(doc.Ref); err != nil {
			slog.Warn("Failed to queue sale delete", "id", doc.Ref.ID, "error", err)
			continue
		}
		deletedCount++
	}

	if deletedCount > 0 {
		bulkWriter.Flush()
		slog.Info("Trimmed sale ledger", "deleted", deletedCount)
	}
	return nil
}

// countFromAggregation accepts both shapes the client library has returned
// for a count aggregation.
func countFromAggregation(v any) (int64, error) {
	switch val := v.(type) {
	case int64:
		return val, nil
	case *firestorepb.Value:
		return val.GetIntegerValue(), nil
	case nil:
		return 0, fmt.Errorf("count aggregation result for trimming was invalid: 'all' key missing")
	default:
		return 0, fmt.Errorf("count aggregation result for trimming has unexpected type %T", v)
	}
}
