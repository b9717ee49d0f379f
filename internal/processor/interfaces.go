package processor

import (
	"context"

	"github.com/google/uuid"

	"github.com/pauljones0/skysold-bot/internal/composer"
	"github.com/pauljones0/skysold-bot/internal/models"
)

// AuctionFetcher abstracts the Hypixel API.
type AuctionFetcher interface {
	FetchAuctions(ctx context.Context, player uuid.UUID) ([]models.RawListing, error)
}

// SaleNotifier abstracts the notification layer.
type SaleNotifier interface {
	Send(ctx context.Context, n composer.Notification) error
}

// SaleLedger abstracts the storage layer for reported sales.
type SaleLedger interface {
	RecordSale(ctx context.Context, sale models.SaleRecord) error
	TrimOldSales(ctx context.Context, maxSales int) error
}
