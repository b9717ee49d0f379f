package processor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/pauljones0/skysold-bot/internal/collection"
	"github.com/pauljones0/skysold-bot/internal/composer"
	"github.com/pauljones0/skysold-bot/internal/config"
	"github.com/pauljones0/skysold-bot/internal/decoder"
	"github.com/pauljones0/skysold-bot/internal/models"
	"github.com/pauljones0/skysold-bot/internal/util"
)

const (
	ledgerRetries = 2
	ledgerBackoff = 500 * time.Millisecond
)

type Processor interface {
	Poll(ctx context.Context) error
}

// Poller runs one fetch/diff/notify cycle at a time. It is not safe for
// concurrent use; Run drives it from a single goroutine.
type Poller struct {
	fetcher  AuctionFetcher
	notifier SaleNotifier
	ledger   SaleLedger
	decoder  *decoder.Decoder
	config   *config.Config
	now      func() time.Time

	// previous is the last filled-and-priced snapshot; nil until primed.
	previous *collection.Collection
}

// New builds a Poller. ledger may be nil to disable the sale ledger.
func New(fetcher AuctionFetcher, n SaleNotifier, ledger SaleLedger, cfg *config.Config) *Poller {
	return &Poller{
		fetcher:  fetcher,
		notifier: n,
		ledger:   ledger,
		decoder:  decoder.New(),
		config:   cfg,
		now:      time.Now,
	}
}

// snapshot fetches and decodes the player's auctions, returning the filled
// view and the filled view restricted to the price floor.
func (p *Poller) snapshot(ctx context.Context) (filled, priced collection.Collection, err error) {
	raws, err := p.fetcher.FetchAuctions(ctx, p.config.Player)
	if err != nil {
		return filled, priced, fmt.Errorf("cannot fetch current auctions: %w", err)
	}
	listings, err := p.decoder.DecodeAll(raws)
	if err != nil {
		return filled, priced, fmt.Errorf("cannot decode current auctions: %w", err)
	}

	filled = collection.New(listings...).Filled()
	priced = filled.MinPrice(p.config.MinPrice)
	return filled, priced, nil
}

// Prime records the current state as the baseline without notifying, so
// sales that happened before startup are not reported.
func (p *Poller) Prime(ctx context.Context) error {
	_, priced, err := p.snapshot(ctx)
	if err != nil {
		return err
	}
	p.previous = &priced
	slog.Info("Baseline established", "filled_above_floor", priced.Len())
	return nil
}

// Poll runs one cycle. On error the previous snapshot is kept untouched.
func (p *Poller) Poll(ctx context.Context) error {
	if p.previous == nil {
		return p.Prime(ctx)
	}

	filled, priced, err := p.snapshot(ctx)
	if err != nil {
		return err
	}

	n, ok := composer.Compose(*p.previous, priced, filled)
	// The snapshot advances even if delivery fails so a sale is never reported twice.
	p.previous = &priced
	if !ok {
		slog.Debug("No new sales", "filled", filled.Len())
		return nil
	}

	slog.Info("New sales detected", "count", len(n.Sales), "body", n.Body)
	if err := p.notifier.Send(ctx, n); err != nil {
		slog.Error("cannot send notification", "error", err)
	}
	p.recordSales(ctx, n.Sales)
	return nil
}

func (p *Poller) recordSales(ctx context.Context, sales []models.Listing) {
	if p.ledger == nil {
		return
	}
	detectedAt := p.now()
	for _, sale := range sales {
		record := models.NewSaleRecord(sale, detectedAt)
		err := util.RetryWithBackoff(ctx, ledgerRetries, ledgerBackoff, func(attempt int) error {
			err := p.ledger.RecordSale(ctx, record)
			if errors.Is(err, models.ErrSaleExists) {
				return nil
			}
			return err
		})
		if err != nil {
			slog.Warn("Failed to record sale", "id", record.ListingID, "error", err)
		}
	}
	if err := p.ledger.TrimOldSales(ctx, p.config.MaxStoredSales); err != nil {
		slog.Warn("Failed to trim old sales", "error", err)
	}
}

// Run polls every FetchInterval until ctx is cancelled. Cycle failures are
// logged and retried on the next tick.
func (p *Poller) Run(ctx context.Context) error {
	if err := p.Poll(ctx); err != nil {
		slog.Error("Poll cycle failed", "error", err)
	}

	ticker := time.NewTicker(p.config.FetchInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := p.Poll(ctx); err != nil {
				slog.Error("Poll cycle failed", "error", err)
			}
		}
	}
}
