// Package decoder turns raw Hypixel auctions into listings.
package decoder

import (
	"errors"
	"fmt"
	"time"

	"github.com/pauljones0/skysold-bot/internal/models"
	"github.com/pauljones0/skysold-bot/internal/tooltip"
)

var errClockBeforeEpoch = errors.New("system clock is before the Unix epoch")

// Decoder classifies raw auctions. Now is read once per timed auction.
type Decoder struct {
	Now func() time.Time
}

// New returns a Decoder that reads the system clock.
func New() *Decoder {
	return &Decoder{Now: time.Now}
}

// Decode decodes one raw auction with the system clock.
func Decode(raw models.RawListing) (models.Listing, error) {
	return New().Decode(raw)
}

// Decode decodes the tooltip payload, then works out the listing kind and
// whether it has sold.
func (d *Decoder) Decode(raw models.RawListing) (models.Listing, error) {
	item, err := tooltip.Decode(raw.ItemBytes.Data)
	if err != nil {
		return models.Listing{}, &models.InvalidTooltipError{ID: raw.ID, Name: raw.Name, Err: err}
	}

	kind := models.KindTimed
	var sold bool
	if raw.BuyNow {
		// Hypixel reports the amount paid as the highest bid once a BIN sells.
		kind = models.KindBuyNow
		sold = raw.HighestBidAmount == raw.StartingBid
	} else {
		now := d.Now().UnixMilli()
		if now < 0 {
			return models.Listing{}, &models.InvalidEndDateError{End: raw.End, Err: errClockBeforeEpoch}
		}
		sold = uint64(now) > raw.End
	}

	return models.Listing{
		ID:       raw.ID,
		Name:     raw.Name,
		ItemID:   item.ID,
		Quantity: item.Count,
		Kind:     kind,
		Price:    raw.StartingBid,
		Sold:     sold,
	}, nil
}

// DecodeAll decodes a whole batch. The first failure aborts the batch so a
// partially decoded snapshot never reaches the diff.
func (d *Decoder) DecodeAll(raws []models.RawListing) ([]models.Listing, error) {
	listings := make([]models.Listing, 0, len(raws))
	for i, raw := range raws {
		l, err := d.Decode(raw)
		if err != nil {
			return nil, fmt.Errorf("decode auction %d of %d: %w", i+1, len(raws), err)
		}
		listings = append(listings, l)
	}
	return listings, nil
}
