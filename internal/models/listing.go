package models

import (
	"fmt"

	"github.com/google/uuid"
)

// Kind distinguishes timed auctions from buy-it-now listings.
type Kind int

const (
	KindTimed Kind = iota
	KindBuyNow
)

func (k Kind) String() string {
	switch k {
	case KindTimed:
		return "timed"
	case KindBuyNow:
		return "buy_now"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

const iconBaseURL = "https://sky.shiiyu.moe/item/"

// Listing is one decoded auction. Two listings with the same ID are the same
// entity regardless of their other fields.
type Listing struct {
	ID       uuid.UUID
	Name     string
	ItemID   string
	Quantity int
	Kind     Kind
	Price    uint64
	Sold     bool
}

// Label is the name shown in notifications, suffixed with the stack size
// when more than one item was listed.
func (l Listing) Label() string {
	if l.Quantity == 1 {
		return l.Name
	}
	return fmt.Sprintf("%s x%d", l.Name, l.Quantity)
}

// IconURL points at the rendered icon for the listing's item type.
func (l Listing) IconURL() string {
	return iconBaseURL + l.ItemID
}

// RawListing is an auction as returned by the Hypixel API.
type RawListing struct {
	ID               uuid.UUID `json:"uuid" validate:"required"`
	Name             string    `json:"item_name" validate:"required"`
	BuyNow           bool      `json:"bin"`
	StartingBid      uint64    `json:"starting_bid"`
	HighestBidAmount uint64    `json:"highest_bid_amount"`
	End              uint64    `json:"end"`
	ItemBytes        ItemBytes `json:"item_bytes"`
}

// ItemBytes wraps the base64 tooltip payload.
type ItemBytes struct {
	Type int    `json:"type"`
	Data string `json:"data" validate:"required"`
}
