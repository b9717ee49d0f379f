package models

import "time"

// SaleRecord is the ledger entry written for every reported sale.
type SaleRecord struct {
	ListingID  string    `firestore:"listingID" validate:"required,uuid"`
	Name       string    `firestore:"name" validate:"required"`
	ItemID     string    `firestore:"itemID"`
	Quantity   int       `firestore:"quantity" validate:"gte=1"`
	Kind       string    `firestore:"kind"`
	Price      int64     `firestore:"price" validate:"gte=0"`
	DetectedAt time.Time `firestore:"detectedAt" validate:"required"`
}

// NewSaleRecord builds the ledger entry for a listing detected as sold at the given time.
func NewSaleRecord(l Listing, detectedAt time.Time) SaleRecord {
	return SaleRecord{
		ListingID:  l.ID.String(),
		Name:       l.Name,
		ItemID:     l.ItemID,
		Quantity:   l.Quantity,
		Kind:       l.Kind.String(),
		Price:      int64(l.Price),
		DetectedAt: detectedAt,
	}
}
