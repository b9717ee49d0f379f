package storage

import (
	"context"
	"errors"
	"testing"

	"cloud.google.com/go/firestore/apiv1/firestorepb"

	"github.com/pauljones0/skysold-bot/internal/models"
	"github.com/pauljones0/skysold-bot/internal/validator"
)

func TestCountFromAggregation(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		wantInt  int64
		wantFail bool
	}{
		{
			name:    "int64 direct",
			value:   int64(42),
			wantInt: 42,
		},
		{
			name: "firestorepb.Value integer",
			value: &firestorepb.Value{
				ValueType: &firestorepb.Value_IntegerValue{IntegerValue: 100},
			},
			wantInt: 100,
		},
		{
			name:     "missing",
			value:    nil,
			wantFail: true,
		},
		{
			name:     "unexpected type",
			value:    "not a number",
			wantFail: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := countFromAggregation(tt.value)
			if (err != nil) != tt.wantFail {
				t.Errorf("countFromAggregation() error = %v, wantFail = %v", err, tt.wantFail)
			}
			if !tt.wantFail && got != tt.wantInt {
				t.Errorf("countFromAggregation() = %d, want %d", got, tt.wantInt)
			}
		})
	}
}

func TestRecordSale_RejectsInvalidRecord(t *testing.T) {
	// Validation runs before any Firestore call, so a nil client is never touched.
	c := &Client{validator: validator.New()}
	err := c.RecordSale(context.Background(), models.SaleRecord{Name: "Healing Ring"})
	if err == nil {
		t.Fatal("RecordSale() should reject a record without a listing id")
	}
}

func TestErrSaleExists(t *testing.T) {
	if models.ErrSaleExists == nil {
		t.Fatal("ErrSaleExists should not be nil")
	}
	if !errors.Is(models.ErrSaleExists, models.ErrSaleExists) {
		t.Error("ErrSaleExists should match itself")
	}
	if models.ErrSaleExists.Error() != "sale already exists" {
		t.Errorf("ErrSaleExists message = %q, want %q", models.ErrSaleExists.Error(), "sale already exists")
	}
}
