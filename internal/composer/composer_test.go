package composer

import (
	"testing"

	"github.com/google/uuid"

	"github.com/pauljones0/skysold-bot/internal/collection"
	"github.com/pauljones0/skysold-bot/internal/models"
)

func fakeListing(name, itemID string, price uint64) models.Listing {
	return models.Listing{
		ID:       uuid.NewSHA1(uuid.NameSpaceURL, []byte(itemID)),
		Name:     name,
		ItemID:   itemID,
		Quantity: 1,
		Kind:     models.KindBuyNow,
		Price:    price,
		Sold:     true,
	}
}

var (
	carrotCandy = fakeListing("Ultimate Carrot Candy", "ULTIMATE_CARROT_CANDY", 14_000_000)
	healingRing = fakeListing("Healing Ring", "HEALING_RING", 120_000)
	midasSword  = fakeListing("Midas's Sword", "MIDAS_SWORD", 50_040_000)
	shredder    = fakeListing("Shredder", "SHREDDER", 999_000)
)

func TestCompose(t *testing.T) {
	tests := []struct {
		name          string
		previous      collection.Collection
		current       collection.Collection
		currentFilled collection.Collection
		wantBody      string
		wantIcon      string
	}{
		{
			name:          "first sale",
			previous:      collection.New(),
			current:       collection.New(carrotCandy),
			currentFilled: collection.New(),
			wantBody:      "Your Ultimate Carrot Candy just sold for 14,000,000 coins.",
			wantIcon:      "https://sky.shiiyu.moe/item/ULTIMATE_CARROT_CANDY",
		},
		{
			name:          "one new sale with older unclaimed",
			previous:      collection.New(carrotCandy),
			current:       collection.New(carrotCandy, healingRing),
			currentFilled: collection.New(carrotCandy, healingRing),
			wantBody:      "Your Healing Ring just sold for 120,000 coins. You have a total of 14,120,000 coins to claim from 2 filled auctions.",
			wantIcon:      "https://sky.shiiyu.moe/item/HEALING_RING",
		},
		{
			name:          "two new sales",
			previous:      collection.New(),
			current:       collection.New(carrotCandy, healingRing),
			currentFilled: collection.New(carrotCandy, healingRing),
			wantBody:      "Your Healing Ring and Ultimate Carrot Candy just sold for a total of 14,120,000 coins.",
			wantIcon:      "https://sky.shiiyu.moe/item/ULTIMATE_CARROT_CANDY",
		},
		{
			name:          "two new sales with older unclaimed",
			previous:      collection.New(carrotCandy, healingRing),
			current:       collection.New(carrotCandy, healingRing, midasSword, shredder),
			currentFilled: collection.New(carrotCandy, healingRing, midasSword, shredder),
			wantBody:      "Your Shredder and Midas's Sword just sold for a total of 51,039,000 coins. You have a total of 65,159,000 coins to claim from 4 filled auctions.",
			wantIcon:      "https://sky.shiiyu.moe/item/MIDAS_SWORD",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, ok := Compose(tt.previous, tt.current, tt.currentFilled)
			if !ok {
				t.Fatal("Compose() returned no notification")
			}
			if n.Body != tt.wantBody {
				t.Errorf("Body = %q, want %q", n.Body, tt.wantBody)
			}
			if n.IconURL != tt.wantIcon {
				t.Errorf("IconURL = %q, want %q", n.IconURL, tt.wantIcon)
			}
		})
	}
}

func TestCompose_NothingNew(t *testing.T) {
	both := collection.New(carrotCandy, healingRing)
	if _, ok := Compose(both, both, both); ok {
		t.Error("Compose() returned a notification for identical snapshots")
	}
	if _, ok := Compose(collection.New(), collection.New(), collection.New(carrotCandy)); ok {
		t.Error("Compose() returned a notification for an empty current snapshot")
	}
}

func TestCompose_BelowFloorOnlyCountsTowardsTotal(t *testing.T) {
	// healingRing sold below the floor: absent from current but present in currentFilled.
	n, ok := Compose(collection.New(), collection.New(carrotCandy), collection.New(carrotCandy, healingRing))
	if !ok {
		t.Fatal("Compose() returned no notification")
	}
	want := "Your Ultimate Carrot Candy just sold for 14,000,000 coins. You have a total of 14,120,000 coins to claim from 2 filled auctions."
	if n.Body != want {
		t.Errorf("Body = %q, want %q", n.Body, want)
	}
}

func TestCompose_QuantityLabels(t *testing.T) {
	diamonds := fakeListing("Enchanted Diamond", "ENCHANTED_DIAMOND", 10_000)
	diamonds.Quantity = 64
	pearls := fakeListing("Ender Pearl", "ENDER_PEARL", 2_000_000)
	pearls.Quantity = 16

	n, ok := Compose(collection.New(), collection.New(diamonds), collection.New(diamonds))
	if !ok {
		t.Fatal("Compose() returned no notification")
	}
	if want := "Your Enchanted Diamond x64 just sold for 10,000 coins."; n.Body != want {
		t.Errorf("Body = %q, want %q", n.Body, want)
	}

	// The most valuable sale is named without its stack size.
	n, ok = Compose(collection.New(), collection.New(pearls, diamonds, healingRing), collection.New(pearls, diamonds, healingRing))
	if !ok {
		t.Fatal("Compose() returned no notification")
	}
	want := "Your Enchanted Diamond x64, Healing Ring and Ender Pearl just sold for a total of 2,130,000 coins."
	if n.Body != want {
		t.Errorf("Body = %q, want %q", n.Body, want)
	}
	if n.IconURL != "https://sky.shiiyu.moe/item/ENDER_PEARL" {
		t.Errorf("IconURL = %q, want ENDER_PEARL icon", n.IconURL)
	}
}

func TestCompose_SalesSortedByPrice(t *testing.T) {
	n, ok := Compose(collection.New(), collection.New(midasSword, healingRing, shredder), collection.New())
	if !ok {
		t.Fatal("Compose() returned no notification")
	}
	want := []string{"HEALING_RING", "SHREDDER", "MIDAS_SWORD"}
	if len(n.Sales) != len(want) {
		t.Fatalf("Sales has %d entries, want %d", len(n.Sales), len(want))
	}
	for i, l := range n.Sales {
		if l.ItemID != want[i] {
			t.Errorf("Sales[%d] = %s, want %s", i, l.ItemID, want[i])
		}
	}
}
