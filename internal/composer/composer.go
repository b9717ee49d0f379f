// Package composer turns the difference between two snapshots of filled
// auctions into a notification message.
package composer

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/pauljones0/skysold-bot/internal/collection"
	"github.com/pauljones0/skysold-bot/internal/models"
	"github.com/pauljones0/skysold-bot/internal/util"
)

// Notification is the composed message and the icon of its most valuable sale.
type Notification struct {
	Body    string
	IconURL string
	// Sales are the newly reported listings, cheapest first.
	Sales []models.Listing
}

// Compose reports the listings of current that are absent from previous.
// previous and current are expected to be filtered by sold state and price
// floor; currentFilled is only filtered by sold state and feeds the
// claimable total. It returns false when nothing new sold.
func Compose(previous, current, currentFilled collection.Collection) (Notification, bool) {
	sales := current.Difference(previous)
	if len(sales) == 0 {
		return Notification{}, false
	}
	// Stable: equal prices keep decode order.
	slices.SortStableFunc(sales, func(a, b models.Listing) int {
		return cmp.Compare(a.Price, b.Price)
	})

	last := sales[len(sales)-1]
	var items, amount string
	if len(sales) == 1 {
		items = last.Label()
		amount = util.FormatCoins(last.Price)
	} else {
		labels := make([]string, 0, len(sales)-1)
		var total uint64
		for _, l := range sales[:len(sales)-1] {
			labels = append(labels, l.Label())
			total += l.Price
		}
		total += last.Price
		items = strings.Join(labels, ", ") + " and " + last.Name
		amount = "a total of " + util.FormatCoins(total)
	}

	var body strings.Builder
	fmt.Fprintf(&body, "Your %s just sold for %s coins.", items, amount)
	if currentFilled.Len() > len(sales) {
		fmt.Fprintf(&body, " You have a total of %s coins to claim from %d filled auctions.",
			util.FormatCoins(currentFilled.TotalPrice()), currentFilled.Len())
	}

	return Notification{
		Body:    body.String(),
		IconURL: last.IconURL(),
		Sales:   sales,
	}, true
}
