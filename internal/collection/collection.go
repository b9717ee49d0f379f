// Package collection holds an immutable set of listings keyed by auction id.
package collection

import (
	"iter"

	"github.com/google/uuid"

	"github.com/pauljones0/skysold-bot/internal/models"
)

// Collection is a set of listings deduplicated by ID. The zero value is an
// empty collection. Iteration follows insertion order.
type Collection struct {
	order []uuid.UUID
	byID  map[uuid.UUID]models.Listing
}

// New builds a collection. When two listings share an ID the first one wins.
func New(listings ...models.Listing) Collection {
	c := Collection{
		order: make([]uuid.UUID, 0, len(listings)),
		byID:  make(map[uuid.UUID]models.Listing, len(listings)),
	}
	for _, l := range listings {
		if _, ok := c.byID[l.ID]; ok {
			continue
		}
		c.order = append(c.order, l.ID)
		c.byID[l.ID] = l
	}
	return c
}

// Predicate selects listings for Filter.
type Predicate func(models.Listing) bool

// IsSold matches filled listings.
func IsSold(l models.Listing) bool { return l.Sold }

// HasKind matches listings of kind k.
func HasKind(k models.Kind) Predicate {
	return func(l models.Listing) bool { return l.Kind == k }
}

// PriceAtLeast matches listings priced at or above floor.
func PriceAtLeast(floor uint64) Predicate {
	return func(l models.Listing) bool { return l.Price >= floor }
}

// Filter returns a new collection holding the listings of c that match keep.
func Filter(c Collection, keep Predicate) Collection {
	out := Collection{
		order: make([]uuid.UUID, 0, len(c.order)),
		byID:  make(map[uuid.UUID]models.Listing, len(c.order)),
	}
	for _, id := range c.order {
		l := c.byID[id]
		if keep(l) {
			out.order = append(out.order, id)
			out.byID[id] = l
		}
	}
	return out
}

func (c Collection) Filled() Collection { return Filter(c, IsSold) }

func (c Collection) OfKind(k models.Kind) Collection { return Filter(c, HasKind(k)) }

func (c Collection) MinPrice(floor uint64) Collection { return Filter(c, PriceAtLeast(floor)) }

// Difference returns the listings of c whose ID is absent from other.
func (c Collection) Difference(other Collection) []models.Listing {
	var out []models.Listing
	for _, id := range c.order {
		if other.Contains(id) {
			continue
		}
		out = append(out, c.byID[id])
	}
	return out
}

func (c Collection) Contains(id uuid.UUID) bool {
	_, ok := c.byID[id]
	return ok
}

func (c Collection) Len() int { return len(c.order) }

// All yields every listing. The sequence can be ranged over more than once.
func (c Collection) All() iter.Seq[models.Listing] {
	return func(yield func(models.Listing) bool) {
		for _, id := range c.order {
			if !yield(c.byID[id]) {
				return
			}
		}
	}
}

// TotalPrice sums Price over the collection.
func (c Collection) TotalPrice() uint64 {
	var total uint64
	for l := range c.All() {
		total += l.Price
	}
	return total
}
