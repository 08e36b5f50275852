package cart

import (
	"sort"

	"github.com/google/uuid"

	"github.com/nharmon/slicehaus-backend/pkg/enums"
)

// Snapshot is the immutable product view captured when an item enters the
// cart. Later catalog edits do not retroactively change carted lines.
type Snapshot struct {
	ProductID      uuid.UUID             `json:"product_id"`
	Name           string                `json:"name"`
	Category       enums.ProductCategory `json:"category"`
	UnitPriceCents int                   `json:"unit_price_cents"`
	ImageURL       string                `json:"image_url,omitempty"`
}

// Entry is one carted product with its quantity.
type Entry struct {
	Product  Snapshot `json:"product"`
	Quantity int      `json:"quantity"`
}

// Cart aggregates entries keyed by product id. At most one entry exists per
// product; repeated adds bump the quantity. The zero value is not usable,
// construct with New or FromRecord.
type Cart struct {
	entries map[uuid.UUID]Entry
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{entries: map[uuid.UUID]Entry{}}
}

// Add inserts the product with quantity 1, or bumps the existing quantity.
// The first add wins the snapshot; subsequent adds never overwrite it.
func (c *Cart) Add(product Snapshot) {
	if entry, ok := c.entries[product.ProductID]; ok {
		entry.Quantity++
		c.entries[product.ProductID] = entry
		return
	}
	c.entries[product.ProductID] = Entry{Product: product, Quantity: 1}
}

// Adjust shifts an existing entry's quantity by delta. Adjusting a product
// that is not in the cart is a no-op; a resulting quantity of zero or less
// removes the entry. Reports whether the cart changed.
func (c *Cart) Adjust(productID uuid.UUID, delta int) bool {
	entry, ok := c.entries[productID]
	if !ok || delta == 0 {
		return false
	}
	entry.Quantity += delta
	if entry.Quantity <= 0 {
		delete(c.entries, productID)
		return true
	}
	c.entries[productID] = entry
	return true
}

// Remove drops the entry regardless of quantity. Removing an absent product
// is a no-op.
func (c *Cart) Remove(productID uuid.UUID) {
	delete(c.entries, productID)
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.entries = map[uuid.UUID]Entry{}
}

// Merge folds the incoming cart into this one. Quantities for shared
// products are summed and this cart's snapshot wins; products only present
// in the incoming cart are carried over as-is.
func (c *Cart) Merge(incoming *Cart) {
	if incoming == nil {
		return
	}
	for id, in := range incoming.entries {
		if base, ok := c.entries[id]; ok {
			base.Quantity += in.Quantity
			c.entries[id] = base
			continue
		}
		c.entries[id] = in
	}
}

// Get returns the entry for a product, if present.
func (c *Cart) Get(productID uuid.UUID) (Entry, bool) {
	entry, ok := c.entries[productID]
	return entry, ok
}

// Items returns the entries in a stable order (by product id) so priced
// views and serialized payloads do not shuffle between reads.
func (c *Cart) Items() []Entry {
	items := make([]Entry, 0, len(c.entries))
	for _, entry := range c.entries {
		items = append(items, entry)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].Product.ProductID.String() < items[j].Product.ProductID.String()
	})
	return items
}

// TotalItems sums the quantities across all entries.
func (c *Cart) TotalItems() int {
	total := 0
	for _, entry := range c.entries {
		total += entry.Quantity
	}
	return total
}

// Len returns the number of distinct products.
func (c *Cart) Len() int {
	return len(c.entries)
}

// Record is the wire/storage shape of a cart, keyed by product id string.
type Record map[string]Entry

// Record flattens the cart for serialization.
func (c *Cart) Record() Record {
	record := make(Record, len(c.entries))
	for id, entry := range c.entries {
		record[id.String()] = entry
	}
	return record
}

// FromRecord rebuilds a cart from its stored shape. Keys that fail to parse
// or disagree with the embedded snapshot id are dropped rather than poisoning
// the whole cart.
func FromRecord(record Record) *Cart {
	c := New()
	for key, entry := range record {
		id, err := uuid.Parse(key)
		if err != nil || entry.Quantity <= 0 {
			continue
		}
		if entry.Product.ProductID != id {
			continue
		}
		c.entries[id] = entry
	}
	return c
}
