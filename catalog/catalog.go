package catalog

import (
	"math/rand"

	"shelfsense/models"
)

// products is the fixed demo product set. The real product would sync this
// from the merchandising system; the demo ships it as static reference data.
var products = []models.Product{
	{ID: "P001", Name: "Coca Cola 2L", Category: "Beverages", Brand: "Coca Cola", Price: 2.99},
	{ID: "P002", Name: "Pepsi 2L", Category: "Beverages", Brand: "Pepsi", Price: 2.79},
	{ID: "P003", Name: "Sprite 2L", Category: "Beverages", Brand: "Coca Cola", Price: 2.89},
	{ID: "P004", Name: "Mountain Dew 2L", Category: "Beverages", Brand: "Pepsi", Price: 2.99},
	{ID: "P005", Name: "Lays Classic", Category: "Snacks", Brand: "Lays", Price: 3.49},
	{ID: "P006", Name: "Doritos Nacho", Category: "Snacks", Brand: "Doritos", Price: 3.79},
	{ID: "P007", Name: "Cheetos Puffs", Category: "Snacks", Brand: "Cheetos", Price: 3.29},
	{ID: "P008", Name: "Pringles Original", Category: "Snacks", Brand: "Pringles", Price: 2.99},
	{ID: "P009", Name: "Tide Detergent", Category: "Household", Brand: "Tide", Price: 12.99},
	{ID: "P010", Name: "Bounty Paper Towels", Category: "Household", Brand: "Bounty", Price: 8.99},
	{ID: "P011", Name: "Cheerios", Category: "Cereal", Brand: "General Mills", Price: 4.99},
	{ID: "P012", Name: "Frosted Flakes", Category: "Cereal", Brand: "Kelloggs", Price: 4.79},
	{ID: "P013", Name: "Red Bull Energy", Category: "Energy Drinks", Brand: "Red Bull", Price: 3.99},
	{ID: "P014", Name: "Monster Energy", Category: "Energy Drinks", Brand: "Monster", Price: 3.79},
	{ID: "P015", Name: "Gatorade Blue", Category: "Sports Drinks", Brand: "Gatorade", Price: 2.49},
}

// Catalog is the read-only product reference set. It is immutable after
// construction and safe for concurrent use without synchronization.
type Catalog struct {
	products []models.Product
	index    map[string]models.Product
}

var defaultCatalog = New()

// Default returns the shared catalog built from the static product set.
func Default() *Catalog {
	return defaultCatalog
}

// New builds a catalog over the static product set.
func New() *Catalog {
	index := make(map[string]models.Product, len(products))
	for _, p := range products {
		index[p.ID] = p
	}
	return &Catalog{products: products, index: index}
}

// List returns the ordered product set. The returned slice is a copy; callers
// may mutate it freely.
func (c *Catalog) List() []models.Product {
	out := make([]models.Product, len(c.products))
	copy(out, c.products)
	return out
}

// Pick returns one product chosen uniformly at random from rng.
func (c *Catalog) Pick(rng *rand.Rand) models.Product {
	return c.products[rng.Intn(len(c.products))]
}

// ByID looks up a product by catalog id.
func (c *Catalog) ByID(id string) (models.Product, bool) {
	p, ok := c.index[id]
	return p, ok
}

// Size returns the number of catalog entries.
func (c *Catalog) Size() int {
	return len(c.products)
}
