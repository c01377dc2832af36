package simulation

import (
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"shelfsense/catalog"
	"shelfsense/models"
	"shelfsense/utils"
)

// Detection canvas and sampling parameters. Box coordinates mimic a fixed
// 1080p camera frame with a margin so boxes never touch the frame edge.
const (
	canvasWidth  = 1920
	canvasHeight = 1080

	minBoxWidth  = 80
	maxBoxWidth  = 200
	minBoxHeight = 100
	maxBoxHeight = 250

	// Overlapping boxes are resampled up to this many times; the last
	// attempt is accepted regardless so generation never fails.
	maxBoxAttempts = 5

	minConfidence = 0.85
	maxConfidence = 0.99

	misplacedProbability = 0.05
	lowStockProbability  = 0.15

	shelfRows    = 5
	shelfColumns = 10

	// Boxes remembered per shelf for overlap rejection. Snapshots reset
	// the shelf before building, so this only bounds the streaming path.
	maxRememberedBoxes = 32
)

// Generator produces synthetic detection events. The random source is
// injected so tests can assert exact sequences; pass nil for a time-seeded
// one. A Generator is single-owner: it is not safe for concurrent use,
// each camera loop or builder owns its own instance.
type Generator struct {
	catalog *catalog.Catalog
	rng     *rand.Rand
	used    map[string][]models.BoundingBox
}

// NewGenerator creates a generator over the given catalog.
func NewGenerator(cat *catalog.Catalog, rng *rand.Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{
		catalog: cat,
		rng:     rng,
		used:    make(map[string][]models.BoundingBox),
	}
}

// Generate produces one detection event for the given shelf.
func (g *Generator) Generate(shelfID string) (models.DetectionEvent, error) {
	if strings.TrimSpace(shelfID) == "" {
		return models.DetectionEvent{}, models.InvalidArgument("shelf id must not be empty")
	}

	product := g.catalog.Pick(g.rng)
	confidence := utils.Round4(minConfidence + g.rng.Float64()*(maxConfidence-minConfidence))
	bbox := g.sampleBox(shelfID)
	g.remember(shelfID, bbox)

	return models.DetectionEvent{
		DetectionID: "det_" + uuid.NewString(),
		ShelfID:     shelfID,
		ProductID:   product.ID,
		ProductName: product.Name,
		Category:    product.Category,
		Brand:       product.Brand,
		Confidence:  confidence,
		BBox:        bbox,
		ShelfPosition: models.ShelfPosition{
			Row:    1 + g.rng.Intn(shelfRows),
			Column: 1 + g.rng.Intn(shelfColumns),
		},
		IsMisplaced: g.rng.Float64() < misplacedProbability,
		IsLowStock:  g.rng.Float64() < lowStockProbability,
		Timestamp:   time.Now().UTC(),
	}, nil
}

// ResetShelf forgets the remembered boxes for a shelf. Snapshot builders
// call this so overlap rejection applies within one snapshot only.
func (g *Generator) ResetShelf(shelfID string) {
	delete(g.used, shelfID)
}

// sampleBox draws a box that does not overlap prior boxes on the shelf,
// resampling up to maxBoxAttempts times. Exhausting the budget is a
// recoverable generation failure: the overlapping box is accepted.
func (g *Generator) sampleBox(shelfID string) models.BoundingBox {
	var box models.BoundingBox
	prior := g.used[shelfID]
	for attempt := 0; attempt < maxBoxAttempts; attempt++ {
		box = g.randomBox()
		if !overlapsAny(box, prior) {
			return box
		}
	}
	return box
}

func (g *Generator) randomBox() models.BoundingBox {
	x := 50 + g.rng.Intn(canvasWidth-250-50+1)
	y := 50 + g.rng.Intn(canvasHeight-250-50+1)
	w := minBoxWidth + g.rng.Intn(maxBoxWidth-minBoxWidth+1)
	h := minBoxHeight + g.rng.Intn(maxBoxHeight-minBoxHeight+1)
	return models.BoundingBox{
		X:       x,
		Y:       y,
		Width:   w,
		Height:  h,
		XCenter: x + w/2,
		YCenter: y + h/2,
	}
}

func (g *Generator) remember(shelfID string, box models.BoundingBox) {
	boxes := append(g.used[shelfID], box)
	if len(boxes) > maxRememberedBoxes {
		boxes = boxes[len(boxes)-maxRememberedBoxes:]
	}
	g.used[shelfID] = boxes
}

func overlapsAny(box models.BoundingBox, prior []models.BoundingBox) bool {
	for _, p := range prior {
		if box.X < p.X+p.Width &&
			box.X+box.Width > p.X &&
			box.Y < p.Y+p.Height &&
			box.Y+box.Height > p.Y {
			return true
		}
	}
	return false
}
