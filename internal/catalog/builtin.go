package catalog

import (
	"sort"

	"github.com/jingjai/verifier/internal/models"
)

// Static is an in-memory catalog provider
type Static struct {
	specs  map[string]*models.CaptureSpec
	brands []models.Brand
}

// NewStatic builds a provider from a fixed set of specs. Specs are assumed
// validated by the caller.
func NewStatic(specs []*models.CaptureSpec, brands []models.Brand) *Static {
	byID := make(map[string]*models.CaptureSpec, len(specs))
	for _, spec := range specs {
		byID[spec.ProductID] = spec
	}
	return &Static{specs: byID, brands: brands}
}

func (s *Static) Spec(productID string) (*models.CaptureSpec, error) {
	spec, ok := s.specs[productID]
	if !ok {
		return nil, ErrNotFound
	}
	return spec, nil
}

func (s *Static) Products() []*models.CaptureSpec {
	products := make([]*models.CaptureSpec, 0, len(s.specs))
	for _, spec := range s.specs {
		products = append(products, spec)
	}
	sort.Slice(products, func(i, j int) bool {
		return products[i].ProductID < products[j].ProductID
	})
	return products
}

func (s *Static) Brands() []models.Brand {
	return s.brands
}

// Builtin returns the default product catalog
func Builtin() *Static {
	return NewStatic(builtinSpecs, builtinBrands)
}

var builtinBrands = []models.Brand{
	{ID: "alexander-wang", Name: "Alexander Wang", Logo: "AW", Featured: true},
	{ID: "chanel", Name: "Chanel", Logo: "CC", Featured: true},
	{ID: "louis-vuitton", Name: "Louis Vuitton", Logo: "LV", Featured: true},
}

var builtinSpecs = []*models.CaptureSpec{
	{
		ProductID: "attica-bag",
		ItemName:  "Alexander Wang Attica Bag",
		Brand:     "Alexander Wang",
		Category:  "luxury-handbags",
		Slots: []models.PhotoSlot{
			{ID: "front", Label: "Front View", Description: "Full front view of the bag showing overall shape and design", IconHint: "camera-outline"},
			{ID: "material", Label: "Material Close-up", Description: "Close-up shot of the leather texture and grain", IconHint: "search-outline"},
			{ID: "label", Label: "Brand Label", Description: "Clear shot of Alexander Wang brand label or logo", IconHint: "text-outline"},
			{ID: "serial", Label: "Serial Number", Description: "Serial number or date code inside the bag", IconHint: "barcode-outline"},
			{ID: "zipper", Label: "Zipper Details", Description: "Close-up of zipper pulls and hardware branding", IconHint: "lock-closed-outline"},
			{ID: "hardware", Label: "Hardware", Description: "All metal hardware including studs and grommets", IconHint: "hammer-outline"},
			{ID: "inside", Label: "Interior", Description: "Interior lining, pockets, and construction", IconHint: "eye-outline"},
			{ID: "details", Label: "Detail Shots", Description: "Any unique features or distinguishing characteristics", IconHint: "star-outline"},
		},
	},
	{
		ProductID: "louis-vuitton-neverfull",
		ItemName:  "Louis Vuitton Neverfull",
		Brand:     "Louis Vuitton",
		Category:  "luxury-handbags",
		Slots: []models.PhotoSlot{
			{ID: "front", Label: "Front View", Description: "Full front view showing LV monogram pattern", IconHint: "camera-outline"},
			{ID: "canvas", Label: "Canvas Pattern", Description: "Close-up of monogram canvas quality and alignment", IconHint: "grid-outline"},
			{ID: "date-code", Label: "Date Code", Description: "Date code location and clear visibility", IconHint: "calendar-outline"},
			{ID: "hardware", Label: "Hardware", Description: "All metal hardware and D-rings", IconHint: "hammer-outline"},
			{ID: "stitching", Label: "Stitching", Description: "Quality of stitching and thread color", IconHint: "build-outline"},
			{ID: "handles", Label: "Handles", Description: "Leather handles and their attachment points", IconHint: "hand-left-outline"},
		},
	},
	{
		ProductID: "chanel-classic-flap",
		ItemName:  "Chanel Classic Flap",
		Brand:     "Chanel",
		Category:  "luxury-handbags",
		Slots: []models.PhotoSlot{
			{ID: "front", Label: "Front View", Description: "Full front view showing quilting pattern", IconHint: "camera-outline"},
			{ID: "quilting", Label: "Quilting Pattern", Description: "Close-up of diamond quilting quality", IconHint: "diamond"},
			{ID: "cc-turnlock", Label: "CC Turnlock", Description: "Chanel CC turnlock mechanism and engraving", IconHint: "lock-closed-outline"},
			{ID: "chain", Label: "Chain Strap", Description: "Chain strap construction and weight", IconHint: "link-outline"},
			{ID: "serial-sticker", Label: "Serial Sticker", Description: "Authenticity sticker inside the bag", IconHint: "bookmark-outline"},
			{ID: "interior", Label: "Interior", Description: "Interior lining and CC stamp", IconHint: "eye-outline"},
		},
	},
}
