package catalog

import (
	"errors"
	"fmt"

	"github.com/jingjai/verifier/internal/models"
)

// ErrNotFound is returned when a product has no capture spec in the catalog.
var ErrNotFound = errors.New("product not found in catalog")

// Provider supplies product capture specs and the brands they belong to.
// Slot order within a returned spec is significant: it defines the order
// photos are requested in, and implementations must return it
// deterministically.
type Provider interface {
	Spec(productID string) (*models.CaptureSpec, error)
	Products() []*models.CaptureSpec
	Brands() []models.Brand
}

// ValidateSpec checks a capture spec is usable: at least one slot, and
// slot ids unique within the spec.
func ValidateSpec(spec *models.CaptureSpec) error {
	if spec == nil {
		return fmt.Errorf("nil capture spec")
	}
	if spec.ProductID == "" {
		return fmt.Errorf("capture spec missing product_id")
	}
	if len(spec.Slots) == 0 {
		return fmt.Errorf("capture spec for %q has no photo slots", spec.ProductID)
	}
	seen := make(map[string]struct{}, len(spec.Slots))
	for _, slot := range spec.Slots {
		if slot.ID == "" {
			return fmt.Errorf("capture spec for %q has a slot with an empty id", spec.ProductID)
		}
		if _, dup := seen[slot.ID]; dup {
			return fmt.Errorf("capture spec for %q has duplicate slot id %q", spec.ProductID, slot.ID)
		}
		seen[slot.ID] = struct{}{}
	}
	return nil
}
