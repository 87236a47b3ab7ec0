package catalog

import (
	"fmt"
	"os"

	"github.com/jingjai/verifier/internal/models"
	"gopkg.in/yaml.v3"
)

// catalogFile is the on-disk YAML catalog layout
type catalogFile struct {
	Brands   []models.Brand        `yaml:"brands"`
	Products []*models.CaptureSpec `yaml:"products"`
}

// LoadFile reads a YAML catalog file and returns a validated provider.
// A file catalog fully replaces the builtin one; it does not merge.
func LoadFile(path string) (*Static, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file %s: %w", path, err)
	}

	if len(file.Products) == 0 {
		return nil, fmt.Errorf("catalog file %s has no products", path)
	}

	seen := make(map[string]struct{}, len(file.Products))
	for _, spec := range file.Products {
		if err := ValidateSpec(spec); err != nil {
			return nil, fmt.Errorf("invalid catalog file %s: %w", path, err)
		}
		if _, dup := seen[spec.ProductID]; dup {
			return nil, fmt.Errorf("catalog file %s has duplicate product id %q", path, spec.ProductID)
		}
		seen[spec.ProductID] = struct{}{}
	}

	return NewStatic(file.Products, file.Brands), nil
}
