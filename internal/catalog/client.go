package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/jingjai/verifier/internal/models"
)

// Client fetches the product catalog from the JingJai backend API
type Client struct {
	BaseURL    string
	APIKey     string
	httpClient *http.Client
}

// NewClient creates a new catalog API client
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		BaseURL: baseURL,
		APIKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// FetchCatalog pulls brands and product capture specs from the backend and
// materializes them into a static provider. The catalog is read-only per
// workflow invocation, so a one-shot fetch is sufficient.
func (c *Client) FetchCatalog() (*Static, error) {
	brands, err := c.fetchBrands()
	if err != nil {
		return nil, err
	}

	var specs []*models.CaptureSpec
	for _, brand := range brands {
		brandSpecs, err := c.fetchBrandProducts(brand.ID)
		if err != nil {
			return nil, err
		}
		specs = append(specs, brandSpecs...)
	}

	seen := make(map[string]struct{}, len(specs))
	for _, spec := range specs {
		if err := ValidateSpec(spec); err != nil {
			return nil, fmt.Errorf("backend returned invalid capture spec: %w", err)
		}
		if _, dup := seen[spec.ProductID]; dup {
			return nil, fmt.Errorf("backend returned duplicate product id %q", spec.ProductID)
		}
		seen[spec.ProductID] = struct{}{}
	}

	return NewStatic(specs, brands), nil
}

func (c *Client) fetchBrands() ([]models.Brand, error) {
	var response struct {
		Brands []models.Brand `json:"brands"`
		Total  int            `json:"total"`
	}
	if err := c.getJSON("/brands/", &response); err != nil {
		return nil, fmt.Errorf("failed to fetch brands: %w", err)
	}
	return response.Brands, nil
}

func (c *Client) fetchBrandProducts(brandID string) ([]*models.CaptureSpec, error) {
	var response struct {
		Products []*models.CaptureSpec `json:"products"`
		Total    int                   `json:"total"`
	}
	path := fmt.Sprintf("/brands/%s/products", url.PathEscape(brandID))
	if err := c.getJSON(path, &response); err != nil {
		return nil, fmt.Errorf("failed to fetch products for brand %s: %w", brandID, err)
	}
	return response.Products, nil
}

func (c *Client) getJSON(path string, out any) error {
	req, err := http.NewRequest("GET", c.BaseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call catalog API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("catalog API returned status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode catalog response: %w", err)
	}
	return nil
}
