package models

import "time"

// PhotoSlot is one required photograph for a product. Slot order within a
// spec defines the capture sequence presented to the user.
type PhotoSlot struct {
	ID          string `json:"id" yaml:"id"`
	Label       string `json:"label" yaml:"label"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	IconHint    string `json:"icon_hint,omitempty" yaml:"icon_hint,omitempty"`
}

// CaptureSpec is the static photo checklist for one product.
type CaptureSpec struct {
	ProductID string      `json:"product_id" yaml:"product_id"`
	ItemName  string      `json:"item_name" yaml:"item_name"`
	Brand     string      `json:"brand,omitempty" yaml:"brand,omitempty"`
	Category  string      `json:"category,omitempty" yaml:"category,omitempty"`
	Slots     []PhotoSlot `json:"slots" yaml:"slots"`
}

// Brand represents a luxury brand with products available for authentication
type Brand struct {
	ID       string `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Logo     string `json:"logo,omitempty" yaml:"logo,omitempty"`
	Featured bool   `json:"featured" yaml:"featured"`
}

// PhotoRecord is a stored photo for one slot of a session
type PhotoRecord struct {
	SlotID string `json:"slot_id"`
	Path   string `json:"path"`
	URL    string `json:"url,omitempty"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// VerificationSession is the wire view of one in-progress authentication
type VerificationSession struct {
	ID          string                 `json:"id"`
	ProductID   string                 `json:"product_id"`
	ItemName    string                 `json:"item_name"`
	ServiceType string                 `json:"service_type,omitempty"`
	Slots       []PhotoSlot            `json:"slots"`
	Photos      map[string]PhotoRecord `json:"photos"`
	CursorIndex int                    `json:"cursor_index"`
	FilledCount int                    `json:"filled_count"`
	Remaining   int                    `json:"remaining"`
	Ready       bool                   `json:"ready"`
	Report      *AnalysisReport        `json:"report,omitempty"`
	CreatedAt   time.Time              `json:"created_at"`
	SubmittedAt *time.Time             `json:"submitted_at,omitempty"`
}

// CheckResult is one named checkpoint within an analysis report
type CheckResult struct {
	Name   string  `json:"name" yaml:"name"`
	Score  float64 `json:"score" yaml:"score"`
	Status string  `json:"status" yaml:"status"` // "Pass" or "Fail"
	Notes  string  `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// AnalysisReport is the downstream verdict for a completed photo set
type AnalysisReport struct {
	Status   string        `json:"status" yaml:"status"` // "Authentic", "Counterfeit", "Inconclusive"
	Score    float64       `json:"score" yaml:"score"`
	Summary  string        `json:"summary" yaml:"summary"`
	Checks   []CheckResult `json:"checks,omitempty" yaml:"checks,omitempty"`
	Provider string        `json:"provider,omitempty" yaml:"provider,omitempty"`
	Model    string        `json:"model,omitempty" yaml:"model,omitempty"`
}
