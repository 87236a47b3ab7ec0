// Package export flattens completed verification sessions into report
// rows and writes them as Parquet or YAML for downstream analysis.
package export

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/jingjai/verifier/internal/storage"
	"github.com/parquet-go/parquet-go"
	"gopkg.in/yaml.v3"
)

// Record is one completed verification, flattened for columnar storage.
type Record struct {
	SessionID   string  `json:"session_id" yaml:"session_id" parquet:"session_id"`
	ProductID   string  `json:"product_id" yaml:"product_id" parquet:"product_id"`
	ItemName    string  `json:"item_name" yaml:"item_name" parquet:"item_name"`
	ServiceType string  `json:"service_type" yaml:"service_type" parquet:"service_type"`
	PhotoCount  int32   `json:"photo_count" yaml:"photo_count" parquet:"photo_count"`
	SlotIDs     string  `json:"slot_ids" yaml:"slot_ids" parquet:"slot_ids"` // comma-joined, capture order
	Status      string  `json:"status" yaml:"status" parquet:"status"`
	Score       float64 `json:"score" yaml:"score" parquet:"score"`
	Summary     string  `json:"summary" yaml:"summary" parquet:"summary"`
	Provider    string  `json:"provider" yaml:"provider" parquet:"provider"`
	Model       string  `json:"model" yaml:"model" parquet:"model"`
	CreatedAt   string  `json:"created_at" yaml:"created_at" parquet:"created_at"`
	SubmittedAt string  `json:"submitted_at" yaml:"submitted_at" parquet:"submitted_at"`
}

// FromSessions flattens submitted sessions into export records, ordered by
// creation time.
func FromSessions(sessions []*storage.StoredSession) []Record {
	records := make([]Record, 0, len(sessions))
	for _, session := range sessions {
		if session.Report == nil {
			continue
		}
		spec := session.Session.Spec()

		slotIDs := make([]string, 0, len(spec.Slots))
		for _, slot := range spec.Slots {
			slotIDs = append(slotIDs, slot.ID)
		}

		record := Record{
			SessionID:   session.ID,
			ProductID:   spec.ProductID,
			ItemName:    spec.ItemName,
			ServiceType: session.ServiceType,
			PhotoCount:  int32(session.Session.FilledCount()),
			SlotIDs:     strings.Join(slotIDs, ","),
			Status:      session.Report.Status,
			Score:       session.Report.Score,
			Summary:     session.Report.Summary,
			Provider:    session.Report.Provider,
			Model:       session.Report.Model,
			CreatedAt:   session.CreatedAt.Format(time.RFC3339),
		}
		if session.SubmittedAt != nil {
			record.SubmittedAt = session.SubmittedAt.Format(time.RFC3339)
		}
		records = append(records, record)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt < records[j].CreatedAt
	})
	return records
}

// WriteParquet writes records to a Parquet file.
func WriteParquet(path string, records []Record) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create parquet file: %w", err)
	}
	defer file.Close()

	writer := parquet.NewGenericWriter[Record](file)
	if _, err := writer.Write(records); err != nil {
		return fmt.Errorf("failed to write parquet rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}

	slog.Info("Wrote parquet export", "path", path, "records", len(records))
	return nil
}

// ReadParquet reads back an export file, mostly for inspection and tests.
func ReadParquet(path string) ([]Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet: %w", err)
	}

	reader := parquet.NewGenericReader[Record](pf)
	defer reader.Close()

	var records []Record
	rows := make([]Record, 64)
	for {
		n, err := reader.Read(rows)
		if n > 0 {
			records = append(records, rows[:n]...)
		}
		if err != nil {
			if err == io.EOF {
				break
			}
			break
		}
	}

	return records, nil
}

// AppendJSONL appends one record to a JSON-lines results file. The CLI
// workflow accumulates verifications this way so they can be exported in
// bulk later.
func AppendJSONL(path string, record Record) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open results file: %w", err)
	}
	defer file.Close()

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}
	if _, err := file.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to append record: %w", err)
	}
	return nil
}

// ReadJSONL loads records from a JSON-lines results file.
func ReadJSONL(path string) ([]Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open results file: %w", err)
	}
	defer file.Close()

	var records []Record
	scanner := bufio.NewScanner(file)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var record Record
		if err := json.Unmarshal(line, &record); err != nil {
			return nil, fmt.Errorf("failed to parse line %d: %w", lineNum, err)
		}
		records = append(records, record)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read results file: %w", err)
	}

	return records, nil
}

// yamlExport is the on-disk YAML export layout
type yamlExport struct {
	ExportedAt string   `yaml:"exported_at"`
	Total      int      `yaml:"total"`
	Results    []Record `yaml:"results"`
}

// WriteYAML writes records to a YAML file.
func WriteYAML(path string, records []Record) error {
	out := yamlExport{
		ExportedAt: time.Now().Format(time.RFC3339),
		Total:      len(records),
		Results:    records,
	}

	data, err := yaml.Marshal(&out)
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write YAML file: %w", err)
	}

	slog.Info("Wrote YAML export", "path", path, "records", len(records))
	return nil
}
