// Package csv provides CSV-based objective preset loading.
package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.scopelab.io/focus-api/internal/domain"
)

// PresetStore provides access to objective preset data.
type PresetStore struct {
	dataDir string
}

// NewPresetStore creates a new CSV-based objective preset store.
func NewPresetStore(dataDir string) *PresetStore {
	return &PresetStore{
		dataDir: dataDir,
	}
}

var expectedHeaders = []string{"objective", "na", "ref_imm_nom", "fwd_nm"}

// LoadObjective loads the preset row for a named objective.
func (s *PresetStore) LoadObjective(name string) (domain.ObjectivePreset, error) {
	filename := fmt.Sprintf("%s/objectives.csv", s.dataDir)

	file, err := os.Open(filename)
	if err != nil {
		return domain.ObjectivePreset{}, fmt.Errorf("failed to open objective preset CSV: %w", err)
	}
	defer func() { _ = file.Close() }()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return domain.ObjectivePreset{}, fmt.Errorf("failed to read CSV header: %w", err)
	}
	if err := validateHeader(header); err != nil {
		return domain.ObjectivePreset{}, err
	}

	target := strings.ToLower(strings.TrimSpace(name))
	for {
		record, err := reader.Read()
		if err != nil {
			// EOF is expected.
			if err.Error() == "EOF" {
				break
			}
			return domain.ObjectivePreset{}, fmt.Errorf("failed to read CSV record: %w", err)
		}
		if len(record) != len(expectedHeaders) {
			return domain.ObjectivePreset{}, fmt.Errorf("invalid CSV record: expected %d columns, got %d", len(expectedHeaders), len(record))
		}

		rowName := strings.ToLower(strings.TrimSpace(record[0]))
		if rowName != target {
			continue
		}

		preset := domain.ObjectivePreset{Name: rowName}
		for i, field := range []struct {
			name string
			dst  *float64
		}{
			{"na", &preset.NA},
			{"ref_imm_nom", &preset.RefImmNom},
			{"fwd_nm", &preset.FreeWorkingDistance},
		} {
			v, err := strconv.ParseFloat(strings.TrimSpace(record[i+1]), 64)
			if err != nil {
				return domain.ObjectivePreset{}, fmt.Errorf("invalid %s for objective %s: %w", field.name, rowName, err)
			}
			*field.dst = v
		}

		if preset.NA <= 0 || preset.RefImmNom <= 0 || preset.FreeWorkingDistance <= 0 {
			return domain.ObjectivePreset{}, fmt.Errorf("non-positive preset values for objective %s", rowName)
		}
		return preset, nil
	}

	return domain.ObjectivePreset{}, fmt.Errorf("objective %s not found in %s", name, filename)
}

// ListObjectives returns the preset names present in the CSV.
func (s *PresetStore) ListObjectives() ([]string, error) {
	filename := fmt.Sprintf("%s/objectives.csv", s.dataDir)

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open objective preset CSV: %w", err)
	}
	defer func() { _ = file.Close() }()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	if err := validateHeader(header); err != nil {
		return nil, err
	}

	names := make([]string, 0)
	for {
		record, err := reader.Read()
		if err != nil {
			if err.Error() == "EOF" {
				break
			}
			return nil, fmt.Errorf("failed to read CSV record: %w", err)
		}
		if len(record) > 0 {
			names = append(names, strings.ToLower(strings.TrimSpace(record[0])))
		}
	}

	return names, nil
}

func validateHeader(header []string) error {
	if len(header) != len(expectedHeaders) {
		return fmt.Errorf("invalid CSV header: expected %v, got %v", expectedHeaders, header)
	}
	for i, h := range header {
		if strings.TrimSpace(h) != expectedHeaders[i] {
			return fmt.Errorf("invalid CSV header: expected column %d to be %s, got %s", i, expectedHeaders[i], h)
		}
	}
	return nil
}
