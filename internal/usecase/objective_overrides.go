package usecase

import (
	"encoding/json"
	"os"
	"strings"
	"sync"

	"go.scopelab.io/focus-api/internal/domain"
)

// Site-specific objective corrections. Manufacturing tolerances and in-house
// calibration shift individual objectives off their catalog values; the
// overrides file records measured corrections per objective name.

type objectiveOverrideEntry struct {
	Name        string   `json:"name"`
	NA          *float64 `json:"na,omitempty"`
	RefImmNom   *float64 `json:"ref_imm_nom,omitempty"`
	FWDOffsetNm *float64 `json:"fwd_offset_nm,omitempty"`
	FWDAbsolute *float64 `json:"fwd_nm,omitempty"`
}

var (
	overridesOnce  sync.Once
	overridesTable []objectiveOverrideEntry
)

func loadObjectiveOverrides() {
	path := os.Getenv("OBJECTIVE_OVERRIDES_PATH")
	if path == "" {
		path = "data/objective_overrides.json"
	}
	if b, err := os.ReadFile(path); err == nil {
		var entries []objectiveOverrideEntry
		if err := json.Unmarshal(b, &entries); err == nil {
			overridesTable = entries
		}
	}
}

func getObjectiveOverride(name string) (*objectiveOverrideEntry, bool) {
	overridesOnce.Do(loadObjectiveOverrides)
	if len(overridesTable) == 0 {
		return nil, false
	}
	key := strings.ToLower(strings.TrimSpace(name))
	for i := range overridesTable {
		if strings.ToLower(strings.TrimSpace(overridesTable[i].Name)) == key {
			return &overridesTable[i], true
		}
	}
	return nil, false
}

func applyObjectiveOverrides(preset domain.ObjectivePreset) domain.ObjectivePreset {
	override, ok := getObjectiveOverride(preset.Name)
	if !ok {
		return preset
	}

	adjusted := preset
	if override.NA != nil {
		adjusted.NA = *override.NA
	}
	if override.RefImmNom != nil {
		adjusted.RefImmNom = *override.RefImmNom
	}
	if override.FWDAbsolute != nil {
		adjusted.FreeWorkingDistance = *override.FWDAbsolute
	} else if override.FWDOffsetNm != nil {
		adjusted.FreeWorkingDistance += *override.FWDOffsetNm
	}
	return adjusted
}
