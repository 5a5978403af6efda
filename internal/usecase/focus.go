package usecase

import (
	"fmt"
	"log"
	"path/filepath"

	"go.scopelab.io/focus-api/internal/adapter/store"
	"go.scopelab.io/focus-api/internal/diag"
	"go.scopelab.io/focus-api/internal/domain"
)

// FocusRequest encapsulates one focus-optimization request. Each optical
// quantity is either given directly or resolved from a named source:
// objective presets fill NA, the design immersion index and the working
// distance; medium names resolve indices at the requested wavelength.
type FocusRequest struct {
	// Direct values (take precedence over named sources).
	NA        *float64
	RefMed    *float64
	RefCov    *float64
	RefImm    *float64
	RefImmNom *float64
	FWD       *float64

	// Named sources.
	Objective *string // Preset name for NA/RefImmNom/FWD.
	Medium    *string // Sample medium name for RefMed.
	Coverslip *string // Coverslip medium name for RefCov.
	Immersion *string // Actual immersion medium name for RefImm.

	Lambda  float64
	Npupil  int        // Defaults to 64.
	Depth   float64    // nm below the coverslip.
	ZSpread [2]float64 // Defaults to [-1000, 1000] nm.

	Debug bool
}

// FocusResponse contains the optimization results.
type FocusResponse struct {
	StagePositionNm       float64           `json:"stage_position_nm"`
	FreeWorkingDistanceNm float64           `json:"free_working_distance_nm"`
	ZValsNm               [3]float64        `json:"zvals_nm"`
	WrmsNm                float64           `json:"wrms_nm"`
	WrmsMilliLambda       float64           `json:"wrms_mlambda"`
	MaxStrehl             float64           `json:"max_strehl"`
	Meta                  map[string]string `json:"meta"`
}

// FocusUseCase orchestrates focus optimization.
type FocusUseCase struct {
	presets store.PresetLoader
	indices store.IndexLoader
	plotDir string // Debug plots land here when non-empty.
}

// NewFocusUseCase creates a new focus use case. presets may be nil when no
// preset CSV is configured; indices must resolve the named media.
func NewFocusUseCase(presets store.PresetLoader, indices store.IndexLoader, plotDir string) *FocusUseCase {
	return &FocusUseCase{
		presets: presets,
		indices: indices,
		plotDir: plotDir,
	}
}

// Validate checks the request before resolution.
func (r *FocusRequest) Validate() error {
	if r.Lambda <= 0 {
		return fmt.Errorf("wavelength must be positive")
	}
	if r.Lambda < 200 || r.Lambda > 2000 {
		return fmt.Errorf("wavelength %.1f nm outside supported band [200, 2000]", r.Lambda)
	}
	if r.Npupil < 0 || r.Npupil > 1024 {
		return fmt.Errorf("pupil sampling must be in [1, 1024]")
	}
	if r.Depth < 0 {
		return fmt.Errorf("imaging depth must be non-negative")
	}
	if r.ZSpread[0] > r.ZSpread[1] {
		return fmt.Errorf("zspread low must not exceed high")
	}

	if r.NA == nil && r.Objective == nil {
		return fmt.Errorf("either na or objective must be provided")
	}
	if r.RefMed == nil && r.Medium == nil {
		return fmt.Errorf("either ref_med or medium must be provided")
	}
	if r.RefCov == nil && r.Coverslip == nil {
		return fmt.Errorf("either ref_cov or coverslip must be provided")
	}
	if r.RefImm == nil && r.Immersion == nil {
		return fmt.Errorf("either ref_imm or immersion must be provided")
	}
	if r.RefImmNom == nil && r.Objective == nil && r.RefImm == nil && r.Immersion == nil {
		return fmt.Errorf("nominal immersion index cannot be resolved")
	}
	if r.FWD == nil && r.Objective == nil {
		return fmt.Errorf("either fwd or objective must be provided")
	}
	return nil
}

// Execute resolves the request into optical parameters and runs the focus
// optimization.
func (uc *FocusUseCase) Execute(req FocusRequest) (*FocusResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}

	params, meta, err := uc.resolve(req)
	if err != nil {
		return nil, err
	}

	result, err := domain.FindOptimalFocus(params)
	if err != nil {
		return nil, err
	}

	if req.Debug && uc.plotDir != "" {
		path := filepath.Join(uc.plotDir, "strehl_scan.png")
		if err := diag.SaveStrehlScan(result.Scan, path); err != nil {
			// Presentational only; never fail the computation.
			log.Printf("Warning: could not save Strehl scan plot: %v", err)
		} else {
			meta["plot"] = path
		}
	}

	return &FocusResponse{
		StagePositionNm:       roundToDecimal(result.ZVals[0], 2),
		FreeWorkingDistanceNm: result.ZVals[1],
		ZValsNm: [3]float64{
			roundToDecimal(result.ZVals[0], 2),
			result.ZVals[1],
			result.ZVals[2],
		},
		WrmsNm:          roundToDecimal(result.Wrms, 3),
		WrmsMilliLambda: roundToDecimal(1000*result.Wrms/params.Lambda, 3),
		MaxStrehl:       roundToDecimal(result.MaxStrehl, 6),
		Meta:            meta,
	}, nil
}

// resolve turns the request into a concrete parameter set, consulting the
// preset and index stores for named sources.
func (uc *FocusUseCase) resolve(req FocusRequest) (domain.OpticalParameters, map[string]string, error) {
	meta := map[string]string{"model": "vectorial_strehl_v1"}

	var preset *domain.ObjectivePreset
	if req.Objective != nil {
		if uc.presets == nil {
			return domain.OpticalParameters{}, nil, fmt.Errorf("objective presets are not configured")
		}
		p, err := uc.presets.LoadObjective(*req.Objective)
		if err != nil {
			return domain.OpticalParameters{}, nil, fmt.Errorf("failed to load objective %s: %w", *req.Objective, err)
		}
		p = applyObjectiveOverrides(p)
		preset = &p
		meta["objective"] = p.Name
	}

	index := func(name string) (float64, error) {
		if uc.indices == nil {
			return 0, fmt.Errorf("medium index resolution is not configured")
		}
		n, err := uc.indices.IndexAt(name, req.Lambda)
		if err != nil {
			return 0, err
		}
		meta[name] = fmt.Sprintf("n=%.5f@%.0fnm", n, req.Lambda)
		return n, nil
	}

	params := domain.OpticalParameters{
		Lambda:    req.Lambda,
		Npupil:    req.Npupil,
		Depth:     req.Depth,
		ZSpread:   req.ZSpread,
		DebugMode: req.Debug,
	}
	if params.Npupil == 0 {
		params.Npupil = 64
	}
	if params.ZSpread == [2]float64{} {
		params.ZSpread = [2]float64{-1000, 1000}
	}

	var err error
	switch {
	case req.NA != nil:
		params.NA = *req.NA
	default:
		params.NA = preset.NA
	}

	switch {
	case req.RefMed != nil:
		params.RefMed = *req.RefMed
	default:
		if params.RefMed, err = index(*req.Medium); err != nil {
			return domain.OpticalParameters{}, nil, err
		}
	}

	switch {
	case req.RefCov != nil:
		params.RefCov = *req.RefCov
	default:
		if params.RefCov, err = index(*req.Coverslip); err != nil {
			return domain.OpticalParameters{}, nil, err
		}
	}

	switch {
	case req.RefImm != nil:
		params.RefImm = *req.RefImm
	default:
		if params.RefImm, err = index(*req.Immersion); err != nil {
			return domain.OpticalParameters{}, nil, err
		}
	}

	switch {
	case req.RefImmNom != nil:
		params.RefImmNom = *req.RefImmNom
	case preset != nil && preset.RefImmNom > 0:
		params.RefImmNom = preset.RefImmNom
	default:
		// Fall back to the actual immersion index: matched design.
		params.RefImmNom = params.RefImm
	}

	switch {
	case req.FWD != nil:
		params.FreeWorkingDistance = *req.FWD
	default:
		params.FreeWorkingDistance = preset.FreeWorkingDistance
	}

	return params, meta, nil
}

// ListMedia returns the media known to the configured index loader.
func (uc *FocusUseCase) ListMedia() ([]string, error) {
	if uc.indices == nil {
		return nil, fmt.Errorf("medium index resolution is not configured")
	}
	return uc.indices.ListMedia()
}

// ListObjectives returns the configured objective presets.
func (uc *FocusUseCase) ListObjectives() ([]string, error) {
	if uc.presets == nil {
		return nil, fmt.Errorf("objective presets are not configured")
	}
	return uc.presets.ListObjectives()
}

// Helper function to round to decimal places.
func roundToDecimal(val float64, precision int) float64 {
	multiplier := 1.0
	for i := 0; i < precision; i++ {
		multiplier *= 10
	}
	if val < 0 {
		return float64(int(val*multiplier-0.5)) / multiplier
	}
	return float64(int(val*multiplier+0.5)) / multiplier
}
