package scanner

import (
	"sort"
	"sync"

	"github.com/alphabeam/screenline/internal/types"
	"github.com/alphabeam/screenline/pkg/errors"
)

// Constructor builds a scanner with the given runtime parameters.
type Constructor func(params types.Params) Scanner

// Registry maps scanner names to constructors.
type Registry interface {
	Register(name string, ctor Constructor) error
	Get(name string, params types.Params) (Scanner, error)
	List() []string
}

// RegistryV1 is the default Registry implementation.
type RegistryV1 struct {
	constructors map[string]Constructor
	mu           sync.RWMutex
}

// NewRegistry creates a registry preloaded with every built-in scanner.
// The set is fixed at compile time; there is no runtime discovery.
func NewRegistry() Registry {
	r := &RegistryV1{
		constructors: make(map[string]Constructor),
	}

	builtins := map[string]Constructor{
		"golden_cross":           func(p types.Params) Scanner { return NewGoldenCrossScanner(p) },
		"death_cross":            func(p types.Params) Scanner { return NewDeathCrossScanner(p) },
		"rsi_oversold":           func(p types.Params) Scanner { return NewRsiOversoldScanner(p) },
		"bullish_rsi_divergence": func(p types.Params) Scanner { return NewBullishRsiDivergenceScanner(p) },
		"bearish_rsi_divergence": func(p types.Params) Scanner { return NewBearishRsiDivergenceScanner(p) },
		"bearish_rally_failure":  func(p types.Params) Scanner { return NewBearishRallyFailureScanner(p) },
		"new_highs":              func(p types.Params) Scanner { return NewNewHighsScanner(p) },
		"new_lows":               func(p types.Params) Scanner { return NewNewLowsScanner(p) },
		"bb_squeeze_breakout":    func(p types.Params) Scanner { return NewBbSqueezeBreakoutScanner(p) },
		"bb_extreme_reversal":    func(p types.Params) Scanner { return NewBbExtremeReversalScanner(p) },
		"selling_climax":         func(p types.Params) Scanner { return NewSellingClimaxScanner(p) },
		"wyckoff_spring":         func(p types.Params) Scanner { return NewWyckoffSpringScanner(p) },
		"gap_and_go":             func(p types.Params) Scanner { return NewGapAndGoScanner(p) },
		"canslim":                func(p types.Params) Scanner { return NewCanslimScanner(p) },
		"garp":                   func(p types.Params) Scanner { return NewGarpScanner(p) },
		"undervalued_pb":         func(p types.Params) Scanner { return NewUndervaluedPbScanner(p) },
		"high_dividend_yield":    func(p types.Params) Scanner { return NewHighDividendYieldScanner(p) },
		"strongest_industries":   func(p types.Params) Scanner { return NewStrongestIndustriesScanner(p) },
		"lorenz_regime":          func(p types.Params) Scanner { return NewLorenzRegimeScanner(p) },
		"screener":               func(p types.Params) Scanner { return NewScreener(p) },
	}

	for name, ctor := range builtins {
		// Names are unique by construction.
		_ = r.Register(name, ctor)
	}

	return r
}

// Register adds a scanner constructor to the registry.
func (r *RegistryV1) Register(name string, ctor Constructor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.constructors[name]; exists {
		return errors.Newf(errors.ErrCodeScannerAlreadyExists, "scanner %q already registered", name)
	}

	r.constructors[name] = ctor

	return nil
}

// Get builds the named scanner with the given parameters.
func (r *RegistryV1) Get(name string, params types.Params) (Scanner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ctor, exists := r.constructors[name]
	if !exists {
		return nil, errors.Newf(errors.ErrCodeScannerNotFound, "scanner %q not found", name)
	}

	if params == nil {
		params = types.Params{}
	}

	return ctor(params), nil
}

// List returns the registered scanner names, sorted.
func (r *RegistryV1) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.constructors))
	for name := range r.constructors {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}
