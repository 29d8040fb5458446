package types

import (
	"github.com/alphabeam/screenline/pkg/errors"
)

// Operator is an enumerated comparison operator. Operators are dispatched
// through a fixed table; user-supplied operator text is parsed into this type
// once and never evaluated as an expression.
type Operator string

const (
	// Database-evaluable operators
	OpGT  Operator = ">"
	OpGTE Operator = ">="
	OpLT  Operator = "<"
	OpLTE Operator = "<="
	OpEQ  Operator = "=="
	OpIn  Operator = "in"

	// Indicator operators
	OpAbove           Operator = "above"
	OpBelow           Operator = "below"
	OpCrossAbove      Operator = "cross_above"
	OpCrossBelow      Operator = "cross_below"
	OpCrossAboveUpper Operator = "cross_above_upper"
	OpCrossBelowLower Operator = "cross_below_lower"
)

// ParseOperator maps wire operator text onto the enumerated type. "=" is
// accepted as an alias for "==".
func ParseOperator(s string) (Operator, error) {
	switch s {
	case "=":
		return OpEQ, nil
	case string(OpGT), string(OpGTE), string(OpLT), string(OpLTE), string(OpEQ), string(OpIn),
		string(OpAbove), string(OpBelow), string(OpCrossAbove), string(OpCrossBelow),
		string(OpCrossAboveUpper), string(OpCrossBelowLower):
		return Operator(s), nil
	default:
		return "", errors.Newf(errors.ErrCodeInvalidOperator, "unrecognized operator %q", s)
	}
}

// Compare applies a scalar comparison operator to two values. Only the
// database-style operators (and above/below, which share their semantics)
// compare two scalars; anything else is an error.
func (op Operator) Compare(a, b float64) (bool, error) {
	switch op {
	case OpGT, OpAbove:
		return a > b, nil
	case OpGTE:
		return a >= b, nil
	case OpLT, OpBelow:
		return a < b, nil
	case OpLTE:
		return a <= b, nil
	case OpEQ:
		return a == b, nil
	default:
		return false, errors.Newf(errors.ErrCodeInvalidOperator, "operator %q is not a scalar comparison", op)
	}
}

// FilterSpec is one user-built filter condition. Name resolves to either a
// database attribute or an on-the-fly indicator computation. Exactly one of
// Value (scalar threshold), Values (list for "in"), or Params (indicator
// parameter mapping) carries the right-hand side; Params and Value may be
// combined for threshold filters on a parameterized indicator (e.g. RSI).
type FilterSpec struct {
	Name    string             `json:"name" yaml:"name"`
	Op      Operator           `json:"op" yaml:"op"`
	Value   *float64           `json:"value,omitempty" yaml:"value,omitempty"`
	Values  []string           `json:"values,omitempty" yaml:"values,omitempty"`
	Params  map[string]float64 `json:"params,omitempty" yaml:"params,omitempty"`
	Display string             `json:"display,omitempty" yaml:"display,omitempty"`
}

// Malformed reports whether the filter is missing its name, operator, or
// right-hand side. Malformed filters are skipped, not raised.
func (f FilterSpec) Malformed() bool {
	if f.Name == "" || f.Op == "" {
		return true
	}

	return f.Value == nil && len(f.Values) == 0 && len(f.Params) == 0
}

// Param returns an indicator sub-parameter with a fallback default.
func (f FilterSpec) Param(name string, def float64) float64 {
	if v, ok := f.Params[name]; ok {
		return v
	}

	return def
}
