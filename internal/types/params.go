package types

// ParamType enumerates the value kinds a scanner parameter can take.
type ParamType string

const (
	ParamTypeInt    ParamType = "int"
	ParamTypeFloat  ParamType = "float"
	ParamTypeSelect ParamType = "select"
)

// ParamSpec declares one tunable scanner input. It is a self-describing
// schema consumed by the UI/API layer to render input controls; the
// evaluation logic itself only consults defaults through Params.
type ParamSpec struct {
	Name    string    `json:"name"`
	Type    ParamType `json:"type"`
	Default any       `json:"default"`
	Label   string    `json:"label"`
	Options []any     `json:"options,omitempty"`
}

// Params holds the runtime parameter values for one scan invocation.
type Params map[string]any

// Int reads an integer parameter, falling back to def when absent or of the
// wrong type. JSON-decoded numbers arrive as float64 and are accepted.
func (p Params) Int(name string, def int) int {
	v, ok := p[name]
	if !ok {
		return def
	}

	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return def
	}
}

// Float reads a float parameter, falling back to def when absent or of the
// wrong type.
func (p Params) Float(name string, def float64) float64 {
	v, ok := p[name]
	if !ok {
		return def
	}

	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return def
	}
}

// String reads a string parameter, falling back to def when absent.
func (p Params) String(name string, def string) string {
	if v, ok := p[name].(string); ok {
		return v
	}

	return def
}

// Strings reads a string-list parameter. JSON-decoded lists arrive as []any
// and are accepted; non-string elements are dropped.
func (p Params) Strings(name string, def []string) []string {
	switch v := p[name].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))

		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}

		return out
	default:
		return def
	}
}

// Filters reads a filter-list parameter. The API and config layers decode
// user filter payloads into []FilterSpec before building Params; anything
// else yields nil.
func (p Params) Filters(name string) []FilterSpec {
	if v, ok := p[name].([]FilterSpec); ok {
		return v
	}

	return nil
}
