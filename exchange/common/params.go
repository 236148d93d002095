package common

import (
	"fmt"
	"strconv"
)

// Params is the escape hatch for venue-specific request parameters. Values
// recognized by the unified layer are consumed and stripped before the
// request is built; everything else passes through to the wire untouched.
type Params map[string]any

// Clone returns a shallow copy. A nil receiver yields an empty, usable map.
func (p Params) Clone() Params {
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Omit returns a copy without the given keys.
func (p Params) Omit(keys ...string) Params {
	out := p.Clone()
	for _, k := range keys {
		delete(out, k)
	}
	return out
}

// Merge returns a copy of p overlaid with other.
func (p Params) Merge(other Params) Params {
	out := p.Clone()
	for k, v := range other {
		out[k] = v
	}
	return out
}

// String reads a string-convertible value. ok reports presence.
func (p Params) String(key string) (string, bool) {
	v, present := p[key]
	if !present || v == nil {
		return "", false
	}
	switch s := v.(type) {
	case string:
		return s, true
	case fmt.Stringer:
		return s.String(), true
	default:
		return fmt.Sprintf("%v", v), true
	}
}

// Float reads a numeric value, accepting native numbers and numeric strings.
func (p Params) Float(key string) (float64, bool) {
	v, present := p[key]
	if !present || v == nil {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// Int64 reads an integer value, accepting native integers, floats and
// numeric strings.
func (p Params) Int64(key string) (int64, bool) {
	v, present := p[key]
	if !present || v == nil {
		return 0, false
	}
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case float64:
		return int64(n), true
	case string:
		i, err := strconv.ParseInt(n, 10, 64)
		if err != nil {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}

// Bool reads a boolean value, accepting native bools and "true"/"false".
func (p Params) Bool(key string) (bool, bool) {
	v, present := p[key]
	if !present || v == nil {
		return false, false
	}
	switch b := v.(type) {
	case bool:
		return b, true
	case string:
		parsed, err := strconv.ParseBool(b)
		if err != nil {
			return false, false
		}
		return parsed, true
	default:
		return false, false
	}
}

// TypeOptions configures market-type resolution for a client: a global
// default plus optional per-method overrides keyed by unified method name.
type TypeOptions struct {
	DefaultType string
	Methods     map[string]string
}

// MarketTypeAndParams resolves the effective market type for a call and
// strips the routing keys so they never leak onto the wire.
//
// Precedence: explicit params ("type", then "defaultType") beat the
// per-method override, which beats the market's own type, which beats the
// client default, which beats "spot".
func MarketTypeAndParams(method string, market *Market, opts TypeOptions, params Params) (string, Params) {
	marketType := "spot"
	if opts.DefaultType != "" {
		marketType = opts.DefaultType
	}
	if market != nil && market.Type != "" {
		marketType = market.Type
	}
	if override, ok := opts.Methods[method]; ok && override != "" {
		marketType = override
	}
	if t, ok := params.String("defaultType"); ok && t != "" {
		marketType = t
	}
	if t, ok := params.String("type"); ok && t != "" {
		marketType = t
	}
	return marketType, params.Omit("type", "defaultType")
}

// WithdrawTagAndParams untangles the historical calling convention where the
// params bag was passed in the tag position. A map in the tag slot becomes
// the params bag; otherwise a missing tag is pulled from params["tag"] and
// stripped.
func WithdrawTagAndParams(tag any, params Params) (string, Params) {
	if misplaced, ok := tag.(map[string]any); ok {
		params = Params(misplaced).Merge(params)
		tag = nil
	}
	if misplaced, ok := tag.(Params); ok {
		params = misplaced.Merge(params)
		tag = nil
	}
	resolved, _ := tag.(string)
	if resolved == "" {
		if t, ok := params.String("tag"); ok {
			resolved = t
		}
	}
	return resolved, params.Omit("tag")
}
