package runware

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"
)

// Parameter keys recognized by ParamsFromMap. Matching is exact.
const (
	ParamPositivePrompt = "positivePrompt"
	ParamNegativePrompt = "negativePrompt"
	ParamModel          = "model"
	ParamHeight         = "height"
	ParamWidth          = "width"
	ParamSteps          = "steps"
	ParamCFGScale       = "CFGScale"
	ParamNumberResults  = "numberResults"
	ParamOutputFormat   = "outputFormat"
)

// ImageInferenceParams holds the optional fields of an image inference call.
// A nil field is left to the SDK default.
type ImageInferenceParams struct {
	PositivePrompt *string
	NegativePrompt *string
	Model          *string
	Height         *int
	Width          *int
	Steps          *int
	CFGScale       *float64
	NumberResults  *int

	// OutputFormat is matched case-insensitively; unknown names select PNG.
	OutputFormat *string
}

// Ptr returns a pointer to v, for filling ImageInferenceParams literals.
func Ptr[T any](v T) *T {
	return &v
}

// ParamsFromMap converts a loosely typed parameter map into
// ImageInferenceParams. Unrecognized keys and nil values are ignored. Numeric
// fields accept numbers of any Go kind, json.Number or numeric strings; values
// that are not numeric coerce to 0 and fractions are truncated for integer
// fields.
func ParamsFromMap(m map[string]any) ImageInferenceParams {
	var p ImageInferenceParams

	for key, v := range m {
		if v == nil {
			continue
		}
		switch key {
		case ParamPositivePrompt:
			p.PositivePrompt = Ptr(toString(v))
		case ParamNegativePrompt:
			p.NegativePrompt = Ptr(toString(v))
		case ParamModel:
			p.Model = Ptr(toString(v))
		case ParamHeight:
			p.Height = Ptr(toInt(v))
		case ParamWidth:
			p.Width = Ptr(toInt(v))
		case ParamSteps:
			p.Steps = Ptr(toInt(v))
		case ParamCFGScale:
			p.CFGScale = Ptr(toFloat(v))
		case ParamNumberResults:
			p.NumberResults = Ptr(toInt(v))
		case ParamOutputFormat:
			p.OutputFormat = Ptr(toString(v))
		}
	}

	return p
}

func toString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case []byte:
		return string(s)
	case fmt.Stringer:
		return s.String()
	default:
		return fmt.Sprint(v)
	}
}

func toInt(v any) int {
	switch n := v.(type) {
	case string:
		return intFromString(n)
	case json.Number:
		return intFromString(n.String())
	case bool:
		if n {
			return 1
		}
		return 0
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return clampInt64(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if u := rv.Uint(); u <= math.MaxInt {
			return int(u)
		}
		return math.MaxInt
	case reflect.Float32, reflect.Float64:
		return floatToInt(rv.Float())
	default:
		return 0
	}
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case string:
		return parseNumericPrefix(n)
	case json.Number:
		return parseNumericPrefix(n.String())
	case bool:
		if n {
			return 1
		}
		return 0
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	default:
		return 0
	}
}

// clampInt64 narrows n to the platform int range.
func clampInt64(n int64) int {
	switch {
	case n > math.MaxInt:
		return math.MaxInt
	case n < math.MinInt:
		return math.MinInt
	default:
		return int(n)
	}
}

// floatToInt truncates f toward zero, saturating at the int range. NaN is 0.
func floatToInt(f float64) int {
	switch {
	case math.IsNaN(f):
		return 0
	case f >= float64(math.MaxInt):
		return math.MaxInt
	case f <= float64(math.MinInt):
		return math.MinInt
	default:
		return int(math.Trunc(f))
	}
}

// numericWhitespace is the leading whitespace skipped before a number.
const numericWhitespace = " \t\n\r\v\f"

var numericPrefix = regexp.MustCompile(`^[ \t\n\r\v\f]*[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)

// parseNumericPrefix reads the leading number of s, so "512px" is 512 and
// "abc" is 0.
func parseNumericPrefix(s string) float64 {
	m := numericPrefix.FindString(s)
	if m == "" {
		return 0
	}
	f, err := strconv.ParseFloat(strings.TrimLeft(m, numericWhitespace), 64)
	if err != nil {
		return 0
	}
	return f
}

// intFromString reads the leading number of s as an integer. Plain integers
// are parsed exactly and saturate on overflow; decimals and exponents go
// through floatToInt.
func intFromString(s string) int {
	m := strings.TrimLeft(numericPrefix.FindString(s), numericWhitespace)
	if m == "" {
		return 0
	}
	if !strings.ContainsAny(m, ".eE") {
		// ParseInt returns the saturated value alongside ErrRange.
		n, _ := strconv.ParseInt(m, 10, 64)
		return clampInt64(n)
	}
	// Out-of-range exponents come back as ±Inf or 0 alongside ErrRange.
	f, _ := strconv.ParseFloat(m, 64)
	return floatToInt(f)
}
