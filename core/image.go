package core

import "strings"

// OutputFormat is the encoding of generated images.
type OutputFormat string

const (
	OutputFormatPNG  OutputFormat = "PNG"
	OutputFormatJPG  OutputFormat = "JPG"
	OutputFormatWEBP OutputFormat = "WEBP"
)

// IsValid reports whether the output format is a recognized value.
func (f OutputFormat) IsValid() bool {
	switch f {
	case OutputFormatPNG, OutputFormatJPG, OutputFormatWEBP:
		return true
	default:
		return false
	}
}

// LookupOutputFormat maps a user supplied format name to an OutputFormat.
// Matching is case-insensitive and "JPEG" is accepted as an alias of "JPG".
// The second return value is false when s is not recognized.
func LookupOutputFormat(s string) (OutputFormat, bool) {
	switch strings.ToUpper(s) {
	case "PNG":
		return OutputFormatPNG, true
	case "JPG", "JPEG":
		return OutputFormatJPG, true
	case "WEBP":
		return OutputFormatWEBP, true
	default:
		return "", false
	}
}

// ParseOutputFormat is LookupOutputFormat with a PNG fallback for unrecognized
// input. It never fails.
func ParseOutputFormat(s string) OutputFormat {
	if f, ok := LookupOutputFormat(s); ok {
		return f
	}
	return OutputFormatPNG
}

// OutputType selects how the API delivers generated images.
type OutputType string

const (
	// OutputTypeURL returns a ready-to-use image URL.
	OutputTypeURL        OutputType = "URL"
	OutputTypeBase64Data OutputType = "base64Data"
	OutputTypeDataURI    OutputType = "dataURI"
)

// IsValid reports whether the output type is a recognized value.
func (t OutputType) IsValid() bool {
	switch t {
	case OutputTypeURL, OutputTypeBase64Data, OutputTypeDataURI:
		return true
	default:
		return false
	}
}

// Record is a single task result object as returned by the API, for example
// {"taskType":"imageInference","imageUUID":"...","imageURL":"https://..."}.
type Record map[string]any

// ImageURL returns the "imageURL" field or "" when absent.
func (r Record) ImageURL() string {
	s, _ := r["imageURL"].(string)
	return s
}

// ImageUUID returns the "imageUUID" field or "" when absent.
func (r Record) ImageUUID() string {
	s, _ := r["imageUUID"].(string)
	return s
}

// Result is the value produced by running an image task: either a URLResult or
// Records.
type Result interface {
	isResult()
}

// URLResult is a single direct image URL.
type URLResult string

// Records is a list of raw task result objects.
type Records []Record

func (URLResult) isResult() {}
func (Records) isResult()   {}

// NormalizeResult flattens a Result into a list of records.
// A URLResult becomes a one-element list holding {"imageURL": url}, Records are
// returned unchanged, and a nil Result yields an empty, non-nil list.
func NormalizeResult(r Result) []Record {
	switch v := r.(type) {
	case URLResult:
		return []Record{{"imageURL": string(v)}}
	case Records:
		if v == nil {
			return []Record{}
		}
		return v
	default:
		return []Record{}
	}
}
