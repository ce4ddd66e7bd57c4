// Package typeinfer classifies string samples into data types with a
// confidence score (spec section 4.11). It is shared by the
// DataTypeConsistency constraint and the column profiler/suggestion
// engine so both see the same notion of "what type is this column".
package typeinfer

import (
	"regexp"
	"strings"
)

// Type enumerates the inferred kinds, in the decision order of spec
// section 4.11 (first above threshold wins).
type Type int

const (
	DateTime Type = iota
	Date
	Time
	Boolean
	Decimal
	Float
	Integer
	Categorical
	Text
	Mixed
)

func (t Type) String() string {
	switch t {
	case DateTime:
		return "datetime"
	case Date:
		return "date"
	case Time:
		return "time"
	case Boolean:
		return "boolean"
	case Decimal:
		return "decimal"
	case Float:
		return "float"
	case Integer:
		return "integer"
	case Categorical:
		return "categorical"
	case Text:
		return "text"
	case Mixed:
		return "mixed"
	default:
		return "unknown"
	}
}

var (
	reInteger    = regexp.MustCompile(`^[+\-]?\d+$`)
	reFloat      = regexp.MustCompile(`^[+\-]?\d+\.\d+([eE][+\-]?\d+)?$`)
	reDecimal    = regexp.MustCompile(`^[+\-]?\d+\.(\d+)$`)
	reISODate    = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	reUSDate     = regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{4}$`)
	reEUDate     = regexp.MustCompile(`^\d{1,2}\.\d{1,2}\.\d{4}$`)
	reISODate2   = regexp.MustCompile(`^\d{4}/\d{2}/\d{2}$`)
	reISODateTime = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}[T ]\d{2}:\d{2}:\d{2}(\.\d+)?(Z|[+\-]\d{2}:?\d{2})?$`)
	reTime       = regexp.MustCompile(`^\d{2}:\d{2}(:\d{2})?$`)
)

var booleanVocabulary = map[string]bool{
	"true": true, "false": true, "t": true, "f": true,
	"yes": true, "no": true, "y": true, "n": true, "1": true, "0": true,
}

// DefaultConfidenceThreshold is the threshold named in spec section 4.11.
const DefaultConfidenceThreshold = 0.7

// DefaultCategoricalThreshold bounds the unique-value count below which a
// Text-leaning column is instead reported Categorical.
const DefaultCategoricalThreshold = 20

// Result is the outcome of classifying a set of samples.
type Result struct {
	// Type is the winning classification, or Mixed if none crossed the
	// confidence threshold but several scored above 0.1.
	Type Type
	// Confidence is the winning type's match fraction (0 when Mixed).
	Confidence float64
	// MixedConfidences holds per-type confidence when Type == Mixed.
	MixedConfidences map[Type]float64
	// UniqueCount is the number of distinct non-null samples seen.
	UniqueCount int
	// DetectedDateFormats records which date/datetime shapes matched.
	DetectedDateFormats []string
}

// Classify infers the dominant type across samples. Nulls and
// whitespace-only strings are ignored for counting purposes but still
// reduce the effective sample size used for confidence denominators —
// matching spec section 4.11's "NULLs and whitespace-only strings counted
// as null".
func Classify(samples []string, confidenceThreshold float64, categoricalThreshold int) Result {
	if confidenceThreshold <= 0 {
		confidenceThreshold = DefaultConfidenceThreshold
	}
	if categoricalThreshold <= 0 {
		categoricalThreshold = DefaultCategoricalThreshold
	}

	counts := map[Type]int{}
	dateFormats := map[string]bool{}
	unique := map[string]bool{}
	nonNull := 0

	for _, raw := range samples {
		s := strings.TrimSpace(raw)
		if s == "" {
			continue
		}
		nonNull++
		unique[s] = true

		switch {
		case reISODateTime.MatchString(s):
			counts[DateTime]++
			dateFormats["iso8601_datetime"] = true
		case reISODate.MatchString(s):
			counts[Date]++
			dateFormats["iso8601_date"] = true
		case reISODate2.MatchString(s):
			counts[Date]++
			dateFormats["iso8601_date_slash"] = true
		case reUSDate.MatchString(s):
			counts[Date]++
			dateFormats["us_date"] = true
		case reEUDate.MatchString(s):
			counts[Date]++
			dateFormats["eu_date"] = true
		case reTime.MatchString(s):
			counts[Time]++
		case booleanVocabulary[strings.ToLower(s)]:
			counts[Boolean]++
		case reDecimal.MatchString(s):
			counts[Decimal]++
		case reFloat.MatchString(s):
			counts[Float]++
		case reInteger.MatchString(s):
			counts[Integer]++
		default:
			counts[Text]++
		}
	}

	if nonNull == 0 {
		return Result{Type: Text, Confidence: 0, UniqueCount: 0}
	}

	order := []Type{DateTime, Date, Time, Boolean, Decimal, Float, Integer}
	for _, t := range order {
		conf := float64(counts[t]) / float64(nonNull)
		if conf >= confidenceThreshold {
			return Result{Type: t, Confidence: conf, UniqueCount: len(unique), DetectedDateFormats: keys(dateFormats)}
		}
	}

	textConf := float64(counts[Text]) / float64(nonNull)
	if textConf >= confidenceThreshold {
		if len(unique) <= categoricalThreshold {
			return Result{Type: Categorical, Confidence: textConf, UniqueCount: len(unique)}
		}
		return Result{Type: Text, Confidence: textConf, UniqueCount: len(unique)}
	}

	mixed := map[Type]float64{}
	for t, n := range counts {
		conf := float64(n) / float64(nonNull)
		if conf > 0.1 {
			mixed[t] = conf
		}
	}
	if len(mixed) > 1 {
		return Result{Type: Mixed, MixedConfidences: mixed, UniqueCount: len(unique)}
	}
	return Result{Type: Text, Confidence: textConf, UniqueCount: len(unique)}
}

func keys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
