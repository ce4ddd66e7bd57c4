package suggest

import "regexp"

var sampleShapes = map[string]*regexp.Regexp{
	"email":            regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`),
	"iso8601_datetime": regexp.MustCompile(`^\d{4}-\d{2}-\d{2}[T ]\d{2}:\d{2}:\d{2}`),
	"phone":            regexp.MustCompile(`^\+?[\d\s\-().]{7,20}$`),
}

// allMatch reports whether every sample matches the named heuristic
// shape. An empty sample set never matches.
func allMatch(samples []string, kind string) bool {
	re, ok := sampleShapes[kind]
	if !ok || len(samples) == 0 {
		return false
	}
	for _, s := range samples {
		if !re.MatchString(s) {
			return false
		}
	}
	return true
}
