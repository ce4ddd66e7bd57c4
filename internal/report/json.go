package report

import (
	"encoding/json"

	"github.com/pgEdge/dqcheck/internal/suite"
)

// RenderJSON renders result using the stable {"status","report"} shape
// spec section 6.6 mandates, pretty-printed for human consumption.
func RenderJSON(result suite.ValidationResult) (string, error) {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
