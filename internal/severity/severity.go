// Package severity defines the ordered severity level shared by Check and
// ValidationIssue, following the same MarshalJSON-as-name pattern the
// teacher's models.Severity uses.
package severity

import (
	"encoding/json"
	"fmt"
)

// Level is ordered Info < Warning < Error. Only Error causes overall suite
// failure (spec section 3).
type Level int

const (
	Info Level = iota
	Warning
	Error
)

// Default is the severity a Check carries when none is specified.
const Default = Warning

var names = map[Level]string{
	Info:    "info",
	Warning: "warning",
	Error:   "error",
}

var fromName = map[string]Level{
	"info":    Info,
	"warning": Warning,
	"error":   Error,
}

func (l Level) String() string {
	if n, ok := names[l]; ok {
		return n
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

// Parse converts a string into a Level.
func Parse(s string) (Level, error) {
	l, ok := fromName[s]
	if !ok {
		return 0, fmt.Errorf("unknown severity level: %q", s)
	}
	return l, nil
}

func (l Level) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}

func (l *Level) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}
