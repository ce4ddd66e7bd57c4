// Package ident validates and escapes every user-supplied SQL identifier and
// regular expression before it reaches a generated query. No constraint
// evaluator is permitted to interpolate raw user text into SQL; everything
// funnels through ValidateIdentifier/Escape or ValidatePattern first.
package ident

import (
	"regexp"
	"strings"

	"github.com/pgEdge/dqcheck/internal/dqerr"
)

// MaxIdentifierLength bounds accepted identifiers (matches common engine
// limits; PostgreSQL's own NAMEDATALEN default is 64, this is intentionally
// more permissive for engines that allow longer names).
const MaxIdentifierLength = 128

var bareIdentifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidateIdentifier succeeds iff s is a bare column/table name: it must
// match [A-Za-z_][A-Za-z0-9_]* and be no longer than MaxIdentifierLength.
// Dotted, schema-qualified names are rejected here — callers split on "."
// and validate each part independently (see SplitQualified).
func ValidateIdentifier(s string) error {
	if s == "" {
		return dqerr.Config("ValidateIdentifier", "identifier must not be empty")
	}
	if len(s) > MaxIdentifierLength {
		return dqerr.Configf("ValidateIdentifier", "identifier %q exceeds max length %d", s, MaxIdentifierLength)
	}
	if !bareIdentifier.MatchString(s) {
		return dqerr.Configf("ValidateIdentifier", "identifier %q is not a bare SQL identifier", s)
	}
	return nil
}

// Escape wraps a validated identifier in the engine's double-quote
// delimiting, doubling any inner quote character. Callers MUST call
// ValidateIdentifier (directly or via a helper that does) before Escape;
// Escape itself does not re-validate, it only quotes.
func Escape(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// ValidateAndEscape is the common case: validate then escape in one call.
func ValidateAndEscape(s string) (string, error) {
	if err := ValidateIdentifier(s); err != nil {
		return "", err
	}
	return Escape(s), nil
}

// SplitQualified splits a "table.col" or "schema.table.col" qualified
// column reference (spec section 6.4) into its table and column parts,
// reducing a three-part reference to (table, col) for identifier purposes.
// Any other shape is a ConfigurationError.
func SplitQualified(s string) (table, column string, err error) {
	parts := strings.Split(s, ".")
	switch len(parts) {
	case 2:
		table, column = parts[0], parts[1]
	case 3:
		table, column = parts[1], parts[2]
	default:
		return "", "", dqerr.Configf("SplitQualified", "expected table.col or schema.table.col, got %q", s)
	}
	if err := ValidateIdentifier(table); err != nil {
		return "", "", err
	}
	if err := ValidateIdentifier(column); err != nil {
		return "", "", err
	}
	return table, column, nil
}

// forbiddenDML is scanned, case-insensitively, as whole words against a
// CustomSql expression. A statement separator is rejected outright.
var forbiddenDML = []string{
	"DROP", "DELETE", "UPDATE", "INSERT", "ALTER", "CREATE", "TRUNCATE",
	"GRANT", "REVOKE",
}

var wordBoundary = regexp.MustCompile(`[A-Za-z_][A-Za-z0-9_]*`)

// ValidateExpression checks a user-supplied boolean SQL expression (used by
// the CustomSql constraint) for statement separators and top-level DML/DDL
// keywords. It does not attempt full SQL parsing — it is a conservative
// denylist, matching the guard's stated contract in spec section 4.3.7.
func ValidateExpression(expr string) error {
	if strings.Contains(expr, ";") {
		return dqerr.Config("ValidateExpression", "expression must not contain a statement separator ';'")
	}
	for _, word := range wordBoundary.FindAllString(expr, -1) {
		upper := strings.ToUpper(word)
		for _, bad := range forbiddenDML {
			if upper == bad {
				return dqerr.Configf("ValidateExpression", "expression contains forbidden keyword %q", bad)
			}
		}
	}
	return nil
}

// nestedUnboundedQuantifier is a conservative heuristic for catastrophic
// backtracking shapes such as (a+)+ or (a*)+ — two quantifiers stacked with
// no bound between them. Go's regexp package is RE2-backed and cannot
// actually backtrack, but the guard still rejects these shapes so a pattern
// validated here remains safe if ever run through a backtracking engine
// downstream (e.g. an engine-side regex function).
var nestedUnboundedQuantifier = regexp.MustCompile(`\([^()]*[+*]\)[+*]`)

// ValidatePattern succeeds iff p compiles under the target regex engine and
// does not contain an obvious catastrophic-backtracking shape. It returns
// the pattern with any single quotes doubled for safe embedding in a
// single-quoted SQL string literal.
func ValidatePattern(p string) (string, error) {
	if nestedUnboundedQuantifier.MatchString(p) {
		return "", dqerr.Configf("ValidatePattern", "pattern %q contains a nested unbounded quantifier", p)
	}
	if _, err := regexp.Compile(p); err != nil {
		return "", dqerr.Configf("ValidatePattern", "pattern %q does not compile: %v", p, err)
	}
	return strings.ReplaceAll(p, "'", "''"), nil
}
