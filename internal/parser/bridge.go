package parser

import "github.com/pgEdge/dqcheck/internal/suggest"

// TableSchemas flattens a parsed dump into the column-name-only shape the
// suggestion engine's schema analyzer consumes.
func (s *ParsedSchema) TableSchemas() []suggest.TableSchema {
	out := make([]suggest.TableSchema, 0, len(s.Tables))
	for _, t := range s.Tables {
		cols := make([]string, len(t.Columns))
		for i, c := range t.Columns {
			cols[i] = c.Name
		}
		out = append(out, suggest.TableSchema{Name: t.TableName, Columns: cols})
	}
	return out
}
