package schema

import (
	"fmt"
	"strings"
)

// RequiredTables is the set of tables the extract report always covers, in
// report order.
var RequiredTables = []string{
	"calls",
	"recordings",
	"scored_recordings",
	"evidence_manifests",
	"ai_runs",
	"organizations",
	"users",
	"audit_logs",
}

// TSType maps a raw SQL type clause to its TypeScript type.
func TSType(sqlType string) string {
	t := strings.ToLower(sqlType)
	switch {
	case strings.HasPrefix(t, "uuid"):
		return "string"
	case strings.HasPrefix(t, "text"), strings.HasPrefix(t, "character"):
		return "string"
	case strings.Contains(t, "timestamp"):
		return "string"
	case strings.HasPrefix(t, "jsonb"):
		return "any"
	case strings.HasPrefix(t, "integer"), strings.HasPrefix(t, "int"):
		return "number"
	case strings.HasPrefix(t, "bigint"):
		return "number"
	case strings.HasPrefix(t, "boolean"):
		return "boolean"
	case strings.HasPrefix(t, "numeric"):
		return "number"
	case strings.Contains(t, "array"), strings.HasSuffix(t, "[]"):
		return "any[]"
	default:
		return "any"
	}
}

// Markdown renders the per-table column report for the required tables.
func (s *Schema) Markdown(required []string) (string, error) {
	var b strings.Builder
	b.WriteString("# Schema Extract — Selected public tables\n\n")
	for _, name := range required {
		t, err := s.Get(name)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "### %s\n\n", name)
		b.WriteString("| Column | SQL Type | PK | FK |\n")
		b.WriteString("|---|---:|:--:|:--:\n")
		for _, c := range t.Columns {
			pk := ""
			for _, p := range t.PrimaryKeys {
				if p == c.Name {
					pk = "YES"
				}
			}
			fk := ""
			for _, f := range t.ForeignKeys {
				if f.Column == c.Name {
					fk = fmt.Sprintf("%s(%s)", f.RefTable, f.RefCol)
				}
			}
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", c.Name, c.SQLType, pk, fk)
		}
		b.WriteString("\n")
	}
	return b.String(), nil
}

// TypeScript renders one exported interface per required table. Columns
// without NOT NULL get a `| null` union.
func (s *Schema) TypeScript(required []string) (string, error) {
	var b strings.Builder
	for _, name := range required {
		t, err := s.Get(name)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "export interface %s {\n", strings.ToUpper(name[:1])+name[1:])
		for _, c := range t.Columns {
			nullable := ""
			if !strings.Contains(strings.ToLower(c.SQLType), "not null") {
				nullable = " | null"
			}
			fmt.Fprintf(&b, "  %s: %s%s;\n", c.Name, TSType(c.SQLType), nullable)
		}
		b.WriteString("}\n\n")
	}
	return b.String(), nil
}

// ColumnCounts renders the self-check count lines per required table.
func (s *Schema) ColumnCounts(required []string) (string, error) {
	var b strings.Builder
	for _, name := range required {
		t, err := s.Get(name)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "%s: %d\n", name, len(t.Columns))
	}
	return b.String(), nil
}
