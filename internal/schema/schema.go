// Package schema parses the SQL DDL for the public schema and exposes the
// table/column model consumed by the permission matrix and the contract
// validator.
package schema

import (
	"fmt"
	"regexp"
	"strings"
)

// Column is one column of a table with its raw SQL type clause.
type Column struct {
	Name    string
	SQLType string
}

// ForeignKey records one column-level foreign key reference.
type ForeignKey struct {
	Column   string
	RefTable string
	RefCol   string
}

// Table is one parsed public table.
type Table struct {
	Name        string
	Columns     []Column
	PrimaryKeys []string
	ForeignKeys []ForeignKey
}

// HasColumn reports whether the table has a column with the given name.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c.Name == name {
			return true
		}
	}
	return false
}

// ColumnNames returns the column names in declaration order.
func (t *Table) ColumnNames() []string {
	names := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		names = append(names, c.Name)
	}
	return names
}

var (
	tablePattern = regexp.MustCompile(`(?s)CREATE TABLE public\.([^(\s]+) \((.*?)\);`)
	pkPattern    = regexp.MustCompile(`PRIMARY KEY \(([^)]+)\)`)
	fkPattern    = regexp.MustCompile(`FOREIGN KEY \(([^)]+)\) REFERENCES public\.([^(\s]+)\(([^)]+)\)`)
	colPattern   = regexp.MustCompile(`^([a-zA-Z0-9_]+)\s+([^,]+),?`)
)

// Schema is the set of parsed tables keyed by name.
type Schema struct {
	Tables map[string]*Table
	Order  []string
}

// Parse extracts all CREATE TABLE public.<name> statements from sql.
func Parse(sql string) *Schema {
	s := &Schema{Tables: map[string]*Table{}}
	for _, m := range tablePattern.FindAllStringSubmatch(sql, -1) {
		name := m[1]
		body := m[2]
		t := &Table{Name: name}
		for _, raw := range strings.Split(body, "\n") {
			ln := strings.TrimSpace(raw)
			if strings.HasPrefix(strings.ToUpper(ln), "CONSTRAINT") {
				if pkm := pkPattern.FindStringSubmatch(ln); pkm != nil {
					for _, c := range strings.Split(pkm[1], ",") {
						t.PrimaryKeys = append(t.PrimaryKeys, strings.TrimSpace(c))
					}
				}
				if fkm := fkPattern.FindStringSubmatch(ln); fkm != nil {
					fkCols := strings.Split(fkm[1], ",")
					refCols := strings.Split(fkm[3], ",")
					for i := range fkCols {
						if i >= len(refCols) {
							break
						}
						t.ForeignKeys = append(t.ForeignKeys, ForeignKey{
							Column:   strings.TrimSpace(fkCols[i]),
							RefTable: fkm[2],
							RefCol:   strings.TrimSpace(refCols[i]),
						})
					}
				}
				continue
			}
			if colm := colPattern.FindStringSubmatch(ln); colm != nil {
				t.Columns = append(t.Columns, Column{
					Name:    colm[1],
					SQLType: strings.TrimSpace(colm[2]),
				})
			}
		}
		s.Tables[name] = t
		s.Order = append(s.Order, name)
	}
	return s
}

// Get returns the named table or an error naming the missing table.
func (s *Schema) Get(name string) (*Table, error) {
	t, ok := s.Tables[name]
	if !ok {
		return nil, fmt.Errorf("table %s not found in schema", name)
	}
	return t, nil
}
