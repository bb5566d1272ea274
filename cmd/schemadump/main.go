// schemadump parses a Postgres DDL dump and prints reports for the
// application tables: a Markdown column reference, TypeScript interfaces,
// and per-table column counts. With no -schema flag it reads the embedded
// migration so the reports always match what migrate applies.
package main

import (
	"flag"
	"fmt"
	"os"

	"callmonitor/internal/db"
	"callmonitor/internal/schema"
)

const embeddedMigration = "migrations/000001_init.up.sql"

func main() {
	schemaPath := flag.String("schema", "", "Path to a SQL schema dump (default: embedded migration)")
	format := flag.String("format", "all", "Output: markdown, typescript, counts, or all")
	flag.Parse()

	var ddl []byte
	var err error
	if *schemaPath != "" {
		ddl, err = os.ReadFile(*schemaPath)
	} else {
		ddl, err = db.MigrationFS.ReadFile(embeddedMigration)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "read schema:", err)
		os.Exit(1)
	}

	s := schema.Parse(string(ddl))

	emit := func(section func() (string, error)) {
		out, err := section()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Println(out)
	}

	switch *format {
	case "markdown":
		emit(func() (string, error) { return s.Markdown(schema.RequiredTables) })
	case "typescript":
		emit(func() (string, error) { return s.TypeScript(schema.RequiredTables) })
	case "counts":
		emit(func() (string, error) { return s.ColumnCounts(schema.RequiredTables) })
	case "all":
		emit(func() (string, error) { return s.Markdown(schema.RequiredTables) })
		emit(func() (string, error) { return s.TypeScript(schema.RequiredTables) })
		emit(func() (string, error) { return s.ColumnCounts(schema.RequiredTables) })
	default:
		fmt.Fprintf(os.Stderr, "unknown format %q\n", *format)
		os.Exit(1)
	}
}
