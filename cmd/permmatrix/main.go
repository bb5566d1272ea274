// permmatrix builds the per-table permission matrix from a tool alignment
// file and cross-checks the hard-coded API contracts against the schema.
// Exits non-zero when either report contains errors, so it can gate CI.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"callmonitor/internal/db"
	"callmonitor/internal/permission"
	"callmonitor/internal/schema"
)

const embeddedMigration = "migrations/000001_init.up.sql"

func main() {
	toolPath := flag.String("tool", "", "Path to the tool alignment JSON (table -> op -> columns)")
	schemaPath := flag.String("schema", "", "Path to a SQL schema dump (default: embedded migration)")
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

	failed := false

	if *toolPath != "" {
		toolJSON, err := os.ReadFile(*toolPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "read tool alignment:", err)
			os.Exit(1)
		}
		matrix, err := permission.BuildMatrix(toolJSON, s)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		out, err := json.MarshalIndent(matrix, "", "  ")
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Println(string(out))
		if len(matrix.Validation.Errors) > 0 {
			failed = true
		}
	}

	result := permission.ValidateContracts(s, permission.APIContracts)
	if result.Valid {
		fmt.Println("API contracts: OK")
	} else {
		fmt.Println("API contracts: FAILED")
		for _, e := range result.Errors {
			fmt.Println("  -", e)
		}
		failed = true
	}

	evaluator, err := permission.NewModuleAccessEvaluator()
	if err != nil {
		fmt.Fprintln(os.Stderr, "module access policy:", err)
		os.Exit(1)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := evaluator.HealthCheck(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "module access policy:", err)
		os.Exit(1)
	}
	fmt.Println("Module access policy: OK")

	if failed {
		os.Exit(1)
	}
}
