package permission

import (
	"context"
	"fmt"

	"github.com/open-policy-agent/opa/v1/ast"
	"github.com/open-policy-agent/opa/v1/rego"
)

// moduleAccessPolicy decides whether an application module may perform an
// operation on a table. Reads are open to ui, server actions, and api routes;
// writes are restricted to server actions.
const moduleAccessPolicy = `package callmonitor.module_access

default allow = false

read_modules = {"ui", "server_actions", "api_routes"}

allow if {
	input.operation == "GET"
	read_modules[input.module]
}

allow if {
	input.operation != "GET"
	input.module == "server_actions"
}
`

// ModuleAccessEvaluator evaluates module-access decisions with in-process
// OPA Rego.
type ModuleAccessEvaluator struct {
	compiler *ast.Compiler
}

// NewModuleAccessEvaluator compiles the module-access policy.
func NewModuleAccessEvaluator() (*ModuleAccessEvaluator, error) {
	compiler, err := ast.CompileModules(map[string]string{
		"module_access.rego": moduleAccessPolicy,
	})
	if err != nil {
		return nil, fmt.Errorf("compile module access policy: %w", err)
	}
	return &ModuleAccessEvaluator{compiler: compiler}, nil
}

// Allow reports whether module may perform operation (GET/POST/PUT/DELETE)
// on table. Denies on evaluation failure.
func (e *ModuleAccessEvaluator) Allow(ctx context.Context, module, operation, table string) (bool, error) {
	q := rego.New(
		rego.Query("data.callmonitor.module_access.allow"),
		rego.Compiler(e.compiler),
		rego.Input(map[string]interface{}{
			"module":    module,
			"operation": operation,
			"table":     table,
		}),
	)
	rs, err := q.Eval(ctx)
	if err != nil {
		return false, fmt.Errorf("eval module access policy: %w", err)
	}
	if len(rs) == 0 || len(rs[0].Expressions) == 0 {
		return false, fmt.Errorf("module access query returned no result")
	}
	allowed, ok := rs[0].Expressions[0].Value.(bool)
	if !ok {
		return false, fmt.Errorf("module access query returned non-boolean")
	}
	return allowed, nil
}

// HealthCheck verifies the embedded policy compiles and evaluates.
func (e *ModuleAccessEvaluator) HealthCheck(ctx context.Context) error {
	_, err := e.Allow(ctx, "ui", "GET", "calls")
	return err
}
