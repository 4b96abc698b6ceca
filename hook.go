package viewsql

import (
	"context"
	"time"

	"github.com/pivotdb/viewsql/viewconfig"
)

// CompileEvent describes a single compile call for CompileHook
// observers: which operation ran, against which table/view, the
// resulting query, and how long it took.
type CompileEvent struct {
	Operation string
	Table     string
	View      string
	Query     string
	Err       error
	StartTime time.Time
}

// CompileHook observes Compiler calls. BeforeCompile runs first and
// may derive a new context (e.g. to stash a timer or request id);
// AfterCompile receives the finished event. Hooks never see the
// compiler's internal state, only what crossed its public surface.
type CompileHook interface {
	BeforeCompile(ctx context.Context, event *CompileEvent) context.Context
	AfterCompile(ctx context.Context, event *CompileEvent)
}

// HookedCompiler wraps a Compiler so calls notify the configured
// hooks, the way an ORM wraps its query builder with a
// logging/tracing hook chain without baking that concern into the
// builder itself. GetHostedTables, TableSchema, TableSize and
// TableMakeView notify the hooks; every other operation is the
// embedded Compiler's own method and notifies no hook.
type HookedCompiler struct {
	*Compiler
	hooks []CompileHook
}

// NewHooked returns a HookedCompiler delegating to c and notifying
// hooks around each of its wrapped operations.
func NewHooked(c *Compiler, hooks ...CompileHook) *HookedCompiler {
	return &HookedCompiler{Compiler: c, hooks: hooks}
}

// AddHook appends hook to the notification chain.
func (h *HookedCompiler) AddHook(hook CompileHook) {
	h.hooks = append(h.hooks, hook)
}

func (h *HookedCompiler) run(ctx context.Context, operation, table, view string, fn func() (string, error)) (string, error) {
	event := &CompileEvent{Operation: operation, Table: table, View: view, StartTime: time.Now()}

	for _, hook := range h.hooks {
		ctx = hook.BeforeCompile(ctx, event)
	}

	query, err := fn()
	event.Query = query
	event.Err = err

	for _, hook := range h.hooks {
		hook.AfterCompile(ctx, event)
	}

	return query, err
}

// GetHostedTables wraps Compiler.GetHostedTables with hook notifications.
func (h *HookedCompiler) GetHostedTables(ctx context.Context) (string, error) {
	return h.run(ctx, "GetHostedTables", "", "", h.Compiler.GetHostedTables)
}

// TableSchema wraps Compiler.TableSchema with hook notifications.
func (h *HookedCompiler) TableSchema(ctx context.Context, tableID string) (string, error) {
	return h.run(ctx, "TableSchema", tableID, "", func() (string, error) {
		return h.Compiler.TableSchema(tableID)
	})
}

// TableSize wraps Compiler.TableSize with hook notifications.
func (h *HookedCompiler) TableSize(ctx context.Context, tableID string) (string, error) {
	return h.run(ctx, "TableSize", tableID, "", func() (string, error) {
		return h.Compiler.TableSize(tableID)
	})
}

// TableMakeView wraps Compiler.TableMakeView with hook notifications.
func (h *HookedCompiler) TableMakeView(ctx context.Context, tableID, viewID string, cfg viewconfig.ViewConfig) (string, error) {
	return h.run(ctx, "TableMakeView", tableID, viewID, func() (string, error) {
		return h.Compiler.TableMakeView(tableID, viewID, cfg)
	})
}
