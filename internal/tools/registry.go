// Package tools holds the fixed set of admin-only operations the model may
// request. Every implementation converts its failures into a Result; nothing
// propagates an error past the tool boundary.
package tools

import (
	"context"
	"log"

	"github.com/cloudwego/eino/schema"
)

// Result is the uniform outcome serialized back to the model. It is never
// shown raw to the end user.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	// NewQuantity is set by the inventory tool so the model can report the
	// post-adjustment stock level.
	NewQuantity *int `json:"newQuantity,omitempty"`
}

// Tool is a single named side-effecting operation.
type Tool interface {
	// Declaration describes the tool to the model for selection.
	Declaration() *schema.ToolInfo
	// Execute runs the tool with model-supplied arguments. Implementations
	// must not panic or leak errors; all failures become a Result.
	Execute(ctx context.Context, args map[string]any) Result
}

// Registry maps tool names to implementations in registration order.
type Registry struct {
	order []string
	tools map[string]Tool
}

// NewRegistry registers the given tools. Later registrations with a duplicate
// name overwrite earlier ones.
func NewRegistry(entries ...Tool) *Registry {
	r := &Registry{tools: make(map[string]Tool, len(entries))}
	for _, entry := range entries {
		name := entry.Declaration().Name
		if _, exists := r.tools[name]; !exists {
			r.order = append(r.order, name)
		}
		r.tools[name] = entry
	}
	return r
}

// Declarations returns every registered tool's declaration, in registration
// order, for binding to the model configuration.
func (r *Registry) Declarations() []*schema.ToolInfo {
	decls := make([]*schema.ToolInfo, 0, len(r.order))
	for _, name := range r.order {
		decls = append(decls, r.tools[name].Declaration())
	}
	return decls
}

// Execute dispatches to the named tool. An unregistered name yields a failure
// Result rather than an error, so the model can explain it to the user.
func (r *Registry) Execute(ctx context.Context, name string, args map[string]any) Result {
	entry, ok := r.tools[name]
	if !ok {
		log.Printf("[tools] model requested unregistered tool %q", name)
		return Result{Success: false, Error: "Unknown function"}
	}
	log.Printf("[tools] executing %s", name)
	return entry.Execute(ctx, args)
}
