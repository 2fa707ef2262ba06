package todo

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	internalmcp "github.com/wagiedev/toolkit-mcp-go/internal/mcp"
	"github.com/wagiedev/toolkit-mcp-go/internal/models"
)

// Register adds the todo tools backed by store to reg.
func Register(reg *internalmcp.Registry, store *Store) error {
	idParam := internalmcp.Required("id", internalmcp.KindString, "Todo id")
	readOnly := &mcp.ToolAnnotations{ReadOnlyHint: true}
	destructive := true

	tools := []internalmcp.Tool{
		{
			Descriptor: internalmcp.Descriptor{
				Name:        "create_todo",
				Description: "Create a todo item",
				Parameters: []internalmcp.ParameterSpec{
					internalmcp.Required("title", internalmcp.KindString, "Short title"),
					internalmcp.Optional("description", internalmcp.KindString, "", "Longer description"),
					internalmcp.Optional("priority", internalmcp.KindString, models.DefaultPriority.String(), "Low, Medium or High"),
				},
			},
			Handler: func(_ context.Context, args internalmcp.Args) (any, error) {
				return store.Create(args.String("title"), args.String("description"), args.String("priority"))
			},
		},
		{
			Descriptor: internalmcp.Descriptor{
				Name:        "list_todos",
				Description: "List todo items, newest first",
				Parameters: []internalmcp.ParameterSpec{
					internalmcp.Optional("filter", internalmcp.KindString, FilterAll, "all, completed or pending"),
					internalmcp.Optional("priority", internalmcp.KindString, PriorityAll, "all, Low, Medium or High"),
				},
				Annotations: readOnly,
			},
			Handler: func(_ context.Context, args internalmcp.Args) (any, error) {
				return store.List(args.String("filter"), args.String("priority"))
			},
		},
		{
			Descriptor: internalmcp.Descriptor{
				Name:        "get_todo",
				Description: "Get a todo item by id",
				Parameters:  []internalmcp.ParameterSpec{idParam},
				Annotations: readOnly,
			},
			Handler: func(_ context.Context, args internalmcp.Args) (any, error) {
				return store.Get(args.String("id")), nil
			},
		},
		{
			Descriptor: internalmcp.Descriptor{
				Name:        "complete_todo",
				Description: "Mark a todo item as completed",
				Parameters:  []internalmcp.ParameterSpec{idParam},
			},
			Handler: func(_ context.Context, args internalmcp.Args) (any, error) {
				return store.Complete(args.String("id")), nil
			},
		},
		{
			Descriptor: internalmcp.Descriptor{
				Name:        "update_todo",
				Description: "Update fields of a todo item; blank fields are kept",
				Parameters: []internalmcp.ParameterSpec{
					idParam,
					internalmcp.Optional("title", internalmcp.KindString, "", "New title"),
					internalmcp.Optional("description", internalmcp.KindString, "", "New description"),
					internalmcp.Optional("priority", internalmcp.KindString, "", "New priority: Low, Medium or High"),
				},
			},
			Handler: func(_ context.Context, args internalmcp.Args) (any, error) {
				return store.Update(args.String("id"), Patch{
					Title:       supplied(args, "title"),
					Description: supplied(args, "description"),
					Priority:    supplied(args, "priority"),
				}), nil
			},
		},
		{
			Descriptor: internalmcp.Descriptor{
				Name:        "delete_todo",
				Description: "Delete a todo item",
				Parameters:  []internalmcp.ParameterSpec{idParam},
				Annotations: &mcp.ToolAnnotations{DestructiveHint: &destructive},
			},
			Handler: func(_ context.Context, args internalmcp.Args) (any, error) {
				id := args.String("id")

				return models.DeleteResult{ID: id, Deleted: store.Delete(id)}, nil
			},
		},
		{
			Descriptor: internalmcp.Descriptor{
				Name:        "clear_completed_todos",
				Description: "Remove all completed todo items",
				Annotations: &mcp.ToolAnnotations{DestructiveHint: &destructive},
			},
			Handler: func(context.Context, internalmcp.Args) (any, error) {
				return models.ClearResult{Removed: store.ClearCompleted()}, nil
			},
		},
		{
			Descriptor: internalmcp.Descriptor{
				Name:        "get_todo_stats",
				Description: "Counts of total, completed and pending todo items",
				Annotations: readOnly,
			},
			Handler: func(context.Context, internalmcp.Args) (any, error) {
				return store.Stats(), nil
			},
		},
	}

	for _, t := range tools {
		if err := reg.Register(t.Descriptor, t.Handler); err != nil {
			return err
		}
	}

	return nil
}

func supplied(args internalmcp.Args, name string) *string {
	if !args.Has(name) {
		return nil
	}

	v := args.String(name)

	return &v
}
