package product

import (
	"context"
	"strconv"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	internalmcp "github.com/wagiedev/toolkit-mcp-go/internal/mcp"
	"github.com/wagiedev/toolkit-mcp-go/internal/models"
)

// Register adds the in-memory product tools backed by store to reg.
func Register(reg *internalmcp.Registry, store *Store) error {
	idParam := internalmcp.Required("id", internalmcp.KindInteger, "Product id")
	destructive := true

	tools := []internalmcp.Tool{
		{
			Descriptor: internalmcp.Descriptor{
				Name:        "create_product",
				Description: "Create a product in the local store",
				Parameters: []internalmcp.ParameterSpec{
					internalmcp.Required("name", internalmcp.KindString, "Product name"),
					internalmcp.Required("price", internalmcp.KindDecimal, "Unit price"),
					internalmcp.Optional("description", internalmcp.KindString, "", "Optional description"),
					internalmcp.Optional("is_active", internalmcp.KindBoolean, true, "Whether the product is for sale"),
				},
			},
			Handler: func(_ context.Context, args internalmcp.Args) (any, error) {
				return store.Create(models.ProductInput{
					Name:        args.String("name"),
					Price:       args.Decimal("price"),
					Description: optionalText(args.String("description")),
					IsActive:    args.Bool("is_active"),
				}), nil
			},
		},
		{
			Descriptor: internalmcp.Descriptor{
				Name:        "get_product",
				Description: "Get a product from the local store by id",
				Parameters:  []internalmcp.ParameterSpec{idParam},
				Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
			},
			Handler: func(_ context.Context, args internalmcp.Args) (any, error) {
				return store.Get(args.Int("id")), nil
			},
		},
		{
			Descriptor: internalmcp.Descriptor{
				Name:        "list_products",
				Description: "List products in the local store, newest first",
				Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
			},
			Handler: func(context.Context, internalmcp.Args) (any, error) {
				return store.List(), nil
			},
		},
		{
			Descriptor: internalmcp.Descriptor{
				Name:        "update_product",
				Description: "Update fields of a product in the local store; absent or blank fields are kept",
				Parameters: []internalmcp.ParameterSpec{
					idParam,
					internalmcp.Optional("name", internalmcp.KindString, "", "New name"),
					internalmcp.Optional("price", internalmcp.KindDecimal, "0", "New price"),
					internalmcp.Optional("description", internalmcp.KindString, "", "New description"),
					internalmcp.Optional("is_active", internalmcp.KindBoolean, false, "New availability"),
				},
			},
			Handler: func(_ context.Context, args internalmcp.Args) (any, error) {
				var patch Patch

				if args.Has("name") {
					v := args.String("name")
					patch.Name = &v
				}

				if args.Has("price") {
					v := args.Decimal("price")
					patch.Price = &v
				}

				if args.Has("description") {
					v := args.String("description")
					patch.Description = &v
				}

				if args.Has("is_active") {
					v := args.Bool("is_active")
					patch.IsActive = &v
				}

				return store.Update(args.Int("id"), patch), nil
			},
		},
		{
			Descriptor: internalmcp.Descriptor{
				Name:        "delete_product",
				Description: "Delete a product from the local store",
				Parameters:  []internalmcp.ParameterSpec{idParam},
				Annotations: &mcp.ToolAnnotations{DestructiveHint: &destructive},
			},
			Handler: func(_ context.Context, args internalmcp.Args) (any, error) {
				id := args.Int("id")

				return models.DeleteResult{ID: strconv.FormatInt(id, 10), Deleted: store.Delete(id)}, nil
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

func optionalText(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}
