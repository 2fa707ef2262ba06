// Package catalog provides tools that proxy the external product catalog
// service. The tools hold no state of their own. Searching and filtering
// happen client-side over the full product list.
package catalog

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/shopspring/decimal"

	catalogapi "github.com/wagiedev/toolkit-mcp-go/internal/catalog"
	internalmcp "github.com/wagiedev/toolkit-mcp-go/internal/mcp"
	"github.com/wagiedev/toolkit-mcp-go/internal/models"
)

// Service is the subset of the catalog client the tools use.
type Service interface {
	List(ctx context.Context) ([]models.ProductItem, error)
	Get(ctx context.Context, id int64) (*models.ProductItem, error)
	Create(ctx context.Context, in models.ProductInput) (models.ProductItem, error)
	Update(ctx context.Context, id int64, in models.ProductInput) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

var _ Service = (*catalogapi.Client)(nil)

// UpdateResult reports the outcome of a catalog update.
type UpdateResult struct {
	ID      int64 `json:"id"`
	Updated bool  `json:"updated"`
}

// Search returns products whose name or description contains term,
// case-insensitively. A blank term matches everything.
func Search(products []models.ProductItem, term string) []models.ProductItem {
	term = strings.ToLower(strings.TrimSpace(term))

	out := make([]models.ProductItem, 0, len(products))
	for _, p := range products {
		if term == "" || strings.Contains(strings.ToLower(p.Name), term) ||
			(p.Description != nil && strings.Contains(strings.ToLower(*p.Description), term)) {
			out = append(out, p)
		}
	}

	return out
}

// ByPrice returns products priced within [lo, hi].
func ByPrice(products []models.ProductItem, lo, hi decimal.Decimal) []models.ProductItem {
	out := make([]models.ProductItem, 0, len(products))
	for _, p := range products {
		if p.Price.GreaterThanOrEqual(lo) && p.Price.LessThanOrEqual(hi) {
			out = append(out, p)
		}
	}

	return out
}

// Active returns the products marked active.
func Active(products []models.ProductItem) []models.ProductItem {
	out := make([]models.ProductItem, 0, len(products))
	for _, p := range products {
		if p.IsActive {
			out = append(out, p)
		}
	}

	return out
}

// Register adds the catalog proxy tools backed by svc to reg.
func Register(reg *internalmcp.Registry, svc Service) error {
	openWorld := true
	destructive := true
	remoteRead := &mcp.ToolAnnotations{ReadOnlyHint: true, OpenWorldHint: &openWorld}
	remoteWrite := &mcp.ToolAnnotations{OpenWorldHint: &openWorld}
	idParam := internalmcp.Required("id", internalmcp.KindInteger, "Catalog product id")

	writeParams := func(withID bool) []internalmcp.ParameterSpec {
		params := []internalmcp.ParameterSpec{
			internalmcp.Required("name", internalmcp.KindString, "Product name"),
			internalmcp.Required("price", internalmcp.KindDecimal, "Unit price"),
			internalmcp.Optional("description", internalmcp.KindString, "", "Optional description"),
			internalmcp.Optional("is_active", internalmcp.KindBoolean, true, "Whether the product is for sale"),
		}
		if !withID {
			return params
		}

		return append([]internalmcp.ParameterSpec{idParam}, params...)
	}

	filtered := func(filter func([]models.ProductItem, internalmcp.Args) ([]models.ProductItem, error)) internalmcp.Handler {
		return func(ctx context.Context, args internalmcp.Args) (any, error) {
			all, err := svc.List(ctx)
			if err != nil {
				return nil, err
			}

			return filter(all, args)
		}
	}

	tools := []internalmcp.Tool{
		{
			Descriptor: internalmcp.Descriptor{
				Name:        "catalog_list_products",
				Description: "List all products in the external catalog",
				Annotations: remoteRead,
			},
			Handler: func(ctx context.Context, _ internalmcp.Args) (any, error) {
				return svc.List(ctx)
			},
		},
		{
			Descriptor: internalmcp.Descriptor{
				Name:        "catalog_get_product",
				Description: "Get a product from the external catalog by id",
				Parameters:  []internalmcp.ParameterSpec{idParam},
				Annotations: remoteRead,
			},
			Handler: func(ctx context.Context, args internalmcp.Args) (any, error) {
				return svc.Get(ctx, args.Int("id"))
			},
		},
		{
			Descriptor: internalmcp.Descriptor{
				Name:        "catalog_search_products",
				Description: "Search catalog products by name or description",
				Parameters: []internalmcp.ParameterSpec{
					internalmcp.Required("term", internalmcp.KindString, "Text to search for"),
				},
				Annotations: remoteRead,
			},
			Handler: filtered(func(all []models.ProductItem, args internalmcp.Args) ([]models.ProductItem, error) {
				return Search(all, args.String("term")), nil
			}),
		},
		{
			Descriptor: internalmcp.Descriptor{
				Name:        "catalog_products_by_price",
				Description: "List catalog products priced within an inclusive range",
				Parameters: []internalmcp.ParameterSpec{
					internalmcp.Required("min", internalmcp.KindDecimal, "Lowest price"),
					internalmcp.Required("max", internalmcp.KindDecimal, "Highest price"),
				},
				Annotations: remoteRead,
			},
			Handler: filtered(func(all []models.ProductItem, args internalmcp.Args) ([]models.ProductItem, error) {
				lo, hi := args.Decimal("min"), args.Decimal("max")
				if lo.GreaterThan(hi) {
					return nil, fmt.Errorf("min %s is greater than max %s", lo, hi)
				}

				return ByPrice(all, lo, hi), nil
			}),
		},
		{
			Descriptor: internalmcp.Descriptor{
				Name:        "catalog_active_products",
				Description: "List catalog products that are for sale",
				Annotations: remoteRead,
			},
			Handler: filtered(func(all []models.ProductItem, _ internalmcp.Args) ([]models.ProductItem, error) {
				return Active(all), nil
			}),
		},
		{
			Descriptor: internalmcp.Descriptor{
				Name:        "catalog_create_product",
				Description: "Create a product in the external catalog",
				Parameters:  writeParams(false),
				Annotations: remoteWrite,
			},
			Handler: func(ctx context.Context, args internalmcp.Args) (any, error) {
				return svc.Create(ctx, productInput(args))
			},
		},
		{
			Descriptor: internalmcp.Descriptor{
				Name:        "catalog_update_product",
				Description: "Replace a product in the external catalog",
				Parameters:  writeParams(true),
				Annotations: &mcp.ToolAnnotations{IdempotentHint: true, OpenWorldHint: &openWorld},
			},
			Handler: func(ctx context.Context, args internalmcp.Args) (any, error) {
				id := args.Int("id")

				ok, err := svc.Update(ctx, id, productInput(args))
				if err != nil {
					return nil, err
				}

				return UpdateResult{ID: id, Updated: ok}, nil
			},
		},
		{
			Descriptor: internalmcp.Descriptor{
				Name:        "catalog_delete_product",
				Description: "Delete a product from the external catalog",
				Parameters:  []internalmcp.ParameterSpec{idParam},
				Annotations: &mcp.ToolAnnotations{DestructiveHint: &destructive, OpenWorldHint: &openWorld},
			},
			Handler: func(ctx context.Context, args internalmcp.Args) (any, error) {
				id := args.Int("id")

				ok, err := svc.Delete(ctx, id)
				if err != nil {
					return nil, err
				}

				return models.DeleteResult{ID: strconv.FormatInt(id, 10), Deleted: ok}, nil
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

func productInput(args internalmcp.Args) models.ProductInput {
	in := models.ProductInput{
		Name:     args.String("name"),
		Price:    args.Decimal("price"),
		IsActive: args.Bool("is_active"),
	}

	if d := args.String("description"); d != "" {
		in.Description = &d
	}

	return in
}
