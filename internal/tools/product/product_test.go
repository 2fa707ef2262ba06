package product

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	internalmcp "github.com/wagiedev/toolkit-mcp-go/internal/mcp"
	"github.com/wagiedev/toolkit-mcp-go/internal/models"
)

func mustCreate(t *testing.T, s *Store, name, price string) models.ProductItem {
	t.Helper()

	return s.Create(models.ProductInput{Name: name, Price: decimal.RequireFromString(price), IsActive: true})
}

func TestStore_IDsAreMonotonic(t *testing.T) {
	s := New()

	a := mustCreate(t, s, "a", "1")
	b := mustCreate(t, s, "b", "2")
	require.True(t, s.Delete(b.ID))

	c := mustCreate(t, s, "c", "3")

	require.Equal(t, int64(1), a.ID)
	require.Greater(t, c.ID, b.ID, "ids are not reused after deletion")
	require.Nil(t, s.Get(b.ID))
	require.False(t, s.Delete(b.ID))
}

func TestStore_List(t *testing.T) {
	s := New()

	require.Empty(t, s.List())

	mustCreate(t, s, "a", "1")
	mustCreate(t, s, "b", "2")
	mustCreate(t, s, "c", "3")

	list := s.List()
	require.Len(t, list, 3)
	require.Equal(t, "c", list[0].Name)
	require.Equal(t, "a", list[2].Name)
}

func TestStore_Create(t *testing.T) {
	s := New()

	item := s.Create(models.ProductInput{Name: " Lamp ", Price: decimal.NewFromInt(-1)})
	require.Equal(t, "Lamp", item.Name)
	require.True(t, decimal.NewFromInt(-1).Equal(item.Price), "negative prices are stored as given")

	blank := s.Create(models.ProductInput{Name: "", Price: decimal.Zero})
	require.Equal(t, int64(2), blank.ID)
	require.Empty(t, blank.Name)
}

func TestStore_Update(t *testing.T) {
	s := New()
	item := mustCreate(t, s, "Widget", "9.99")

	blank := ""
	price := decimal.RequireFromString("12.50")
	inactive := false

	got := s.Update(item.ID, Patch{Name: &blank, Price: &price, IsActive: &inactive})
	require.NotNil(t, got)
	require.Equal(t, "Widget", got.Name, "blank name is kept")
	require.True(t, price.Equal(got.Price))
	require.False(t, got.IsActive)

	stored := s.Get(item.ID)
	require.True(t, price.Equal(stored.Price))

	require.Nil(t, s.Update(999, Patch{}))

	negative := decimal.NewFromInt(-5)
	got = s.Update(item.ID, Patch{Price: &negative})
	require.NotNil(t, got)
	require.True(t, negative.Equal(got.Price))
}

func TestStore_Concurrent(t *testing.T) {
	s := New()

	var wg sync.WaitGroup

	ids := make(chan int64, 50)

	for range 50 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			ids <- s.Create(models.ProductInput{Name: "x", Price: decimal.NewFromInt(1)}).ID
		}()
	}

	wg.Wait()
	close(ids)

	seen := make(map[int64]bool)
	for id := range ids {
		require.False(t, seen[id])

		seen[id] = true
	}

	require.Len(t, seen, 50)
	require.Len(t, s.List(), 50)
}

func TestRegister(t *testing.T) {
	reg := internalmcp.NewRegistry()
	require.NoError(t, Register(reg, New()))

	d := internalmcp.NewDispatcher(reg)
	ctx := context.Background()

	env := d.Call(ctx, "create_product", map[string]any{"name": "Lamp", "price": "19.99"})
	require.False(t, env.IsError, env.String())

	var item models.ProductItem
	require.NoError(t, env.Decode(&item))
	require.Equal(t, int64(1), item.ID)
	require.True(t, item.IsActive)
	require.Nil(t, item.Description)
	require.True(t, decimal.RequireFromString("19.99").Equal(item.Price))

	t.Run("update only touches supplied fields", func(t *testing.T) {
		env := d.Call(ctx, "update_product", map[string]any{"id": 1, "is_active": false})

		var got models.ProductItem
		require.NoError(t, env.Decode(&got))
		require.False(t, got.IsActive)
		require.True(t, decimal.RequireFromString("19.99").Equal(got.Price))
	})

	t.Run("negative price is accepted", func(t *testing.T) {
		env := d.Call(ctx, "create_product", map[string]any{"name": "x", "price": -5})
		require.False(t, env.IsError, env.String())

		var got models.ProductItem
		require.NoError(t, env.Decode(&got))
		require.True(t, decimal.NewFromInt(-5).Equal(got.Price))
	})

	t.Run("get missing is empty", func(t *testing.T) {
		require.True(t, d.Call(ctx, "get_product", map[string]any{"id": 42}).IsEmpty())
	})

	t.Run("delete", func(t *testing.T) {
		var res models.DeleteResult
		require.NoError(t, d.Call(ctx, "delete_product", map[string]any{"id": "1"}).Decode(&res))
		require.True(t, res.Deleted)
		require.Equal(t, "1", res.ID)
	})
}
