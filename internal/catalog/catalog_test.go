package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	internalerrors "github.com/wagiedev/toolkit-mcp-go/internal/errors"
	"github.com/wagiedev/toolkit-mcp-go/internal/models"
)

func newTestClient(t *testing.T) (*Client, *Service) {
	t.Helper()

	svc := NewService(nil)
	ts := httptest.NewServer(svc.Handler())
	t.Cleanup(ts.Close)

	c, err := NewClient(ts.URL + "/")
	require.NoError(t, err)

	return c, svc
}

func input(name, price string, active bool) models.ProductInput {
	return models.ProductInput{Name: name, Price: decimal.RequireFromString(price), IsActive: active}
}

func TestClient_CRUD(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestClient(t)

	list, err := c.List(ctx)
	require.NoError(t, err)
	require.Empty(t, list)

	desc := "A desk lamp"
	in := input("Lamp", "24.50", true)
	in.Description = &desc

	created, err := c.Create(ctx, in)
	require.NoError(t, err)
	require.Equal(t, int64(1), created.ID)
	require.Equal(t, "Lamp", created.Name)
	require.True(t, decimal.RequireFromString("24.5").Equal(created.Price))
	require.Equal(t, &desc, created.Description)

	got, err := c.Get(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "Lamp", got.Name)

	ok, err := c.Update(ctx, created.ID, input("Lamp XL", "30", false))
	require.NoError(t, err)
	require.True(t, ok)

	got, err = c.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "Lamp XL", got.Name)
	require.False(t, got.IsActive)

	ok, err = c.Delete(ctx, created.ID)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = c.Delete(ctx, created.ID)
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = c.Update(ctx, created.ID, input("x", "1", true))
	require.NoError(t, err)
	require.False(t, ok)
}

func TestClient_GetMissingIsAbsent(t *testing.T) {
	c, _ := newTestClient(t)

	got, err := c.Get(context.Background(), 404)
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestClient_ServerErrors(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "database offline", http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	c, err := NewClient(ts.URL)
	require.NoError(t, err)

	ctx := context.Background()

	_, err = c.List(ctx)

	var collab *internalerrors.CollaboratorError
	require.True(t, errors.As(err, &collab))
	require.Equal(t, http.StatusServiceUnavailable, collab.StatusCode)
	require.Contains(t, err.Error(), "database offline")

	got, err := c.Get(ctx, 1)
	require.NoError(t, err, "non-success on get means absent")
	require.Nil(t, got)

	_, err = c.Delete(ctx, 1)
	require.Error(t, err)
}

func TestClient_Unreachable(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	c, err := NewClient(url)
	require.NoError(t, err)

	_, err = c.List(context.Background())

	var collab *internalerrors.CollaboratorError
	require.True(t, errors.As(err, &collab))
	require.Equal(t, "list", collab.Op)
}

func TestClient_Timeout(t *testing.T) {
	release := make(chan struct{})

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer ts.Close()
	defer close(release)

	c, err := NewClient(ts.URL, WithTimeout(50*time.Millisecond))
	require.NoError(t, err)

	_, err = c.List(context.Background())
	require.Error(t, err)
}

func TestNewClient_InvalidURL(t *testing.T) {
	_, err := NewClient("ftp://example.com")
	require.Error(t, err)

	_, err = NewClient("://nope")
	require.Error(t, err)
}

func TestService_ListIsOrderedByID(t *testing.T) {
	c, svc := newTestClient(t)

	svc.Seed(input("a", "1", true), input("b", "2", false), input("c", "3", true))

	list, err := c.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 3)
	require.Equal(t, []int64{1, 2, 3}, []int64{list[0].ID, list[1].ID, list[2].ID})
}

func TestService_RejectsBadInput(t *testing.T) {
	svc := NewService(nil)
	h := svc.Handler()

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{name: "malformed body", method: http.MethodPost, path: "/products", body: "{", want: http.StatusBadRequest},
		{name: "missing name", method: http.MethodPost, path: "/products", body: `{"price": 1}`, want: http.StatusBadRequest},
		{name: "non-numeric id", method: http.MethodGet, path: "/products/abc", want: http.StatusNotFound},
		{name: "created", method: http.MethodPost, path: "/products", body: `{"name": "x", "price": 1.5}`, want: http.StatusCreated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			h.ServeHTTP(rec, req)
			require.Equal(t, tt.want, rec.Code)
		})
	}
}
