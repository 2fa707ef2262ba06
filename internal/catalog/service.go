package catalog

import (
	"cmp"
	"encoding/json"
	"log/slog"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/gorilla/mux"

	"github.com/wagiedev/toolkit-mcp-go/internal/models"
)

// Service is an in-memory implementation of the catalog REST API.
type Service struct {
	mu       sync.Mutex
	products map[int64]models.ProductItem
	nextID   int64
	log      *slog.Logger
}

// NewService creates an empty catalog service. log may be nil.
func NewService(log *slog.Logger) *Service {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	return &Service{
		products: make(map[int64]models.ProductItem),
		log:      log.With("component", "catalog_service"),
	}
}

// Seed stores products as if created through the API, in order.
func (s *Service) Seed(items ...models.ProductInput) []models.ProductItem {
	out := make([]models.ProductItem, 0, len(items))
	for _, in := range items {
		out = append(out, s.create(in))
	}

	return out
}

// Handler returns the HTTP routes of the service.
func (s *Service) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/products", s.handleList).Methods(http.MethodGet)
	r.HandleFunc("/products", s.handleCreate).Methods(http.MethodPost)
	r.HandleFunc("/products/{id:[0-9]+}", s.handleGet).Methods(http.MethodGet)
	r.HandleFunc("/products/{id:[0-9]+}", s.handleUpdate).Methods(http.MethodPut)
	r.HandleFunc("/products/{id:[0-9]+}", s.handleDelete).Methods(http.MethodDelete)
	r.Use(s.logRequests)

	return r
}

func (s *Service) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.log.Debug("request", "method", r.Method, "path", r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

func (s *Service) handleList(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	list := make([]models.ProductItem, 0, len(s.products))
	for _, p := range s.products {
		list = append(list, p)
	}
	s.mu.Unlock()

	slices.SortFunc(list, func(a, b models.ProductItem) int {
		return cmp.Compare(a.ID, b.ID)
	})

	writeJSON(w, http.StatusOK, list)
}

func (s *Service) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	p, found := s.products[id]
	s.mu.Unlock()

	if !found {
		http.Error(w, "product not found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, p)
}

func (s *Service) handleCreate(w http.ResponseWriter, r *http.Request) {
	in, ok := decodeInput(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusCreated, s.create(in))
}

func (s *Service) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	in, ok := decodeInput(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, found := s.products[id]; !found {
		http.Error(w, "product not found", http.StatusNotFound)
		return
	}

	s.products[id] = models.ProductItem{
		ID:          id,
		Name:        in.Name,
		Price:       in.Price,
		Description: in.Description,
		IsActive:    in.IsActive,
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Service) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, found := s.products[id]; !found {
		http.Error(w, "product not found", http.StatusNotFound)
		return
	}

	delete(s.products, id)

	w.WriteHeader(http.StatusNoContent)
}

func (s *Service) create(in models.ProductInput) models.ProductItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++

	p := models.ProductItem{
		ID:          s.nextID,
		Name:        in.Name,
		Price:       in.Price,
		Description: in.Description,
		IsActive:    in.IsActive,
	}
	s.products[p.ID] = p

	return p
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return 0, false
	}

	return id, true
}

func decodeInput(w http.ResponseWriter, r *http.Request) (models.ProductInput, bool) {
	var in models.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return in, false
	}

	if strings.TrimSpace(in.Name) == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return in, false
	}

	return in, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
