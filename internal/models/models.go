// Package models defines the value and entity records shared by the tool
// handlers and the client: weather snapshots, calculation outcomes, todo
// items, and product items.
//
// Records are plain data. Identity and lifecycle are owned by the handler
// family that creates them; nothing in this package holds state.
package models

import (
	"encoding/json"
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// WeatherInfo is a single weather snapshot for a location and date.
type WeatherInfo struct {
	Location    string    `json:"location"`
	Temperature float64   `json:"temperature"`
	Unit        string    `json:"unit"`
	Condition   string    `json:"condition"`
	Humidity    int       `json:"humidity"`
	WindSpeed   float64   `json:"windSpeed"`
	Date        time.Time `json:"date"`
}

// CalculationResult is the outcome of an arithmetic tool.
//
// Domain errors such as division by zero are reported as data: Result is
// NaN and Label carries a human-readable error tag.
type CalculationResult struct {
	Operation string  `json:"operation"`
	Result    float64 `json:"result"`
	Label     string  `json:"label"`
}

// IsError reports whether the calculation produced a not-a-number result.
func (r CalculationResult) IsError() bool {
	return math.IsNaN(r.Result)
}

// MarshalJSON encodes NaN and infinities as null, which encoding/json
// cannot represent natively.
func (r CalculationResult) MarshalJSON() ([]byte, error) {
	type wire struct {
		Operation string   `json:"operation"`
		Result    *float64 `json:"result"`
		Label     string   `json:"label"`
	}

	w := wire{Operation: r.Operation, Label: r.Label}
	if !math.IsNaN(r.Result) && !math.IsInf(r.Result, 0) {
		w.Result = &r.Result
	}

	return json.Marshal(w)
}

// UnmarshalJSON decodes a null result back into NaN.
func (r *CalculationResult) UnmarshalJSON(data []byte) error {
	var w struct {
		Operation string   `json:"operation"`
		Result    *float64 `json:"result"`
		Label     string   `json:"label"`
	}

	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	r.Operation = w.Operation
	r.Label = w.Label
	r.Result = math.NaN()

	if w.Result != nil {
		r.Result = *w.Result
	}

	return nil
}

// TodoItem is a task owned by the todo handler's in-process collection.
type TodoItem struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	IsCompleted bool       `json:"isCompleted"`
	CreatedAt   time.Time  `json:"createdAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	Priority    Priority   `json:"priority"`
}

// PriorityBreakdown counts items per priority.
type PriorityBreakdown struct {
	Low    int `json:"low"`
	Medium int `json:"medium"`
	High   int `json:"high"`
}

// TodoStats summarises the todo collection.
type TodoStats struct {
	Total             int               `json:"total"`
	Completed         int               `json:"completed"`
	Pending           int               `json:"pending"`
	PendingByPriority PriorityBreakdown `json:"pendingByPriority"`
}

// ProductItem is a product record. The in-memory product store and the
// external catalog service both use this shape, but their id spaces are
// disjoint.
type ProductItem struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description *string         `json:"description,omitempty"`
	IsActive    bool            `json:"isActive"`
}

// ProductInput is the writable subset of ProductItem, used as the request
// body for catalog creates and updates.
type ProductInput struct {
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description *string         `json:"description,omitempty"`
	IsActive    bool            `json:"isActive"`
}

// MarshalJSON encodes Price as a JSON number rather than decimal's default
// quoted string.
func (p ProductItem) MarshalJSON() ([]byte, error) {
	type plain ProductItem

	return json.Marshal(struct {
		plain
		Price json.Number `json:"price"`
	}{plain: plain(p), Price: json.Number(p.Price.String())})
}

// MarshalJSON encodes Price as a JSON number.
func (p ProductInput) MarshalJSON() ([]byte, error) {
	type plain ProductInput

	return json.Marshal(struct {
		plain
		Price json.Number `json:"price"`
	}{plain: plain(p), Price: json.Number(p.Price.String())})
}

// Input returns the writable fields of p.
func (p ProductItem) Input() ProductInput {
	return ProductInput{
		Name:        p.Name,
		Price:       p.Price,
		Description: p.Description,
		IsActive:    p.IsActive,
	}
}

// TextStats holds the counts produced by the text analysis tool.
type TextStats struct {
	Words              int `json:"words"`
	Characters         int `json:"characters"`
	CharactersNoSpaces int `json:"charactersNoSpaces"`
	Lines              int `json:"lines"`
	Sentences          int `json:"sentences"`
	Paragraphs         int `json:"paragraphs"`
}

// DeleteResult reports whether a delete found its target.
type DeleteResult struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

// ClearResult reports how many items a bulk removal deleted.
type ClearResult struct {
	Removed int `json:"removed"`
}
