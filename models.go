package toolkit

import "github.com/wagiedev/toolkit-mcp-go/internal/models"

// Re-export model types from internal/models.

// WeatherInfo is a single weather snapshot for a location and date.
type WeatherInfo = models.WeatherInfo

// CalculationResult is the outcome of an arithmetic tool.
type CalculationResult = models.CalculationResult

// TodoItem is a single todo entry.
type TodoItem = models.TodoItem

// TodoStats summarizes the todo list.
type TodoStats = models.TodoStats

// Priority ranks a todo item.
type Priority = models.Priority

// Todo priority constants.
const (
	PriorityLow    = models.PriorityLow
	PriorityMedium = models.PriorityMedium
	PriorityHigh   = models.PriorityHigh
)

// ProductItem is a product from the in-memory store or the catalog.
type ProductItem = models.ProductItem

// ProductInput holds the writable fields of a product.
type ProductInput = models.ProductInput

// TextStats holds the counts reported by analyze_text.
type TextStats = models.TextStats

// DeleteResult reports the outcome of a delete tool.
type DeleteResult = models.DeleteResult

// ClearResult reports how many completed todos were removed.
type ClearResult = models.ClearResult

// ParsePriority parses a priority name case-insensitively.
func ParsePriority(s string) (Priority, bool) {
	return models.ParsePriority(s)
}
