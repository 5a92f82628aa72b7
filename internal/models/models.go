package models

import (
	"strconv"
	"strings"
	"time"
)

// Task priority levels
const (
	PriorityLow    = 1
	PriorityMedium = 2
	PriorityHigh   = 3
)

// DefaultPriority is used when priority input is absent or unparseable
const DefaultPriority = PriorityMedium

// Task categories
const (
	CategoryWork     = "work"
	CategoryPersonal = "personal"
	CategoryShopping = "shopping"
	CategoryHealth   = "health"
)

// DefaultCategory is used when category input is absent or outside the set
const DefaultCategory = CategoryPersonal

// Categories is the closed category set in display order
var Categories = []string{CategoryWork, CategoryPersonal, CategoryShopping, CategoryHealth}

// Palette is the closed set of project colors
var Palette = []string{
	"#8b5cf6", // violet
	"#3b82f6", // blue
	"#10b981", // emerald
	"#f59e0b", // amber
	"#ef4444", // red
	"#ec4899", // pink
}

// Project represents a group of related tasks
type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Color       string    `json:"color"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Task represents a single task. ProjectID is a weak reference: it is
// never validated against the project collection and is left untouched
// when the referenced project is deleted.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Completed   bool       `json:"completed"`
	CreatedAt   time.Time  `json:"createdAt"`
	DueDate     *time.Time `json:"dueDate"`
	ProjectID   string     `json:"projectId"`
	Priority    int        `json:"priority"`
	Category    string     `json:"category"`
}

// Stats holds aggregate task counts
type Stats struct {
	Total     int
	Completed int
	Pending   int
}

// NormalizePriority parses raw priority input, coercing anything
// outside {1,2,3} to the default
func NormalizePriority(raw string) int {
	p, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || p < PriorityLow || p > PriorityHigh {
		return DefaultPriority
	}
	return p
}

// NormalizeCategory coerces input outside the closed set to the default
func NormalizeCategory(raw string) string {
	c := strings.ToLower(strings.TrimSpace(raw))
	for _, known := range Categories {
		if c == known {
			return c
		}
	}
	return DefaultCategory
}

// NormalizeColor coerces input outside the palette to the first entry
func NormalizeColor(raw string) string {
	c := strings.ToLower(strings.TrimSpace(raw))
	for _, known := range Palette {
		if c == known {
			return c
		}
	}
	return Palette[0]
}

// ParseDueDate converts raw due date input to a timestamp. Accepts
// RFC 3339 or a bare YYYY-MM-DD date; empty or invalid input means no
// due date.
func ParseDueDate(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return &t
	}
	return nil
}

// FormatDueDate renders a due date for form editing, empty when unset
func FormatDueDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

// PriorityLabel returns the display name for a priority level
func PriorityLabel(p int) string {
	switch p {
	case PriorityLow:
		return "Low"
	case PriorityHigh:
		return "High"
	default:
		return "Medium"
	}
}
