package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePriority(t *testing.T) {
	cases := map[string]int{
		"1":  PriorityLow,
		"2":  PriorityMedium,
		"3":  PriorityHigh,
		" 3": PriorityHigh,
		"":   DefaultPriority,
		"0":  DefaultPriority,
		"4":  DefaultPriority,
		"x":  DefaultPriority,
	}
	for raw, want := range cases {
		assert.Equal(t, want, NormalizePriority(raw), "raw=%q", raw)
	}
}

func TestNormalizeCategory(t *testing.T) {
	assert.Equal(t, CategoryWork, NormalizeCategory("work"))
	assert.Equal(t, CategoryShopping, NormalizeCategory(" Shopping "))
	assert.Equal(t, DefaultCategory, NormalizeCategory(""))
	assert.Equal(t, DefaultCategory, NormalizeCategory("errands"))
}

func TestNormalizeColor(t *testing.T) {
	assert.Equal(t, "#3b82f6", NormalizeColor("#3B82F6"))
	assert.Equal(t, Palette[0], NormalizeColor(""))
	assert.Equal(t, Palette[0], NormalizeColor("#123456"))
}

func TestParseDueDate(t *testing.T) {
	assert.Nil(t, ParseDueDate(""))
	assert.Nil(t, ParseDueDate("next tuesday"))

	got := ParseDueDate("2026-09-15")
	if assert.NotNil(t, got) {
		assert.Equal(t, time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC), *got)
	}

	got = ParseDueDate("2026-09-15T08:30:00Z")
	if assert.NotNil(t, got) {
		assert.Equal(t, 8, got.Hour())
	}
}

func TestFormatDueDate(t *testing.T) {
	assert.Equal(t, "", FormatDueDate(nil))

	d := time.Date(2026, 9, 15, 8, 30, 0, 0, time.UTC)
	assert.Equal(t, "2026-09-15", FormatDueDate(&d))
}
