package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCategory(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Category
	}{
		{name: "filipino food term", raw: "pagkain", want: CategoryFood},
		{name: "shorthand transpo", raw: "transpo", want: CategoryTransportation},
		{name: "filipino utility term", raw: "kuryente", want: CategoryUtilities},
		{name: "case and whitespace insensitive", raw: "  FOOD  ", want: CategoryFood},
		{name: "unmapped falls to others", raw: "vacation", want: CategoryOthers},
		{name: "empty falls to others", raw: "", want: CategoryOthers},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeCategory(tt.raw))
		})
	}
}

func TestNormalizeCategoryIdempotent(t *testing.T) {
	for _, cat := range AllCategories {
		assert.Equal(t, cat, NormalizeCategory(string(cat)))
	}
}

func TestCategoryValid(t *testing.T) {
	assert.True(t, CategoryFood.Valid())
	assert.True(t, CategoryOthers.Valid())
	assert.False(t, Category("snacks").Valid())
}
