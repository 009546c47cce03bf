package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/montlabs/mont-core/internal/model"
)

func TestExtractCategory(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		want  model.Category
		found bool
	}{
		{name: "gaming beats generic patterns", text: "bought ml diamonds", want: model.CategoryEntertainment, found: true},
		{name: "food pattern english", text: "spent ₱150 on lunch", want: model.CategoryFood, found: true},
		{name: "food pattern filipino", text: "gastos sa pagkain", want: model.CategoryFood, found: true},
		{name: "transport pattern", text: "pamasahe papuntang trabaho", want: model.CategoryTransportation, found: true},
		{name: "utilities pattern", text: "bayad sa kuryente", want: model.CategoryUtilities, found: true},
		{name: "merchant implies category", text: "kain sa jollibee", want: model.CategoryFood, found: true},
		{name: "transport merchant", text: "booked a grab", want: model.CategoryTransportation, found: true},
		{name: "preposition synonym", text: "₱200 for transpo", want: model.CategoryTransportation, found: true},
		{name: "no category", text: "spent ₱500", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := extractCategory(tt.text)
			assert.Equal(t, tt.found, ok)
			if tt.found {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestFindMerchantWordBoundaries(t *testing.T) {
	assert.Equal(t, "grab", findMerchant("took a grab home"))
	assert.Empty(t, findMerchant("grabbed some food"), "substring must not match a brand")
	assert.Equal(t, "mang inasal", findMerchant("dinner at mang inasal"))
}

func TestExtractMerchantPhraseFallback(t *testing.T) {
	assert.Equal(t, "jollibee", extractMerchant("kain sa jollibee"))
	assert.Equal(t, "aling nena", extractMerchant("bought ulam sa aling nena"))
	assert.Empty(t, extractMerchant("spent ₱100 today"))
}
