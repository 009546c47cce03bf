package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractAmount(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		want  float64
		found bool
	}{
		{name: "k shorthand", text: "spent 2.5k today", want: 2500, found: true},
		{name: "m shorthand", text: "won 1.2m", want: 1200000, found: true},
		{name: "thousand word", text: "budget is 3 thousand", want: 3000, found: true},
		{name: "libo word", text: "nagastos 5 libo", want: 5000, found: true},
		{name: "currency prefix", text: "spent ₱150 on lunch", want: 150, found: true},
		{name: "currency prefix with commas", text: "set budget to ₱15,000", want: 15000, found: true},
		{name: "currency suffix", text: "spent 250 ₱ at the mall", want: 250, found: true},
		{name: "worth of phrasing", text: "bought worth of 500 load", want: 500, found: true},
		{name: "bare decimal", text: "paid 99.50 for parking", want: 99.50, found: true},
		{name: "decimal with commas", text: "transferred ₱1,234.56", want: 1234.56, found: true},
		{name: "shorthand beats bare number", text: "around 2k not 2", want: 2000, found: true},
		{name: "number word", text: "spent twenty on candy", want: 20, found: true},
		{name: "additive number words", text: "two hundred", want: 102, found: true},
		{name: "no amount", text: "i spent money", found: false},
		{name: "empty", text: "", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := extractAmount(tt.text)
			assert.Equal(t, tt.found, ok)
			if tt.found {
				assert.InDelta(t, tt.want, got, 0.001)
			}
		})
	}
}
