package nlp

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "lowercase and trim", in: "  Spent ₱100  ", want: "spent ₱100"},
		{name: "peso word collapses to marker", in: "I spent 100 pesos", want: "i spent 100 ₱"},
		{name: "php collapses to marker", in: "php 250 for load", want: "₱ 250 for load"},
		{name: "piso collapses to marker", in: "500 piso lang", want: "500 ₱ lang"},
		{name: "contraction expansion", in: "I'm broke, what's left?", want: "i am broke, what is left"},
		{name: "disallowed chars stripped", in: "spent $100 @ mall!!!", want: "spent 100 mall"},
		{name: "whitespace collapsed", in: "spent\t₱50\n\non   food", want: "spent ₱50 on food"},
		{name: "empty input", in: "", want: ""},
		{name: "only punctuation", in: "?!?!", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalizeTruncatesLongInput(t *testing.T) {
	in := strings.Repeat("a", MaxInputLength+500)
	out := Normalize(in)
	assert.Len(t, []rune(out), MaxInputLength)
}

func TestHasBilingualCue(t *testing.T) {
	assert.True(t, hasBilingualCue("gastos ko kahapon"))
	assert.True(t, hasBilingualCue("magkano natitira"))
	assert.False(t, hasBilingualCue("spent on lunch"))
}
