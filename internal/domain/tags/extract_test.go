package tags

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "empty text",
			text: "",
			want: nil,
		},
		{
			name: "only stop words",
			text: "the and was were been",
			want: nil,
		},
		{
			name: "only short tokens",
			text: "it is ok to go",
			want: nil,
		},
		{
			// Repeats do not bump a token ahead: output is
			// first-insertion order, not frequency order.
			name: "insertion order beats frequency",
			text: "The camera is the best camera",
			want: []string{"camera", "best"},
		},
		{
			name: "punctuation stripped and case folded",
			text: "Great battery!!! Absolutely GREAT value, no complaints.",
			want: []string{"great", "battery", "absolutely", "value", "complaints"},
		},
		{
			name: "accented words survive",
			text: "Qualité exceptionnelle, très élégant",
			want: []string{"qualité", "exceptionnelle", "très", "élégant"},
		},
		{
			name: "hard truncation at five distinct tokens",
			text: "sturdy lightweight waterproof compact stylish durable cheap",
			want: []string{"sturdy", "lightweight", "waterproof", "compact", "stylish"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Extract(tt.text))
		})
	}
}

func TestExtractLengthInvariant(t *testing.T) {
	inputs := []string{
		"",
		"one two three four five six seven eight nine ten",
		strings.Repeat("lots of distinct words alpha beta gamma delta epsilon zeta ", 20),
		"short ok it a an",
	}
	for _, in := range inputs {
		assert.LessOrEqual(t, len(Extract(in)), MaxPerReview)
	}
}

func TestExtractDeterministic(t *testing.T) {
	text := "Fast shipping, fast setup, excellent screen and excellent sound"
	assert.Equal(t, Extract(text), Extract(text))
}
