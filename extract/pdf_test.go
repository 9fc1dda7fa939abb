package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTextFromContentStream(t *testing.T) {
	tests := []struct {
		name   string
		stream string
		want   string
	}{
		{
			name:   "SimpleTj",
			stream: "BT\n/F1 12 Tf\n(Hello) Tj\nET",
			want:   "Hello",
		},
		{
			name:   "ArrayTJ",
			stream: "[(Fo) -12 (undry)] TJ",
			want:   "Foundry",
		},
		{
			name:   "PositioningAddsSpace",
			stream: "(molten) Tj\n100 0 Td\n(metal) Tj",
			want:   "molten metal",
		},
		{
			name:   "NextLineOperator",
			stream: "(line one) Tj\nT*\n(line two) Tj",
			want:   "line one line two",
		},
		{
			name:   "QuoteOperator",
			stream: "(first) Tj\n(second) '",
			want:   "first second",
		},
		{
			name:   "NoTextOperators",
			stream: "q\n1 0 0 1 50 50 cm\n/Im1 Do\nQ",
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, textFromContentStream([]byte(tt.stream)))
		})
	}
}

func TestTextFromContentStreamKerning(t *testing.T) {
	// Kerning numbers between TJ strings are dropped and the fragments
	// join, so words split for spacing adjustments come out whole.
	got := textFromContentStream([]byte("[(cast) -100 (ing)] TJ"))
	assert.Equal(t, "casting", got)
}

func TestDecodeLiteralString(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{raw: "plain", want: "plain"},
		{raw: `escaped \( paren \)`, want: "escaped ( paren )"},
		{raw: `back\\slash`, want: `back\slash`},
		{raw: `tab\there`, want: "tab\there"},
		{raw: `\101\102\103`, want: "ABC"},
		{raw: `\040`, want: " "},
		{raw: `\7`, want: "\x07"},
		{raw: `\q`, want: "q"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, decodeLiteralString([]byte(tt.raw)), "raw %q", tt.raw)
	}
}

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "  hello   world  ", want: "hello world"},
		{in: "tabs\t\tand\nnewlines", want: "tabs and newlines"},
		{in: "용탕\x00온도", want: "용탕온도"},
		{in: "", want: ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizeText(tt.in), "in %q", tt.in)
	}
}
