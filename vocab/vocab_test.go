package vocab

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCorrector_DigitLetterConfusions(t *testing.T) {
	c := NewCorrector()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"O between digits", "온도 15O0도", "온도 1500도"},
		{"I between digits", "4I2", "412"},
		{"l between digits", "3l5", "315"},
		{"overlapping confusions", "1O2O3", "10203"},
		{"O between hangul", "주형O번", "주형0번"},
		{"standalone O untouched", "O-ring seal", "O-ring seal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Correct(tt.in))
		})
	}
}

func TestCorrector_Typos(t *testing.T) {
	c := NewCorrector()

	tests := []struct {
		in   string
		want string
	}{
		{"주혈 온도를 확인한다", "주형 온도를 확인한다"},
		{"래이저 설계", "라이저 설계"},
		{"큐폴라 용해로", "쿠폴라 용해로"},
		{"코어박수 제작", "코어박스 제작"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, c.Correct(tt.in))
	}
}

func TestCorrector_Standardization(t *testing.T) {
	c := NewCorrector()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"english variant", "the sprue must be cleaned", "the 탕구 must be cleaned"},
		{"case-insensitive english", "Riser placement", "라이저 placement"},
		{"hanja variant", "鑄型 온도", "주형 온도"},
		{"longer variant wins", "core box inspection", "코어박스 inspection"},
		{"word boundary respected", "score keeping", "score keeping"},
		{"korean slang variant", "쇳물 주입", "용탕 주입"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Correct(tt.in))
		})
	}
}

func TestCorrector_EmptyAndWhitespace(t *testing.T) {
	c := NewCorrector()

	assert.Equal(t, "", c.Correct(""))
	assert.Equal(t, "주형", c.Correct("  주형  "))
}

func TestCorrector_Idempotent(t *testing.T) {
	c := NewCorrector()

	in := "래이저 설계와 15OO도 용해, sprue 점검"
	once := c.Correct(in)
	twice := c.Correct(once)
	assert.Equal(t, once, twice)
}

func TestSuggest(t *testing.T) {
	c := NewCorrector()

	suggestions := c.Suggest("탕구 막힘 문제", 10)
	assert.Contains(t, suggestions, "탕구")

	suggestions = c.Suggest("riser 설계", 10)
	assert.Contains(t, suggestions, "라이저")

	assert.Empty(t, c.Suggest("완전히 무관한 내용", 10))

	suggestions = c.Suggest("주형 사형 금형 탕구", 2)
	assert.Len(t, suggestions, 2)
}
