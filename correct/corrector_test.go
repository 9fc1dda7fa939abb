package correct

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	aimock "github.com/grayiron/foundrydocs/ai/mock"
)

func TestCorrectPatternOnly(t *testing.T) {
	llm := aimock.NewMockTextCorrector()
	c := NewCorrector(llm)

	got := c.Correct(context.Background(), "주혈에 용탕을 붓는다", false, nil)

	assert.Equal(t, "주형에 용탕을 붓는다", got)
	assert.Equal(t, 0, llm.CallCount(), "llm must not run when not requested")
}

func TestCorrectEmptyText(t *testing.T) {
	c := NewCorrector(aimock.NewMockTextCorrector())
	assert.Equal(t, "", c.Correct(context.Background(), "", true, nil))
}

func TestCorrectLLMApplied(t *testing.T) {
	llm := aimock.NewMockTextCorrector()
	llm.CorrectTextFunc = func(_ context.Context, text string) (string, error) {
		return strings.ReplaceAll(text, "오타", "정정"), nil
	}
	c := NewCorrector(llm)

	got := c.Correct(context.Background(), "문서에 오타 있음", true, nil)
	assert.Equal(t, "문서에 정정 있음", got)
}

func TestCorrectLLMBatchFallback(t *testing.T) {
	calls := 0
	llm := aimock.NewMockTextCorrector()
	llm.CorrectTextFunc = func(_ context.Context, text string) (string, error) {
		calls++
		if calls == 2 {
			return "", errors.New("model unavailable")
		}
		return "[ok] " + text, nil
	}
	c := NewCorrector(llm, WithBatchSize(40))

	text := "첫 번째 문장입니다. 두 번째 문장입니다. 세 번째 문장입니다. 네 번째 문장입니다."
	got := c.Correct(context.Background(), text, true, nil)

	assert.GreaterOrEqual(t, calls, 2)
	assert.Contains(t, got, "[ok] ")
	assert.Contains(t, got, "번째 문장입니다", "failed batch falls back to its input")
}

func TestCorrectLLMTotalFailureKeepsPatternText(t *testing.T) {
	llm := aimock.NewMockTextCorrector()
	llm.CorrectTextFunc = func(context.Context, string) (string, error) {
		return "", errors.New("connection refused")
	}
	c := NewCorrector(llm)

	got := c.Correct(context.Background(), "주혈 결함 분석", true, nil)

	// Pattern output survives an entirely failed LLM pass.
	assert.Equal(t, "주형 결함 분석", got)
}

func TestCorrectProgressPerBatch(t *testing.T) {
	llm := aimock.NewMockTextCorrector()
	c := NewCorrector(llm, WithBatchSize(30))

	var currents []int
	var total int
	progress := func(cur, tot int, message string) {
		currents = append(currents, cur)
		total = tot
		assert.NotEmpty(t, message)
	}

	text := strings.Repeat("용해 공정 점검. ", 10)
	c.Correct(context.Background(), text, true, progress)

	require.NotEmpty(t, currents)
	assert.Equal(t, len(currents), total)
	for i, cur := range currents {
		assert.Equal(t, i+1, cur)
	}
}

func TestSplitBatchesSentenceBoundaries(t *testing.T) {
	text := strings.Repeat("짧은 문장이다. ", 20)

	batches := splitBatches(text, 100)
	require.Greater(t, len(batches), 1)

	for _, b := range batches {
		assert.LessOrEqual(t, len(b), 100)
		assert.True(t, strings.HasSuffix(b, "."), "batch %q should end at a sentence", b)
	}

	joined := strings.Join(batches, " ")
	assert.Equal(t, strings.TrimSpace(text), joined)
}

func TestSplitBatchesHardCutKeepsValidUTF8(t *testing.T) {
	// No sentence delimiters or spaces anywhere, forcing hard cuts.
	text := strings.Repeat("가나다라마바사아자차", 50)

	batches := splitBatches(text, 97)
	require.Greater(t, len(batches), 1)

	var rebuilt strings.Builder
	for _, b := range batches {
		assert.True(t, utf8.ValidString(b), "batch must not split a rune")
		assert.LessOrEqual(t, len(b), 97)
		rebuilt.WriteString(b)
	}
	assert.Equal(t, text, rebuilt.String())
}

func TestSplitBatchesShortText(t *testing.T) {
	assert.Equal(t, []string{"짧은 텍스트"}, splitBatches("  짧은 텍스트  ", 3000))
	assert.Nil(t, splitBatches("   ", 3000))
}
