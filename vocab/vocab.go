// Package vocab corrects and standardizes foundry terminology in extracted
// text. OCR output of casting documents routinely confuses digits with
// look-alike letters and mangles technical terms; this package fixes the
// known cases with deterministic replacements before any LLM correction runs.
package vocab

import (
	"regexp"
	"slices"
	"strings"
)

// Corrector applies terminology standardization and common OCR error fixes.
// A Corrector is immutable after construction and safe for concurrent use.
type Corrector struct {
	confusions []confusionRule
	typos      []typoRule
	standard   map[string]string
	variants   []string // variant terms sorted longest-first for replacement
}

type confusionRule struct {
	re          *regexp.Regexp
	replacement string
}

type typoRule struct {
	from string
	to   string
}

// Standard foundry vocabulary: each canonical term with the variants that
// appear in scanned documents (hanja forms, English terms, shop slang).
var foundryTerms = map[string][]string{
	// molds
	"주형": {"鑄型", "mold", "틀"},
	"사형": {"砂型", "sand mold", "모래형"},
	"금형": {"金型", "metal mold", "다이"},

	// gating system
	"탕구":  {"湯口", "sprue"},
	"러너":  {"runner", "유로"},
	"게이트": {"gate"},
	"라이저": {"riser", "압탕", "피더", "feeder"},

	// cores
	"코어":   {"core", "중자"},
	"코어박스": {"core box", "중자함"},

	// patterns
	"패턴":   {"pattern", "모형"},
	"플라스크": {"flask", "주형틀"},

	// melting
	"쿠폴라": {"cupola"},
	"용해":  {"熔解", "melting", "녹이기"},
	"용탕":  {"熔湯", "molten metal", "쇳물"},

	// solidification
	"응고": {"凝固", "solidification", "굳기"},
	"수축": {"收縮", "shrinkage", "줄어들기"},

	// defects
	"결함": {"缺陷", "defect", "불량"},
	"기포": {"氣泡", "porosity", "구멍"},
	"균열": {"龜裂", "crack", "갈라짐"},
	"냉금": {"冷金", "cold shut", "미용착"},
}

// Frequent OCR misreads of specific terms. Applied as literal replacements.
var commonTypos = []typoRule{
	{"주혈", "주형"},
	{"주형사", "주형"},
	{"수형", "주형"},
	{"탕도", "탕구"},
	{"톤구", "탕구"},
	{"탕꾸", "탕구"},
	{"래이저", "라이저"},
	{"라이져", "라이저"},
	{"리이저", "라이저"},
	{"코어박수", "코어박스"},
	{"쿠플라", "쿠폴라"},
	{"큐폴라", "쿠폴라"},
	{"수촉", "수축"},
	{"수척", "수축"},
}

// Digit/letter confusions. Go's regexp has no lookaround, so each rule
// captures its context and restores it in the replacement; rules are applied
// twice per pass to catch overlapping matches like "1O2O".
var confusionPatterns = []struct {
	pattern     string
	replacement string
}{
	{`([가-힣])O([가-힣])`, "${1}0${2}"},
	{`([가-힣])I([가-힣])`, "${1}1${2}"},
	{`([가-힣])l([가-힣])`, "${1}1${2}"},
	{`([0-9])O([0-9])`, "${1}0${2}"},
	{`([0-9])I([0-9])`, "${1}1${2}"},
	{`([0-9])l([0-9])`, "${1}1${2}"},
}

// NewCorrector builds a Corrector with the built-in foundry vocabulary.
func NewCorrector() *Corrector {
	c := &Corrector{
		typos:    commonTypos,
		standard: make(map[string]string),
	}

	for _, cp := range confusionPatterns {
		c.confusions = append(c.confusions, confusionRule{
			re:          regexp.MustCompile(cp.pattern),
			replacement: cp.replacement,
		})
	}

	for standard, variations := range foundryTerms {
		for _, variation := range variations {
			if variation == standard {
				continue
			}
			c.standard[strings.ToLower(variation)] = standard
			c.variants = append(c.variants, variation)
		}
	}
	// Longer variants first so "core box" wins over "core".
	slices.SortFunc(c.variants, func(a, b string) int {
		return len(b) - len(a)
	})

	return c
}

// Correct fixes digit/letter confusions, known typos, and non-standard term
// variants in the given text. Empty input is returned unchanged.
func (c *Corrector) Correct(text string) string {
	if text == "" {
		return text
	}

	for _, rule := range c.confusions {
		text = rule.re.ReplaceAllString(text, rule.replacement)
		text = rule.re.ReplaceAllString(text, rule.replacement)
	}

	for _, typo := range c.typos {
		text = strings.ReplaceAll(text, typo.from, typo.to)
	}

	text = c.standardize(text)

	return strings.TrimSpace(text)
}

// standardize replaces variant terms with their canonical form at word
// boundaries. ASCII variants match case-insensitively.
func (c *Corrector) standardize(text string) string {
	for _, variant := range c.variants {
		standard := c.standard[strings.ToLower(variant)]
		re, err := variantPattern(variant)
		if err != nil {
			continue
		}
		text = re.ReplaceAllString(text, standard)
	}
	return text
}

func variantPattern(variant string) (*regexp.Regexp, error) {
	quoted := regexp.QuoteMeta(variant)
	if isASCII(variant) {
		// \b works only for ASCII word characters
		return regexp.Compile(`(?i)\b` + quoted + `\b`)
	}
	return regexp.Compile(quoted)
}

func isASCII(s string) bool {
	for _, r := range s {
		if r > 127 {
			return false
		}
	}
	return true
}

// Suggest returns up to limit canonical terms related to the query.
// Matching is by substring against both canonical terms and their variants.
func (c *Corrector) Suggest(query string, limit int) []string {
	if limit <= 0 {
		limit = 10
	}
	queryLower := strings.ToLower(query)

	seen := make(map[string]bool)
	var suggestions []string

	add := func(term string) {
		if !seen[term] && len(suggestions) < limit {
			seen[term] = true
			suggestions = append(suggestions, term)
		}
	}

	for standard := range foundryTerms {
		if strings.Contains(queryLower, strings.ToLower(standard)) {
			add(standard)
		}
	}
	for variant, standard := range c.standard {
		if strings.Contains(queryLower, variant) {
			add(standard)
		}
	}

	return suggestions
}
