// Package prefilter mechanically classifies claims before any paid model
// call. Philosophical claims short-circuit the pipeline entirely; prediction
// claims switch the debate and judge to likelihood phrasing.
package prefilter

import (
	"regexp"
	"strings"
)

// normativePatterns match value-judgment language that has no empirical
// ground truth. Ordered: the first match wins and becomes the filter reason.
var normativePatterns = []*regexp.Regexp{
	// Explicit value judgments
	regexp.MustCompile(`\binherently\s+(evil|good|bad|wrong|right)\b`),
	regexp.MustCompile(`\bmorally\s+(wrong|right|corrupt|good|bad)\b`),
	regexp.MustCompile(`\b(all|every)\s+\w+\s+(are|is)\s+(corrupt|evil|good|bad)\b`),

	// Absolute moral claims
	regexp.MustCompile(`\b(failed|corrupt)\s+system\b`),
	regexp.MustCompile(`\bexploiting\s+(workers|people)\b`),
	regexp.MustCompile(`\bcause[sd]?\s+more\s+harm\s+than\s+good\b`),

	// Universal negative/positive claims
	regexp.MustCompile(`\b(all|every)\s+(politicians?|billionaires?|corporations?)\s+(are|is)\s+corrupt\b`),
	regexp.MustCompile(`\ball\s+\w+\s+(media|news)\s+(is|are)\s+propaganda\b`),

	// Normative modals
	regexp.MustCompile(`\bshould(n't)?\s+\w+\b.*\?`),
	regexp.MustCompile(`\bdeserve[sd]?\b`),

	// Subjective aesthetic/quality judgments
	regexp.MustCompile(`\bbest\b.*\?`),
	regexp.MustCompile(`\bbelong\s+on\b`),
	regexp.MustCompile(`\bis\s+\w+\s+(beautiful|ugly|perfect|flawed)\b`),
}

// predictionKeywords mark forward-looking claims judged on likelihood
var predictionKeywords = []string{
	"will", "forecast", "predict", "expect", "likely", "probably",
	"going to", "next week", "tomorrow", "this week", "future",
	"by 2026", "by 2030", "in the coming",
}

// Classification is the pre-filter's verdict on a claim's nature
type Classification struct {
	IsPhilosophical bool
	IsPrediction    bool
	Reason          string // Matched normative fragment, empty otherwise
}

// Classify runs the fixed pattern matchers over the lower-cased claim.
// Pure and total: never fails, any input string yields a result.
// Philosophical detection takes precedence over prediction detection.
func Classify(claim string) Classification {
	lower := strings.ToLower(claim)

	var c Classification
	for _, re := range normativePatterns {
		if m := re.FindString(lower); m != "" {
			c.IsPhilosophical = true
			c.Reason = m
			break
		}
	}

	for _, kw := range predictionKeywords {
		if strings.Contains(lower, kw) {
			c.IsPrediction = true
			break
		}
	}

	return c
}
