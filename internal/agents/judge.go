package agents

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/verifai-labs/verifai/internal/llm"
	"github.com/verifai-labs/verifai/internal/model"
)

// Judge synthesizes both advocates' arguments plus the weighted sources into
// a structured verdict. It never propagates an error to its caller: call
// failures and unparseable responses both collapse into a fixed neutral
// verdict.
type Judge struct {
	primary  llm.Provider
	fallback llm.Provider // nil disables the fallback chain
	cfg      model.AgentModelConfig
	logger   *log.Logger
}

// NewJudge creates a judge agent
func NewJudge(primary, fallback llm.Provider, cfg model.AgentModelConfig, logger *log.Logger) *Judge {
	return &Judge{
		primary:  primary,
		fallback: fallback,
		cfg:      cfg,
		logger:   logger,
	}
}

// judgeResponse is the strict structured payload the judge model must return
type judgeResponse struct {
	Verdict         string               `json:"verdict"`
	ConfidenceScore float64              `json:"confidence_score"`
	Summary         string               `json:"summary"`
	EvidenceFor     []judgeEvidencePoint `json:"evidence_for"`
	EvidenceAgainst []judgeEvidencePoint `json:"evidence_against"`
}

type judgeEvidencePoint struct {
	SourceLabel string  `json:"source_label"`
	Weight      float64 `json:"weight"`
	Point       string  `json:"point"`
}

// fallbackVerdict is the fixed neutral result for judge call or parse failure
func fallbackVerdict(reason string) model.Verdict {
	return model.Verdict{
		Label:      model.VerdictInconclusive,
		Confidence: 0.5,
		Reasoning:  reason,
	}
}

// Adjudicate weighs both arguments against the weighted sources and returns
// a verdict plus the judge call's token receipt. The receipt is empty when
// every judge call failed.
func (j *Judge) Adjudicate(ctx context.Context, claim string, sources []model.Source, proverArg, debunkerArg string, isPrediction bool) (model.Verdict, model.AgentReceipt) {
	prompt := judgePrompt(claim, sources, proverArg, debunkerArg, isPrediction)

	comp, err := j.call(ctx, j.primary, j.cfg.Model, prompt)
	if err != nil {
		j.logger.Printf("judge.primary.failed model=%s err=%v", j.cfg.Model, err)
		if j.fallback == nil {
			return fallbackVerdict("Judge analysis failed; defaulting to neutral verdict."), model.AgentReceipt{}
		}
		comp, err = j.call(ctx, j.fallback, j.cfg.FallbackModel, prompt)
		if err != nil {
			j.logger.Printf("judge.fallback.failed model=%s err=%v", j.cfg.FallbackModel, err)
			return fallbackVerdict("Judge analysis failed; defaulting to neutral verdict."), model.AgentReceipt{}
		}
	}

	verdict := j.parse(comp.Text, sources, isPrediction)
	return verdict, comp.Receipt
}

func (j *Judge) call(ctx context.Context, p llm.Provider, modelName, prompt string) (*llm.Completion, error) {
	timeout := j.cfg.CallTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	return p.Complete(ctx, llm.Request{
		Model:       modelName,
		Prompt:      prompt,
		MaxTokens:   j.cfg.MaxTokens,
		Temperature: j.cfg.Temperature,
	})
}

// parse runs the two-stage decode: strict JSON first, then the first
// balanced JSON fragment in surrounding prose, then the fixed fallback.
func (j *Judge) parse(text string, sources []model.Source, isPrediction bool) model.Verdict {
	var resp judgeResponse
	if err := json.Unmarshal([]byte(text), &resp); err != nil {
		fragment, ok := balancedFragment(text)
		if !ok {
			j.logger.Printf("judge.parse.failed no JSON fragment")
			return fallbackVerdict("Unable to parse judge response properly.")
		}
		if err := json.Unmarshal([]byte(fragment), &resp); err != nil {
			j.logger.Printf("judge.parse.failed err=%v", err)
			return fallbackVerdict("Unable to parse judge response properly.")
		}
	}

	return model.Verdict{
		Label:           normalizeLabel(resp.Verdict, isPrediction),
		Confidence:      clamp01(resp.ConfidenceScore),
		Reasoning:       resp.Summary,
		EvidenceFor:     traceEvidence(resp.EvidenceFor, sources),
		EvidenceAgainst: traceEvidence(resp.EvidenceAgainst, sources),
	}
}

// balancedFragment extracts the first balanced {...} block from prose,
// ignoring braces inside JSON strings.
func balancedFragment(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}
	return "", false
}

// normalizeLabel maps the judge's verdict string onto the label set for the
// claim kind. Anything unrecognized is treated as the neutral label.
func normalizeLabel(raw string, isPrediction bool) model.VerdictLabel {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "verified":
		return model.VerdictVerified
	case "unverified":
		return model.VerdictUnverified
	case "inconclusive":
		return model.VerdictInconclusive
	case "likely":
		return model.VerdictLikely
	case "unlikely":
		return model.VerdictUnlikely
	case "uncertain":
		return model.VerdictUncertain
	}
	if isPrediction {
		return model.VerdictUncertain
	}
	return model.VerdictInconclusive
}

// traceEvidence re-ties each cited point's weight to the Source.Weight
// recorded earlier in this request, so evidence weights are never whatever
// the model happened to echo back. A label that does not resolve to a
// recorded source keeps the point but carries zero weight.
func traceEvidence(points []judgeEvidencePoint, sources []model.Source) []model.EvidencePoint {
	if len(points) == 0 {
		return nil
	}
	out := make([]model.EvidencePoint, 0, len(points))
	for _, p := range points {
		ep := model.EvidencePoint{
			SourceLabel: p.SourceLabel,
			Point:       p.Point,
		}
		if idx, ok := sourceIndex(p.SourceLabel); ok && idx < len(sources) {
			ep.Weight = sources[idx].Weight
		}
		out = append(out, ep)
	}
	return out
}

// sourceIndex parses a "Source N" label into a zero-based index
func sourceIndex(label string) (int, bool) {
	fields := strings.Fields(strings.TrimSpace(label))
	if len(fields) != 2 || !strings.EqualFold(fields[0], "source") {
		return 0, false
	}
	n := 0
	for _, r := range fields[1] {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	if n < 1 {
		return 0, false
	}
	return n - 1, true
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
