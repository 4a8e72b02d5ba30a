package agents

import (
	"fmt"
	"strings"

	"github.com/verifai-labs/verifai/internal/model"
)

// System prompts pin each agent to its role
const (
	proverSystemPrompt   = "You are a persuasive advocate who supports the claim using provided sources."
	debunkerSystemPrompt = "You are a critical fact-checker who finds flaws in claims using provided sources."
)

// numberSources renders "Source N: text" blocks for advocate prompts
func numberSources(sourceTexts []string) string {
	parts := make([]string, len(sourceTexts))
	for i, text := range sourceTexts {
		parts[i] = fmt.Sprintf("Source %d: %s", i+1, text)
	}
	return strings.Join(parts, "\n\n")
}

// weightedSources renders source blocks with their credibility weights for
// the judge, calling out encyclopedic half-weight explicitly.
func weightedSources(sources []model.Source) string {
	parts := make([]string, len(sources))
	for i, s := range sources {
		label := fmt.Sprintf(" (%.1fx weight)", s.Weight)
		if strings.Contains(strings.ToLower(s.URL), "wikipedia.org") {
			label = fmt.Sprintf(" (Wikipedia - %.2fx weight)", s.Weight)
		}
		parts[i] = fmt.Sprintf("Source %d%s: %s", i+1, label, s.Text)
	}
	return strings.Join(parts, "\n\n")
}

func proverPrompt(claim string, sourceTexts []string, isPrediction bool) string {
	context := numberSources(sourceTexts)

	if isPrediction {
		return fmt.Sprintf(`You are a skilled analyst building the STRONGEST case that this PREDICTION is likely to occur.

PREDICTION: %s

SOURCES (forecasts, expert opinions, trend data):
%s

Your task: Find evidence, forecasts, or expert opinions that SUPPORT this prediction being likely.
Present the most convincing argument for why this prediction could come true.
Be persuasive but honest - only cite what the sources actually say.

Return 2-3 sentences arguing FOR the prediction's likelihood.`, claim, context)
	}

	return fmt.Sprintf(`You are a skilled advocate building the STRONGEST case to PROVE this claim is true.

CLAIM: %s

SOURCES:
%s

Your task: Find evidence that SUPPORTS the claim. Present the most convincing argument.
Be persuasive but honest - only cite what the sources actually say.

Return 2-3 sentences arguing FOR the claim.`, claim, context)
}

func debunkerPrompt(claim string, sourceTexts []string, isPrediction bool) string {
	context := numberSources(sourceTexts)

	if isPrediction {
		return fmt.Sprintf(`You are a skeptical analyst building the STRONGEST case that this PREDICTION is unlikely or uncertain.

PREDICTION: %s

SOURCES (forecasts, expert opinions, trend data):
%s

Your task: Find evidence, contrary forecasts, or uncertainty that UNDERMINES this prediction.
Present the most convincing argument for why this prediction may not come true.
Be critical but honest - only cite what the sources actually say.

Return 2-3 sentences arguing AGAINST the prediction's likelihood.`, claim, context)
	}

	return fmt.Sprintf(`You are a skilled skeptic building the STRONGEST case to DISPROVE this claim.

CLAIM: %s

SOURCES:
%s

Your task: Find evidence that CONTRADICTS or weakens the claim. Present the most convincing counter-argument.
Be critical but honest - only cite what the sources actually say.

Return 2-3 sentences arguing AGAINST the claim.`, claim, context)
}

func judgePrompt(claim string, sources []model.Source, proverArg, debunkerArg string, isPrediction bool) string {
	context := weightedSources(sources)

	if isPrediction {
		return fmt.Sprintf(`You are a high-accuracy Prediction Analyst. Two experts have debated the likelihood of this prediction. Weigh both arguments and assess probability.

PREDICTION: %s

OPTIMIST'S ARGUMENT (arguing prediction is LIKELY):
%s

SKEPTIC'S ARGUMENT (arguing prediction is UNLIKELY or UNCERTAIN):
%s

ORIGINAL SOURCES (forecasts, expert opinions, trend data):
%s

TASK:
1. Weigh both arguments against the raw sources, respecting each source's stated weight.
2. Check for consensus or disagreement among forecasts/experts.
3. If the prediction rests on subjective value judgments rather than trends, it is automatically "Uncertain" with confidence below 0.4.
4. Provide a 'verdict': "Likely", "Unlikely", or "Uncertain"
5. Provide a 'confidence_score' between 0.0 and 1.0 representing prediction confidence (NOT certainty)
6. Summarize your reasoning in one sentence.
7. List the strongest points for and against, each citing its source label and weight.

Respond in JSON format with these exact fields:
{
    "verdict": "Likely|Unlikely|Uncertain",
    "confidence_score": 0.65,
    "summary": "One sentence summary explaining the prediction assessment",
    "evidence_for": [{"source_label": "Source 1", "weight": 1.0, "point": "..."}],
    "evidence_against": [{"source_label": "Source 2", "weight": 0.5, "point": "..."}]
}`, claim, proverArg, debunkerArg, context)
	}

	return fmt.Sprintf(`You are a high-accuracy Verification Judge. Two advocates have debated this claim. Weigh both arguments and issue a final ruling.

CLAIM: %s

PROVER'S ARGUMENT (arguing FOR the claim):
%s

DEBUNKER'S ARGUMENT (arguing AGAINST the claim):
%s

ORIGINAL SOURCES:
%s

TASK:
1. Weigh both arguments against the raw sources, respecting each source's stated weight.
2. Check for contradictions between sources.
3. If the claim is a normative or philosophical statement with no empirical answer, it is automatically "Inconclusive" with confidence below 0.4.
4. Provide a 'verdict': "Verified", "Unverified", or "Inconclusive".
5. Provide a 'confidence_score' between 0.0 and 1.0.
6. Summarize your reasoning in one sentence.
7. List the strongest points for and against, each citing its source label and weight.

Respond in JSON format with these exact fields:
{
    "verdict": "Verified|Unverified|Inconclusive",
    "confidence_score": 0.95,
    "summary": "One sentence summary explaining the ruling",
    "evidence_for": [{"source_label": "Source 1", "weight": 1.0, "point": "..."}],
    "evidence_against": [{"source_label": "Source 2", "weight": 0.5, "point": "..."}]
}`, claim, proverArg, debunkerArg, context)
}
