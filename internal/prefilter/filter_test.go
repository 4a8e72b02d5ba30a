package prefilter

import "testing"

func TestClassify_Philosophical(t *testing.T) {
	claims := []string{
		"Is capitalism inherently evil?",
		"All politicians are corrupt",
		"Should we ban social media?",
		"Billionaires don't deserve their wealth",
		"What is the best pizza topping?",
		"Does pineapple belong on pizza?",
	}

	for _, claim := range claims {
		c := Classify(claim)
		if !c.IsPhilosophical {
			t.Errorf("expected philosophical for %q", claim)
		}
		if c.Reason == "" {
			t.Errorf("expected a filter reason for %q", claim)
		}
	}
}

func TestClassify_Factual(t *testing.T) {
	claims := []string{
		"Water boils at 100 degrees Celsius at sea level",
		"The Eiffel Tower is in Paris",
		"",
	}

	for _, claim := range claims {
		c := Classify(claim)
		if c.IsPhilosophical {
			t.Errorf("unexpected philosophical for %q (reason %q)", claim, c.Reason)
		}
	}
}

func TestClassify_Prediction(t *testing.T) {
	c := Classify("Bitcoin will reach $200k by 2026")
	if !c.IsPrediction {
		t.Error("expected prediction")
	}
	if c.IsPhilosophical {
		t.Error("unexpected philosophical")
	}

	if Classify("The sky is blue").IsPrediction {
		t.Error("unexpected prediction for plain factual claim")
	}
}

func TestClassify_PhilosophicalWinsOverPrediction(t *testing.T) {
	// Both prediction-flavored ("will") and normative ("deserve")
	c := Classify("Will billionaires ever deserve their wealth?")
	if !c.IsPhilosophical {
		t.Error("expected philosophical to take precedence")
	}
}

func TestClassify_Idempotent(t *testing.T) {
	claim := "Is capitalism inherently evil?"
	first := Classify(claim)
	second := Classify(claim)
	if first != second {
		t.Errorf("classification not stable: %+v vs %+v", first, second)
	}
}
