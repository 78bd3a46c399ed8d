package sentiment

import (
	"math"
	"testing"

	"github.com/go-playground/assert/v2"
)

func TestClassify(t *testing.T) {
	a := Default()

	tests := []struct {
		name string
		text string
		want Label
	}{
		{name: "positive", text: "I love this, great results!", want: Positive},
		{name: "negative", text: "This is terrible and awful", want: Negative},
		{name: "neutral", text: "The meeting is at 3pm", want: Neutral},
		{name: "empty", text: "", want: Neutral},
		{name: "negated positive", text: "The results are not good", want: Negative},
		{name: "contrast after but dominates", text: "good but awful", want: Negative},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, a.Classify(tt.text))
		})
	}
}

// Compound scores published with the VADER reference implementation.
func TestPolarityScores_ReferenceCompound(t *testing.T) {
	a := Default()

	tests := []struct {
		text string
		want float64
	}{
		{text: "VADER is smart, handsome, and funny.", want: 0.8316},
		{text: "VADER is smart, handsome, and funny!", want: 0.8439},
		{text: "VADER is very smart, handsome, and funny.", want: 0.8545},
		{text: "VADER is not smart, handsome, nor funny.", want: -0.7424},
		{text: "The book was good.", want: 0.4404},
		{text: "The book was only kind of good.", want: 0.3832},
		{text: "The plot was good, but the characters are uncompelling and the dialog is not great.", want: -0.7042},
		{text: "Today SUX!", want: -0.5461},
		{text: "At least it isn't a horrible book.", want: 0.431},
		{text: "Not bad at all", want: 0.431},
		{text: "Sentiment analysis has never been good.", want: -0.3412},
		{text: "Other sentiment analysis tools can be quite bad.", want: -0.5849},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got := a.PolarityScores(tt.text).Compound
			if math.Abs(got-tt.want) > 1e-4 {
				t.Errorf("compound(%q) = %.4f, want %.4f", tt.text, got, tt.want)
			}
		})
	}
}

func TestPolarityScores_Headlines(t *testing.T) {
	a := Default()

	tests := []struct {
		text     string
		compound float64
		want     Label
	}{
		{text: "Startup fails to raise new funding", compound: -0.4215, want: Negative},
		{text: "Regulators ban crypto advertising", compound: -0.5574, want: Negative},
		{text: "Investors thrilled by earnings", compound: 0.4404, want: Positive},
		{text: "Analysts turn pessimistic on chipmakers", compound: -0.3612, want: Negative},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			s := a.PolarityScores(tt.text)
			if math.Abs(s.Compound-tt.compound) > 1e-4 {
				t.Errorf("compound(%q) = %.4f, want %.4f", tt.text, s.Compound, tt.compound)
			}
			assert.Equal(t, tt.want, LabelFor(s.Compound))
		})
	}
}

func TestLabelFor_Thresholds(t *testing.T) {
	assert.Equal(t, Positive, LabelFor(0.05))
	assert.Equal(t, Positive, LabelFor(1))
	assert.Equal(t, Neutral, LabelFor(0.0499))
	assert.Equal(t, Neutral, LabelFor(0))
	assert.Equal(t, Neutral, LabelFor(-0.0499))
	assert.Equal(t, Negative, LabelFor(-0.05))
	assert.Equal(t, Negative, LabelFor(-1))
}

func TestPolarityScores_Neutral(t *testing.T) {
	s := Default().PolarityScores("The meeting is at 3pm")

	assert.Equal(t, 0.0, s.Compound)
	assert.Equal(t, 1.0, s.Neutral)
	assert.Equal(t, 0.0, s.Positive)
	assert.Equal(t, 0.0, s.Negative)
}

func TestPolarityScores_Rounded(t *testing.T) {
	s := Default().PolarityScores("VADER is smart, handsome, and funny.")

	assert.Equal(t, 0.0, s.Negative)
	assert.Equal(t, 0.254, s.Neutral)
	assert.Equal(t, 0.746, s.Positive)
}

func TestNewAnalyzer_Overrides(t *testing.T) {
	a := NewAnalyzer(Lexicon{"Bullish": 2.5, "bearish": -2.5, "love": 0})

	assert.Equal(t, Positive, a.Classify("Analysts turn bullish"))
	assert.Equal(t, Negative, a.Classify("Analysts turn bearish"))
	assert.Equal(t, Neutral, a.Classify("I love it"))

	assert.Equal(t, Positive, Default().Classify("I love it"))
}

func TestDefault_Shared(t *testing.T) {
	assert.Equal(t, true, Default() == Default())
}
