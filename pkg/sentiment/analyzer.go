// Package sentiment scores free text with the VADER lexicon and rules and
// turns the resulting compound score into a coarse label.
package sentiment

import (
	"math"
	"strings"
	"sync"

	"github.com/jonreiter/govader"
)

type Label string

const (
	Positive Label = "positive"
	Neutral  Label = "neutral"
	Negative Label = "negative"
)

const (
	PositiveThreshold = 0.05
	NegativeThreshold = -0.05
)

// Scores holds the proportions of negative, neutral and positive signal in a
// text along with the normalized compound score in [-1, 1].
type Scores struct {
	Negative float64 `json:"neg"`
	Neutral  float64 `json:"neu"`
	Positive float64 `json:"pos"`
	Compound float64 `json:"compound"`
}

// Lexicon maps lowercase tokens to a valence between roughly -4 and 4.
type Lexicon map[string]float64

// Analyzer is read-only after construction and safe for concurrent use.
type Analyzer struct {
	vader *govader.SentimentIntensityAnalyzer
}

// NewAnalyzer loads the full VADER lexicon and layers overrides on top of
// it. Override keys are matched case-insensitively.
func NewAnalyzer(overrides Lexicon) *Analyzer {
	vader := govader.NewSentimentIntensityAnalyzer()
	for k, v := range overrides {
		vader.Lexicon[strings.ToLower(k)] = v
	}
	return &Analyzer{vader: vader}
}

var (
	defaultOnce     sync.Once
	defaultAnalyzer *Analyzer
)

// Default returns a shared analyzer over the unmodified VADER lexicon.
func Default() *Analyzer {
	defaultOnce.Do(func() {
		defaultAnalyzer = NewAnalyzer(nil)
	})
	return defaultAnalyzer
}

func (a *Analyzer) Classify(text string) Label {
	return LabelFor(a.PolarityScores(text).Compound)
}

func LabelFor(compound float64) Label {
	switch {
	case compound >= PositiveThreshold:
		return Positive
	case compound <= NegativeThreshold:
		return Negative
	default:
		return Neutral
	}
}

// PolarityScores rounds like the reference implementation: four places for
// the compound score, three for the proportions.
func (a *Analyzer) PolarityScores(text string) Scores {
	s := a.vader.PolarityScores(text)
	return Scores{
		Negative: round(s.Negative, 3),
		Neutral:  round(s.Neutral, 3),
		Positive: round(s.Positive, 3),
		Compound: round(s.Compound, 4),
	}
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
