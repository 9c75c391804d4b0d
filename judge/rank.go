package judge

import (
	"math"
	"strconv"
)

// Rank is the letter grade derived from accuracy
type Rank string

const (
	RankSSS Rank = "SSS"
	RankSS  Rank = "SS"
	RankS   Rank = "S"
	RankA   Rank = "A"
	RankB   Rank = "B"
	RankC   Rank = "C"
	RankD   Rank = "D"
	RankE   Rank = "E"
)

// rankSteps is ordered from the highest floor down
var rankSteps = []struct {
	floor float64
	rank  Rank
}{
	{95, RankSSS},
	{90, RankSS},
	{85, RankS},
	{80, RankA},
	{70, RankB},
	{60, RankC},
	{50, RankD},
}

// RankFor returns the grade for an accuracy percentage
func RankFor(accuracy float64) Rank {
	for _, s := range rankSteps {
		if accuracy >= s.floor {
			return s.rank
		}
	}
	return RankE
}

// roundTenth rounds to one decimal place, the precision accuracy is displayed and ranked at
func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}

// FormatAccuracy renders an accuracy percentage with one decimal and a percent sign
func FormatAccuracy(accuracy float64) string {
	return strconv.FormatFloat(accuracy, 'f', 1, 64) + "%"
}
