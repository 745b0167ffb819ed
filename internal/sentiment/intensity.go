package sentiment

import (
	"math"
	"regexp"
	"strings"

	"review_insights/internal/domain"
)

var capsRun = regexp.MustCompile(`[A-Z]{3,}`)

// Intensity labels the magnitude of overall. Emphasis in the raw text (more
// than one '!', an intensifier word, a run of 3+ capitals) raises the
// magnitude before banding. A score of exactly 0 carries no polarity and is
// always neutral.
func (t *Tables) Intensity(overall float64, text string) domain.Intensity {
	if overall == 0 {
		return domain.IntensityNeutral
	}
	m := math.Abs(overall)
	if strings.Count(text, "!") > 1 {
		m += 0.1
	}
	if t.intensifier != nil && t.intensifier.MatchString(text) {
		m += 0.15
	}
	if capsRun.MatchString(text) {
		m += 0.1
	}
	return band(m)
}

func band(m float64) domain.Intensity {
	switch {
	case m < 0.2:
		return domain.IntensityNeutral
	case m < 0.4:
		return domain.IntensityMild
	case m < 0.7:
		return domain.IntensityModerate
	}
	return domain.IntensityStrong
}
