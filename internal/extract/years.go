package extract

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"

	"github.com/ppiankov/chronomap/internal/model"
)

var yearPattern = regexp.MustCompile(`\b([12][0-9]{3})\b`)

// YearExtractor turns recognized text tokens into textual-year signals.
// Years mentioned close together are grouped into one reference, since a
// map listing "1953, 1955, 1957" documents one era, not three.
type YearExtractor struct {
	cfg     model.InferenceConfig
	horizon model.YearRange
}

// NewYearExtractor creates a year extractor bound to the horizon.
func NewYearExtractor(cfg model.InferenceConfig, horizon model.HorizonConfig) *YearExtractor {
	return &YearExtractor{cfg: cfg, horizon: horizon.Range()}
}

// yearMention is one year occurrence with the best token confidence seen.
type yearMention struct {
	year int
	conf float64
}

// Extract scans tokens for plausible year mentions and emits one signal
// per grouped reference. A map mentioning a year may slightly pre- or
// post-date it, so each group spans the configured spread around its
// median.
func (e *YearExtractor) Extract(tokens []model.OCRToken) []model.Signal {
	mentions := e.collectYears(tokens)
	if len(mentions) == 0 {
		return nil
	}

	groups := groupMentions(mentions, e.cfg.YearGroupGap)

	signals := make([]model.Signal, 0, len(groups))
	for _, g := range groups {
		med := medianYear(g)

		r := model.YearRange{Start: med - e.cfg.TextualYearSpread, End: med + e.cfg.TextualYearSpread}
		if r.Start < e.horizon.Start {
			r.Start = e.horizon.Start
		}
		if r.End > e.horizon.End {
			r.End = e.horizon.End
		}

		conf := e.cfg.TextualYearConfidence * avgConfidence(g)
		if conf > 1 {
			conf = 1
		}

		signals = append(signals, model.Signal{
			Kind:        model.SignalTextualYear,
			Label:       groupLabel(g),
			Range:       r,
			Confidence:  conf,
			Explanation: fmt.Sprintf("map text mentions %s, suggesting production around %d", groupYears(g), med),
		})
	}
	return signals
}

// collectYears parses year-shaped tokens within the horizon, keeping the
// highest token confidence per distinct year.
func (e *YearExtractor) collectYears(tokens []model.OCRToken) []yearMention {
	best := make(map[int]float64)
	for _, tok := range tokens {
		for _, m := range yearPattern.FindAllString(tok.Text, -1) {
			year, err := strconv.Atoi(m)
			if err != nil || !e.horizon.ContainsPoint(year) {
				continue
			}
			if tok.Confidence > best[year] {
				best[year] = tok.Confidence
			}
		}
	}

	mentions := make([]yearMention, 0, len(best))
	for year, conf := range best {
		mentions = append(mentions, yearMention{year: year, conf: conf})
	}
	sort.Slice(mentions, func(i, j int) bool { return mentions[i].year < mentions[j].year })
	return mentions
}

// groupMentions merges sorted mentions whose neighbors are at most gap
// years apart.
func groupMentions(mentions []yearMention, gap int) [][]yearMention {
	var groups [][]yearMention
	current := []yearMention{mentions[0]}
	for _, m := range mentions[1:] {
		if m.year-current[len(current)-1].year <= gap {
			current = append(current, m)
			continue
		}
		groups = append(groups, current)
		current = []yearMention{m}
	}
	return append(groups, current)
}

func medianYear(g []yearMention) int {
	return g[len(g)/2].year
}

func avgConfidence(g []yearMention) float64 {
	sum := 0.0
	for _, m := range g {
		sum += m.conf
	}
	return sum / float64(len(g))
}

func groupLabel(g []yearMention) string {
	if len(g) == 1 {
		return fmt.Sprintf("Year reference: %d", g[0].year)
	}
	return fmt.Sprintf("Year references: %d-%d", g[0].year, g[len(g)-1].year)
}

func groupYears(g []yearMention) string {
	if len(g) == 1 {
		return fmt.Sprintf("the year %d", g[0].year)
	}
	return fmt.Sprintf("years %d through %d", g[0].year, g[len(g)-1].year)
}
