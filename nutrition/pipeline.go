package nutrition

import (
	"errors"
	"strings"
)

// ErrNoFoodDetected means the whole pipeline resolved zero foods. The caller
// must not persist anything for this upload.
var ErrNoFoodDetected = errors.New("no food detected")

// Pipeline is the stateless labels → candidates → filtered → portions →
// totals pass. One instance is shared by all requests; every call is a pure
// function of its input.
type Pipeline struct {
	matcher   *Matcher
	filter    *Filter
	estimator *PortionEstimator
	agg       *Aggregator
}

func NewPipeline(table *Table, cfg *Config) *Pipeline {
	return &Pipeline{
		matcher:   NewMatcher(table, cfg),
		filter:    NewFilter(table, cfg),
		estimator: NewPortionEstimator(table, cfg),
		agg:       NewAggregator(table),
	}
}

// Analyze runs the full pass over plain image labels.
func (p *Pipeline) Analyze(labels []DetectedLabel) (*Estimate, error) {
	return p.AnalyzeDetections(Detections{Labels: labels})
}

// AnalyzeDetections runs the full pass over everything the vision
// collaborator produced for one image.
func (p *Pipeline) AnalyzeDetections(d Detections) (*Estimate, error) {
	return p.EstimateFoods(p.ResolveFoods(d))
}

// ResolveFoods runs matching and filtering only, returning the final food
// list for the image (possibly empty).
func (p *Pipeline) ResolveFoods(d Detections) []string {
	return p.filter.Apply(p.collect(d))
}

// EstimateFoods portions and totals an already-resolved food list. Callers
// that merge manual entries with detected foods use this directly.
func (p *Pipeline) EstimateFoods(foods []string) (*Estimate, error) {
	if len(foods) == 0 {
		return nil, ErrNoFoodDetected
	}
	portions := p.estimator.Portions(foods)
	protein, calories := p.agg.Totals(portions)
	return &Estimate{
		Foods:         foods,
		TotalProtein:  protein,
		TotalCalories: calories,
	}, nil
}

// MatchFood resolves one free-text food name the way a vision label would be,
// at full confidence. Used for manually entered foods.
func (p *Pipeline) MatchFood(text string) []string {
	cands := p.matcher.Match(text, 1.0, nil)
	names := make([]string, 0, len(cands))
	for _, c := range cands {
		names = append(names, c.Name)
	}
	return names
}

// collect runs the matcher over every detection with the sliding confidence
// gate, accumulating accepted names so later labels face the right bar.
func (p *Pipeline) collect(d Detections) []Candidate {
	var (
		candidates []Candidate
		accepted   []string
		seen       = make(map[string]bool)
	)
	addAll := func(labels []DetectedLabel, source Source) {
		for _, l := range labels {
			text := strings.ToLower(strings.TrimSpace(l.Text))
			if text == "" {
				continue
			}
			if l.Confidence < p.matcher.MinConfidence(text, len(accepted)) {
				continue
			}
			for _, c := range p.matcher.Match(text, l.Confidence, accepted) {
				c.Source = source
				candidates = append(candidates, c)
				if !seen[c.Name] {
					seen[c.Name] = true
					accepted = append(accepted, c.Name)
				}
			}
		}
	}
	addAll(d.Labels, SourceLabel)
	addAll(d.WebEntities, SourceWebEntity)
	addAll(d.Crops, SourceCrop)
	return candidates
}
