package domain

import (
	"math"
	"testing"
	"time"
)

const floatTolerance = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < floatTolerance
}

func TestExtractTopicAffinity_WatchEvents(t *testing.T) {
	activity := NewActivityRecord("learner-1")
	activity.WatchEvents = []WatchEvent{
		{VideoID: "v1", Topics: []string{"Algebra", "calculus"}, WatchedAt: time.Now()},
		{VideoID: "v2", Topics: []string{"calculus"}, WatchedAt: time.Now()},
	}

	affinity := ExtractTopicAffinity(activity)

	if got := affinity.Weight("algebra"); !almostEqual(got, 2) {
		t.Errorf("Weight(algebra) = %v, want 2", got)
	}
	// Two watch events, +2 each
	if got := affinity.Weight("calculus"); !almostEqual(got, 4) {
		t.Errorf("Weight(calculus) = %v, want 4", got)
	}
}

func TestExtractTopicAffinity_SearchQueries(t *testing.T) {
	activity := NewActivityRecord("learner-1")
	activity.SearchQueries = []SearchQuery{
		{Text: "learn calculus now", SearchedAt: time.Now()},
	}

	affinity := ExtractTopicAffinity(activity)

	tests := []struct {
		topic    string
		expected float64
	}{
		{"learn", 1},    // 5 chars, counted
		{"calculus", 1}, // 8 chars, counted
		{"now", 0},      // 3 chars, below threshold
	}

	for _, tt := range tests {
		t.Run(tt.topic, func(t *testing.T) {
			if got := affinity.Weight(tt.topic); !almostEqual(got, tt.expected) {
				t.Errorf("Weight(%s) = %v, want %v", tt.topic, got, tt.expected)
			}
		})
	}
}

func TestExtractTopicAffinity_AccumulatesAcrossSignals(t *testing.T) {
	activity := NewActivityRecord("learner-1")
	activity.WatchEvents = []WatchEvent{
		{VideoID: "v1", Topics: []string{"calculus"}, WatchedAt: time.Now()},
	}
	activity.SearchQueries = []SearchQuery{
		{Text: "calculus", SearchedAt: time.Now()},
	}
	activity.RequestedTopics = []string{"Calculus"}
	activity.SyllabusTopics = []string{"CALCULUS"}

	affinity := ExtractTopicAffinity(activity)

	// 2 (watch) + 1 (search) + 3 (request) + 1.5 (syllabus)
	if got := affinity.Weight("calculus"); !almostEqual(got, 7.5) {
		t.Errorf("Weight(calculus) = %v, want 7.5", got)
	}
}

func TestExtractTopicAffinity_NoStemming(t *testing.T) {
	activity := NewActivityRecord("learner-1")
	activity.RequestedTopics = []string{"equations"}

	affinity := ExtractTopicAffinity(activity)

	if got := affinity.Weight("equation"); got != 0 {
		t.Errorf("Weight(equation) = %v, want 0 (no stemming)", got)
	}
	if got := affinity.Weight("equations"); !almostEqual(got, 3) {
		t.Errorf("Weight(equations) = %v, want 3", got)
	}
}

func TestExtractTopicAffinity_EmptyRecord(t *testing.T) {
	affinity := ExtractTopicAffinity(NewActivityRecord("learner-1"))
	if len(affinity) != 0 {
		t.Errorf("empty record produced %d affinity entries, want 0", len(affinity))
	}
}

func TestExtractTopicAffinity_NilRecord(t *testing.T) {
	affinity := ExtractTopicAffinity(nil)
	if len(affinity) != 0 {
		t.Errorf("nil record produced %d affinity entries, want 0", len(affinity))
	}
}
