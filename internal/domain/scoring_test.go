package domain

import (
	"math"
	"testing"
	"time"
)

var scoringNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// baseVideo returns a video that earns no bonus from any term: old
// upload, single view, no topics of interest.
func baseVideo() *Video {
	return &Video{
		ID:         "v1",
		CreatorID:  "creator-1",
		Topics:     []string{"history"},
		Views:      1,
		UploadedAt: scoringNow.AddDate(0, 0, -100),
	}
}

func TestScoreVideo_TopicMatch(t *testing.T) {
	affinity := TopicAffinity{"algebra": 5, "calculus": 2}

	v := baseVideo()
	v.Topics = []string{"Algebra", "calculus", "geometry"}

	score := ScoreVideo(v, affinity, NewActivityRecord("u"), scoringNow)
	if !almostEqual(score, 7) {
		t.Errorf("ScoreVideo() = %v, want 7 (5 + 2 + 0)", score)
	}
}

// A video carrying a positively weighted topic must strictly outscore
// an otherwise-identical video without it.
func TestScoreVideo_TopicBoostIsMonotonic(t *testing.T) {
	affinity := TopicAffinity{"algebra": 0.5}

	withTopic := baseVideo()
	withTopic.Topics = []string{"algebra"}
	withoutTopic := baseVideo()
	withoutTopic.Topics = []string{"history"}

	activity := NewActivityRecord("u")
	scoreWith := ScoreVideo(withTopic, affinity, activity, scoringNow)
	scoreWithout := ScoreVideo(withoutTopic, affinity, activity, scoringNow)

	if scoreWith <= scoreWithout {
		t.Errorf("topic-matched score %v not strictly greater than %v", scoreWith, scoreWithout)
	}
}

func TestScoreVideo_FollowedCreatorBonus(t *testing.T) {
	activity := NewActivityRecord("u")
	activity.FollowedCreatorIDs = []string{"teacher1"}

	followed := baseVideo()
	followed.CreatorID = "teacher1"
	other := baseVideo()
	other.CreatorID = "teacher2"

	diff := ScoreVideo(followed, nil, activity, scoringNow) - ScoreVideo(other, nil, activity, scoringNow)
	if !almostEqual(diff, 5) {
		t.Errorf("followed-creator difference = %v, want exactly 5", diff)
	}
}

func TestScoreVideo_ExamProximityBonus(t *testing.T) {
	tests := []struct {
		name         string
		examRelevant bool
		examDate     *time.Time
		expected     float64
	}{
		{
			name:         "exam in 10 days",
			examRelevant: true,
			examDate:     datePtr(scoringNow.AddDate(0, 0, 10)),
			expected:     10 - 10.0/3, // ≈ 6.67
		},
		{
			name:         "exam in 12 hours",
			examRelevant: true,
			examDate:     datePtr(scoringNow.Add(12 * time.Hour)),
			expected:     10,
		},
		{
			name:         "exam in 29 days",
			examRelevant: true,
			examDate:     datePtr(scoringNow.AddDate(0, 0, 29)),
			expected:     10 - 29.0/3, // ≈ 0.33
		},
		{
			name:         "exam 45 days away",
			examRelevant: true,
			examDate:     datePtr(scoringNow.AddDate(0, 0, 45)),
			expected:     0,
		},
		{
			name:         "exam already passed",
			examRelevant: true,
			examDate:     datePtr(scoringNow.AddDate(0, 0, -3)),
			expected:     0,
		},
		{
			name:         "no exam date set",
			examRelevant: true,
			examDate:     nil,
			expected:     0,
		},
		{
			name:         "not exam relevant",
			examRelevant: false,
			examDate:     datePtr(scoringNow.AddDate(0, 0, 10)),
			expected:     0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			activity := NewActivityRecord("u")
			activity.ExamDate = tt.examDate

			v := baseVideo()
			v.ExamRelevant = tt.examRelevant

			bonus := examProximityBonus(v, activity, scoringNow)
			if !almostEqual(bonus, tt.expected) {
				t.Errorf("examProximityBonus() = %v, want %v", bonus, tt.expected)
			}
		})
	}
}

func TestScoreVideo_RecencyBonus(t *testing.T) {
	tests := []struct {
		name       string
		uploadedAt time.Time
		expected   float64
	}{
		{"uploaded today", scoringNow, 7},
		{"uploaded 1 day ago", scoringNow.AddDate(0, 0, -1), 6.5},
		{"uploaded 13 days ago", scoringNow.AddDate(0, 0, -13), 0.5},
		{"uploaded 14 days ago", scoringNow.AddDate(0, 0, -14), 0},
		{"uploaded 1 year ago", scoringNow.AddDate(-1, 0, 0), 0},
		{"upload date in the future", scoringNow.AddDate(0, 0, 2), 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := baseVideo()
			v.UploadedAt = tt.uploadedAt

			bonus := recencyBonus(v, scoringNow)
			if !almostEqual(bonus, tt.expected) {
				t.Errorf("recencyBonus() = %v, want %v", bonus, tt.expected)
			}
		})
	}
}

func TestScoreVideo_PopularityBonus(t *testing.T) {
	tests := []struct {
		name     string
		views    int
		expected float64
	}{
		{"zero views clamps to 1", 0, 0},
		{"single view", 1, 0},
		{"1k views", 1000, 1.5},
		{"1M views", 1000000, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := baseVideo()
			v.Views = tt.views

			bonus := popularityBonus(v)
			if math.Abs(bonus-tt.expected) > floatTolerance {
				t.Errorf("popularityBonus() = %v, want %v", bonus, tt.expected)
			}
		})
	}
}

func TestScoreVideo_NilVideo(t *testing.T) {
	if score := ScoreVideo(nil, nil, nil, scoringNow); score != 0 {
		t.Errorf("ScoreVideo(nil) = %v, want 0", score)
	}
}

func datePtr(t time.Time) *time.Time {
	return &t
}
