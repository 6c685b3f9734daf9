package domain

import (
	"math"
	"time"
)

const (
	followedCreatorBonus = 5.0

	examWindowDays = 30
	examBonusMax   = 10.0

	recencyWindowDays = 14
)

// ScoreVideo computes the personalized relevance score for one catalog item.
//
// Score = Topic Match + Creator Bonus + Exam Bonus + Recency Bonus + Popularity Bonus
//
// Topic Match:
//   - sum of the affinity weight of every topic on the video
//
// Creator Bonus:
//   - +5 when the learner follows the video's creator
//
// Exam Bonus (only for exam-relevant videos with an exam date set):
//   - daysToExam < 30: 10 - daysToExam/3, clamped to [0, 10]
//   - exam in the past or >= 30 days away: +0
//
// Recency Bonus:
//   - daysSinceUpload < 14: (14 - daysSinceUpload) / 2
//   - older: +0
//
// Popularity Bonus:
//   - log10(max(views, 1)) / 2, logarithmic so raw view counts never
//     dominate topic relevance
//
// The five terms are summed without normalization; their relative scale
// is chosen so topic relevance dominates popularity. The computation is
// pure and deterministic given its inputs and the injected now.
func ScoreVideo(v *Video, affinity TopicAffinity, activity *ActivityRecord, now time.Time) float64 {
	if v == nil {
		return 0
	}

	score := topicMatchScore(v, affinity)

	if activity != nil && activity.Follows(v.CreatorID) {
		score += followedCreatorBonus
	}

	score += examProximityBonus(v, activity, now)
	score += recencyBonus(v, now)
	score += popularityBonus(v)

	return score
}

// topicMatchScore sums the affinity weight of every topic on the video.
// A video with no topics receives 0 here and is ranked by the remaining
// terms only.
func topicMatchScore(v *Video, affinity TopicAffinity) float64 {
	var score float64
	for _, topic := range v.Topics {
		score += affinity.Weight(topic)
	}
	return score
}

// examProximityBonus rewards exam-relevant videos as the learner's exam
// approaches. The raw formula 10 - daysToExam/3 is clamped to [0, 10]:
// a stale exam-relevant flag after the exam has passed must not turn
// into a penalty.
func examProximityBonus(v *Video, activity *ActivityRecord, now time.Time) float64 {
	if !v.ExamRelevant || activity == nil || activity.ExamDate == nil {
		return 0
	}

	untilExam := activity.ExamDate.Sub(now)
	if untilExam < 0 {
		return 0
	}

	daysToExam := int(untilExam.Hours() / 24)
	if daysToExam >= examWindowDays {
		return 0
	}

	bonus := examBonusMax - float64(daysToExam)/3
	if bonus < 0 {
		return 0
	}
	if bonus > examBonusMax {
		return examBonusMax
	}
	return bonus
}

// recencyBonus rewards fresh uploads for two weeks, linearly decaying
// from +7 on upload day to 0.
func recencyBonus(v *Video, now time.Time) float64 {
	days := v.DaysSinceUpload(now)
	if days >= recencyWindowDays {
		return 0
	}
	return float64(recencyWindowDays-days) / 2
}

// popularityBonus maps the view count onto a logarithmic scale. Views
// is clamped to 1 before log10 so a zero-view video scores 0 instead of
// hitting a domain error.
func popularityBonus(v *Video) float64 {
	views := v.Views
	if views < 1 {
		views = 1
	}
	return math.Log10(float64(views)) / 2
}
