package domain

import (
	"sort"
	"strings"
	"time"
)

// Rank returns the top-limit videos of one pool, ordered by descending
// personalized score. Ties keep catalog order (stable sort). When fewer
// than limit videos match, all of them are returned.
func Rank(catalog []*Video, activity *ActivityRecord, shortForm bool, limit int, now time.Time) []*Video {
	if limit <= 0 {
		return []*Video{}
	}

	affinity := ExtractTopicAffinity(activity)

	pool := make([]*Video, 0, len(catalog))
	scores := make(map[*Video]float64, len(catalog))
	for _, v := range catalog {
		if v == nil || v.ShortForm != shortForm {
			continue
		}
		pool = append(pool, v)
		scores[v] = ScoreVideo(v, affinity, activity, now)
	}

	sort.SliceStable(pool, func(i, j int) bool {
		return scores[pool[i]] > scores[pool[j]]
	})

	if len(pool) > limit {
		pool = pool[:limit]
	}
	return pool
}

// NextUp picks the single best unwatched video to surface after the
// learner's most recent watch.
//
// Selection rule:
//   - no watch history: nil
//   - candidates are catalog videos not yet watched whose topics overlap
//     the most recent watch's topics
//   - highest topic-overlap count wins; on a tie a followed creator
//     beats an unfollowed one; remaining ties keep catalog order
//   - empty candidate pool: nil
func NextUp(catalog []*Video, activity *ActivityRecord) *Video {
	if activity == nil {
		return nil
	}
	last := activity.LastWatch()
	if last == nil {
		return nil
	}

	lastTopics := lowerSet(last.Topics)

	var (
		best         *Video
		bestOverlap  int
		bestFollowed bool
	)
	for _, v := range catalog {
		if v == nil || activity.HasWatched(v.ID) {
			continue
		}
		overlap := topicOverlap(v.Topics, lastTopics)
		if overlap == 0 {
			continue
		}

		followed := activity.Follows(v.CreatorID)
		if best == nil || overlap > bestOverlap || (overlap == bestOverlap && followed && !bestFollowed) {
			best = v
			bestOverlap = overlap
			bestFollowed = followed
		}
	}
	return best
}

// TrendingScore is the catalog-wide engagement composite used for the
// trending-for-exam shelf. It is independent of any activity record.
func TrendingScore(v *Video) float64 {
	return float64(v.Likes)/1000*3 +
		float64(v.Comments)/100*2 +
		float64(v.Views)/10000
}

// TrendingForExam returns the top-limit long-form videos by engagement
// composite. Short-form clips are excluded from exam preparation.
func TrendingForExam(catalog []*Video, limit int) []*Video {
	if limit <= 0 {
		return []*Video{}
	}

	pool := make([]*Video, 0, len(catalog))
	for _, v := range catalog {
		if v == nil || v.ShortForm {
			continue
		}
		pool = append(pool, v)
	}

	sort.SliceStable(pool, func(i, j int) bool {
		return TrendingScore(pool[i]) > TrendingScore(pool[j])
	})

	if len(pool) > limit {
		pool = pool[:limit]
	}
	return pool
}

func lowerSet(topics []string) map[string]struct{} {
	set := make(map[string]struct{}, len(topics))
	for _, t := range topics {
		set[strings.ToLower(t)] = struct{}{}
	}
	return set
}

func topicOverlap(topics []string, against map[string]struct{}) int {
	count := 0
	for _, t := range topics {
		if _, ok := against[strings.ToLower(t)]; ok {
			count++
		}
	}
	return count
}
