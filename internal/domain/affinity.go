package domain

import "strings"

// Per-occurrence affinity weights. Weights accumulate across all signal
// sources for a topic; no normalization is applied.
const (
	watchTopicWeight     = 2.0
	searchWordWeight     = 1.0
	requestedTopicWeight = 3.0
	syllabusTopicWeight  = 1.5
)

// TopicAffinity maps a lower-cased topic to its accumulated interest weight.
type TopicAffinity map[string]float64

// ExtractTopicAffinity derives a weighted interest map from a learner's
// activity record.
//
// Weighting rule (additive, per occurrence):
//
//	Watch event topic:       +2
//	Search query word (>3):  +1
//	Explicitly asked topic:  +3
//	Syllabus-derived topic:  +1.5
//
// Topics are lower-cased at insertion and matched exactly afterwards;
// no stemming or pluralization is performed, so "equation" and
// "equations" accumulate separately. Search queries are split on
// whitespace and every word longer than 3 characters becomes a
// pseudo-topic, unvalidated against the real topic vocabulary.
func ExtractTopicAffinity(activity *ActivityRecord) TopicAffinity {
	affinity := make(TopicAffinity)
	if activity == nil {
		return affinity
	}

	for _, ev := range activity.WatchEvents {
		for _, topic := range ev.Topics {
			affinity.add(topic, watchTopicWeight)
		}
	}

	for _, q := range activity.SearchQueries {
		for _, word := range strings.Fields(q.Text) {
			if len(word) > 3 {
				affinity.add(word, searchWordWeight)
			}
		}
	}

	for _, topic := range activity.RequestedTopics {
		affinity.add(topic, requestedTopicWeight)
	}

	for _, topic := range activity.SyllabusTopics {
		affinity.add(topic, syllabusTopicWeight)
	}

	return affinity
}

// Weight returns the accumulated weight for a topic, or 0 when the
// topic never appeared in the activity record.
func (ta TopicAffinity) Weight(topic string) float64 {
	return ta[strings.ToLower(topic)]
}

func (ta TopicAffinity) add(topic string, weight float64) {
	topic = strings.ToLower(strings.TrimSpace(topic))
	if topic == "" {
		return
	}
	ta[topic] += weight
}
