package domain

import "time"

// WatchEvent records a single watch of a catalog item. Topics is a
// snapshot of the watched video's topics at watch time, so affinity
// extraction never needs a catalog lookup.
type WatchEvent struct {
	VideoID        string    `json:"video_id"`
	WatchedSeconds int       `json:"watched_seconds"`
	Topics         []string  `json:"topics"`
	WatchedAt      time.Time `json:"watched_at"`
}

// SearchQuery records a single search performed by the learner.
type SearchQuery struct {
	Text       string    `json:"text"`
	SearchedAt time.Time `json:"searched_at"`
}

// ActivityRecord is the behavioral signal set for one learner. It is a
// read-only snapshot for the duration of a ranking call; mutations go
// through the ActivityRepository and a fresh ranking is computed after.
type ActivityRecord struct {
	UserID string `json:"user_id"`

	WatchEvents   []WatchEvent  `json:"watch_events"`
	SearchQueries []SearchQuery `json:"search_queries"`

	// RequestedTopics are explicit asks and the highest-confidence signal.
	RequestedTopics []string `json:"requested_topics"`

	LikedVideoIDs      []string `json:"liked_video_ids"`
	FollowedCreatorIDs []string `json:"followed_creator_ids"`

	// SyllabusTopics come from an uploaded syllabus document and are a
	// weaker signal than explicit requests.
	SyllabusTopics []string `json:"syllabus_topics,omitempty"`

	// ExamDate is the learner's next exam, if one is set.
	ExamDate *time.Time `json:"exam_date,omitempty"`
}

// NewActivityRecord creates an empty activity record for a learner.
func NewActivityRecord(userID string) *ActivityRecord {
	return &ActivityRecord{
		UserID:             userID,
		WatchEvents:        []WatchEvent{},
		SearchQueries:      []SearchQuery{},
		RequestedTopics:    []string{},
		LikedVideoIDs:      []string{},
		FollowedCreatorIDs: []string{},
	}
}

// Follows reports whether the learner follows the given creator.
func (a *ActivityRecord) Follows(creatorID string) bool {
	for _, id := range a.FollowedCreatorIDs {
		if id == creatorID {
			return true
		}
	}
	return false
}

// HasWatched reports whether any watch event references the video.
func (a *ActivityRecord) HasWatched(videoID string) bool {
	for _, ev := range a.WatchEvents {
		if ev.VideoID == videoID {
			return true
		}
	}
	return false
}

// LastWatch returns the most recent watch event by timestamp, or nil
// when the learner has no watch history.
func (a *ActivityRecord) LastWatch() *WatchEvent {
	var last *WatchEvent
	for i := range a.WatchEvents {
		ev := &a.WatchEvents[i]
		if last == nil || ev.WatchedAt.After(last.WatchedAt) {
			last = ev
		}
	}
	return last
}
