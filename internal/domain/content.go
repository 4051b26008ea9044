package domain

import "time"

// MoodEntry is one logged mood.
type MoodEntry struct {
	ID        FlexibleID `json:"id,omitempty"`
	Mood      string     `json:"mood"`
	Note      string     `json:"note"`
	Timestamp time.Time  `json:"timestamp"`
}

// MoodInsights is the aggregate returned by GET /mood/insights. Fields the
// server omits stay at their zero value.
type MoodInsights struct {
	TotalEntries   int            `json:"total_entries"`
	MostCommonMood string         `json:"most_common_mood"`
	MoodCounts     map[string]int `json:"mood_counts"`
	StreakDays     int            `json:"streak_days"`
	Summary        string         `json:"summary"`
}

// ChatReply is the assistant response to a chat message.
type ChatReply struct {
	Response string `json:"response"`
}

// Recommendation is a personalized suggestion.
type Recommendation struct {
	ID          FlexibleID `json:"id,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category,omitempty"`
	ResourceID  FlexibleID `json:"resource_id,omitempty"`
}

// Resource is a single article, exercise or help line.
type Resource struct {
	ID          FlexibleID `json:"id"`
	Title       string     `json:"title"`
	Type        string     `json:"type,omitempty"`
	Description string     `json:"description,omitempty"`
	Content     string     `json:"content,omitempty"`
	URL         string     `json:"url,omitempty"`
}
