package habit

import (
	"time"

	"github.com/google/uuid"
)

// DateLayout is the calendar-day format used on HabitLog.Date. Days are
// always the local calendar day of the caller, never UTC.
const DateLayout = "2006-01-02"

type HabitType string

const (
	TypeGood HabitType = "good"
	TypeBad  HabitType = "bad"
)

type Personality string

const (
	PersonalityPositive Personality = "positive"
	PersonalityAdaptive Personality = "adaptive"
	PersonalityHarsh    Personality = "harsh"
)

// Habit is a tracked recurring action. Streak is a cache of the current
// streak, refreshed after every log mutation; logs remain the source of
// truth.
type Habit struct {
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	Type              HabitType  `json:"type"`
	Streak            int        `json:"streak"`
	CreatedAt         time.Time  `json:"createdAt"`
	LastCompletedDate *time.Time `json:"lastCompletedDate,omitempty"`
}

// HabitLog records one day's outcome for one habit. At most one log exists
// per (HabitID, Date) pair; re-logging a day replaces the earlier entry.
type HabitLog struct {
	ID        string    `json:"id"`
	HabitID   string    `json:"habitId"`
	Date      string    `json:"date"` // YYYY-MM-DD, local calendar day
	Completed bool      `json:"completed"`
	Timestamp time.Time `json:"timestamp"`
}

// HabitUpdate is a partial habit update. Nil fields are left untouched.
// The habit id itself is never updatable.
type HabitUpdate struct {
	Name              *string    `json:"name,omitempty"`
	Type              *HabitType `json:"type,omitempty"`
	Streak            *int       `json:"streak,omitempty"`
	LastCompletedDate *time.Time `json:"lastCompletedDate,omitempty"`
}

type UserSettings struct {
	DarkMode             bool        `json:"darkMode"`
	Language             string      `json:"language"`
	MotivatorPersonality Personality `json:"motivatorPersonality"`
	FullscreenMode       bool        `json:"fullscreenMode"`
}

func DefaultSettings() UserSettings {
	return UserSettings{
		DarkMode:             false,
		Language:             "en",
		MotivatorPersonality: PersonalityPositive,
		FullscreenMode:       false,
	}
}

// StatSummary aggregates per-habit metrics over a set of habits.
type StatSummary struct {
	TotalHabits       int `json:"totalHabits"`
	GoodHabits        int `json:"goodHabits"`
	BadHabits         int `json:"badHabits"`
	HabitsActiveToday int `json:"habitsActiveToday"`
	TotalStreak       int `json:"totalStreak"`
	LongestStreak     int `json:"longestStreak"`
	TodayCompletion   int `json:"todayCompletion"`
	WeeklyCompletion  int `json:"weeklyCompletion"`
	TotalActions      int `json:"totalActions"`
}

// NewHabit builds a habit with a fresh id and zero streak.
func NewHabit(name string, t HabitType) Habit {
	return Habit{
		ID:        uuid.NewString(),
		Name:      name,
		Type:      t,
		Streak:    0,
		CreatedAt: time.Now(),
	}
}

// NewLog builds a log entry dated to now's local calendar day.
func NewLog(habitID string, completed bool, now time.Time) HabitLog {
	return HabitLog{
		ID:        uuid.NewString(),
		HabitID:   habitID,
		Date:      now.Format(DateLayout),
		Completed: completed,
		Timestamp: now,
	}
}

// Day truncates t to its local calendar day.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
