// Package stats derives streaks and aggregate summaries from the store's
// current state. Nothing here is persisted: every call re-scans the relevant
// logs. All day arithmetic uses the local calendar day.
package stats

import (
	"slices"
	"time"

	"github.com/dpramesti/habitd/internal/storage"
	"github.com/dpramesti/habitd/pkg/habit"
)

// HabitStats bundles the per-habit metrics computed from one log scan.
type HabitStats struct {
	CurrentStreak    int  `json:"currentStreak"`
	LongestStreak    int  `json:"longestStreak"`
	TotalCompletions int  `json:"totalCompletions"`
	CompletedToday   bool `json:"completedToday"`
}

type Deriver struct {
	store storage.Store
	now   func() time.Time
}

func New(store storage.Store) *Deriver {
	return &Deriver{store: store, now: time.Now}
}

// NewWithClock lets tests pin "today".
func NewWithClock(store storage.Store, now func() time.Time) *Deriver {
	return &Deriver{store: store, now: now}
}

func (d *Deriver) CurrentStreak(userID, habitID string) (int, error) {
	logs, err := d.store.ListLogsForHabit(userID, habitID)
	if err != nil {
		return 0, err
	}
	return CurrentStreak(logs, d.now()), nil
}

func (d *Deriver) LongestStreak(userID, habitID string) (int, error) {
	logs, err := d.store.ListLogsForHabit(userID, habitID)
	if err != nil {
		return 0, err
	}
	return LongestStreak(logs), nil
}

func (d *Deriver) TotalCompletions(userID, habitID string) (int, error) {
	logs, err := d.store.ListLogsForHabit(userID, habitID)
	if err != nil {
		return 0, err
	}
	return TotalCompletions(logs), nil
}

func (d *Deriver) HabitStats(userID, habitID string) (HabitStats, error) {
	logs, err := d.store.ListLogsForHabit(userID, habitID)
	if err != nil {
		return HabitStats{}, err
	}
	now := d.now()
	today := now.Format(habit.DateLayout)
	st := HabitStats{
		CurrentStreak:    CurrentStreak(logs, now),
		LongestStreak:    LongestStreak(logs),
		TotalCompletions: TotalCompletions(logs),
	}
	for _, l := range logs {
		if l.Date == today && l.Completed {
			st.CompletedToday = true
			break
		}
	}
	return st, nil
}

// DailySummary maps habit id to that day's outcome: true/false when a log
// exists, nil when the habit was active but unlogged. Habits created after
// date are excluded entirely.
func (d *Deriver) DailySummary(userID string, date time.Time) (map[string]*bool, error) {
	habits, err := d.store.ListHabits(userID)
	if err != nil {
		return nil, err
	}
	logs, err := d.store.ListLogs(userID)
	if err != nil {
		return nil, err
	}
	return DailySummary(habits, logs, date), nil
}

// Aggregate folds the per-habit metrics over the given set of habits.
func (d *Deriver) Aggregate(userID string, habits []habit.Habit) (habit.StatSummary, error) {
	now := d.now()
	today := habit.Day(now)

	summary := habit.StatSummary{TotalHabits: len(habits)}
	for _, h := range habits {
		switch h.Type {
		case habit.TypeGood:
			summary.GoodHabits++
		case habit.TypeBad:
			summary.BadHabits++
		}
		if !habit.Day(h.CreatedAt).After(today) {
			summary.HabitsActiveToday++
		}
	}

	todayStr := now.Format(habit.DateLayout)
	for _, h := range habits {
		logs, err := d.store.ListLogsForHabit(userID, h.ID)
		if err != nil {
			return habit.StatSummary{}, err
		}

		summary.TotalStreak += CurrentStreak(logs, now)
		summary.LongestStreak = max(summary.LongestStreak, LongestStreak(logs))
		summary.TotalActions += TotalCompletions(logs)

		created := habit.Day(h.CreatedAt)
		if created.After(today) {
			continue
		}

		completedOn := make(map[string]bool, len(logs))
		for _, l := range logs {
			if l.Completed {
				completedOn[l.Date] = true
			}
		}
		if completedOn[todayStr] {
			summary.TodayCompletion++
		}

		// trailing 7 days, today inclusive; days before the habit existed
		// don't count
		for i := 0; i < 7; i++ {
			day := today.AddDate(0, 0, -i)
			if created.After(day) {
				continue
			}
			if completedOn[day.Format(habit.DateLayout)] {
				summary.WeeklyCompletion++
			}
		}
	}

	return summary, nil
}

// CurrentStreak counts consecutive days with a true-completion log, walking
// backward from today. An unlogged today doesn't break an ongoing streak
// (the day isn't over yet); a false log today does.
func CurrentStreak(logs []habit.HabitLog, now time.Time) int {
	byDate := make(map[string]bool, len(logs))
	for _, l := range logs {
		byDate[l.Date] = l.Completed
	}

	day := habit.Day(now)
	if completed, logged := byDate[day.Format(habit.DateLayout)]; !logged {
		day = day.AddDate(0, 0, -1)
	} else if !completed {
		return 0
	}

	streak := 0
	for {
		completed, logged := byDate[day.Format(habit.DateLayout)]
		if !logged || !completed {
			return streak
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}
}

// LongestStreak is the maximum run of consecutive true-completion days over
// the whole history.
func LongestStreak(logs []habit.HabitLog) int {
	dates := make([]string, 0, len(logs))
	for _, l := range logs {
		if l.Completed {
			dates = append(dates, l.Date)
		}
	}
	if len(dates) == 0 {
		return 0
	}
	slices.Sort(dates)
	dates = slices.Compact(dates)

	longest, run := 1, 1
	for i := 1; i < len(dates); i++ {
		if nextDay(dates[i-1]) == dates[i] {
			run++
			longest = max(longest, run)
		} else {
			run = 1
		}
	}
	return longest
}

func TotalCompletions(logs []habit.HabitLog) int {
	n := 0
	for _, l := range logs {
		if l.Completed {
			n++
		}
	}
	return n
}

func DailySummary(habits []habit.Habit, logs []habit.HabitLog, date time.Time) map[string]*bool {
	day := habit.Day(date)
	dayStr := day.Format(habit.DateLayout)

	out := map[string]*bool{}
	for _, h := range habits {
		if habit.Day(h.CreatedAt).After(day) {
			continue
		}
		out[h.ID] = nil
	}
	for _, l := range logs {
		if l.Date != dayStr {
			continue
		}
		if _, active := out[l.HabitID]; !active {
			continue
		}
		completed := l.Completed
		out[l.HabitID] = &completed
	}
	return out
}

func nextDay(date string) string {
	d, err := time.ParseInLocation(habit.DateLayout, date, time.Local)
	if err != nil {
		return ""
	}
	return d.AddDate(0, 0, 1).Format(habit.DateLayout)
}
