// Package motivator picks the canned message shown after a tracking action.
// Pure presentation: the success/failure inversion for bad habits lives here,
// never in the stats deriver.
package motivator

import (
	"fmt"
	"math/rand"

	"github.com/dpramesti/habitd/pkg/habit"
)

// Context names the situation a message responds to.
type Context string

const (
	ctxFirstDay  Context = "firstDay"
	ctxCompleted Context = "completed"
	ctxStreak    Context = "streak"
	ctxMilestone Context = "milestone"
	ctxComeback  Context = "comeback"
	ctxRelapse   Context = "relapse"
	ctxMissed    Context = "missed"
)

var milestoneDays = []int{7, 14, 30, 60, 100}

// State describes the habit right after a tracking action.
type State struct {
	Completed bool
	HabitType habit.HabitType
	// Streak is the current streak after the action.
	Streak int
	// PreviousStreak is the streak before today's action.
	PreviousStreak int
	// DaysMissed counts consecutive unlogged days before today.
	DaysMissed int
	// FirstCompletion marks the very first success ever recorded.
	FirstCompletion bool
}

// success applies the bad-habit inversion: marking a bad habit as done means
// you did the bad thing.
func (s State) success() bool {
	if s.HabitType == habit.TypeBad {
		return !s.Completed
	}
	return s.Completed
}

func detectContext(s State) Context {
	if s.success() {
		switch {
		case s.FirstCompletion:
			return ctxFirstDay
		case isMilestone(s.Streak):
			return ctxMilestone
		case s.DaysMissed >= 2:
			return ctxComeback
		case s.Streak >= 3:
			return ctxStreak
		default:
			return ctxCompleted
		}
	}
	if s.PreviousStreak >= 3 {
		return ctxRelapse
	}
	return ctxMissed
}

func isMilestone(streak int) bool {
	for _, d := range milestoneDays {
		if streak == d {
			return true
		}
	}
	return false
}

// Message returns a context-aware line in the given personality. Positive
// outcomes with a streak longer than one day get the streak appended.
func Message(p habit.Personality, s State) string {
	pools, ok := messages[p]
	if !ok {
		pools = messages[habit.PersonalityPositive]
	}

	pool := pools[detectContext(s)]
	if len(pool) == 0 {
		if s.success() {
			pool = pools[ctxCompleted]
		} else {
			pool = pools[ctxMissed]
		}
	}

	msg := pool[rand.Intn(len(pool))]
	if s.success() && s.Streak > 1 {
		msg = fmt.Sprintf("%s (%d day streak!)", msg, s.Streak)
	}
	return msg
}

// Description is a short human label for a personality, used by the CLI.
func Description(p habit.Personality) string {
	switch p {
	case habit.PersonalityPositive:
		return "Encouraging and supportive"
	case habit.PersonalityAdaptive:
		return "Balanced and realistic"
	case habit.PersonalityHarsh:
		return "Direct and challenging"
	}
	return ""
}
