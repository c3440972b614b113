package motivator

import (
	"strings"
	"testing"

	"github.com/dpramesti/habitd/pkg/habit"
)

func TestDetectContext(t *testing.T) {
	cases := []struct {
		name  string
		state State
		want  Context
	}{
		{"first ever success", State{Completed: true, HabitType: habit.TypeGood, Streak: 1, FirstCompletion: true}, ctxFirstDay},
		{"plain completion", State{Completed: true, HabitType: habit.TypeGood, Streak: 2}, ctxCompleted},
		{"streak of three", State{Completed: true, HabitType: habit.TypeGood, Streak: 3}, ctxStreak},
		{"week milestone", State{Completed: true, HabitType: habit.TypeGood, Streak: 7}, ctxMilestone},
		{"milestone beats streak", State{Completed: true, HabitType: habit.TypeGood, Streak: 30}, ctxMilestone},
		{"comeback after gap", State{Completed: true, HabitType: habit.TypeGood, Streak: 1, DaysMissed: 3}, ctxComeback},
		{"miss with no streak", State{Completed: false, HabitType: habit.TypeGood}, ctxMissed},
		{"relapse kills long streak", State{Completed: false, HabitType: habit.TypeGood, PreviousStreak: 5}, ctxRelapse},
		{"short streak miss is not relapse", State{Completed: false, HabitType: habit.TypeGood, PreviousStreak: 2}, ctxMissed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := detectContext(tc.state); got != tc.want {
				t.Fatalf("detectContext = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestBadHabitInversion(t *testing.T) {
	// resisting a bad habit (completed=false) is the success case
	resisted := State{Completed: false, HabitType: habit.TypeBad, Streak: 2}
	if !resisted.success() {
		t.Fatal("resisting a bad habit must count as success")
	}
	if got := detectContext(resisted); got != ctxCompleted {
		t.Fatalf("detectContext = %q, want %q", got, ctxCompleted)
	}

	// giving in (completed=true) is the failure case
	gaveIn := State{Completed: true, HabitType: habit.TypeBad, PreviousStreak: 5}
	if gaveIn.success() {
		t.Fatal("doing the bad thing must not count as success")
	}
	if got := detectContext(gaveIn); got != ctxRelapse {
		t.Fatalf("detectContext = %q, want %q", got, ctxRelapse)
	}
}

func TestMessage_StreakSuffix(t *testing.T) {
	s := State{Completed: true, HabitType: habit.TypeGood, Streak: 5}
	msg := Message(habit.PersonalityPositive, s)
	if !strings.Contains(msg, "(5 day streak!)") {
		t.Fatalf("expected streak suffix in %q", msg)
	}

	// no suffix on day one or on failure
	msg = Message(habit.PersonalityPositive, State{Completed: true, HabitType: habit.TypeGood, Streak: 1, FirstCompletion: true})
	if strings.Contains(msg, "streak!") {
		t.Fatalf("unexpected streak suffix in %q", msg)
	}
	msg = Message(habit.PersonalityHarsh, State{Completed: false, HabitType: habit.TypeGood, PreviousStreak: 5})
	if strings.Contains(msg, "day streak") {
		t.Fatalf("unexpected streak suffix in %q", msg)
	}
}

func TestMessage_ComesFromPersonalityPool(t *testing.T) {
	s := State{Completed: false, HabitType: habit.TypeGood}
	for i := 0; i < 20; i++ {
		msg := Message(habit.PersonalityHarsh, s)
		found := false
		for _, want := range messages[habit.PersonalityHarsh][ctxMissed] {
			if msg == want {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("message %q not in the harsh missed pool", msg)
		}
	}
}

func TestMessage_UnknownPersonalityFallsBack(t *testing.T) {
	msg := Message(habit.Personality("mystery"), State{Completed: true, HabitType: habit.TypeGood, Streak: 1})
	if msg == "" {
		t.Fatal("expected a fallback message")
	}
}

func TestDescription(t *testing.T) {
	for _, p := range []habit.Personality{habit.PersonalityPositive, habit.PersonalityAdaptive, habit.PersonalityHarsh} {
		if Description(p) == "" {
			t.Fatalf("empty description for %q", p)
		}
	}
	if Description(habit.Personality("mystery")) != "" {
		t.Fatal("expected empty description for an unknown personality")
	}
}
