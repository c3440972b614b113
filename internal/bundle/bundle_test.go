package bundle

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/dpramesti/habitd/internal/storage/mem"
	"github.com/dpramesti/habitd/pkg/habit"
)

const testUser = "testuser"

func validBundle() Bundle {
	h := habit.NewHabit("guitar", habit.TypeGood)
	l := habit.NewLog(h.ID, true, time.Now())
	return Bundle{
		Version: Version,
		Meta: Meta{
			ExportedAt: time.Now().Format(time.RFC3339),
			Counts:     Counts{Habits: 1, Logs: 1},
		},
		Habits:   []habit.Habit{h},
		Logs:     []habit.HabitLog{l},
		Settings: habit.DefaultSettings(),
	}
}

func TestValidate_OK(t *testing.T) {
	if err := Validate(validBundle()); err != nil {
		t.Fatalf("valid bundle rejected: %v", err)
	}
}

func TestValidate_Errors(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Bundle)
		wantSub string
	}{
		{"wrong version", func(b *Bundle) { b.Version = "2" }, "version"},
		{"habit missing id", func(b *Bundle) { b.Habits[0].ID = "" }, "habits[0].id"},
		{"habit missing name", func(b *Bundle) { b.Habits[0].Name = "" }, "habits[0].name"},
		{"habit bad type", func(b *Bundle) { b.Habits[0].Type = "neutral" }, "habits[0].type"},
		{"habit negative streak", func(b *Bundle) { b.Habits[0].Streak = -1 }, "habits[0].streak"},
		{"habit zero createdAt", func(b *Bundle) { b.Habits[0].CreatedAt = time.Time{} }, "habits[0].createdAt"},
		{"log missing id", func(b *Bundle) { b.Logs[0].ID = "" }, "logs[0].id"},
		{"log missing habitId", func(b *Bundle) { b.Logs[0].HabitID = "" }, "logs[0].habitId"},
		{"log bad date", func(b *Bundle) { b.Logs[0].Date = "01/02/2024" }, "logs[0]"},
		{"log zero timestamp", func(b *Bundle) { b.Logs[0].Timestamp = time.Time{} }, "logs[0].timestamp"},
		{"bad settings", func(b *Bundle) { b.Settings.Language = "fr" }, "settings"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := validBundle()
			tc.mutate(&b)
			err := Validate(b)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tc.wantSub) {
				t.Fatalf("error %q does not mention %q", err, tc.wantSub)
			}
		})
	}
}

func TestParse_RejectsGarbage(t *testing.T) {
	if _, err := Parse([]byte("{not json")); err == nil {
		t.Fatal("expected an error for malformed JSON")
	}
	if _, err := Parse([]byte(`{"version":"1"}`)); err == nil {
		t.Fatal("expected an error for an incomplete document")
	}
}

func TestExportImport_RoundTrip(t *testing.T) {
	src := mem.New()
	h := habit.NewHabit("guitar", habit.TypeGood)
	if err := src.CreateHabit(testUser, h); err != nil {
		t.Fatalf("CreateHabit failed: %v", err)
	}
	if err := src.PutLog(testUser, habit.NewLog(h.ID, true, time.Now())); err != nil {
		t.Fatalf("PutLog failed: %v", err)
	}

	exported, err := Export(src, testUser)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if exported.Version != Version {
		t.Fatalf("version = %q, want %q", exported.Version, Version)
	}
	if exported.Meta.Counts.Habits != 1 || exported.Meta.Counts.Logs != 1 {
		t.Fatalf("unexpected counts %+v", exported.Meta.Counts)
	}

	data, err := json.Marshal(exported)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	parsed, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	dst := mem.New()
	if err := Import(dst, testUser, parsed); err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	habits, err := dst.ListHabits(testUser)
	if err != nil {
		t.Fatalf("ListHabits failed: %v", err)
	}
	if len(habits) != 1 || habits[0].ID != h.ID || habits[0].Name != "guitar" {
		t.Fatalf("unexpected habits after import: %+v", habits)
	}
	logs, err := dst.ListLogs(testUser)
	if err != nil {
		t.Fatalf("ListLogs failed: %v", err)
	}
	if len(logs) != 1 || logs[0].HabitID != h.ID {
		t.Fatalf("unexpected logs after import: %+v", logs)
	}
}

func TestImport_RefreshesStreakCache(t *testing.T) {
	b := validBundle()
	// stale cache value, contradicted by the single log dated today
	b.Habits[0].Streak = 42

	dst := mem.New()
	if err := Import(dst, testUser, b); err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	got, found, err := dst.GetHabit(testUser, b.Habits[0].ID)
	if err != nil || !found {
		t.Fatalf("GetHabit failed: found=%v err=%v", found, err)
	}
	if got.Streak != 1 {
		t.Fatalf("streak cache = %d, want 1 (recomputed from logs)", got.Streak)
	}
}

func TestImport_InvalidLeavesStoreUntouched(t *testing.T) {
	dst := mem.New()
	existing := habit.NewHabit("keep me", habit.TypeGood)
	if err := dst.CreateHabit(testUser, existing); err != nil {
		t.Fatalf("CreateHabit failed: %v", err)
	}

	b := validBundle()
	b.Version = "99"
	if err := Import(dst, testUser, b); err == nil {
		t.Fatal("expected an error")
	}

	habits, err := dst.ListHabits(testUser)
	if err != nil {
		t.Fatalf("ListHabits failed: %v", err)
	}
	if len(habits) != 1 || habits[0].ID != existing.ID {
		t.Fatalf("failed import mutated the store: %+v", habits)
	}
}
