package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/dpramesti/habitd/internal/bundle"
	"github.com/dpramesti/habitd/internal/config"
	"github.com/dpramesti/habitd/internal/storage/mem"
	"github.com/dpramesti/habitd/pkg/habit"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	s, err := New(mem.New(), &config.Config{})
	if err != nil {
		t.Fatalf("failed to build server: %v", err)
	}
	return s.Router()
}

func mockRequest(h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	return rr
}

func createHabit(t *testing.T, h http.Handler, name string, typ habit.HabitType) habit.Habit {
	t.Helper()
	rr := mockRequest(h, http.MethodPost, "/api/habits", map[string]any{"name": name, "type": typ})
	if rr.Code != http.StatusCreated {
		t.Fatalf("create habit: got %d want 201, body %s", rr.Code, rr.Body.String())
	}
	var created habit.Habit
	if err := json.Unmarshal(rr.Body.Bytes(), &created); err != nil {
		t.Fatalf("unmarshal habit: %v", err)
	}
	return created
}

func TestListHabits_Empty(t *testing.T) {
	h := newTestServer(t)
	rr := mockRequest(h, http.MethodGet, "/api/habits", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("got %d want 200", rr.Code)
	}
	var habits []habit.Habit
	if err := json.Unmarshal(rr.Body.Bytes(), &habits); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if len(habits) != 0 {
		t.Fatalf("len=%d want 0", len(habits))
	}
}

func TestCreateHabit(t *testing.T) {
	h := newTestServer(t)
	created := createHabit(t, h, "Drink Water", habit.TypeGood)

	if created.ID == "" {
		t.Fatal("expected a generated id")
	}
	if created.Streak != 0 {
		t.Fatalf("new habit streak = %d, want 0", created.Streak)
	}
	if created.CreatedAt.IsZero() {
		t.Fatal("expected createdAt to be set")
	}
}

func TestCreateHabit_Invalid(t *testing.T) {
	h := newTestServer(t)

	cases := []struct {
		name string
		body map[string]any
	}{
		{"empty name", map[string]any{"name": "", "type": "good"}},
		{"unknown type", map[string]any{"name": "x", "type": "neutral"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := mockRequest(h, http.MethodPost, "/api/habits", tc.body)
			if rr.Code != http.StatusBadRequest {
				t.Fatalf("got %d want 400", rr.Code)
			}
			var resp ErrorResponse
			if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil || resp.Error == "" {
				t.Fatalf("expected error body, got %s", rr.Body.String())
			}
		})
	}
}

func TestTrack_ReplacesSameDay(t *testing.T) {
	h := newTestServer(t)
	created := createHabit(t, h, "Drink Water", habit.TypeGood)

	rr := mockRequest(h, http.MethodPost, "/api/habits/"+created.ID+"/track", TrackRequest{Completed: true})
	if rr.Code != http.StatusCreated {
		t.Fatalf("got %d want 201, body %s", rr.Code, rr.Body.String())
	}
	rr = mockRequest(h, http.MethodPost, "/api/habits/"+created.ID+"/track", TrackRequest{Completed: true})
	if rr.Code != http.StatusCreated {
		t.Fatalf("got %d want 201", rr.Code)
	}

	rr = mockRequest(h, http.MethodGet, "/api/habits/"+created.ID+"/logs", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("got %d want 200", rr.Code)
	}
	var logs []habit.HabitLog
	if err := json.Unmarshal(rr.Body.Bytes(), &logs); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("expected exactly 1 log after re-log, got %d", len(logs))
	}
	if !logs[0].Completed {
		t.Fatal("expected the last completed value to win")
	}
	if logs[0].Date != time.Now().Format(habit.DateLayout) {
		t.Fatalf("log date = %s, want today", logs[0].Date)
	}
}

func TestTrack_LastWriteWins(t *testing.T) {
	h := newTestServer(t)
	created := createHabit(t, h, "No Smoking", habit.TypeBad)

	mockRequest(h, http.MethodPost, "/api/habits/"+created.ID+"/track", TrackRequest{Completed: true})
	mockRequest(h, http.MethodPost, "/api/habits/"+created.ID+"/track", TrackRequest{Completed: false})

	rr := mockRequest(h, http.MethodGet, "/api/habits/"+created.ID+"/logs", nil)
	var logs []habit.HabitLog
	if err := json.Unmarshal(rr.Body.Bytes(), &logs); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if len(logs) != 1 || logs[0].Completed {
		t.Fatalf("expected one log with completed=false, got %+v", logs)
	}
}

func TestTrack_UnknownHabit(t *testing.T) {
	h := newTestServer(t)
	rr := mockRequest(h, http.MethodPost, "/api/habits/nope/track", TrackRequest{Completed: true})
	if rr.Code != http.StatusNotFound {
		t.Fatalf("got %d want 404", rr.Code)
	}
}

func TestTrack_RefreshesStreakCache(t *testing.T) {
	h := newTestServer(t)
	created := createHabit(t, h, "Drink Water", habit.TypeGood)

	mockRequest(h, http.MethodPost, "/api/habits/"+created.ID+"/track", TrackRequest{Completed: true})

	rr := mockRequest(h, http.MethodGet, "/api/habits/"+created.ID, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("got %d want 200", rr.Code)
	}
	var got habit.Habit
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if got.Streak != 1 {
		t.Fatalf("streak cache = %d, want 1", got.Streak)
	}
	if got.LastCompletedDate == nil {
		t.Fatal("expected lastCompletedDate to be set")
	}
}

func TestDeleteHabit_CascadesLogs(t *testing.T) {
	h := newTestServer(t)
	created := createHabit(t, h, "Drink Water", habit.TypeGood)
	mockRequest(h, http.MethodPost, "/api/habits/"+created.ID+"/track", TrackRequest{Completed: true})

	rr := mockRequest(h, http.MethodDelete, "/api/habits/"+created.ID, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("got %d want 200", rr.Code)
	}
	var resp SuccessResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil || !resp.Success {
		t.Fatalf("expected success body, got %s", rr.Body.String())
	}

	rr = mockRequest(h, http.MethodGet, "/api/habits/"+created.ID+"/logs", nil)
	var logs []habit.HabitLog
	if err := json.Unmarshal(rr.Body.Bytes(), &logs); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if len(logs) != 0 {
		t.Fatalf("expected 0 logs after cascade delete, got %d", len(logs))
	}
}

func TestSettings_DefaultsAndReplace(t *testing.T) {
	h := newTestServer(t)

	rr := mockRequest(h, http.MethodGet, "/api/settings", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("got %d want 200", rr.Code)
	}
	var settings habit.UserSettings
	if err := json.Unmarshal(rr.Body.Bytes(), &settings); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if settings != habit.DefaultSettings() {
		t.Fatalf("got %+v, want defaults", settings)
	}

	next := habit.UserSettings{
		DarkMode:             true,
		Language:             "id",
		MotivatorPersonality: habit.PersonalityHarsh,
		FullscreenMode:       true,
	}
	rr = mockRequest(h, http.MethodPut, "/api/settings", next)
	if rr.Code != http.StatusOK {
		t.Fatalf("got %d want 200, body %s", rr.Code, rr.Body.String())
	}

	rr = mockRequest(h, http.MethodGet, "/api/settings", nil)
	if err := json.Unmarshal(rr.Body.Bytes(), &settings); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if settings != next {
		t.Fatalf("got %+v, want %+v", settings, next)
	}
}

func TestSettings_InvalidRejected(t *testing.T) {
	h := newTestServer(t)
	rr := mockRequest(h, http.MethodPut, "/api/settings", map[string]any{
		"darkMode":             false,
		"language":             "fr",
		"motivatorPersonality": "positive",
		"fullscreenMode":       false,
	})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("got %d want 400", rr.Code)
	}
}

func TestHistory_ExcludesNotYetCreated(t *testing.T) {
	h := newTestServer(t)
	created := createHabit(t, h, "Drink Water", habit.TypeGood)

	yesterday := time.Now().AddDate(0, 0, -1).Format(habit.DateLayout)
	rr := mockRequest(h, http.MethodGet, "/api/history/"+yesterday, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("got %d want 200", rr.Code)
	}
	var resp HistoryResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if _, present := resp.Habits[created.ID]; present {
		t.Fatal("habit created today must not appear in yesterday's history")
	}

	today := time.Now().Format(habit.DateLayout)
	rr = mockRequest(h, http.MethodGet, "/api/history/"+today, nil)
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if _, present := resp.Habits[created.ID]; !present {
		t.Fatal("habit created today must appear in today's history")
	}
}

func TestHistory_BadDate(t *testing.T) {
	h := newTestServer(t)
	rr := mockRequest(h, http.MethodGet, "/api/history/not-a-date", nil)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("got %d want 400", rr.Code)
	}
}

func TestStatsEndpoint(t *testing.T) {
	h := newTestServer(t)
	created := createHabit(t, h, "Drink Water", habit.TypeGood)
	createHabit(t, h, "No Smoking", habit.TypeBad)
	mockRequest(h, http.MethodPost, "/api/habits/"+created.ID+"/track", TrackRequest{Completed: true})

	rr := mockRequest(h, http.MethodGet, "/api/stats", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("got %d want 200", rr.Code)
	}
	var summary habit.StatSummary
	if err := json.Unmarshal(rr.Body.Bytes(), &summary); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if summary.TotalHabits != 2 || summary.GoodHabits != 1 || summary.BadHabits != 1 {
		t.Fatalf("unexpected summary %+v", summary)
	}
	if summary.TodayCompletion != 1 || summary.TotalStreak != 1 {
		t.Fatalf("unexpected summary %+v", summary)
	}
}

func TestExportImport_RoundTrip(t *testing.T) {
	h := newTestServer(t)

	var ids []string
	for i := 0; i < 3; i++ {
		created := createHabit(t, h, fmt.Sprintf("habit-%d", i), habit.TypeGood)
		ids = append(ids, created.ID)
	}
	for _, id := range ids {
		mockRequest(h, http.MethodPost, "/api/habits/"+id+"/track", TrackRequest{Completed: true})
	}

	rr := mockRequest(h, http.MethodGet, "/api/export", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("export: got %d want 200", rr.Code)
	}
	var exported bundle.Bundle
	if err := json.Unmarshal(rr.Body.Bytes(), &exported); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if exported.Meta.Counts.Habits != 3 || exported.Meta.Counts.Logs != 3 {
		t.Fatalf("unexpected counts %+v", exported.Meta.Counts)
	}

	// import into a fresh server, re-export and compare state
	fresh := newTestServer(t)
	rr = mockRequest(fresh, http.MethodPost, "/api/import", exported)
	if rr.Code != http.StatusOK {
		t.Fatalf("import: got %d want 200, body %s", rr.Code, rr.Body.String())
	}

	rr = mockRequest(fresh, http.MethodGet, "/api/export", nil)
	var reexported bundle.Bundle
	if err := json.Unmarshal(rr.Body.Bytes(), &reexported); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}

	sortByID := func(b *bundle.Bundle) {
		for i := range b.Habits {
			for j := i + 1; j < len(b.Habits); j++ {
				if b.Habits[j].ID < b.Habits[i].ID {
					b.Habits[i], b.Habits[j] = b.Habits[j], b.Habits[i]
				}
			}
		}
		for i := range b.Logs {
			for j := i + 1; j < len(b.Logs); j++ {
				if b.Logs[j].ID < b.Logs[i].ID {
					b.Logs[i], b.Logs[j] = b.Logs[j], b.Logs[i]
				}
			}
		}
	}
	sortByID(&exported)
	sortByID(&reexported)

	if !reflect.DeepEqual(exported.Habits, reexported.Habits) {
		t.Fatalf("habits differ after round trip:\n%+v\n%+v", exported.Habits, reexported.Habits)
	}
	if !reflect.DeepEqual(exported.Logs, reexported.Logs) {
		t.Fatalf("logs differ after round trip:\n%+v\n%+v", exported.Logs, reexported.Logs)
	}
	if exported.Settings != reexported.Settings {
		t.Fatalf("settings differ after round trip: %+v vs %+v", exported.Settings, reexported.Settings)
	}
}

func TestImport_InvalidBundleChangesNothing(t *testing.T) {
	h := newTestServer(t)
	createHabit(t, h, "Drink Water", habit.TypeGood)

	rr := mockRequest(h, http.MethodPost, "/api/import", map[string]any{"version": "99"})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("got %d want 400", rr.Code)
	}

	rr = mockRequest(h, http.MethodGet, "/api/habits", nil)
	var habits []habit.Habit
	if err := json.Unmarshal(rr.Body.Bytes(), &habits); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if len(habits) != 1 {
		t.Fatalf("failed import must not mutate the store, have %d habits", len(habits))
	}
}

func TestHealthz(t *testing.T) {
	h := newTestServer(t)
	rr := mockRequest(h, http.MethodGet, "/healthz", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("got %d want 200", rr.Code)
	}
}
