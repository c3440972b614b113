package habit

import (
	"fmt"
	"time"
)

const maxNameLength = 60

func ValidType(t HabitType) bool {
	return t == TypeGood || t == TypeBad
}

func ValidPersonality(p Personality) bool {
	switch p {
	case PersonalityPositive, PersonalityAdaptive, PersonalityHarsh:
		return true
	}
	return false
}

// ValidateCreate checks a habit creation payload. Validation runs before
// anything reaches the store.
func ValidateCreate(name string, t HabitType) error {
	if len(name) == 0 || len(name) > maxNameLength {
		return fmt.Errorf("name: must be 1-%d characters", maxNameLength)
	}
	if !ValidType(t) {
		return fmt.Errorf("type: must be %q or %q", TypeGood, TypeBad)
	}
	return nil
}

func ValidateUpdate(u HabitUpdate) error {
	if u.Name != nil && (len(*u.Name) == 0 || len(*u.Name) > maxNameLength) {
		return fmt.Errorf("name: must be 1-%d characters", maxNameLength)
	}
	if u.Type != nil && !ValidType(*u.Type) {
		return fmt.Errorf("type: must be %q or %q", TypeGood, TypeBad)
	}
	if u.Streak != nil && *u.Streak < 0 {
		return fmt.Errorf("streak: must be >= 0")
	}
	return nil
}

func ValidateSettings(s UserSettings) error {
	if s.Language != "en" && s.Language != "id" {
		return fmt.Errorf("language: must be \"en\" or \"id\"")
	}
	if !ValidPersonality(s.MotivatorPersonality) {
		return fmt.Errorf("motivatorPersonality: must be %q, %q or %q",
			PersonalityPositive, PersonalityAdaptive, PersonalityHarsh)
	}
	return nil
}

// ParseDate parses a YYYY-MM-DD day string in the local timezone.
func ParseDate(s string) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("date: must be YYYY-MM-DD")
	}
	return d, nil
}
