// Package bolt persists the habit store in a bbolt database.
//
// Layout:
//
//	users/<userID>/habits    habitID -> json(Habit)
//	users/<userID>/logs      habitID/date -> json(HabitLog)
//	users/<userID>/settings  "settings" -> json(UserSettings)
//	apikeys                  keyHash -> userID
package bolt

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/dpramesti/habitd/internal/storage"
	"github.com/dpramesti/habitd/pkg/habit"
	"go.etcd.io/bbolt"
)

const (
	usersBucket   = "users"
	apiKeysBucket = "apikeys"

	habitsBucket   = "habits"
	logsBucket     = "logs"
	settingsBucket = "settings"
	settingsKey    = "settings"
)

type Store struct {
	db *bbolt.DB
}

func Open(path string) (*Store, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, err
	}

	if err := db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(usersBucket)); err != nil {
			return err
		}
		_, err := tx.CreateBucketIfNotExists([]byte(apiKeysBucket))
		return err
	}); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// userBucket returns the named sub-bucket for userID, creating it in write
// transactions. In read transactions a missing bucket comes back nil.
func userBucket(tx *bbolt.Tx, userID, name string) (*bbolt.Bucket, error) {
	users := tx.Bucket([]byte(usersBucket))
	if !tx.Writable() {
		user := users.Bucket([]byte(userID))
		if user == nil {
			return nil, nil
		}
		return user.Bucket([]byte(name)), nil
	}
	user, err := users.CreateBucketIfNotExists([]byte(userID))
	if err != nil {
		return nil, err
	}
	return user.CreateBucketIfNotExists([]byte(name))
}

func logKey(habitID, date string) []byte {
	return fmt.Appendf(nil, "%s/%s", habitID, date)
}

func (s *Store) ListHabits(userID string) ([]habit.Habit, error) {
	out := []habit.Habit{}
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket, err := userBucket(tx, userID, habitsBucket)
		if err != nil || bucket == nil {
			return err
		}
		return bucket.ForEach(func(_, v []byte) error {
			var h habit.Habit
			if err := json.Unmarshal(v, &h); err != nil {
				return err
			}
			out = append(out, h)
			return nil
		})
	})
	return out, err
}

func (s *Store) GetHabit(userID, id string) (habit.Habit, bool, error) {
	var h habit.Habit
	var found bool
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket, err := userBucket(tx, userID, habitsBucket)
		if err != nil || bucket == nil {
			return err
		}
		v := bucket.Get([]byte(id))
		if v == nil {
			return nil
		}
		if err := json.Unmarshal(v, &h); err != nil {
			return err
		}
		found = true
		return nil
	})
	return h, found, err
}

func (s *Store) CreateHabit(userID string, h habit.Habit) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket, err := userBucket(tx, userID, habitsBucket)
		if err != nil {
			return err
		}
		val, err := json.Marshal(h)
		if err != nil {
			return err
		}
		return bucket.Put([]byte(h.ID), val)
	})
}

func (s *Store) UpdateHabit(userID, id string, upd habit.HabitUpdate) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket, err := userBucket(tx, userID, habitsBucket)
		if err != nil {
			return err
		}
		v := bucket.Get([]byte(id))
		if v == nil {
			return nil
		}
		var h habit.Habit
		if err := json.Unmarshal(v, &h); err != nil {
			return err
		}
		if upd.Name != nil {
			h.Name = *upd.Name
		}
		if upd.Type != nil {
			h.Type = *upd.Type
		}
		if upd.Streak != nil {
			h.Streak = *upd.Streak
		}
		if upd.LastCompletedDate != nil {
			h.LastCompletedDate = upd.LastCompletedDate
		}
		val, err := json.Marshal(h)
		if err != nil {
			return err
		}
		return bucket.Put([]byte(id), val)
	})
}

func (s *Store) DeleteHabit(userID, id string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		habits, err := userBucket(tx, userID, habitsBucket)
		if err != nil {
			return err
		}
		if err := habits.Delete([]byte(id)); err != nil {
			return err
		}

		// cascade: drop every log keyed under this habit
		logs, err := userBucket(tx, userID, logsBucket)
		if err != nil {
			return err
		}
		c := logs.Cursor()
		prefix := []byte(id + "/")
		for k, _ := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, _ = c.Next() {
			if err := c.Delete(); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Store) ListLogs(userID string) ([]habit.HabitLog, error) {
	out := []habit.HabitLog{}
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket, err := userBucket(tx, userID, logsBucket)
		if err != nil || bucket == nil {
			return err
		}
		return bucket.ForEach(func(_, v []byte) error {
			var l habit.HabitLog
			if err := json.Unmarshal(v, &l); err != nil {
				return err
			}
			out = append(out, l)
			return nil
		})
	})
	return out, err
}

func (s *Store) ListLogsForHabit(userID, habitID string) ([]habit.HabitLog, error) {
	out := []habit.HabitLog{}
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket, err := userBucket(tx, userID, logsBucket)
		if err != nil || bucket == nil {
			return err
		}
		c := bucket.Cursor()
		prefix := []byte(habitID + "/")
		for k, v := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, v = c.Next() {
			var l habit.HabitLog
			if err := json.Unmarshal(v, &l); err != nil {
				return err
			}
			out = append(out, l)
		}
		return nil
	})
	return out, err
}

// PutLog keys logs by habitID/date, so writing a day that already has a log
// overwrites it in place. The single Update transaction keeps the at-most-
// one-log-per-day invariant under concurrent writers.
func (s *Store) PutLog(userID string, l habit.HabitLog) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket, err := userBucket(tx, userID, logsBucket)
		if err != nil {
			return err
		}
		val, err := json.Marshal(l)
		if err != nil {
			return err
		}
		return bucket.Put(logKey(l.HabitID, l.Date), val)
	})
}

func (s *Store) GetSettings(userID string) (habit.UserSettings, error) {
	settings := habit.DefaultSettings()
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket, err := userBucket(tx, userID, settingsBucket)
		if err != nil || bucket == nil {
			return err
		}
		v := bucket.Get([]byte(settingsKey))
		if v == nil {
			return nil
		}
		return json.Unmarshal(v, &settings)
	})
	return settings, err
}

func (s *Store) PutSettings(userID string, settings habit.UserSettings) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket, err := userBucket(tx, userID, settingsBucket)
		if err != nil {
			return err
		}
		val, err := json.Marshal(settings)
		if err != nil {
			return err
		}
		return bucket.Put([]byte(settingsKey), val)
	})
}

func (s *Store) Snapshot(userID string) (storage.Snapshot, error) {
	snap := storage.Snapshot{
		Habits:   []habit.Habit{},
		Logs:     []habit.HabitLog{},
		Settings: habit.DefaultSettings(),
	}
	habits, err := s.ListHabits(userID)
	if err != nil {
		return snap, err
	}
	logs, err := s.ListLogs(userID)
	if err != nil {
		return snap, err
	}
	settings, err := s.GetSettings(userID)
	if err != nil {
		return snap, err
	}
	snap.Habits = habits
	snap.Logs = logs
	snap.Settings = settings
	return snap, nil
}

// Restore replaces the user's entire state in one transaction, so a failed
// import never leaves partial data behind.
func (s *Store) Restore(userID string, snap storage.Snapshot) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		users := tx.Bucket([]byte(usersBucket))
		if users.Bucket([]byte(userID)) != nil {
			if err := users.DeleteBucket([]byte(userID)); err != nil {
				return err
			}
		}

		habits, err := userBucket(tx, userID, habitsBucket)
		if err != nil {
			return err
		}
		for _, h := range snap.Habits {
			val, err := json.Marshal(h)
			if err != nil {
				return err
			}
			if err := habits.Put([]byte(h.ID), val); err != nil {
				return err
			}
		}

		logs, err := userBucket(tx, userID, logsBucket)
		if err != nil {
			return err
		}
		for _, l := range snap.Logs {
			val, err := json.Marshal(l)
			if err != nil {
				return err
			}
			if err := logs.Put(logKey(l.HabitID, l.Date), val); err != nil {
				return err
			}
		}

		settings, err := userBucket(tx, userID, settingsBucket)
		if err != nil {
			return err
		}
		val, err := json.Marshal(snap.Settings)
		if err != nil {
			return err
		}
		return settings.Put([]byte(settingsKey), val)
	})
}

func (s *Store) PutAPIKey(keyHash, userID string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(apiKeysBucket)).Put([]byte(keyHash), []byte(userID))
	})
}

func (s *Store) GetAPIKey(keyHash string) (string, bool, error) {
	var userID string
	var found bool
	err := s.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket([]byte(apiKeysBucket)).Get([]byte(keyHash))
		if v != nil {
			userID = string(v)
			found = true
		}
		return nil
	})
	return userID, found, err
}

func (s *Store) ListAPIKeyHashes(userID string) ([]string, error) {
	out := []string{}
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(apiKeysBucket)).ForEach(func(k, v []byte) error {
			if string(v) == userID {
				out = append(out, string(k))
			}
			return nil
		})
	})
	return out, err
}

func (s *Store) DeleteAPIKey(keyHash string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(apiKeysBucket)).Delete([]byte(keyHash))
	})
}

var _ storage.Store = (*Store)(nil)
