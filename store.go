package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	badger "github.com/dgraph-io/badger/v3"
	"go.uber.org/zap"
)

// keyNamespace prefixes every key so the store can be shared with other tools
// without collisions. Key shape: <namespace>_<entityKind>_<scope>.
const keyNamespace = "healthTracker"

// errNotFound is returned when a key has no value. Callers translate it to
// 404 or to a zero-value default depending on the entity.
var errNotFound = errors.New("not found")

// Store is the persistence collaborator: a string-keyed K/V store holding
// JSON-serialized collections. All collection mutations are read-modify-write
// with a full-collection write back; last write wins.
type Store struct {
	db     *badger.DB
	logger *zap.Logger
}

// openStore opens (or creates) the badger database at dir. Badger's own
// chatty logger is silenced; store-level failures surface through ours.
func openStore(dir string, logger *zap.Logger) (*Store, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open store at %s: %w", dir, err)
	}
	return &Store{db: db, logger: logger}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func storeKey(kind, scope string) []byte {
	return []byte(keyNamespace + "_" + kind + "_" + scope)
}

// getJSON loads and unmarshals the value at kind/scope into out.
func (s *Store) getJSON(kind, scope string, out any) error {
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(storeKey(kind, scope))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, out)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return errNotFound
	}
	return err
}

// setJSON marshals v and writes it at kind/scope, replacing any prior value.
func (s *Store) setJSON(kind, scope string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", kind, err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(storeKey(kind, scope), data)
	})
}

/* ─── Users ──────────────────────────────────────────────────────────── */

// CreateUser stores the account record plus a token index key so the auth
// middleware can resolve bearer tokens without scanning.
func (s *Store) CreateUser(u user) error {
	var existing user
	if err := s.getJSON("user", u.Username, &existing); err == nil {
		return fmt.Errorf("user %q already exists", u.Username)
	} else if !errors.Is(err, errNotFound) {
		return err
	}
	if err := s.setJSON("user", u.Username, u); err != nil {
		return err
	}
	return s.setJSON("token", u.AuthToken, u.Username)
}

// UserByName looks up an account by username.
func (s *Store) UserByName(username string) (user, error) {
	var u user
	err := s.getJSON("user", username, &u)
	return u, err
}

// UserByToken resolves a bearer token to its account via the token index.
func (s *Store) UserByToken(token string) (user, error) {
	var username string
	if err := s.getJSON("token", token, &username); err != nil {
		return user{}, err
	}
	return s.UserByName(username)
}

/* ─── Weight entries ─────────────────────────────────────────────────── */

// WeightEntries returns the user's weight log, oldest first. A user with no
// log gets an empty slice, not an error.
func (s *Store) WeightEntries(userID string) ([]weightEntry, error) {
	var entries []weightEntry
	if err := s.getJSON("weights", userID, &entries); err != nil && !errors.Is(err, errNotFound) {
		return nil, err
	}
	return entries, nil
}

// AddWeightEntry appends an entry and writes the collection back sorted
// ascending by date. Same-day entries keep insertion order.
func (s *Store) AddWeightEntry(userID string, e weightEntry) error {
	entries, err := s.WeightEntries(userID)
	if err != nil {
		return err
	}
	entries = append(entries, e)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.Time.Before(entries[j].Date.Time)
	})
	return s.setJSON("weights", userID, entries)
}

// DeleteWeightEntry removes the entry with the given ID. Reports whether an
// entry was actually removed.
func (s *Store) DeleteWeightEntry(userID, id string) (bool, error) {
	entries, err := s.WeightEntries(userID)
	if err != nil {
		return false, err
	}
	kept := entries[:0]
	removed := false
	for _, e := range entries {
		if e.ID == id {
			removed = true
			continue
		}
		kept = append(kept, e)
	}
	if !removed {
		return false, nil
	}
	return true, s.setJSON("weights", userID, kept)
}

/* ─── Calorie entries ────────────────────────────────────────────────── */

// CalorieEntries returns the user's meal log, oldest first.
func (s *Store) CalorieEntries(userID string) ([]calorieEntry, error) {
	var entries []calorieEntry
	if err := s.getJSON("calories", userID, &entries); err != nil && !errors.Is(err, errNotFound) {
		return nil, err
	}
	return entries, nil
}

// AddCalorieEntry appends a meal record, keeping the collection sorted
// ascending by date.
func (s *Store) AddCalorieEntry(userID string, e calorieEntry) error {
	entries, err := s.CalorieEntries(userID)
	if err != nil {
		return err
	}
	entries = append(entries, e)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.Time.Before(entries[j].Date.Time)
	})
	return s.setJSON("calories", userID, entries)
}

// DeleteCalorieEntry removes the meal record with the given ID.
func (s *Store) DeleteCalorieEntry(userID, id string) (bool, error) {
	entries, err := s.CalorieEntries(userID)
	if err != nil {
		return false, err
	}
	kept := entries[:0]
	removed := false
	for _, e := range entries {
		if e.ID == id {
			removed = true
			continue
		}
		kept = append(kept, e)
	}
	if !removed {
		return false, nil
	}
	return true, s.setJSON("calories", userID, kept)
}

/* ─── Singletons ─────────────────────────────────────────────────────── */

// PersonalInfo loads the user's biometric profile.
func (s *Store) PersonalInfo(userID string) (personalInfo, error) {
	var info personalInfo
	err := s.getJSON("personalInfo", userID, &info)
	return info, err
}

// SetPersonalInfo overwrites the profile wholesale.
func (s *Store) SetPersonalInfo(userID string, info personalInfo) error {
	return s.setJSON("personalInfo", userID, info)
}

// EnergyResults loads the cached derived energy numbers.
func (s *Store) EnergyResults(userID string) (calorieResults, error) {
	var res calorieResults
	err := s.getJSON("energy", userID, &res)
	return res, err
}

// SetEnergyResults replaces the cached energy numbers.
func (s *Store) SetEnergyResults(userID string, res calorieResults) error {
	return s.setJSON("energy", userID, res)
}

// WeightGoalFor loads the user's active goal.
func (s *Store) WeightGoalFor(userID string) (weightGoal, error) {
	var g weightGoal
	err := s.getJSON("weightGoal", userID, &g)
	return g, err
}

// SetWeightGoal replaces the active goal wholesale; goals are never merged.
func (s *Store) SetWeightGoal(userID string, g weightGoal) error {
	return s.setJSON("weightGoal", userID, g)
}
