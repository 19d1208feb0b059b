package main

import (
	"cmp"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"
)

var (
	errActivityNotFound = errors.New("activity not found")
	errNoCrossword      = errors.New("activity has no crossword")
)

// Store holds activities and game sessions in memory. When dir is set every
// activity is also written to dir as <id>.json and reloaded by OpenStore.
type Store struct {
	mu         sync.RWMutex
	dir        string
	activities map[string]*Activity
	games      map[string]*GameSession
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		activities: make(map[string]*Activity),
		games:      make(map[string]*GameSession),
	}
}

// OpenStore creates a store persisted in dir and loads the activities already there.
func OpenStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	s := NewStore()
	s.dir = dir

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read data dir: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", e.Name(), err)
		}
		var a Activity
		if err := json.Unmarshal(data, &a); err != nil || a.ID == "" {
			continue
		}
		s.activities[a.ID] = &a
	}
	return s, nil
}

// SaveActivity assigns an ID and a creation time to a and stores it.
func (s *Store) SaveActivity(a *Activity) error {
	a.ID = generateID()
	a.CreatedAt = time.Now()

	if s.dir != "" {
		data, err := json.MarshalIndent(a, "", "  ")
		if err != nil {
			return fmt.Errorf("encode activity: %w", err)
		}
		if err := os.WriteFile(s.path(a.ID), data, 0o644); err != nil {
			return fmt.Errorf("write activity: %w", err)
		}
	}

	s.mu.Lock()
	s.activities[a.ID] = a
	s.mu.Unlock()
	return nil
}

// GetActivity returns an activity by ID, or nil if not found.
func (s *Store) GetActivity(id string) *Activity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activities[id]
}

// ListActivities returns all activities, most recent first.
func (s *Store) ListActivities() []*Activity {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]*Activity, 0, len(s.activities))
	for _, a := range s.activities {
		list = append(list, a)
	}
	slices.SortFunc(list, func(a, b *Activity) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return list
}

// DeleteActivity removes an activity and the games played on it.
func (s *Store) DeleteActivity(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.activities[id]; !ok {
		return fmt.Errorf("%w: %s", errActivityNotFound, id)
	}
	if s.dir != "" {
		if err := os.Remove(s.path(id)); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("remove activity: %w", err)
		}
	}
	delete(s.activities, id)
	for gid, g := range s.games {
		if g.ActivityID == id {
			delete(s.games, gid)
		}
	}
	return nil
}

// CreateGame starts a fill-in session on the crossword of an activity.
func (s *Store) CreateGame(activityID string) (*GameSession, error) {
	s.mu.RLock()
	a := s.activities[activityID]
	s.mu.RUnlock()

	if a == nil {
		return nil, fmt.Errorf("%w: %s", errActivityNotFound, activityID)
	}
	if a.Crossword == nil || len(a.Crossword.PlacedWords) == 0 {
		return nil, errNoCrossword
	}

	game := NewGameSession(generateID(), activityID, *a.Crossword)

	s.mu.Lock()
	s.games[game.ID] = game
	s.mu.Unlock()

	return game, nil
}

// GetGame returns a game session by ID, or nil if not found.
func (s *Store) GetGame(id string) *GameSession {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.games[id]
}

// ListGames returns the sessions of an activity, oldest first.
func (s *Store) ListGames(activityID string) []*GameSession {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var list []*GameSession
	for _, g := range s.games {
		if g.ActivityID == activityID {
			list = append(list, g)
		}
	}
	slices.SortFunc(list, func(a, b *GameSession) int {
		return cmp.Compare(a.CreatedAt.UnixNano(), b.CreatedAt.UnixNano())
	})
	return list
}

func (s *Store) path(id string) string {
	return filepath.Join(s.dir, filepath.Base(id)+".json")
}

func generateID() string {
	b := make([]byte, 8)
	rand.Read(b)
	return hex.EncodeToString(b)
}
