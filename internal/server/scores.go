package server

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"
)

// Scores is the persistent high-score table, shared by every session and
// saved as JSON after each new best.
type Scores struct {
	mu      sync.Mutex
	path    string
	entries map[string]int
}

// Entry is one name/score pair.
type Entry struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// LoadScores reads the table at path. A missing file starts an empty
// table; it is created on the first submission.
func LoadScores(path string) (*Scores, error) {
	s := &Scores{path: path, entries: make(map[string]int)}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read scores %s: %w", path, err)
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse scores %s: %w", path, err)
	}
	for _, e := range entries {
		s.entries[e.Name] = e.Score
	}
	return s, nil
}

// Best returns the highest score on the table, 0 when empty.
func (s *Scores) Best() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	best := 0
	for _, v := range s.entries {
		if v > best {
			best = v
		}
	}
	return best
}

// Submit records score under name if it beats that name's previous best.
// Reports whether the table changed.
func (s *Scores) Submit(name string, score int) (bool, error) {
	if score <= 0 {
		return false, nil
	}
	if name == "" {
		name = "anonymous"
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if prev, ok := s.entries[name]; ok && prev >= score {
		return false, nil
	}
	s.entries[name] = score
	return true, s.save()
}

// Top returns the n highest entries, best first, ties by name.
func (s *Scores) Top(n int) []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := s.sorted()
	if n < len(entries) {
		entries = entries[:n]
	}
	return entries
}

// sorted expects s.mu to be held.
func (s *Scores) sorted() []Entry {
	entries := make([]Entry, 0, len(s.entries))
	for name, score := range s.entries {
		entries = append(entries, Entry{Name: name, Score: score})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].Name < entries[j].Name
	})
	return entries
}

// save expects s.mu to be held.
func (s *Scores) save() error {
	data, err := json.MarshalIndent(s.sorted(), "", "  ")
	if err != nil {
		return fmt.Errorf("encode scores: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write scores %s: %w", s.path, err)
	}
	return nil
}
