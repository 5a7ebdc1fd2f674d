package server

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoadScoresMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.json")

	s, err := LoadScores(path)
	if err != nil {
		t.Fatalf("LoadScores(%q) error = %v", path, err)
	}
	if got := s.Best(); got != 0 {
		t.Errorf("Best() = %d, want 0 for an empty table", got)
	}
	if got := s.Top(5); len(got) != 0 {
		t.Errorf("Top(5) = %v, want empty", got)
	}
}

func TestLoadScoresRejectsBadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadScores(path); err == nil {
		t.Error("LoadScores() error = nil, want parse error")
	}
}

func TestSubmitKeepsBestScore(t *testing.T) {
	s, err := LoadScores(filepath.Join(t.TempDir(), "scores.json"))
	if err != nil {
		t.Fatal(err)
	}

	steps := []struct {
		score       int
		wantChanged bool
	}{
		{120, true},
		{80, false},
		{120, false},
		{200, true},
	}
	for _, st := range steps {
		changed, err := s.Submit("ada", st.score)
		if err != nil {
			t.Fatalf("Submit(ada, %d) error = %v", st.score, err)
		}
		if changed != st.wantChanged {
			t.Errorf("Submit(ada, %d) changed = %v, want %v", st.score, changed, st.wantChanged)
		}
	}

	if got := s.Best(); got != 200 {
		t.Errorf("Best() = %d, want 200", got)
	}
}

func TestSubmitSkipsZeroScore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.json")
	s, err := LoadScores(path)
	if err != nil {
		t.Fatal(err)
	}

	changed, err := s.Submit("bob", 0)
	if err != nil {
		t.Fatalf("Submit(bob, 0) error = %v", err)
	}
	if changed {
		t.Error("Submit(bob, 0) changed = true, want false")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("a zero-score submission wrote %s", path)
	}
}

func TestSubmitDefaultsAnonymous(t *testing.T) {
	s, err := LoadScores(filepath.Join(t.TempDir(), "scores.json"))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := s.Submit("", 40); err != nil {
		t.Fatal(err)
	}
	got := s.Top(1)
	if len(got) != 1 || got[0].Name != "anonymous" {
		t.Errorf("Top(1) = %v, want [{anonymous 40}]", got)
	}
}

func TestScoresPersistAcrossLoads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.json")
	s, err := LoadScores(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Submit("ada", 120); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Submit("bob", 90); err != nil {
		t.Fatal(err)
	}

	reloaded, err := LoadScores(path)
	if err != nil {
		t.Fatalf("LoadScores() after save error = %v", err)
	}
	if got := reloaded.Best(); got != 120 {
		t.Errorf("Best() after reload = %d, want 120", got)
	}
	want := []Entry{{Name: "ada", Score: 120}, {Name: "bob", Score: 90}}
	if got := reloaded.Top(10); !reflect.DeepEqual(got, want) {
		t.Errorf("Top(10) after reload = %v, want %v", got, want)
	}
}

func TestTopOrdersByScoreThenName(t *testing.T) {
	s, err := LoadScores(filepath.Join(t.TempDir(), "scores.json"))
	if err != nil {
		t.Fatal(err)
	}
	for name, score := range map[string]int{"zed": 30, "bob": 50, "amy": 50, "cat": 10} {
		if _, err := s.Submit(name, score); err != nil {
			t.Fatal(err)
		}
	}

	want := []Entry{{Name: "amy", Score: 50}, {Name: "bob", Score: 50}, {Name: "zed", Score: 30}}
	if got := s.Top(3); !reflect.DeepEqual(got, want) {
		t.Errorf("Top(3) = %v, want %v", got, want)
	}
}
