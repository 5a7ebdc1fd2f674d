package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"pixel-invaders/internal/game"
	"pixel-invaders/internal/sprite"
)

func newTestWebServer(t *testing.T) *WebServer {
	t.Helper()
	scores, err := LoadScores(filepath.Join(t.TempDir(), "scores.json"))
	if err != nil {
		t.Fatal(err)
	}
	assets, err := sprite.Load()
	if err != nil {
		t.Fatal(err)
	}
	return NewWebServer(":0", assets, scores, zap.NewNop())
}

func TestHandleHealth(t *testing.T) {
	s := newTestWebServer(t)
	rec := httptest.NewRecorder()

	s.handleHealth(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if got := rec.Body.String(); got != "ok" {
		t.Errorf("body = %q, want %q", got, "ok")
	}
}

func TestHandleScores(t *testing.T) {
	s := newTestWebServer(t)
	if _, err := s.scores.Submit("ada", 120); err != nil {
		t.Fatal(err)
	}
	if _, err := s.scores.Submit("bob", 90); err != nil {
		t.Fatal(err)
	}

	rec := httptest.NewRecorder()
	s.handleScores(rec, httptest.NewRequest(http.MethodGet, "/scores", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	var got []Entry
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	want := []Entry{{Name: "ada", Score: 120}, {Name: "bob", Score: 90}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("scores = %v, want %v", got, want)
	}
}

func TestHandleIndex(t *testing.T) {
	s := newTestWebServer(t)

	rec := httptest.NewRecorder()
	s.handleIndex(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status for / = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), "<canvas") {
		t.Error("index page does not contain the game canvas")
	}

	rec = httptest.NewRecorder()
	s.handleIndex(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status for /missing = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestTakeInputLatchesFireAndRestart(t *testing.T) {
	c := newWebClient(nil, "tester", nil, nil, zap.NewNop())
	c.mu.Lock()
	c.input = clientInput{Dir: "left", Fire: true, Restart: true}
	c.mu.Unlock()

	controls, restart := c.takeInput()
	if controls.Dir != game.DirLeft {
		t.Errorf("Dir = %v, want DirLeft", controls.Dir)
	}
	if !controls.Fire || !restart {
		t.Errorf("Fire = %v, restart = %v, want both true", controls.Fire, restart)
	}

	controls, restart = c.takeInput()
	if controls.Dir != game.DirLeft {
		t.Errorf("Dir after second take = %v, want DirLeft to persist", controls.Dir)
	}
	if controls.Fire || restart {
		t.Errorf("Fire = %v, restart = %v after second take, want both consumed", controls.Fire, restart)
	}
}

func TestWebSocketSessionSendsHelloAndFrames(t *testing.T) {
	s := newTestWebServer(t)
	server := httptest.NewServer(http.HandlerFunc(s.handleWS))
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "?name=tester"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", url, err)
	}
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	kind, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read hello: %v", err)
	}
	if kind != websocket.TextMessage {
		t.Fatalf("first message kind = %d, want text", kind)
	}
	var hello helloMessage
	if err := json.Unmarshal(data, &hello); err != nil {
		t.Fatalf("decode hello: %v", err)
	}
	if hello.Type != "hello" || hello.Width != game.ScreenWidth || hello.Height != game.ScreenHeight {
		t.Errorf("hello = %+v, want type hello and %dx%d", hello, game.ScreenWidth, game.ScreenHeight)
	}

	// The simulation streams a frame every other tick.
	for {
		kind, data, err = conn.ReadMessage()
		if err != nil {
			t.Fatalf("read frame: %v", err)
		}
		if kind != websocket.BinaryMessage {
			continue
		}
		if want := game.ScreenWidth * game.ScreenHeight * 4; len(data) != want {
			t.Errorf("frame size = %d, want %d", len(data), want)
		}
		return
	}
}
