package server

import (
	"fmt"
	"io"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/gliderlabs/ssh"
	"go.uber.org/zap"

	"pixel-invaders/internal/game"
	"pixel-invaders/internal/render"
	"pixel-invaders/internal/sprite"
)

// tickInterval paces each session's simulation loop. The world consumes
// real elapsed time, so loop jitter never skews the tick count.
const tickInterval = time.Second / 60

// holdTicks is how long one keypress keeps steering the cannon.
// Terminals deliver discrete repeats, not key-up events; a short hold
// bridges the repeat delay.
const holdTicks = 6

// key is one decoded input keystroke.
type key int

const (
	keyNone key = iota
	keyLeft
	keyRight
	keyFire
	keyRestart
	keyQuit
)

// SSHServer runs one game world per SSH session.
type SSHServer struct {
	addr    string
	hostKey string
	assets  *sprite.Assets
	scores  *Scores
	log     *zap.Logger
}

// NewSSHServer creates an SSH server bound to the given address.
func NewSSHServer(addr, hostKey string, assets *sprite.Assets, scores *Scores, log *zap.Logger) *SSHServer {
	return &SSHServer{
		addr:    addr,
		hostKey: hostKey,
		assets:  assets,
		scores:  scores,
		log:     log,
	}
}

// Start begins listening for SSH connections.
func (s *SSHServer) Start() error {
	server := &ssh.Server{
		Addr: s.addr,
		Handler: func(sess ssh.Session) {
			s.handleSession(sess)
		},
	}

	if err := server.SetOption(ssh.HostKeyFile(s.hostKey)); err != nil {
		return fmt.Errorf("set host key: %w", err)
	}

	s.log.Info("ssh server listening", zap.String("addr", s.addr))
	return server.ListenAndServe()
}

func (s *SSHServer) handleSession(sess ssh.Session) {
	// Require PTY
	ptyReq, winCh, ok := sess.Pty()
	if !ok {
		fmt.Fprintln(sess, "Error: PTY required. Use: ssh -t ...")
		return
	}

	name := sess.User()
	if name == "" {
		name = "anonymous"
	}
	s.log.Info("session opened",
		zap.String("player", name),
		zap.String("remote", sess.RemoteAddr().String()))
	defer s.log.Info("session closed", zap.String("player", name))

	// Terminal dimensions
	termW := ptyReq.Window.Width
	termH := ptyReq.Window.Height
	var termMu sync.Mutex

	engine := render.NewEngine(termW, termH)
	world := game.NewWorld(s.assets)

	// Setup terminal
	io.WriteString(sess, render.EnableAltScreen())
	io.WriteString(sess, render.HideCursor())
	io.WriteString(sess, render.ClearScreen())
	defer func() {
		io.WriteString(sess, render.ShowCursor())
		io.WriteString(sess, render.DisableAltScreen())
	}()

	keyCh := make(chan key, 64)
	quitCh := make(chan struct{})

	// Goroutine: read input
	go func() {
		buf := make([]byte, 64)
		for {
			n, err := sess.Read(buf)
			if err != nil {
				close(quitCh)
				return
			}
			for _, k := range parseKeys(buf[:n]) {
				if k == keyQuit {
					close(quitCh)
					return
				}
				select {
				case keyCh <- k:
				default:
				}
			}
		}
	}()

	// Goroutine: handle window resizes
	go func() {
		for win := range winCh {
			termMu.Lock()
			termW = win.Width
			termH = win.Height
			termMu.Unlock()
		}
	}()

	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	var in sessionInput
	last := time.Now()
	submitted := false
	frame := 0

	for {
		select {
		case <-quitCh:
			s.submit(name, world.Score())
			return
		case <-sess.Context().Done():
			s.submit(name, world.Score())
			return
		case now := <-ticker.C:
			controls, restart := in.tick(keyCh)
			if restart && world.State() != game.StatePlaying {
				world = game.NewWorld(s.assets)
				submitted = false
			}
			world.Update(now.Sub(last), controls)
			last = now

			if world.State() != game.StatePlaying && !submitted {
				s.submit(name, world.Score())
				submitted = true
			}

			// Emit at half the simulation rate.
			if frame++; frame%2 != 0 {
				continue
			}
			termMu.Lock()
			w, h := termW, termH
			termMu.Unlock()

			hud := render.HUD{
				Score:    world.Score(),
				Best:     s.scores.Best(),
				Invaders: world.InvadersLeft(),
				State:    int(world.State()),
			}
			output := engine.Render(world.Draw(), game.ScreenWidth, game.ScreenHeight, w, h, hud)
			if len(output) > 0 {
				if _, err := io.WriteString(sess, output); err != nil {
					return
				}
			}
		}
	}
}

func (s *SSHServer) submit(name string, score int) {
	changed, err := s.scores.Submit(name, score)
	if err != nil {
		s.log.Warn("save scores", zap.Error(err))
		return
	}
	if changed {
		s.log.Info("new personal best", zap.String("player", name), zap.Int("score", score))
	}
}

// sessionInput folds discrete keystrokes into per-tick controls.
type sessionInput struct {
	dir      game.Direction
	dirTicks int
	fire     bool
	restart  bool
}

// tick drains pending keys and returns the controls for one update.
func (in *sessionInput) tick(keys <-chan key) (game.Controls, bool) {
	for {
		select {
		case k := <-keys:
			switch k {
			case keyLeft:
				in.dir = game.DirLeft
				in.dirTicks = holdTicks
			case keyRight:
				in.dir = game.DirRight
				in.dirTicks = holdTicks
			case keyFire:
				in.fire = true
			case keyRestart:
				in.restart = true
			}
		default:
			c := game.Controls{Fire: in.fire}
			if in.dirTicks > 0 {
				in.dirTicks--
				c.Dir = in.dir
			}
			in.fire = false
			restart := in.restart
			in.restart = false
			return c, restart
		}
	}
}

// parseKeys converts raw session bytes into keystrokes.
// Handles A/D, arrow key escape sequences, space, R, Q, and Ctrl-C.
func parseKeys(data []byte) []key {
	var keys []key
	i := 0
	for i < len(data) {
		// Check for escape sequences (arrow keys)
		if i+2 < len(data) && data[i] == 0x1b && data[i+1] == '[' {
			switch data[i+2] {
			case 'C':
				keys = append(keys, keyRight)
			case 'D':
				keys = append(keys, keyLeft)
			}
			i += 3
			continue
		}

		// Single byte inputs
		r, size := utf8.DecodeRune(data[i:])
		switch r {
		case 'a', 'A':
			keys = append(keys, keyLeft)
		case 'd', 'D':
			keys = append(keys, keyRight)
		case ' ':
			keys = append(keys, keyFire)
		case 'r', 'R':
			keys = append(keys, keyRestart)
		case 'q', 'Q':
			keys = append(keys, keyQuit)
		case 3: // Ctrl-C
			keys = append(keys, keyQuit)
		}
		i += size
	}
	return keys
}
