package main

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"pixel-invaders/internal/config"
	"pixel-invaders/internal/server"
	"pixel-invaders/internal/sprite"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfgPath := flag.String("config", "", "path to TOML config (defaults apply when empty)")
	flag.Parse()

	cfg := config.Default()
	if *cfgPath != "" {
		var err error
		cfg, err = config.Load(*cfgPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
	}

	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	assets, err := loadAssets(cfg.Game.SpritesDir)
	if err != nil {
		return fmt.Errorf("load sprites: %w", err)
	}

	scores, err := server.LoadScores(cfg.Game.ScoresPath)
	if err != nil {
		return fmt.Errorf("load scores: %w", err)
	}
	if best := scores.Best(); best > 0 {
		log.Info("score table loaded", zap.String("path", cfg.Game.ScoresPath), zap.Int("best", best))
	}

	if !cfg.SSH.Enabled && !cfg.Web.Enabled {
		return fmt.Errorf("nothing to serve: both ssh and web are disabled")
	}

	errCh := make(chan error, 2)

	if cfg.SSH.Enabled {
		if err := ensureHostKey(cfg.SSH.HostKeyPath, log); err != nil {
			return fmt.Errorf("host key: %w", err)
		}
		sshServer := server.NewSSHServer(cfg.SSH.Addr, cfg.SSH.HostKeyPath, assets, scores, log)
		go func() {
			if err := sshServer.Start(); err != nil {
				errCh <- fmt.Errorf("ssh server: %w", err)
			}
		}()
		log.Info("connect with",
			zap.String("command", fmt.Sprintf("ssh -p %s yourname@localhost", strings.TrimPrefix(cfg.SSH.Addr, ":"))))
	}

	if cfg.Web.Enabled {
		webServer := server.NewWebServer(cfg.Web.Addr, assets, scores, log)
		go func() {
			if err := webServer.Start(); err != nil {
				errCh <- fmt.Errorf("web server: %w", err)
			}
		}()
	}

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-shutdownCh:
		log.Info("shutting down", zap.String("signal", sig.String()))
		return nil
	}
}

// loadAssets loads the built-in art, with PNG overrides when dir is set.
func loadAssets(dir string) (*sprite.Assets, error) {
	if dir == "" {
		return sprite.Load()
	}
	return sprite.LoadDir(dir)
}

// ensureHostKey generates an ed25519 host key at path if none exists.
func ensureHostKey(path string, log *zap.Logger) error {
	if _, err := os.Stat(path); err == nil {
		return nil // key already exists
	}

	log.Info("generating new host key", zap.String("path", path))
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return err
	}

	keyBytes, err := x509.MarshalPKCS8PrivateKey(priv)
	if err != nil {
		return err
	}

	pemBlock := &pem.Block{
		Type:  "PRIVATE KEY",
		Bytes: keyBytes,
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	return pem.Encode(f, pemBlock)
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
