package bootstrap

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	errs "goban/internal/errors"
)

func writeEnv(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestSetupDefaults(t *testing.T) {
	cfg, err := Setup(writeEnv(t, "REDIS_URL=redis:6379\n"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.RedisUrl != "redis:6379" {
		t.Fatalf("expected REDIS_URL from file, got %q", cfg.RedisUrl)
	}
	if cfg.BoardSize != 19 || cfg.Komi != 6.5 || cfg.ServerPort != "8080" || cfg.MongoDatabase != "goban" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
}

func TestSetupReadsFile(t *testing.T) {
	cfg, err := Setup(writeEnv(t, "BOARD_SIZE=9\nKOMI=0.5\nLOCAL_CORS=true\nLOG_DEBUG=true\n"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.BoardSize != 9 || cfg.Komi != 0.5 || !cfg.IsLocalCors || !cfg.LogDebug {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestSetupRejectsBoardSize(t *testing.T) {
	_, err := Setup(writeEnv(t, "BOARD_SIZE=25\n"))
	if !errors.Is(err, errs.ErrBadBoardSize) {
		t.Fatalf("expected ErrBadBoardSize, got %v", err)
	}
}

func TestSetupMissingFile(t *testing.T) {
	if _, err := Setup(filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}
