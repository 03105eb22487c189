package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestSetup_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "asu.log")
	closer, err := Setup(path, zerolog.InfoLevel)
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	t.Cleanup(func() { log.Logger = zerolog.Nop() })

	log.Debug().Msg("hidden")
	log.Info().Str("file", "x.c").Msg("opened")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, `"message":"opened"`) || !strings.Contains(out, `"file":"x.c"`) {
		t.Errorf("info line missing: %s", out)
	}
	if strings.Contains(out, "hidden") {
		t.Errorf("debug line written at info level: %s", out)
	}
}

func TestSetup_Disabled(t *testing.T) {
	closer, err := Setup("", zerolog.DebugLevel)
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	if log.Logger.GetLevel() != zerolog.Disabled {
		t.Errorf("expected disabled logger, got level %v", log.Logger.GetLevel())
	}
	if err := closer.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}
