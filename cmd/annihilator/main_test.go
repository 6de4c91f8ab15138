package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/concrete-annihilator/internal/config"
	"github.com/vovakirdan/concrete-annihilator/internal/core"
	"github.com/vovakirdan/concrete-annihilator/internal/games/annihilator"
	"github.com/vovakirdan/concrete-annihilator/internal/storage"
)

func TestCheckMode(t *testing.T) {
	if err := checkMode("annihilator"); err != nil {
		t.Errorf("checkMode(annihilator) = %v", err)
	}
	if err := checkMode("annihilator_levels"); err != nil {
		t.Errorf("checkMode(annihilator_levels) = %v", err)
	}

	err := checkMode("flappy")
	if !errors.Is(err, ErrUnknownMode) {
		t.Fatalf("checkMode(flappy) = %v, expected ErrUnknownMode", err)
	}
	if !strings.Contains(err.Error(), `"flappy"`) {
		t.Errorf("error %q should name the mode", err)
	}
}

func TestNewGameUnknownMode(t *testing.T) {
	logger, _ := newLogger(false)
	if _, _, err := newGame("nope", logger); !errors.Is(err, ErrUnknownMode) {
		t.Errorf("newGame(nope) error = %v, expected ErrUnknownMode", err)
	}
}

// Test that a broken --config stops the program before any UI runs.
func TestApplySettingsFailsFast(t *testing.T) {
	defer func() { flagConfig, flagDifficulty = "", "" }()

	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("arena: [not, a, map"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name       string
		config     string
		difficulty string
		wantErr    bool
	}{
		{"defaults", "", "", false},
		{"preset", "", "hard", false},
		{"missing file", filepath.Join(dir, "missing.yaml"), "", true},
		{"bad yaml", bad, "", true},
		{"bad preset", "", "brutal", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			flagConfig, flagDifficulty = tc.config, tc.difficulty
			err := applySettings()
			if (err != nil) != tc.wantErr {
				t.Errorf("applySettings() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestListCommand(t *testing.T) {
	var out bytes.Buffer
	listCmd.SetOut(&out)
	runList(listCmd, nil)

	for _, want := range []string{"annihilator", "annihilator_levels", "Concrete Annihilator"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("list output missing %q:\n%s", want, out.String())
		}
	}
}

func TestScoresCommand(t *testing.T) {
	defer func(old string) { flagDBPath = old }(flagDBPath)
	flagDBPath = filepath.Join(t.TempDir(), "scores.db")

	store, err := storage.Open(flagDBPath)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := store.SaveRun(storage.RunRecord{GameID: "annihilator", Wave: 7, Damage: 3, BallSize: 12, MaxBalls: 16, Seed: 99}); err != nil {
		t.Fatal(err)
	}
	store.Close()

	var out bytes.Buffer
	scoresCmd.SetOut(&out)
	if err := runScores(scoresCmd, []string{"annihilator"}); err != nil {
		t.Fatalf("runScores() error = %v", err)
	}
	for _, want := range []string{"Best waves", "Recent runs", "wave 7 over 1 runs"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("scores output missing %q:\n%s", want, out.String())
		}
	}

	if err := runScores(scoresCmd, []string{"pong"}); !errors.Is(err, ErrUnknownMode) {
		t.Errorf("runScores(pong) error = %v, expected ErrUnknownMode", err)
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := expandHome("~/x/y"); got != filepath.Join(home, "x", "y") {
		t.Errorf("expandHome(~/x/y) = %q", got)
	}
	if got := expandHome("./levels"); got != "./levels" {
		t.Errorf("expandHome(./levels) = %q", got)
	}
}

// Test that inspect decodes a dump and draws it, and counts the bricks of
// level files while listing their bad rows.
func TestInspectCommand(t *testing.T) {
	dir := t.TempDir()

	game := annihilator.New(annihilator.WithConfig(config.DefaultAnnihilatorConfig()))
	game.Reset(core.DefaultConfig())
	game.Start()
	game.Tick()
	snap := game.Snapshot()
	data, err := snap.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}
	dump := filepath.Join(dir, "run.msgpack")
	if err := os.WriteFile(dump, data, 0o600); err != nil {
		t.Fatal(err)
	}

	levels := filepath.Join(dir, "levels")
	if err := os.Mkdir(levels, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(levels, "01.txt"), []byte("1 1 1\n0 2\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(levels, "02.txt"), []byte("4\nx\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"dump", []string{dump}, []string{"run.msgpack", "wave 1", fmt.Sprintf("hash %016x", snap.Hash())}},
		{"level dir", []string{levels}, []string{"level 1: 2 rows, 4 bricks", "level 2: 2 rows, 1 bricks", `token "x"`}},
		{"level file", []string{filepath.Join(levels, "01.txt")}, []string{"01.txt: 2 rows, 4 bricks"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			inspectCmd.SetOut(&out)
			if err := runInspect(inspectCmd, tc.args); err != nil {
				t.Fatalf("runInspect() error = %v", err)
			}
			for _, want := range tc.want {
				if !strings.Contains(out.String(), want) {
					t.Errorf("inspect output missing %q:\n%s", want, out.String())
				}
			}
		})
	}

	if err := os.WriteFile(filepath.Join(dir, "junk.msgpack"), []byte("not msgpack"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := runInspect(inspectCmd, []string{filepath.Join(dir, "junk.msgpack")}); err == nil {
		t.Error("a broken dump should fail")
	}
	if err := runInspect(inspectCmd, []string{filepath.Join(dir, "missing.txt")}); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file error = %v, expected os.ErrNotExist", err)
	}
}
