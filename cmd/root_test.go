package cmd

import (
	"strings"
	"testing"

	"github.com/leefowlercu/unibundle/internal/config"
	"github.com/leefowlercu/unibundle/internal/testutil"
)

func TestRunInitialize_LogLevelFlag(t *testing.T) {
	testutil.NewTestEnv(t)
	t.Cleanup(func() {
		logLevelFlag = ""
		_ = logManager.Close()
	})

	logLevelFlag = "debug"
	if err := runInitialize(rootCmd, nil); err != nil {
		t.Fatalf("runInitialize() error = %v", err)
	}
	if got := config.GetString("log_level"); got != "debug" {
		t.Errorf("log_level = %q, want flag value", got)
	}
}

func TestRunInitialize_InvalidLogLevelFlag(t *testing.T) {
	testutil.NewTestEnv(t)
	t.Cleanup(func() { logLevelFlag = "" })

	logLevelFlag = "loud"
	err := runInitialize(rootCmd, nil)
	if err == nil || !strings.Contains(err.Error(), "--log-level") {
		t.Errorf("runInitialize() error = %v, want invalid flag error", err)
	}
}

func TestRootCommand_RegistersSubcommands(t *testing.T) {
	want := []string{"config", "discover", "extract", "normalize", "textures", "version"}
	for _, name := range want {
		found := false
		for _, c := range rootCmd.Commands() {
			if c.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command missing %q subcommand", name)
		}
	}
}
