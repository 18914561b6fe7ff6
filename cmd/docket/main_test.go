package main

import (
	"bytes"
	"strings"
	"testing"
)

// execute runs one docket invocation against the given environment and
// returns the exit code with the captured standard streams.
func execute(t *testing.T, env map[string]string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(&stdout, &stderr, args, func(key string) (string, bool) {
		val, ok := env[key]
		return val, ok
	})
	return code, stdout.String(), stderr.String()
}

func testEnv(t *testing.T) map[string]string {
	t.Helper()
	return map[string]string{
		"DOCKET_CASES_DIR": t.TempDir(),
		"DOCKET_CASE":      "midnight-gala",
		"DOCKET_LOG_LEVEL": "error",
	}
}

func TestRunInvestigationFlow(t *testing.T) {
	env := testEnv(t)

	code, stdout, stderr := execute(t, env, "new", "midnight-gala", "--tier", "2")
	if code != 0 {
		t.Fatalf("new failed with %d: %s", code, stderr)
	}
	if !strings.Contains(stdout, `"phase": "investigation"`) {
		t.Fatalf("unexpected new output: %s", stdout)
	}

	if code, _, stderr = execute(t, env, "gate", "start", "investigation_day"); code != 0 {
		t.Fatalf("gate start failed with %d: %s", code, stderr)
	}

	code, stdout, stderr = execute(t, env, "gate", "complete", "investigation_day")
	if code != 0 {
		t.Fatalf("gate complete failed with %d: %s", code, stderr)
	}
	if !strings.Contains(stdout, `"phase_changed": true`) {
		t.Fatalf("completing the only investigation gate should trigger the trial: %s", stdout)
	}

	if code, _, stderr = execute(t, env, "evidence", "add", "muddy boots", "garden mud on polished boots"); code != 0 {
		t.Fatalf("evidence add failed with %d: %s", code, stderr)
	}

	if code, _, stderr = execute(t, env, "save", "before-trial"); code != 0 {
		t.Fatalf("save failed with %d: %s", code, stderr)
	}

	code, stdout, stderr = execute(t, env, "restore", "before-trial")
	if code != 0 {
		t.Fatalf("restore failed with %d: %s", code, stderr)
	}
	if !strings.Contains(stdout, `"backup"`) {
		t.Fatalf("restore should report its safety backup: %s", stdout)
	}

	code, stdout, _ = execute(t, env, "status")
	if code != 0 {
		t.Fatalf("status failed with %d", code)
	}
	if !strings.Contains(stdout, `"phase": "trial"`) {
		t.Fatalf("restored case should still be in trial: %s", stdout)
	}
}

func TestRunExitCodes(t *testing.T) {
	env := testEnv(t)

	if code, _, _ := execute(t, env, "status"); code != 3 {
		t.Fatalf("missing case should exit 3, got %d", code)
	}

	if code, _, stderr := execute(t, env, "new", "midnight-gala"); code != 0 {
		t.Fatalf("new failed: %s", stderr)
	}
	if code, _, _ := execute(t, env, "new", "midnight-gala"); code != 4 {
		t.Fatalf("duplicate case should exit 4, got %d", code)
	}

	if code, _, _ := execute(t, env, "gate", "start", "no_such_gate"); code != 3 {
		t.Fatalf("unknown gate should exit 3, got %d", code)
	}

	if code, _, stderr := execute(t, env, "gate", "complete", "investigation_day"); code != 0 {
		t.Fatalf("gate complete failed: %s", stderr)
	}
	if code, _, _ := execute(t, env, "gate", "complete", "investigation_day"); code != 5 {
		t.Fatalf("re-completing a gate should exit 5, got %d", code)
	}

	if code, _, _ := execute(t, env, "trust", "Valet", "lots"); code != 2 {
		t.Fatalf("malformed delta should exit 2, got %d", code)
	}

	if code, _, _ := execute(t, env, "status", "--no-such-flag"); code != 2 {
		t.Fatalf("unknown flag should exit 2, got %d", code)
	}

	if code, _, _ := execute(t, env, "new"); code != 2 {
		t.Fatalf("missing case ID should exit 2, got %d", code)
	}

	noCase := map[string]string{
		"DOCKET_CASES_DIR": env["DOCKET_CASES_DIR"],
		"DOCKET_LOG_LEVEL": "error",
	}
	if code, _, _ := execute(t, noCase, "status"); code != 6 {
		t.Fatalf("no selected case should exit 6, got %d", code)
	}

	if code, _, _ := execute(t, noCase, "status", "--case", "midnight-gala"); code != 0 {
		t.Fatalf("--case should select the case without DOCKET_CASE")
	}
}

func TestRunRejectsBadLogLevel(t *testing.T) {
	env := testEnv(t)
	env["DOCKET_LOG_LEVEL"] = "loud"

	if code, _, _ := execute(t, env, "version"); code != 6 {
		t.Fatalf("unknown log level should exit 6, got %d", code)
	}
}

func TestRunVersion(t *testing.T) {
	code, stdout, _ := execute(t, testEnv(t), "version")
	if code != 0 || !strings.Contains(stdout, "dev") {
		t.Fatalf("unexpected version output: code %d, %q", code, stdout)
	}
}
