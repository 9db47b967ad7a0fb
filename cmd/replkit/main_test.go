package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"replkit/internal/evaluate"
)

// captureStdout captures stdout during the execution of fn and returns
// the captured output.
func captureStdout(fn func()) string {
	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	fn()

	w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	buf.ReadFrom(r)
	return buf.String()
}

func newTestSession(t *testing.T, stdout, stderr *bytes.Buffer) *evaluate.Session {
	t.Helper()
	session, err := evaluate.NewSession(evaluate.Config{
		Stdout:  stdout,
		Stderr:  stderr,
		Imports: []string{"fmt"},
	})
	if err != nil {
		t.Fatalf("failed to create session: %v", err)
	}
	return session
}

func TestEvalSnippet(t *testing.T) {
	var out, errOut bytes.Buffer
	session := newTestSession(t, &out, &errOut)

	captured := captureStdout(func() {
		if err := evalSnippet(context.Background(), session, "6 * 7"); err != nil {
			t.Errorf("evalSnippet failed: %v", err)
		}
	})

	if !strings.Contains(captured, "42") {
		t.Errorf("expected output to contain '42', got: %s", captured)
	}
}

func TestEvalSnippetError(t *testing.T) {
	var out, errOut bytes.Buffer
	session := newTestSession(t, &out, &errOut)

	err := evalSnippet(context.Background(), session, "noSuchIdentifier")
	if err == nil {
		t.Error("expected error for undefined identifier, got nil")
	}
}

func TestEvalReader(t *testing.T) {
	var out, errOut bytes.Buffer
	session := newTestSession(t, &out, &errOut)

	script := "x := 6\ny := 7\nfmt.Println(x * y)\n"
	if err := evalReader(context.Background(), session, strings.NewReader(script)); err != nil {
		t.Errorf("evalReader failed: %v", err)
	}

	if !strings.Contains(out.String(), "42") {
		t.Errorf("expected output to contain '42', got: %s", out.String())
	}
}

func TestRunScript(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name           string
		script         string
		wantErr        bool
		expectedOutput string
	}{
		{
			name:           "simple script",
			script:         "x := 5\ny := 10\nfmt.Println(x + y)\n",
			wantErr:        false,
			expectedOutput: "15",
		},
		{
			name:           "shebang",
			script:         "#!/usr/bin/env replkit\nfmt.Println(42)\n",
			wantErr:        false,
			expectedOutput: "42",
		},
		{
			name:    "runtime error",
			script:  "fmt.Println(undefinedVariable)\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out, errOut bytes.Buffer
			session := newTestSession(t, &out, &errOut)

			scriptPath := filepath.Join(tmpDir, strings.ReplaceAll(tt.name, " ", "_")+".go")
			if err := os.WriteFile(scriptPath, []byte(tt.script), 0644); err != nil {
				t.Fatalf("failed to write test script: %v", err)
			}

			err := runScript(context.Background(), session, scriptPath)
			if (err != nil) != tt.wantErr {
				t.Errorf("runScript() error = %v, wantErr %v", err, tt.wantErr)
			}

			if !tt.wantErr && !strings.Contains(out.String(), tt.expectedOutput) {
				t.Errorf("expected output to contain %q, got: %s", tt.expectedOutput, out.String())
			}
		})
	}
}

func TestRunScriptNonexistentFile(t *testing.T) {
	var out, errOut bytes.Buffer
	session := newTestSession(t, &out, &errOut)

	err := runScript(context.Background(), session, filepath.Join(t.TempDir(), "missing.go"))
	if err == nil {
		t.Error("expected error for nonexistent file, got nil")
	}
}
