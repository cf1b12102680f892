package logger

import (
	"bytes"
	"os"
	"testing"
)

// captureStdout redirects stdout for the duration of fn and returns what was printed.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	os.Stdout = w
	defer func() { os.Stdout = old }()

	fn()

	w.Close()
	var buf bytes.Buffer
	buf.ReadFrom(r)
	return buf.String()
}

func TestLevels_TaggedLines(t *testing.T) {
	out := captureStdout(t, func() {
		Info("TAG", "message")
		Success("TAG", "message")
		Warn("TAG", "message")
		Error("TAG", "message")
	})
	// Output is environment-dependent (colors), but every line carries the tag.
	if n := bytes.Count([]byte(out), []byte("[TAG]")); n != 4 {
		t.Errorf("expected 4 tagged lines, got %d in %q", n, out)
	}
}

func TestBanner_NoPanic(t *testing.T) {
	out := captureStdout(t, func() {
		Banner("v1.0.0")
		Banner("")
	})
	if !bytes.Contains([]byte(out), []byte("routescout")) {
		t.Errorf("banner missing product name: %q", out)
	}
}

func TestSectionAndStats(t *testing.T) {
	out := captureStdout(t, func() {
		Section("Results")
		Stats("Pairs", 42)
	})
	if !bytes.Contains([]byte(out), []byte("Results")) {
		t.Errorf("section title missing: %q", out)
	}
	if !bytes.Contains([]byte(out), []byte("42")) {
		t.Errorf("stats value missing: %q", out)
	}
}
