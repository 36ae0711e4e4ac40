package auth

import (
	"os/exec"
	"runtime"
	"testing"
	"time"
)

func waitClosed(w Window) bool {
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if w.Closed() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return false
}

func TestBrowserOpener_TracksProcessLifetime(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses POSIX sleep")
	}
	if _, err := exec.LookPath("sleep"); err != nil {
		t.Skip("sleep not available")
	}

	// The "URL" doubles as sleep's duration argument.
	w, err := BrowserOpener("sleep")("30")
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	if w.Closed() {
		t.Fatalf("window should be open while the process runs")
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if !waitClosed(w) {
		t.Fatalf("window should report closed after kill")
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second close must be a no-op: %v", err)
	}
}

func TestBrowserOpener_MissingCommand(t *testing.T) {
	if _, err := BrowserOpener("definitely-not-a-browser-binary")("https://example.test"); err == nil {
		t.Fatalf("expected start error for missing browser")
	}
}

func TestDetachedWindow_NeverReportsClosed(t *testing.T) {
	var w Window = detachedWindow{}
	if w.Closed() || w.Close() != nil {
		t.Fatalf("detached window has unknown liveness")
	}
}
