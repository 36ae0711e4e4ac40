package auth

import (
	"errors"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"sync"
)

// Window is the browser window showing the authorization page.
type Window interface {
	// Closed reports whether the user closed the window.
	Closed() bool
	// Close dismisses the window if it is still open.
	Close() error
}

// Opener opens url in a new window.
type Opener func(url string) (Window, error)

// BrowserOpener returns an Opener that runs browser with the URL appended.
//
// When browser is empty the OS URL handler is used. That handler exits as
// soon as it hands the URL over, so the window's liveness is unknown and
// Closed always reports false; the handshake then relies on its timeout or
// an explicit cancel. A browser command that stays in the foreground for the
// window's lifetime (e.g. "chromium --app") makes Closed track process exit.
func BrowserOpener(browser string) Opener {
	return func(url string) (Window, error) {
		fields := strings.Fields(browser)
		if len(fields) == 0 {
			cmd := systemOpener(url)
			if err := cmd.Start(); err != nil {
				return nil, err
			}
			go func() { _ = cmd.Wait() }()
			return detachedWindow{}, nil
		}

		cmd := exec.Command(fields[0], append(fields[1:], url)...)
		if err := cmd.Start(); err != nil {
			return nil, err
		}
		w := &processWindow{cmd: cmd, exited: make(chan struct{})}
		go func() {
			_ = cmd.Wait()
			close(w.exited)
		}()
		return w, nil
	}
}

func systemOpener(url string) *exec.Cmd {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url)
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return exec.Command("xdg-open", url)
	}
}

type detachedWindow struct{}

func (detachedWindow) Closed() bool { return false }
func (detachedWindow) Close() error { return nil }

type processWindow struct {
	cmd    *exec.Cmd
	exited chan struct{}
	once   sync.Once
}

func (w *processWindow) Closed() bool {
	select {
	case <-w.exited:
		return true
	default:
		return false
	}
}

func (w *processWindow) Close() error {
	var err error
	w.once.Do(func() {
		if w.Closed() {
			return
		}
		if kerr := w.cmd.Process.Kill(); kerr != nil && !errors.Is(kerr, os.ErrProcessDone) {
			err = kerr
		}
	})
	return err
}
