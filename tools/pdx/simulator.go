package pdx

import (
	"bufio"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aymanbagabas/go-pty"
	"github.com/buildkite/shellwords"
)

// simulatorCommand resolves the command line that launches the simulator.
// PLAYDATE_SIMULATOR overrides the SDK's bundled binary and may carry extra
// arguments; the pdx path is appended by the caller.
func simulatorCommand(override, sdkPath string) ([]string, error) {
	if override != "" {
		return shellwords.Split(override)
	}
	return []string{filepath.Join(sdkPath, "bin", "PlaydateSimulator")}, nil
}

// lineStatus classifies one line of simulator console output.
type lineStatus int

const (
	lineOK lineStatus = iota
	// linePass ends the run successfully; emitted by test builds.
	linePass
	// lineCrash marks a Go runtime crash inside the game's update callback.
	lineCrash
)

func classifyLine(line string) lineStatus {
	switch {
	case strings.HasPrefix(line, "panic:"), strings.HasPrefix(line, "fatal error:"):
		return lineCrash
	case line == "FAIL":
		return lineCrash
	case line == "PASS":
		return linePass
	}
	return lineOK
}

// RunSimulator launches the simulator on the bundle and mirrors its console
// to the log. The simulator is run on a pty so its console output arrives
// unbuffered. The returned code is 0 for a clean run or PASS marker, 1 when
// a crash or FAIL marker was seen.
func RunSimulator(cfg Config, bundle string) (int, error) {
	argv, err := simulatorCommand(os.Getenv("PLAYDATE_SIMULATOR"), cfg.SDKPath)
	if err != nil {
		return 1, err
	}
	argv = append(argv, bundle)

	ptmx, err := pty.New()
	if err != nil {
		return 1, err
	}
	defer ptmx.Close()

	cmd := ptmx.Command(argv[0], argv[1:]...)
	if err := cmd.Start(); err != nil {
		return 1, err
	}

	code := 0
	done := false
	scanner := bufio.NewScanner(ptmx)
	for scanner.Scan() {
		line := scanner.Text()
		log.Println(line)
		if done {
			continue
		}
		switch classifyLine(line) {
		case lineCrash:
			code = 1
			fallthrough
		case linePass:
			done = true
			// Give a panicking runtime time to print the stacktrace, then
			// take the simulator down; it has no reason to outlive the game.
			go func() {
				time.Sleep(500 * time.Millisecond)
				cmd.Process.Kill()
			}()
		}
	}
	cmd.Wait()
	return code, nil
}
