package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strconv"
)

// Environment variables passed to extensions, the same that config.Load reads.
const (
	EnvDataDir  = "FMS_DATA_DIR"
	EnvUser     = "FMS_USER"
	EnvBackend  = "FMS_BACKEND"
	EnvCurrency = "FMS_CURRENCY"
	EnvVerbose  = "FMS_VERBOSE"
)

// RunExtension attempts to find and execute an external fms-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found.
func RunExtension(subcommand string, args []string) (bool, int) {
	name := "fms-" + subcommand

	lp, err := exec.LookPath(name)
	if err != nil {
		slog.Debug("extension-not-found", "name", name, "err", err)
		return false, 0
	}

	cfg, err := Settings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return true, 2
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = stdout
	cmd.Stderr = os.Stderr

	// Resolved settings override the inherited environment.
	cmd.Env = append(os.Environ(),
		EnvDataDir+"="+cfg.DataDir,
		EnvUser+"="+cfg.User,
		EnvBackend+"="+cfg.Backend,
		EnvCurrency+"="+cfg.Currency,
		EnvVerbose+"="+strconv.FormatBool(cfg.Verbose),
	)

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return true, exitErr.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", name, err)
		return true, 1
	}
	return true, 0
}
