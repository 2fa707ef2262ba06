package cli

import (
	"context"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/wagiedev/toolkit-mcp-go/internal/errors"
)

const (
	// ServerBinary is the executable name searched for on PATH.
	ServerBinary = "toolkit-server"

	// MinimumVersion is the minimum supported server version.
	MinimumVersion = "0.1.0"

	// VersionCheckTimeout is the timeout for the server version check command.
	VersionCheckTimeout = 2 * time.Second
)

var versionPattern = regexp.MustCompile(`([0-9]+\.[0-9]+\.[0-9]+)`)

// Config holds configuration for server discovery.
type Config struct {
	// ServerPath is an explicit binary path that skips PATH search.
	ServerPath string

	// SkipVersionCheck skips version validation during discovery.
	SkipVersionCheck bool

	// Logger is an optional logger for discovery operations.
	// If nil, a no-op logger is used.
	Logger *slog.Logger
}

// Discoverer locates and validates the toolkit-server binary.
type Discoverer interface {
	// Discover returns the path to the server binary or a
	// *errors.ServerNotFoundError.
	Discover(ctx context.Context) (string, error)
}

type discoverer struct {
	cfg *Config
	log *slog.Logger
}

var _ Discoverer = (*discoverer)(nil)

// NewDiscoverer creates a new server discoverer with the given configuration.
func NewDiscoverer(cfg *Config) Discoverer {
	if cfg == nil {
		cfg = &Config{}
	}

	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	return &discoverer{
		cfg: cfg,
		log: log,
	}
}

// Discover locates the server binary and validates its version.
func (d *discoverer) Discover(ctx context.Context) (string, error) {
	d.log.Debug("Discovering toolkit server binary")

	path, err := d.findServer()
	if err != nil {
		d.log.Error("Failed to find toolkit server", "error", err)

		return "", err
	}

	d.log.Debug("Found toolkit server binary", "server_path", path)

	if !d.cfg.SkipVersionCheck {
		d.checkVersion(ctx, path)
	}

	return path, nil
}

func (d *discoverer) findServer() (string, error) {
	// An explicit path is used as-is or not at all.
	if d.cfg.ServerPath != "" {
		if _, err := os.Stat(d.cfg.ServerPath); err == nil {
			return d.cfg.ServerPath, nil
		}

		return "", &errors.ServerNotFoundError{SearchedPaths: []string{d.cfg.ServerPath}}
	}

	searchedPaths := make([]string, 0, 5)

	if path, err := exec.LookPath(ServerBinary); err == nil {
		return path, nil
	}

	searchedPaths = append(searchedPaths, "$PATH")

	commonPaths := []string{
		filepath.Join("/usr/local/bin", ServerBinary),
		filepath.Join("/usr/bin", ServerBinary),
	}

	if homeDir, err := os.UserHomeDir(); err == nil {
		commonPaths = append(commonPaths,
			filepath.Join(homeDir, "go", "bin", ServerBinary),
			filepath.Join(homeDir, ".local", "bin", ServerBinary),
		)
	}

	for _, path := range commonPaths {
		searchedPaths = append(searchedPaths, path)

		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}

	d.log.Warn("Toolkit server not found in any searched paths", "searched_paths", searchedPaths)

	return "", &errors.ServerNotFoundError{SearchedPaths: searchedPaths}
}

// checkVersion logs a warning when the server is older than MinimumVersion.
// Failures to run or parse the version are ignored.
func (d *discoverer) checkVersion(ctx context.Context, path string) {
	ctx, cancel := context.WithTimeout(ctx, VersionCheckTimeout)
	defer cancel()

	output, err := exec.CommandContext(ctx, path, "--version").Output()
	if err != nil {
		d.log.Debug("Server version check failed", "error", err)

		return
	}

	match := versionPattern.FindStringSubmatch(strings.TrimSpace(string(output)))
	if match == nil {
		d.log.Debug("Could not parse server version", "output", string(output))

		return
	}

	if compareVersions(match[1], MinimumVersion) < 0 {
		d.log.Warn("Toolkit server version is unsupported",
			"version", match[1],
			"minimum_required", MinimumVersion,
		)

		return
	}

	d.log.Debug("Server version check passed", "version", match[1])
}

// compareVersions compares two semantic versions.
// Returns -1 if a < b, 0 if a == b, 1 if a > b.
func compareVersions(a, b string) int {
	aParts := strings.Split(a, ".")
	bParts := strings.Split(b, ".")

	for i := range 3 {
		aNum := 0
		bNum := 0

		if i < len(aParts) {
			aNum, _ = strconv.Atoi(aParts[i])
		}

		if i < len(bParts) {
			bNum, _ = strconv.Atoi(bParts[i])
		}

		if aNum < bNum {
			return -1
		}

		if aNum > bNum {
			return 1
		}
	}

	return 0
}
