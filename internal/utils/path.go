package utils

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/charmbracelet/log"
)

// AppDirName is the per-user directory name for config and data.
const AppDirName = "wordsolve"

// indexExtensions are the file extensions an index file may carry.
var indexExtensions = []string{".json", ".msgpack", ".mpk"}

// PathResolver finds the index and config files relative to the binary,
// the working directory and the user config dir
type PathResolver struct {
	executableDir string
	homeDir       string
	configDir     string
}

// NewPathResolver creates a new path resolver that determines the executable location
func NewPathResolver() (*PathResolver, error) {
	execDir, err := GetExecutableDir()
	if err != nil {
		return nil, err
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Warnf("Could not determine home directory: %v", err)
		homeDir = os.TempDir()
	}

	pr := &PathResolver{
		executableDir: execDir,
		homeDir:       homeDir,
		configDir:     UserConfigDir(homeDir),
	}
	log.Debugf("PathResolver initialized: execDir=%s, configDir=%s", execDir, pr.configDir)
	return pr, nil
}

// UserConfigDir returns the platform config directory for WordSolve
func UserConfigDir(homeDir string) string {
	switch runtime.GOOS {
	case "linux":
		if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
			return filepath.Join(configHome, AppDirName)
		}
		return filepath.Join(homeDir, ".config", AppDirName)
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, AppDirName)
		}
		return filepath.Join(homeDir, "AppData", "Roaming", AppDirName)
	default:
		return filepath.Join(homeDir, ".config", AppDirName)
	}
}

// ConfigDir returns the config directory
func (pr *PathResolver) ConfigDir() string {
	return pr.configDir
}

// IndexCandidates lists where an index named by userPath is looked for, in order:
// the path itself, relative to the executable, relative to the working dir,
// then the "data" dirs next to the executable and in the config dir.
func (pr *PathResolver) IndexCandidates(userPath string) []string {
	var candidates []string
	if filepath.IsAbs(userPath) {
		return append(candidates, userPath)
	}

	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, userPath))
	}
	candidates = append(candidates, filepath.Join(pr.executableDir, userPath))

	base := filepath.Base(userPath)
	candidates = append(candidates,
		filepath.Join(pr.executableDir, "data", base),
		filepath.Join(filepath.Dir(pr.executableDir), "data", base),
		filepath.Join(pr.configDir, "data", base),
	)
	return candidates
}

// GetIndexPath resolves the index file. When nothing matches it returns the
// first candidate so the caller's load error names a sensible path.
func (pr *PathResolver) GetIndexPath(userPath string) string {
	candidates := pr.IndexCandidates(userPath)
	for _, path := range candidates {
		if isIndexFile(path) {
			log.Debugf("Found index file: %s", path)
			return path
		}
		log.Debugf("Index candidate not valid: %s", path)
	}
	return candidates[0]
}

func isIndexFile(path string) bool {
	if !FileExists(path) {
		return false
	}
	ext := strings.ToLower(filepath.Ext(path))
	for _, valid := range indexExtensions {
		if ext == valid {
			return true
		}
	}
	return false
}

// GetConfigPath returns the full path for a config file, falling back to
// other writable locations when the config directory is read-only
func (pr *PathResolver) GetConfigPath(filename string) string {
	dirs := []string{
		pr.configDir,
		filepath.Join(pr.homeDir, "."+AppDirName),
		filepath.Join(os.TempDir(), AppDirName),
		pr.executableDir,
	}
	for i, dir := range dirs {
		if CheckDirStatus(dir).Writable {
			path := filepath.Join(dir, filename)
			if i > 0 {
				log.Warnf("Using fallback config location: %s", path)
			}
			return path
		}
	}

	tempPath := filepath.Join(os.TempDir(), filename)
	log.Warnf("Using temporary config file: %s", tempPath)
	return tempPath
}
