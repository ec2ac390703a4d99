package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Find returns the config file to load. An explicit path must exist.
// Otherwise the first project file found walking up from startDir wins,
// then <userConfigDir>/trailspace/config.toml. An empty result means no file.
func Find(explicitPath, startDir, userConfigDir string) (string, error) {
	if explicit := strings.TrimSpace(explicitPath); explicit != "" {
		abs, err := filepath.Abs(explicit)
		if err != nil {
			return "", err
		}
		info, err := os.Stat(abs)
		if err != nil {
			return "", fmt.Errorf("config file: %w", err)
		}
		if info.IsDir() {
			return "", fmt.Errorf("config file %q is a directory", abs)
		}
		return abs, nil
	}

	if startDir != "" {
		dir, err := filepath.Abs(startDir)
		if err != nil {
			return "", err
		}
		for {
			for _, name := range LocalConfigFileNames {
				candidate := filepath.Join(dir, name)
				if fileExists(candidate) {
					return candidate, nil
				}
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}

	if userConfigDir != "" {
		candidate := filepath.Join(userConfigDir, AppName, DefaultConfigFileName)
		if fileExists(candidate) {
			return candidate, nil
		}
	}
	return "", nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
