package config

import (
	"os"
	"path/filepath"
)

func GetRuntimePath() string {
	path := os.Getenv("ANNALS_RUNTIME_PATH")
	if path == "" {
		path = ".annals"
	}

	if !filepath.IsAbs(path) {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path)
	}
	return path
}

func GetEnvFilePath() string {
	return filepath.Join(GetRuntimePath(), ".env")
}
