package installer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sandevgo/annals/internal/config"
	"github.com/sandevgo/annals/pkg/env"
)

var ErrEnvExists = errors.New(".env file already exists")

// InstallState accumulates the answers of the wizard. Only the fields the user
// filled in are written out; everything else keeps its envDefault.
type InstallState struct {
	Config  config.ProviderConfig
	EnvPath string
}

func NewInstallState(envPath string) *InstallState {
	return &InstallState{EnvPath: envPath}
}

// Save writes the collected configuration. An existing file is never overwritten.
func (s *InstallState) Save() error {
	if _, err := os.Stat(s.EnvPath); err == nil {
		return fmt.Errorf("%w at %s", ErrEnvExists, s.EnvPath)
	}

	if err := os.MkdirAll(filepath.Dir(s.EnvPath), 0755); err != nil {
		return fmt.Errorf("failed to create runtime directory: %w", err)
	}

	content, err := env.MarshalEnv(&s.Config)
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}

	if err := os.WriteFile(s.EnvPath, []byte(content), 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.EnvPath, err)
	}
	return nil
}
