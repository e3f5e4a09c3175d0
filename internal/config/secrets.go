package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SecretsDir is the Docker secrets mount point.
var SecretsDir = "/run/secrets"

// ReadSecret reads a Docker secret by name.
func ReadSecret(secretName string) (string, error) {
	filePath := filepath.Join(SecretsDir, secretName)
	secretBytes, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to read secret file %s: %w", filePath, err)
	}
	secret := strings.TrimSpace(string(secretBytes))
	if secret == "" {
		return "", fmt.Errorf("secret file %s is empty", filePath)
	}
	return secret, nil
}
