package config

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ProjectEnvFile is the project-local env file name, looked up in the working directory.
const ProjectEnvFile = ".textuml.env"

// LoadEnvFiles loads the global env file and then dir/.textuml.env into the
// process environment, so ${VAR} references in textuml.yaml can resolve.
// Variables already present in the environment are never overwritten. It
// returns the files that were read.
func LoadEnvFiles(dir string) []string {
	origKeys := make(map[string]bool)
	for _, entry := range os.Environ() {
		if k, _, ok := strings.Cut(entry, "="); ok {
			origKeys[k] = true
		}
	}

	merged := make(map[string]string)
	var loaded []string
	for _, path := range []string{GlobalEnvPath(), filepath.Join(dir, ProjectEnvFile)} {
		if mergeEnvFile(merged, path) {
			loaded = append(loaded, path)
		}
	}

	for k, v := range merged {
		if !origKeys[k] {
			_ = os.Setenv(k, v)
		}
	}
	return loaded
}

// mergeEnvFile merges a KEY=VALUE file into dst, overwriting earlier values.
// Missing or malformed files are skipped and reported as not loaded.
func mergeEnvFile(dst map[string]string, path string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	envs, err := ParseEnvFile(data)
	if err != nil {
		return false
	}
	for k, v := range envs {
		dst[k] = v
	}
	return true
}

// ParseEnvFile parses KEY=VALUE lines from data. Blank lines and # comments
// are skipped; a leading "export " is accepted; matching surrounding quotes
// are removed from values.
func ParseEnvFile(data []byte) (map[string]string, error) {
	result := make(map[string]string)
	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")
		k, v, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("line %d: missing '=' in %q", lineNum, line)
		}
		result[strings.TrimSpace(k)] = unquote(strings.TrimSpace(v))
	}
	return result, scanner.Err()
}

func unquote(v string) string {
	if len(v) >= 2 && (v[0] == '"' || v[0] == '\'') && v[len(v)-1] == v[0] {
		return v[1 : len(v)-1]
	}
	return v
}

// GlobalEnvPath returns the path to the global textuml env file.
func GlobalEnvPath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "textuml", "env")
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "textuml", "env")
}
