package config

import (
	"fmt"
	"os/exec"
	"strings"
)

// gitConfigMock allows tests to mock git config output.
var gitConfigMock func(args []string, repoPath string) (string, error)

// runGitConfig executes git config and returns raw output.
func runGitConfig(args []string, repoPath string) (string, error) {
	if gitConfigMock != nil {
		return gitConfigMock(args, repoPath)
	}

	cmd := exec.Command("git", args...)
	if repoPath != "" {
		cmd.Dir = repoPath
	}

	output, err := cmd.Output()
	if err != nil {
		// git config returns exit code 1 when no key matches (not an error)
		if exitErr, ok := err.(*exec.ExitError); ok && exitErr.ExitCode() == 1 {
			return "", nil
		}
		return "", err
	}
	return string(output), nil
}

// parseGitConfigOutput parses git config output into a flat value map.
// Input format: "ds.theme nord\nds.color_header #ffffff\n"
func parseGitConfigOutput(output string) map[string]any {
	configMap := make(map[string]any)
	if output == "" {
		return configMap
	}

	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		if line == "" {
			continue
		}

		// SplitN with 2 keeps values containing spaces intact
		parts := strings.SplitN(line, " ", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimPrefix(parts[0], "ds.")
		configMap[key] = parts[1]
	}

	return configMap
}

// loadGitConfig reads ds.* git config values for the repository at repoPath
// (the working directory when empty).
func loadGitConfig(repoPath string) (map[string]any, error) {
	args := []string{"config", "--get-regexp", `^ds\.`}

	output, err := runGitConfig(args, repoPath)
	if err != nil {
		return nil, err
	}

	return parseGitConfigOutput(output), nil
}

// parseCLIConfigOverrides parses --config=ds.key=value pairs into a map
// suitable for applyMap.
func parseCLIConfigOverrides(overrides []string) (map[string]any, error) {
	result := make(map[string]any)

	for _, override := range overrides {
		parts := strings.SplitN(override, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid config override %q, expected format: ds.key=value", override)
		}

		fullKey := parts[0]
		value := parts[1]

		if !strings.HasPrefix(fullKey, "ds.") {
			return nil, fmt.Errorf("config override key must start with 'ds.': %q", fullKey)
		}

		key := strings.TrimPrefix(fullKey, "ds.")
		if key == "" {
			return nil, fmt.Errorf("empty config key in override: %q", override)
		}

		result[key] = value
	}

	return result, nil
}
