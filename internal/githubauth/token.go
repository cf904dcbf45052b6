package githubauth

import (
	"os"
	"strings"
)

// Environment variable names consulted for a GitHub API token.
const (
	EnvGitHubToken      = "GITHUB_TOKEN"
	EnvGitHubCLIToken   = "GH_TOKEN"
	EnvGitHubOAuthToken = "GITHUB_OAUTH"
)

var tokenPreference = []string{
	EnvGitHubToken,
	EnvGitHubCLIToken,
	EnvGitHubOAuthToken,
}

// EnvironmentLookup resolves a variable the way os.LookupEnv does.
type EnvironmentLookup func(key string) (string, bool)

// ResolveToken returns the explicitly configured token when present, otherwise the
// first non-empty token found in the environment. Anonymous access is signalled by false.
func ResolveToken(configuredToken string, lookupEnvironment EnvironmentLookup) (string, bool) {
	if trimmedToken := strings.TrimSpace(configuredToken); len(trimmedToken) > 0 {
		return trimmedToken, true
	}
	if lookupEnvironment == nil {
		lookupEnvironment = os.LookupEnv
	}
	for _, key := range tokenPreference {
		value, exists := lookupEnvironment(key)
		if !exists {
			continue
		}
		if trimmedValue := strings.TrimSpace(value); len(trimmedValue) > 0 {
			return trimmedValue, true
		}
	}
	return "", false
}
