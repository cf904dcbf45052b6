package githubauth_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/quarkusio/get-contributors/internal/githubauth"
)

func TestResolveToken(testInstance *testing.T) {
	testCases := []struct {
		name            string
		configuredToken string
		environment     map[string]string
		expectedToken   string
		expectedFound   bool
	}{
		{
			name:            "configured_token_wins",
			configuredToken: " configured ",
			environment:     map[string]string{githubauth.EnvGitHubToken: "environment"},
			expectedToken:   "configured",
			expectedFound:   true,
		},
		{
			name:          "github_token_preferred",
			environment:   map[string]string{githubauth.EnvGitHubToken: "primary", githubauth.EnvGitHubCLIToken: "secondary"},
			expectedToken: "primary",
			expectedFound: true,
		},
		{
			name:          "blank_values_skipped",
			environment:   map[string]string{githubauth.EnvGitHubToken: "  ", githubauth.EnvGitHubOAuthToken: "oauth"},
			expectedToken: "oauth",
			expectedFound: true,
		},
		{
			name:        "anonymous",
			environment: map[string]string{},
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf("%d_%s", testCaseIndex, testCase.name), func(testInstance *testing.T) {
			lookup := func(key string) (string, bool) {
				value, exists := testCase.environment[key]
				return value, exists
			}
			token, found := githubauth.ResolveToken(testCase.configuredToken, lookup)
			require.Equal(testInstance, testCase.expectedFound, found)
			require.Equal(testInstance, testCase.expectedToken, token)
		})
	}
}
