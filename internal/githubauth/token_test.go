package githubauth_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/forgebridge/forgebridge/internal/githubauth"
)

const (
	testCLITokenValueConstant     = "gh-cli-token"
	testGenericTokenValueConstant = "generic-token"
	testAPITokenValueConstant     = "api-token"
)

func TestResolveTokenPrefersSuppliedEnvironment(testInstance *testing.T) {
	testCases := []struct {
		name          string
		environment   map[string]string
		expectedToken string
		expectedFound bool
	}{
		{
			name: "cli_token_preferred",
			environment: map[string]string{
				githubauth.EnvGitHubCLIToken: testCLITokenValueConstant,
				githubauth.EnvGitHubToken:    testGenericTokenValueConstant,
			},
			expectedToken: testCLITokenValueConstant,
			expectedFound: true,
		},
		{
			name: "generic_token_fallback",
			environment: map[string]string{
				githubauth.EnvGitHubToken: testGenericTokenValueConstant,
			},
			expectedToken: testGenericTokenValueConstant,
			expectedFound: true,
		},
		{
			name: "api_token_fallback",
			environment: map[string]string{
				githubauth.EnvGitHubAPIToken: testAPITokenValueConstant,
			},
			expectedToken: testAPITokenValueConstant,
			expectedFound: true,
		},
		{
			name: "blank_values_skipped",
			environment: map[string]string{
				githubauth.EnvGitHubCLIToken: "   ",
				githubauth.EnvGitHubToken:    testGenericTokenValueConstant,
			},
			expectedToken: testGenericTokenValueConstant,
			expectedFound: true,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			resolvedToken, tokenFound := githubauth.ResolveToken(testCase.environment)
			require.Equal(testInstance, testCase.expectedFound, tokenFound)
			require.Equal(testInstance, testCase.expectedToken, resolvedToken)
		})
	}
}

func TestResolveTokenFallsBackToProcessEnvironment(testInstance *testing.T) {
	testInstance.Setenv(githubauth.EnvGitHubCLIToken, "")
	testInstance.Setenv(githubauth.EnvGitHubToken, testGenericTokenValueConstant)
	testInstance.Setenv(githubauth.EnvGitHubAPIToken, "")

	resolvedToken, tokenFound := githubauth.ResolveToken(nil)
	require.True(testInstance, tokenFound)
	require.Equal(testInstance, testGenericTokenValueConstant, resolvedToken)
}
