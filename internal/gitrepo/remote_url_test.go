package gitrepo_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/forgebridge/forgebridge/internal/gitrepo"
)

func TestParseRemoteURL(testInstance *testing.T) {
	testCases := []struct {
		name             string
		remote           string
		expectedProtocol gitrepo.RemoteProtocol
		expectedHost     string
		expectedFullName string
		expectError      bool
	}{
		{
			name:             "scp_style_ssh",
			remote:           "git@github.com:acme/widgets.git",
			expectedProtocol: gitrepo.RemoteProtocolSSH,
			expectedHost:     "github.com",
			expectedFullName: "acme/widgets",
		},
		{
			name:             "ssh_protocol_prefix",
			remote:           "ssh://git@github.com/acme/widgets.git",
			expectedProtocol: gitrepo.RemoteProtocolSSH,
			expectedHost:     "github.com",
			expectedFullName: "acme/widgets",
		},
		{
			name:             "https_with_suffix",
			remote:           "https://github.com/acme/widgets.git",
			expectedProtocol: gitrepo.RemoteProtocolHTTPS,
			expectedHost:     "github.com",
			expectedFullName: "acme/widgets",
		},
		{
			name:             "https_without_suffix",
			remote:           "https://github.com/acme/widgets",
			expectedProtocol: gitrepo.RemoteProtocolHTTPS,
			expectedHost:     "github.com",
			expectedFullName: "acme/widgets",
		},
		{
			name:        "empty_input",
			remote:      "   ",
			expectError: true,
		},
		{
			name:        "unsupported_protocol",
			remote:      "ftp://github.com/acme/widgets",
			expectError: true,
		},
		{
			name:        "missing_repository_segment",
			remote:      "git@github.com:acme",
			expectError: true,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			parsedRemote, parseError := gitrepo.ParseRemoteURL(testCase.remote)
			if testCase.expectError {
				require.Error(testInstance, parseError)

				var typedError gitrepo.RemoteURLParseError
				require.ErrorAs(testInstance, parseError, &typedError)
				return
			}

			require.NoError(testInstance, parseError)
			require.Equal(testInstance, testCase.expectedProtocol, parsedRemote.Protocol)
			require.Equal(testInstance, testCase.expectedHost, parsedRemote.Host)
			require.Equal(testInstance, testCase.expectedFullName, parsedRemote.FullName())
		})
	}
}
