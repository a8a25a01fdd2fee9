// Package githubcli wraps the GitHub CLI behind a typed client.
//
// The client resolves repository metadata and pull request information by
// invoking gh through execshell, decoding the JSON payloads the CLI emits.
package githubcli
