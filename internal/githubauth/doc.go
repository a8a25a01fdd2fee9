// Package githubauth resolves GitHub authentication tokens from the environment.
package githubauth
