// Package gitrepo contains helpers for interrogating and manipulating Git repositories.
//
// It exposes RepositoryManager for inspecting branches, remotes, and merge
// state, along with remote URL parsing utilities consumed by the branch
// cleanup service.
package gitrepo
