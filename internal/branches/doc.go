// Package branches implements branch lifecycle cleanup for Git repositories.
//
// The cleanup service collects a branch inventory, indexes pull requests for
// the repository, classifies branches against an ordered eligibility policy,
// and deletes eligible branches locally and on the remote after confirmation.
package branches
