// Package git looks up when content files were first and last committed.
//
// The lookup reads the repository with go-git, so no git binary is needed. Files
// that are untracked, or live outside any repository, simply have no dates.
package git
