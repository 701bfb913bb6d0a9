package git

import (
	stderrors "errors"

	"git.home.luguber.info/inful/portfolio/internal/foundation/errors"
)

// ErrOutsideRepository is returned for paths that are not below the worktree root.
var ErrOutsideRepository = stderrors.New("path is outside the repository worktree")

// GitError simplifies creating a git-scoped ClassifiedError.
func GitError(message string) *errors.ErrorBuilder {
	return errors.NewError(errors.CategoryGit, message)
}

func classify(err error, op, path string) error {
	if err == nil {
		return nil
	}
	if _, ok := errors.AsClassified(err); ok {
		return err
	}
	return GitError("git history lookup failed").
		WithCause(err).
		WithContext("op", op).
		WithContext("path", path).
		Build()
}
