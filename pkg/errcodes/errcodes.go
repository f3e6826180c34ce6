package errcodes

import "errors"

var (
	ErrNoRecordFound       = errors.New("no record found")
	ErrAlreadyExists       = errors.New("record already exists")
	ErrContextCancelled    = errors.New("context cancelled")
	ErrInvalidPeriod       = errors.New("invalid period")
	ErrInvalidMetric       = errors.New("invalid leaderboard metric")
	ErrUnknownProvider     = errors.New("unknown webhook provider")
	ErrMissingRepoIdentity = errors.New("payload missing repository identity")
	ErrMissingItemIdentity = errors.New("item missing identity field")
	ErrInvalidScore        = errors.New("review score must be between 0 and 10")
	ErrMissingReviewTarget = errors.New("review must reference a pull request or a commit")
)
