package apperror

// Error is a constant-friendly error type so the sentinel values below can
// be declared as untyped constants and compared with errors.Is.
type Error string

func (e Error) Error() string { return string(e) }

const (
	ErrNotFound         = Error("record not found")
	ErrInvalidArgument  = Error("invalid argument")
	ErrNoData           = Error("no records found")
	ErrSelfVote         = Error("cannot vote on own content")
	ErrSelfReport       = Error("cannot report own content")
	ErrDuplicatePending = Error("pending report already exists")
	ErrRateLimited      = Error("rate limit exceeded")
	ErrDenied           = Error("not allowed") // eg. upd/del by non-owner
	ErrUpgradeRequired  = Error("subscription upgrade required")
)
