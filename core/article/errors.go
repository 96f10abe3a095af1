package article

// Expected failures are typed so callers can tell a bad request from a
// missing record from a write conflict without parsing message text. The
// message carried is the one shown to the caller.

type ValidationError struct {
	Reason string
}

func (e ValidationError) Error() string { return e.Reason }

type NotFoundError struct {
	Reason string
}

func (e NotFoundError) Error() string { return e.Reason }

type ConflictError struct {
	Reason string
}

func (e ConflictError) Error() string { return e.Reason }

// PersistenceError reports a storage write that failed for reasons other
// than a conflict. The reason is safe to show, the underlying cause stays
// in the logs.
type PersistenceError struct {
	Reason string
}

func (e PersistenceError) Error() string { return e.Reason }
