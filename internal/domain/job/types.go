package job

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusCompleted, StatusFailed:
		return true
	default:
		return false
	}
}

func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

func AllStatuses() []Status {
	return []Status{StatusPending, StatusProcessing, StatusCompleted, StatusFailed}
}

func NewStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

// Type is the closed set of deferred writes the queue knows how to apply.
type Type string

const (
	TypeUserInsert  Type = "user_insert"
	TypeUserUpdate  Type = "user_update"
	TypeMovieInsert Type = "movie_insert"
	TypeMovieUpdate Type = "movie_update"
)

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	switch t {
	case TypeUserInsert, TypeUserUpdate, TypeMovieInsert, TypeMovieUpdate:
		return true
	default:
		return false
	}
}

func AllTypes() []Type {
	return []Type{TypeUserInsert, TypeUserUpdate, TypeMovieInsert, TypeMovieUpdate}
}

func NewType(s string) (Type, error) {
	t := Type(s)
	if !t.IsValid() {
		return "", ErrInvalidType
	}
	return t, nil
}
