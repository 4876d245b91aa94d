package errorx

type Code int

var Unknown = Error{Code: 100000, Message: "Request failed"}

const (
	// Common codes
	BadRequest    Code = 100001
	NotFound      Code = 100004
	AlreadyExists Code = 100006

	// Gamification codes
	Degraded Code = 500001
)
