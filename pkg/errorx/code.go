package errorx

type Code int

// Unknown hides internal failures behind a generic message. The real cause
// must be logged before returning this.
var Unknown = Error{Code: Internal, Message: "Request failed"}

const (
	// Common codes
	BadRequest       Code = 100001
	BadResponse      Code = 100002
	PermissionDenied Code = 100003
	NotFound         Code = 100004
	Unauthenticated  Code = 100005
	AlreadyExists    Code = 100006
	Internal         Code = 100007
	Unavailable      Code = 100008
	TooManyRequests  Code = 100010

	// Wallet codes
	InsufficientBalance Code = 200001
	DailyCapExceeded    Code = 200002
)
