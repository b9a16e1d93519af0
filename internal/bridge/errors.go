package bridge

// RequestError describes a request that cannot be run.
type RequestError struct {
	Field  string
	Reason string
}

func (e *RequestError) Error() string {
	return "invalid " + e.Field + ": " + e.Reason
}
