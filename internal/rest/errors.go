package rest

// BusinessError is a failure the server reported inside the response
// envelope: the transport succeeded but code signals a business-level
// problem regardless of HTTP status.
type BusinessError struct {
	Code int
	Msg  string
}

func (e *BusinessError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return fallbackBusinessMsg
}

// TransportError is a failure below the envelope: the request never
// reached the server, no response arrived, or the response was not a
// parseable envelope. The original cause stays reachable through Unwrap
// so callers can classify it.
type TransportError struct {
	// Status is the HTTP status code, or 0 when no response was received.
	Status int
	// Msg is the best-effort message: a server-embedded msg when one could
	// be extracted, otherwise the transport error text.
	Msg   string
	cause error
}

func (e *TransportError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.cause != nil {
		return e.cause.Error()
	}
	return fallbackTransportMsg
}

func (e *TransportError) Unwrap() error {
	return e.cause
}

const (
	fallbackBusinessMsg  = "Error"
	fallbackTransportMsg = "Unknown Error"
)
