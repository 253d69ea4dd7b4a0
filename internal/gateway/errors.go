package gateway

import "fmt"

// TransportError is the failure reported when no response could be obtained from the server at all - the request
// could not be built, the connection failed or timed out
type TransportError struct {
	URI string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("POST %s: transport failed: %v", e.URI, e.Err)
}

// Cause returns the underlying error
func (e *TransportError) Cause() error {
	return e.Err
}

// ServerError is the failure reported when the server answered with a status outside of [200, 400). Body contains
// the raw response body as the server's error format is not guaranteed to be JSON.
type ServerError struct {
	URI    string
	Status int
	Body   string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("POST %s: server returned status %d", e.URI, e.Status)
}

// ProtocolError is the failure reported when the server signalled success but the response body is no valid JSON
type ProtocolError struct {
	URI  string
	Body string
	Err  error
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("POST %s: malformed JSON response: %v", e.URI, e.Err)
}

// Cause returns the underlying decoding error
func (e *ProtocolError) Cause() error {
	return e.Err
}
