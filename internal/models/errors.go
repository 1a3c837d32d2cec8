package models

import "errors"

// RemoteError is returned by a remote data service when the backend
// rejected a call. Message is the backend-supplied explanation, if any.
type RemoteError struct {
	Message string
	Err     error
}

func (e *RemoteError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// ErrorMessage returns the backend-supplied message carried by err, or the
// plain error text when there is none.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var remoteErr *RemoteError
	if errors.As(err, &remoteErr) && remoteErr.Message != "" {
		return remoteErr.Message
	}
	return err.Error()
}
