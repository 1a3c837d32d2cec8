package models

// ConnectionStatus is the outcome of the last connection test.
type ConnectionStatus string

const (
	// ConnectionStatusUnknown - not tested yet, or a test is running
	ConnectionStatusUnknown ConnectionStatus = "unknown"
	// ConnectionStatusSuccess - the backend accepted the API key
	ConnectionStatusSuccess ConnectionStatus = "success"
	// ConnectionStatusError - the backend rejected the API key or the test failed
	ConnectionStatusError ConnectionStatus = "error"
)

// ConnectionTestResult holds the status of the last test and a timestamped
// human-readable outcome.
type ConnectionTestResult struct {
	Status  ConnectionStatus
	Message string
}
