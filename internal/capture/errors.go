package capture

import "fmt"

// Cause classifies why barcode acquisition failed. Each cause maps to a
// remediation message the UI can show verbatim.
type Cause string

const (
	CausePermissionDenied Cause = "permission_denied"
	CauseDeviceBusy       Cause = "device_busy"
	CauseUnsupported      Cause = "unsupported"
	CauseClosed           Cause = "closed"
)

// Error is a capture failure. Recoverable by re-invoking capture; the
// workflow never retries on its own.
type Error struct {
	Cause Cause
	Err   error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("capture: %s: %v", e.Cause, e.Err)
	}
	return fmt.Sprintf("capture: %s", e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Remediation returns the user-facing hint for this failure.
func (e *Error) Remediation() string {
	switch e.Cause {
	case CausePermissionDenied:
		return "Camera access was denied. Check permissions and try again."
	case CauseDeviceBusy:
		return "The camera is in use by another application. Close it and try again."
	case CauseUnsupported:
		return "This device has no supported camera. Enter the barcode manually."
	case CauseClosed:
		return "The scan was cancelled. Tap scan to start again."
	}
	return "Scanning failed. Please try again."
}
