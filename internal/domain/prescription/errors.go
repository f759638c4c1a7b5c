package prescription

import "errors"

var (
	ErrPrescriptionNotFound = errors.New("prescription not found")
	ErrMedicationRequired   = errors.New("medication is required")
)
