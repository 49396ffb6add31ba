package services

import "strings"

const (
	MinPINLength = 4
	MaxPINLength = 8
)

// PIN failure messages returned in PINResult.Error.
const (
	PINErrorTooShort         = "PIN must be at least 4 digits"
	PINErrorTooLong          = "PIN must be at most 8 digits"
	PINErrorNotNumeric       = "PIN must contain digits only"
	PINErrorAlreadySet       = "PIN is already set"
	PINErrorNotSet           = "PIN is not set"
	PINErrorIncorrect        = "incorrect PIN"
	PINErrorCurrentIncorrect = "current PIN is incorrect"
)

// PINResult reports a PIN operation outcome. Policy violations are results, not errors.
type PINResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

func pinSuccess() PINResult {
	return PINResult{Success: true}
}

func pinFailure(message string) PINResult {
	return PINResult{Success: false, Error: message}
}

// ValidatePIN checks the 4-8 ASCII digit policy and returns the trimmed PIN.
func ValidatePIN(raw string) (string, PINResult) {
	pin := strings.TrimSpace(raw)
	switch {
	case len(pin) < MinPINLength:
		return "", pinFailure(PINErrorTooShort)
	case len(pin) > MaxPINLength:
		return "", pinFailure(PINErrorTooLong)
	}
	for _, char := range pin {
		if char < '0' || char > '9' {
			return "", pinFailure(PINErrorNotNumeric)
		}
	}
	return pin, pinSuccess()
}
