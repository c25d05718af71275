package entity

// AuthStage is the current position in the operator login chain. A deployment
// that skips a gate simply never parks in the corresponding stage.
type AuthStage string

const (
	// StageUnauthenticated is the initial stage; credentials are pending.
	StageUnauthenticated AuthStage = "unauthenticated"
	// StageSecondFactorPending means credentials passed and a one-time code is awaited.
	StageSecondFactorPending AuthStage = "2fa_pending"
	// StageDevicePending means the code passed and device trust is awaited.
	StageDevicePending AuthStage = "device_pending"
	// StageAuthenticated is the fully authenticated terminal stage.
	StageAuthenticated AuthStage = "authenticated"
)

// String returns the string representation of the AuthStage.
func (s AuthStage) String() string {
	return string(s)
}

// IsValid checks if the AuthStage is a valid value.
func (s AuthStage) IsValid() bool {
	switch s {
	case StageUnauthenticated, StageSecondFactorPending, StageDevicePending, StageAuthenticated:
		return true
	default:
		return false
	}
}
