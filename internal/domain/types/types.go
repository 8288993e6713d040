package types

// WalkStatus is the lifecycle status of a walk. The values are the exact
// Spanish strings the backend stores; they double as wire values.
// Transitions are owned by the walk lifecycle service, this system only
// reads the current value and reacts.
type WalkStatus string

func (s WalkStatus) String() string {
	return string(s)
}

const (
	StatusRequested   WalkStatus = "Solicitado"
	StatusAwaitingPay WalkStatus = "Esperando pago"
	StatusScheduled   WalkStatus = "Agendado"
	StatusActive      WalkStatus = "Activo"
	StatusFinished    WalkStatus = "Finalizado"
	StatusRejected    WalkStatus = "Rechazado"
	StatusCancelled   WalkStatus = "Cancelado"
)

// AllStatuses lists every known walk status. Gating code must treat any
// value outside this list as unknown and fail closed.
var AllStatuses = []WalkStatus{
	StatusRequested,
	StatusAwaitingPay,
	StatusScheduled,
	StatusActive,
	StatusFinished,
	StatusRejected,
	StatusCancelled,
}

// IsKnown reports whether s is one of the seven recognized statuses.
func (s WalkStatus) IsKnown() bool {
	switch s {
	case StatusRequested, StatusAwaitingPay, StatusScheduled,
		StatusActive, StatusFinished, StatusRejected, StatusCancelled:
		return true
	default:
		return false
	}
}

// SenderType identifies which side of a walk wrote a chat message.
type SenderType string

func (s SenderType) String() string {
	return string(s)
}

const (
	SenderOwner  SenderType = "owner"
	SenderWalker SenderType = "walker"
)

// TrackingMode is the capability level a tracking start call ended up with.
type TrackingMode string

const (
	// TrackingModeOff means no sampling is running.
	TrackingModeOff TrackingMode = "off"
	// TrackingModeForeground means only foreground sampling could be
	// started. Returned as a degraded success when background permission
	// is denied while foreground permission is granted.
	TrackingModeForeground TrackingMode = "foreground"
	// TrackingModeBackground means the background task is registered.
	TrackingModeBackground TrackingMode = "background"
)

// UserRole for the HTTP layer's bearer-token claims.
type UserRole string

func (r UserRole) String() string {
	return string(r)
}

const (
	RoleOwner  UserRole = "OWNER"
	RoleWalker UserRole = "WALKER"
	RoleAdmin  UserRole = "ADMIN"
)
