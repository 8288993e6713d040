package policy

import (
	"github.com/pasealo/walk-tracking-system/internal/domain/types"
)

// User-facing status lines, one per collaborator. Kept in Spanish, the
// product's language; the app renders them verbatim.

// MapStatusMessage explains why the map is (or is not) available.
func MapStatusMessage(status types.WalkStatus) string {
	switch status {
	case types.StatusRequested:
		return "El mapa estará disponible cuando el paseo sea agendado"
	case types.StatusAwaitingPay:
		return "El mapa estará disponible luego de confirmar el pago"
	case types.StatusScheduled:
		return "El recorrido aparecerá cuando comience el paseo"
	case types.StatusActive:
		return "Paseo en curso"
	case types.StatusFinished:
		return "Recorrido del paseo finalizado"
	case types.StatusRejected:
		return "El paseo fue rechazado"
	case types.StatusCancelled:
		return "El paseo fue cancelado"
	default:
		return "Mapa no disponible"
	}
}

// TrackingStatusMessage is shown above the GPS record list.
func TrackingStatusMessage(status types.WalkStatus) string {
	switch status {
	case types.StatusRequested, types.StatusAwaitingPay:
		return "Los registros GPS estarán disponibles cuando el paseo sea agendado"
	case types.StatusScheduled:
		return "Aún no hay registros GPS para este paseo"
	case types.StatusActive:
		return "Registrando ubicación del paseador"
	case types.StatusFinished:
		return "Registros GPS del paseo"
	case types.StatusRejected, types.StatusCancelled:
		return "No hay registros GPS para este paseo"
	default:
		return "Registros no disponibles"
	}
}

// ChatStatusMessage is shown in place of the input when sending is blocked.
func ChatStatusMessage(status types.WalkStatus) string {
	switch status {
	case types.StatusRequested, types.StatusAwaitingPay:
		return "El chat se habilitará cuando el paseo sea agendado"
	case types.StatusScheduled, types.StatusActive:
		return "Chat habilitado"
	case types.StatusFinished:
		return "El paseo finalizó, el chat es de solo lectura"
	case types.StatusRejected:
		return "El paseo fue rechazado"
	case types.StatusCancelled:
		return "El paseo fue cancelado"
	default:
		return "Chat no disponible"
	}
}
