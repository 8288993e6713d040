package dto

import (
	"github.com/pasealo/walk-tracking-system/internal/domain/models"
	"github.com/pasealo/walk-tracking-system/pkg/uuid"
	"github.com/pasealo/walk-tracking-system/pkg/validator"
)

type SaveLocationRequest struct {
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Altitude    *float64 `json:"altitude"`
	Accuracy    *float64 `json:"accuracy"`
	TimestampMs int64    `json:"timestamp"`
}

func (r *SaveLocationRequest) Validate(v *validator.Validator) {
	v.Check(r.Latitude != nil, "latitude", "must be provided")
	v.Check(r.Longitude != nil, "longitude", "must be provided")

	if r.Latitude != nil {
		v.Check(*r.Latitude >= -90 && *r.Latitude <= 90, "latitude", "must be between -90 and 90")
	}
	if r.Longitude != nil {
		v.Check(*r.Longitude >= -180 && *r.Longitude <= 180, "longitude", "must be between -180 and 180")
	}
	v.Check(r.TimestampMs > 0, "timestamp", "must be provided")
}

func (r *SaveLocationRequest) ToModel(walkID uuid.UUID) models.LocationSample {
	return models.LocationSample{
		WalkID:      walkID,
		Latitude:    *r.Latitude,
		Longitude:   *r.Longitude,
		Altitude:    r.Altitude,
		Accuracy:    r.Accuracy,
		TimestampMs: r.TimestampMs,
	}
}
