package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Appointment statuses.
const (
	StatusRequested = "requested"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
	StatusNoShow    = "no-show"
)

func ValidStatus(s string) bool {
	switch s {
	case StatusRequested, StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// StatusEntry is one audit record in an appointment's history. The history
// list is append only.
type StatusEntry struct {
	Status    string    `json:"status" bson:"status"`
	UpdatedBy string    `json:"updatedBy" bson:"updatedBy"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
}

type Appointment struct {
	ID          primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	PatientID   primitive.ObjectID  `json:"patientId" bson:"patientId"`
	DoctorID    primitive.ObjectID  `json:"doctorId" bson:"doctorId"`
	SlotID      *primitive.ObjectID `json:"slotId,omitempty" bson:"slotId,omitempty"`
	ScheduledAt time.Time           `json:"scheduledAt" bson:"scheduledAt"`
	Reason      string              `json:"reason" bson:"reason"`
	Status      string              `json:"status" bson:"status"`
	History     []StatusEntry       `json:"history" bson:"history"`
	CreatedAt   time.Time           `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt" bson:"updatedAt"`
}
