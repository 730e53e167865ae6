package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Record visibility.
const (
	VisibilityPrivate    = "private"
	VisibilityAllDoctors = "all_doctors"
)

func ValidVisibility(v string) bool {
	return v == VisibilityPrivate || v == VisibilityAllDoctors
}

type MedicalRecord struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	PatientID   primitive.ObjectID `json:"patientId" bson:"patientId"`
	DoctorID    primitive.ObjectID `json:"doctorId" bson:"doctorId"`
	Title       string             `json:"title" bson:"title"`
	Diagnosis   string             `json:"diagnosis,omitempty" bson:"diagnosis,omitempty"`
	Notes       string             `json:"notes,omitempty" bson:"notes,omitempty"`
	Visibility  string             `json:"visibility" bson:"visibility"`
	Attachments []string           `json:"attachments,omitempty" bson:"attachments,omitempty"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}
