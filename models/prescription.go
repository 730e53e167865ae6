package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Frequency struct {
	Morning   bool `json:"morning" bson:"morning"`
	Afternoon bool `json:"afternoon" bson:"afternoon"`
	Night     bool `json:"night" bson:"night"`
}

type Medication struct {
	Name         string    `json:"name" bson:"name"`
	Dosage       string    `json:"dosage" bson:"dosage"`
	Frequency    Frequency `json:"frequency" bson:"frequency"`
	NoOfDays     int       `json:"noOfDays" bson:"noOfDays"`
	Instructions string    `json:"instructions,omitempty" bson:"instructions,omitempty"`
}

type Prescription struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	RecordID    primitive.ObjectID `json:"recordId" bson:"recordId"`
	PatientID   primitive.ObjectID `json:"patientId" bson:"patientId"`
	DoctorID    primitive.ObjectID `json:"doctorId" bson:"doctorId"`
	Medications []Medication       `json:"medications" bson:"medications"`
	ValidUntil  *time.Time         `json:"validUntil,omitempty" bson:"validUntil,omitempty"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}
