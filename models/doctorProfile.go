package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Review struct {
	PatientID primitive.ObjectID `json:"patientId" bson:"patientId"`
	Rating    int                `json:"rating" bson:"rating"`
	Comment   string             `json:"comment,omitempty" bson:"comment,omitempty"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}

// RatingSummary is always recomputed from the full review list, never kept as
// a running accumulator.
type RatingSummary struct {
	Average float64 `json:"average" bson:"average"`
	Count   int     `json:"count" bson:"count"`
}

type DoctorProfile struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID         primitive.ObjectID `json:"userId" bson:"userId"`
	Specialization string             `json:"specialization" bson:"specialization"`
	Degree         string             `json:"degree,omitempty" bson:"degree,omitempty"`
	Experience     int                `json:"experience" bson:"experience"`
	Fees           float64            `json:"fees" bson:"fees"`
	About          string             `json:"about,omitempty" bson:"about,omitempty"`
	PhotoURL       string             `json:"photoUrl,omitempty" bson:"photoUrl,omitempty"`
	Availability   []string           `json:"availability" bson:"availability"`
	Reviews        []Review           `json:"reviews" bson:"reviews"`
	RatingSummary  RatingSummary      `json:"ratingSummary" bson:"ratingSummary"`
	CreatedAt      time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time          `json:"updatedAt" bson:"updatedAt"`
}
