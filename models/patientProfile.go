package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Wellness is the patient maintained lifestyle section of the profile.
type Wellness struct {
	HeightCM          float64  `json:"heightCm,omitempty" bson:"heightCm,omitempty"`
	WeightKG          float64  `json:"weightKg,omitempty" bson:"weightKg,omitempty"`
	Allergies         []string `json:"allergies,omitempty" bson:"allergies,omitempty"`
	ChronicConditions []string `json:"chronicConditions,omitempty" bson:"chronicConditions,omitempty"`
	Goals             string   `json:"goals,omitempty" bson:"goals,omitempty"`
}

// PatientProfile may not exist for every patient identity. Callers receive a
// profileComplete flag instead of guessing from absent fields.
type PatientProfile struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID      primitive.ObjectID `json:"userId" bson:"userId"`
	DateOfBirth string             `json:"dateOfBirth,omitempty" bson:"dateOfBirth,omitempty"`
	Gender      string             `json:"gender,omitempty" bson:"gender,omitempty"`
	BloodGroup  string             `json:"bloodGroup,omitempty" bson:"bloodGroup,omitempty"`
	Address     string             `json:"address,omitempty" bson:"address,omitempty"`
	Wellness    Wellness           `json:"wellness" bson:"wellness"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}
