package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TimeSlot struct {
	ID            primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	DoctorID      primitive.ObjectID  `json:"doctorId" bson:"doctorId"`
	Date          string              `json:"date" bson:"date"` // 2006-01-02
	Start         string              `json:"start" bson:"start"`
	End           string              `json:"end" bson:"end"`
	IsBooked      bool                `json:"isBooked" bson:"isBooked"`
	AppointmentID *primitive.ObjectID `json:"appointmentId,omitempty" bson:"appointmentId,omitempty"`
	CreatedAt     time.Time           `json:"createdAt" bson:"createdAt"`
}

// StartTime resolves the slot's wall clock start in the given location.
func (s *TimeSlot) StartTime(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04", s.Date+" "+s.Start, loc)
}
