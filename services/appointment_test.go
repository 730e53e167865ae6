package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"MediConsult/models"
	"MediConsult/role"
	"MediConsult/utils"
)

func TestValidateTransition(t *testing.T) {
	now := time.Now()
	patientID := primitive.NewObjectID()
	doctorID := primitive.NewObjectID()

	appt := func(scheduledIn time.Duration) *models.Appointment {
		return &models.Appointment{
			PatientID:   patientID,
			DoctorID:    doctorID,
			ScheduledAt: now.Add(scheduledIn),
			Status:      models.StatusConfirmed,
		}
	}
	patient := &models.User{ID: patientID, Role: role.Patient}
	otherPatient := &models.User{ID: primitive.NewObjectID(), Role: role.Patient}
	doctor := &models.User{ID: doctorID, Role: role.Doctor}

	t.Run("rejects unknown status", func(t *testing.T) {
		err := ValidateTransition(appt(48*time.Hour), patient, "rescheduled", now)
		assert.Error(t, err)
	})

	t.Run("patient owner cannot cancel inside 24h", func(t *testing.T) {
		err := ValidateTransition(appt(2*time.Hour), patient, models.StatusCancelled, now)
		assert.Error(t, err)
		assert.Equal(t, 400, utils.StatusOf(err))
	})

	t.Run("patient owner can cancel outside 24h", func(t *testing.T) {
		assert.NoError(t, ValidateTransition(appt(48*time.Hour), patient, models.StatusCancelled, now))
	})

	t.Run("exactly at the boundary is rejected", func(t *testing.T) {
		err := ValidateTransition(appt(24*time.Hour-time.Second), patient, models.StatusCancelled, now)
		assert.Error(t, err)
	})

	t.Run("doctor may cancel inside 24h", func(t *testing.T) {
		assert.NoError(t, ValidateTransition(appt(2*time.Hour), doctor, models.StatusCancelled, now))
	})

	t.Run("non-owner patient is not bound by the window", func(t *testing.T) {
		// the ownership guard rejects them earlier, the rule itself only
		// binds the owning patient
		assert.NoError(t, ValidateTransition(appt(2*time.Hour), otherPatient, models.StatusCancelled, now))
	})

	t.Run("other transitions are unrestricted", func(t *testing.T) {
		assert.NoError(t, ValidateTransition(appt(2*time.Hour), patient, models.StatusCompleted, now))
		assert.NoError(t, ValidateTransition(appt(2*time.Hour), doctor, models.StatusConfirmed, now))
		assert.NoError(t, ValidateTransition(appt(-2*time.Hour), doctor, models.StatusNoShow, now))
	})
}
