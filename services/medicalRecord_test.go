package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"MediConsult/models"
	"MediConsult/role"
	"MediConsult/utils"
)

func TestCanAccessRecord(t *testing.T) {
	patientID := primitive.NewObjectID()
	authorID := primitive.NewObjectID()

	record := &models.MedicalRecord{
		PatientID:  patientID,
		DoctorID:   authorID,
		Visibility: models.VisibilityPrivate,
	}

	owner := &models.User{ID: patientID, Role: role.Patient}
	otherPatient := &models.User{ID: primitive.NewObjectID(), Role: role.Patient}
	author := &models.User{ID: authorID, Role: role.Doctor}
	otherDoctor := &models.User{ID: primitive.NewObjectID(), Role: role.Doctor}
	admin := &models.User{ID: primitive.NewObjectID(), Role: role.Admin}

	assert.True(t, CanAccessRecord(record, owner))
	assert.True(t, CanAccessRecord(record, author))
	assert.True(t, CanAccessRecord(record, admin))
	assert.False(t, CanAccessRecord(record, otherPatient))
	assert.False(t, CanAccessRecord(record, otherDoctor))

	// sharing with all doctors opens it to any doctor, not to other patients
	record.Visibility = models.VisibilityAllDoctors
	assert.True(t, CanAccessRecord(record, otherDoctor))
	assert.False(t, CanAccessRecord(record, otherPatient))
}

func TestResolveRecordAuthor(t *testing.T) {
	doctor := &models.User{ID: primitive.NewObjectID(), Role: role.Doctor}
	admin := &models.User{ID: primitive.NewObjectID(), Role: role.Admin}
	named := primitive.NewObjectID()

	t.Run("doctor authors as themselves", func(t *testing.T) {
		got, err := ResolveRecordAuthor(doctor, "")
		require.NoError(t, err)
		assert.Equal(t, doctor.ID, got)
	})

	t.Run("doctor cannot author as someone else", func(t *testing.T) {
		got, err := ResolveRecordAuthor(doctor, named.Hex())
		require.NoError(t, err)
		assert.Equal(t, doctor.ID, got)
	})

	t.Run("admin must name the doctor", func(t *testing.T) {
		_, err := ResolveRecordAuthor(admin, "")
		require.Error(t, err)
		assert.Equal(t, utils.DOCTOR_ID_REQUIRED, err.Error())
	})

	t.Run("admin authors as the named doctor, never as themselves", func(t *testing.T) {
		got, err := ResolveRecordAuthor(admin, named.Hex())
		require.NoError(t, err)
		assert.Equal(t, named, got)
		assert.NotEqual(t, admin.ID, got)
	})

	t.Run("malformed doctor id", func(t *testing.T) {
		_, err := ResolveRecordAuthor(admin, "not-an-id")
		require.Error(t, err)
		assert.Equal(t, utils.DOCTOR_NOT_FOUND, err.Error())
	})
}

func TestValidVisibility(t *testing.T) {
	assert.True(t, models.ValidVisibility(models.VisibilityPrivate))
	assert.True(t, models.ValidVisibility(models.VisibilityAllDoctors))
	assert.False(t, models.ValidVisibility("public"))
	assert.False(t, models.ValidVisibility(""))
}
