package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"MediConsult/models"
)

func validMedication() models.Medication {
	return models.Medication{
		Name:      "Amoxicillin",
		Dosage:    "500mg",
		Frequency: models.Frequency{Morning: true, Night: true},
		NoOfDays:  7,
	}
}

func TestValidateMedications(t *testing.T) {
	assert.NoError(t, ValidateMedications([]models.Medication{validMedication()}))

	assert.Error(t, ValidateMedications(nil))

	noName := validMedication()
	noName.Name = "  "
	assert.Error(t, ValidateMedications([]models.Medication{noName}))

	noDosage := validMedication()
	noDosage.Dosage = ""
	assert.Error(t, ValidateMedications([]models.Medication{noDosage}))

	noDays := validMedication()
	noDays.NoOfDays = 0
	assert.Error(t, ValidateMedications([]models.Medication{noDays}))

	noFrequency := validMedication()
	noFrequency.Frequency = models.Frequency{}
	assert.Error(t, ValidateMedications([]models.Medication{noFrequency}))

	// one bad entry fails the batch
	assert.Error(t, ValidateMedications([]models.Medication{validMedication(), noDays}))
}
