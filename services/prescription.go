package services

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"MediConsult/db"
	"MediConsult/models"
	"MediConsult/role"
	"MediConsult/utils"
)

type PrescriptionRequest struct {
	Medications []models.Medication `json:"medications" binding:"required"`
	ValidUntil  string              `json:"validUntil"` // 2006-01-02, optional
}

// ValidateMedications checks every entry carries a name, a dosage, a day
// count and at least one frequency flag.
func ValidateMedications(meds []models.Medication) error {
	if len(meds) == 0 {
		return utils.ValidationError("at least one medication is required")
	}
	for _, m := range meds {
		if strings.TrimSpace(m.Name) == "" {
			return utils.ValidationError("medication name is required")
		}
		if strings.TrimSpace(m.Dosage) == "" {
			return utils.ValidationError("medication dosage is required")
		}
		if m.NoOfDays <= 0 {
			return utils.ValidationError("medication noOfDays must be positive")
		}
		if !m.Frequency.Morning && !m.Frequency.Afternoon && !m.Frequency.Night {
			return utils.ValidationError("medication frequency must set at least one of morning, afternoon, night")
		}
	}
	return nil
}

/*
* Only the doctor who authored the record may attach prescriptions to it
 */
func verifyRecordAuthor(ctx context.Context, caller *models.User, recordID string) (*models.MedicalRecord, error) {
	record, err := fetchRecordByID(ctx, recordID)
	if err != nil {
		return nil, err
	}
	if caller.Role != role.Admin && record.DoctorID != caller.ID {
		return nil, utils.Forbidden(utils.ACCESS_DENIED)
	}
	return record, nil
}

func CreatePrescription(ctx context.Context, doctor *models.User, recordID string, req *PrescriptionRequest) (*models.Prescription, error) {
	record, err := verifyRecordAuthor(ctx, doctor, recordID)
	if err != nil {
		return nil, err
	}
	if err := ValidateMedications(req.Medications); err != nil {
		return nil, err
	}

	var validUntil *time.Time
	if req.ValidUntil != "" {
		parsed, err := time.Parse("2006-01-02", req.ValidUntil)
		if err != nil {
			return nil, utils.ValidationError("validUntil must be yyyy-mm-dd")
		}
		validUntil = &parsed
	}

	now := time.Now()
	prescription := &models.Prescription{
		ID:          primitive.NewObjectID(),
		RecordID:    record.ID,
		PatientID:   record.PatientID,
		DoctorID:    record.DoctorID,
		Medications: req.Medications,
		ValidUntil:  validUntil,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := db.CreateOne(ctx, db.OpenCollection(db.PrescriptionCollection), prescription); err != nil {
		log.Error().Err(err).Msg("prescription insert failed")
		return nil, utils.ServerError("could not create prescription")
	}
	return prescription, nil
}

// ListPrescriptions returns the prescriptions of a record the caller may read.
func ListPrescriptions(ctx context.Context, caller *models.User, recordID string) ([]models.Prescription, error) {
	record, err := fetchRecordByID(ctx, recordID)
	if err != nil {
		return nil, err
	}
	if !CanAccessRecord(record, caller) {
		return nil, utils.Forbidden(utils.ACCESS_DENIED)
	}
	prescriptions := []models.Prescription{}
	err = db.FindAll(ctx, db.OpenCollection(db.PrescriptionCollection),
		bson.M{"recordId": record.ID}, nil, &prescriptions)
	if err != nil {
		log.Error().Err(err).Msg("prescription listing failed")
		return nil, utils.ServerError("could not load prescriptions")
	}
	return prescriptions, nil
}

func UpdatePrescription(ctx context.Context, caller *models.User, id string, req *PrescriptionRequest) (*models.Prescription, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, utils.NotFound(utils.PRESCRIPTION_NOT_FOUND)
	}
	var prescription models.Prescription
	if err := db.FindOne(ctx, db.OpenCollection(db.PrescriptionCollection), bson.M{"_id": oid}, &prescription); err != nil {
		return nil, utils.NotFound(utils.PRESCRIPTION_NOT_FOUND)
	}
	if caller.Role != role.Admin && prescription.DoctorID != caller.ID {
		return nil, utils.Forbidden(utils.ACCESS_DENIED)
	}
	if err := ValidateMedications(req.Medications); err != nil {
		return nil, err
	}

	set := bson.M{"medications": req.Medications, "updatedAt": time.Now()}
	if req.ValidUntil != "" {
		parsed, err := time.Parse("2006-01-02", req.ValidUntil)
		if err != nil {
			return nil, utils.ValidationError("validUntil must be yyyy-mm-dd")
		}
		set["validUntil"] = parsed
	}
	if _, err := db.UpdateOne(ctx, db.OpenCollection(db.PrescriptionCollection),
		bson.M{"_id": oid}, bson.M{"$set": set}); err != nil {
		log.Error().Err(err).Msg("prescription update failed")
		return nil, utils.ServerError("could not update prescription")
	}
	prescription.Medications = req.Medications
	return &prescription, nil
}
