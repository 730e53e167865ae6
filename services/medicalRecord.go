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

type RecordRequest struct {
	PatientID  string `json:"patientId" binding:"required"`
	DoctorID   string `json:"doctorId"`
	Title      string `json:"title" binding:"required"`
	Diagnosis  string `json:"diagnosis"`
	Notes      string `json:"notes"`
	Visibility string `json:"visibility"`
}

type RecordUpdateRequest struct {
	Title      string `json:"title"`
	Diagnosis  string `json:"diagnosis"`
	Notes      string `json:"notes"`
	Visibility string `json:"visibility"`
}

// CanAccessRecord decides read access: the owning patient, the authoring
// doctor, any doctor when the record is shared, and admins.
func CanAccessRecord(record *models.MedicalRecord, caller *models.User) bool {
	switch caller.Role {
	case role.Admin:
		return true
	case role.Patient:
		return record.PatientID == caller.ID
	case role.Doctor:
		return record.DoctorID == caller.ID || record.Visibility == models.VisibilityAllDoctors
	}
	return false
}

// ResolveRecordAuthor picks the doctor written into the author field. Doctors
// always author as themselves, admins must name the doctor explicitly so the
// admin's own id never ends up as the author.
func ResolveRecordAuthor(caller *models.User, requested string) (primitive.ObjectID, error) {
	if caller.Role == role.Doctor {
		return caller.ID, nil
	}
	if requested == "" {
		return primitive.NilObjectID, utils.ValidationError(utils.DOCTOR_ID_REQUIRED)
	}
	oid, err := primitive.ObjectIDFromHex(requested)
	if err != nil {
		return primitive.NilObjectID, utils.NotFound(utils.DOCTOR_NOT_FOUND)
	}
	return oid, nil
}

/*
* Authored by the calling doctor, or by the doctor an admin names
* The patient and the author must both exist
* Visibility defaults to private
 */
func CreateRecord(ctx context.Context, caller *models.User, req *RecordRequest) (*models.MedicalRecord, error) {
	authorOID, err := ResolveRecordAuthor(caller, req.DoctorID)
	if err != nil {
		return nil, err
	}
	if caller.Role == role.Admin {
		count, err := db.CountDocuments(ctx, db.OpenCollection(db.UserCollection),
			bson.M{"_id": authorOID, "role": role.Doctor})
		if err != nil || count == 0 {
			return nil, utils.NotFound(utils.DOCTOR_NOT_FOUND)
		}
	}

	patientOID, err := primitive.ObjectIDFromHex(req.PatientID)
	if err != nil {
		return nil, utils.NotFound(utils.PATIENT_NOT_FOUND)
	}
	count, err := db.CountDocuments(ctx, db.OpenCollection(db.UserCollection),
		bson.M{"_id": patientOID, "role": role.Patient})
	if err != nil || count == 0 {
		return nil, utils.NotFound(utils.PATIENT_NOT_FOUND)
	}

	visibility := req.Visibility
	if visibility == "" {
		visibility = models.VisibilityPrivate
	}
	if !models.ValidVisibility(visibility) {
		return nil, utils.ValidationError(utils.INVALID_VISIBILITY)
	}

	now := time.Now()
	record := &models.MedicalRecord{
		ID:         primitive.NewObjectID(),
		PatientID:  patientOID,
		DoctorID:   authorOID,
		Title:      strings.TrimSpace(req.Title),
		Diagnosis:  strings.TrimSpace(req.Diagnosis),
		Notes:      req.Notes,
		Visibility: visibility,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if _, err := db.CreateOne(ctx, db.OpenCollection(db.MedicalRecordCollection), record); err != nil {
		log.Error().Err(err).Msg("medical record insert failed")
		return nil, utils.ServerError("could not create medical record")
	}
	return record, nil
}

// ListRecords returns the caller's records: owned for patients, authored for
// doctors, all for admins.
func ListRecords(ctx context.Context, caller *models.User) ([]models.MedicalRecord, error) {
	filter := bson.M{}
	switch caller.Role {
	case role.Patient:
		filter["patientId"] = caller.ID
	case role.Doctor:
		filter["doctorId"] = caller.ID
	}
	records := []models.MedicalRecord{}
	err := db.FindAll(ctx, db.OpenCollection(db.MedicalRecordCollection), filter, nil, &records)
	if err != nil {
		log.Error().Err(err).Msg("medical record listing failed")
		return nil, utils.ServerError("could not load medical records")
	}
	return records, nil
}

func FetchRecord(ctx context.Context, caller *models.User, id string) (*models.MedicalRecord, error) {
	record, err := fetchRecordByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanAccessRecord(record, caller) {
		return nil, utils.Forbidden(utils.ACCESS_DENIED)
	}
	return record, nil
}

func fetchRecordByID(ctx context.Context, id string) (*models.MedicalRecord, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, utils.NotFound(utils.MEDICAL_RECORD_NOT_FOUND)
	}
	var record models.MedicalRecord
	if err := db.FindOne(ctx, db.OpenCollection(db.MedicalRecordCollection), bson.M{"_id": oid}, &record); err != nil {
		return nil, utils.NotFound(utils.MEDICAL_RECORD_NOT_FOUND)
	}
	return &record, nil
}

// UpdateRecord is restricted to the authoring doctor, admins excepted.
func UpdateRecord(ctx context.Context, caller *models.User, id string, req *RecordUpdateRequest) (*models.MedicalRecord, error) {
	record, err := fetchRecordByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if caller.Role != role.Admin && record.DoctorID != caller.ID {
		return nil, utils.Forbidden(utils.ACCESS_DENIED)
	}

	set := bson.M{"updatedAt": time.Now()}
	if req.Title != "" {
		set["title"] = strings.TrimSpace(req.Title)
	}
	if req.Diagnosis != "" {
		set["diagnosis"] = strings.TrimSpace(req.Diagnosis)
	}
	if req.Notes != "" {
		set["notes"] = req.Notes
	}
	if req.Visibility != "" {
		if !models.ValidVisibility(req.Visibility) {
			return nil, utils.ValidationError(utils.INVALID_VISIBILITY)
		}
		set["visibility"] = req.Visibility
	}
	if _, err := db.UpdateOne(ctx, db.OpenCollection(db.MedicalRecordCollection),
		bson.M{"_id": record.ID}, bson.M{"$set": set}); err != nil {
		log.Error().Err(err).Msg("medical record update failed")
		return nil, utils.ServerError("could not update medical record")
	}
	return fetchRecordByID(ctx, id)
}
