package services

import (
	"context"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"MediConsult/auth"
	"MediConsult/db"
	"MediConsult/models"
	"MediConsult/role"
	"MediConsult/utils"
)

// CancelNotice is the minimum lead time for a patient-initiated cancellation.
const CancelNotice = 24 * time.Hour

type CreateAppointmentRequest struct {
	DoctorID    string `json:"doctorId" binding:"required"`
	SlotID      string `json:"slotId"`
	ScheduledAt string `json:"scheduledAt"` // RFC 3339, used when no slot is given
	Reason      string `json:"reason" binding:"required"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

/*
* Confirm the doctor exists, resolve the time from a slot or an explicit value
* Booking a slot marks it taken before the appointment document is written
* New appointments start as requested with one history entry
 */
func CreateAppointment(ctx context.Context, patient *models.User, req *CreateAppointmentRequest) (*models.Appointment, error) {
	doctor, _, err := loadDoctor(ctx, req.DoctorID)
	if err != nil {
		return nil, err
	}

	var scheduledAt time.Time
	var slotID *primitive.ObjectID

	if req.SlotID != "" {
		slot, err := fetchSlot(ctx, req.SlotID)
		if err != nil {
			return nil, err
		}
		if slot.DoctorID != doctor.ID {
			return nil, utils.ValidationError(utils.TIMESLOT_NOT_FOUND)
		}
		if slot.IsBooked {
			return nil, utils.Conflict(utils.SLOT_ALREADY_BOOKED)
		}
		scheduledAt, err = slot.StartTime(time.Local)
		if err != nil {
			return nil, utils.ValidationError("slot has an invalid time")
		}
		slotID = &slot.ID
	} else {
		if req.ScheduledAt == "" {
			return nil, utils.ValidationError("scheduledAt or slotId is required")
		}
		scheduledAt, err = time.Parse(time.RFC3339, req.ScheduledAt)
		if err != nil {
			return nil, utils.ValidationError("scheduledAt must be RFC 3339")
		}
	}
	if scheduledAt.Before(time.Now()) {
		return nil, utils.ValidationError("appointments cannot be booked in the past")
	}

	now := time.Now()
	appt := &models.Appointment{
		ID:          primitive.NewObjectID(),
		PatientID:   patient.ID,
		DoctorID:    doctor.ID,
		SlotID:      slotID,
		ScheduledAt: scheduledAt,
		Reason:      strings.TrimSpace(req.Reason),
		Status:      models.StatusRequested,
		History: []models.StatusEntry{
			{Status: models.StatusRequested, UpdatedBy: patient.ID.Hex(), Timestamp: now},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if slotID != nil {
		booked, err := db.UpdateOne(ctx, db.OpenCollection(db.TimeSlotCollection),
			bson.M{"_id": *slotID, "isBooked": false},
			bson.M{"$set": bson.M{"isBooked": true, "appointmentId": appt.ID}})
		if err != nil {
			log.Error().Err(err).Msg("slot booking failed")
			return nil, utils.ServerError("could not book the slot")
		}
		if booked.ModifiedCount == 0 {
			return nil, utils.Conflict(utils.SLOT_ALREADY_BOOKED)
		}
	}

	if _, err := db.CreateOne(ctx, db.OpenCollection(db.AppointmentCollection), appt); err != nil {
		log.Error().Err(err).Msg("appointment insert failed")
		if slotID != nil {
			if _, rbErr := db.UpdateOne(ctx, db.OpenCollection(db.TimeSlotCollection),
				bson.M{"_id": *slotID},
				bson.M{"$set": bson.M{"isBooked": false}, "$unset": bson.M{"appointmentId": ""}}); rbErr != nil {
				log.Error().Err(rbErr).Msg("slot rollback failed")
			}
		}
		return nil, utils.ServerError("could not create appointment")
	}
	return appt, nil
}

// ListAppointments scopes the result to the caller: patients and doctors see
// their own, admins see everything.
func ListAppointments(ctx context.Context, caller *models.User) ([]models.Appointment, error) {
	filter := bson.M{}
	switch caller.Role {
	case role.Patient:
		filter["patientId"] = caller.ID
	case role.Doctor:
		filter["doctorId"] = caller.ID
	}
	appts := []models.Appointment{}
	err := db.FindAll(ctx, db.OpenCollection(db.AppointmentCollection), filter, nil, &appts)
	if err != nil {
		log.Error().Err(err).Msg("appointment listing failed")
		return nil, utils.ServerError("could not load appointments")
	}
	return appts, nil
}

func FetchAppointmentByID(ctx context.Context, id string) (*models.Appointment, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, utils.NotFound(utils.APPOINTMENT_NOT_FOUND)
	}
	var appt models.Appointment
	if err := db.FindOne(ctx, db.OpenCollection(db.AppointmentCollection), bson.M{"_id": oid}, &appt); err != nil {
		return nil, utils.NotFound(utils.APPOINTMENT_NOT_FOUND)
	}
	return &appt, nil
}

// ValidateTransition applies the single business rule on the otherwise free
// status graph: a patient owner cannot cancel inside the notice window.
func ValidateTransition(appt *models.Appointment, caller *models.User, newStatus string, now time.Time) error {
	if !models.ValidStatus(newStatus) {
		return utils.ValidationError(utils.INVALID_APPOINTMENT_STATE)
	}
	if caller.Role == role.Patient && caller.ID == appt.PatientID &&
		newStatus == models.StatusCancelled &&
		appt.ScheduledAt.Sub(now) < CancelNotice {
		return utils.ValidationError(utils.CANCEL_WINDOW_CLOSED)
	}
	return nil
}

/*
* Apply a status transition and append exactly one audit entry
* Cancelling releases the booked slot so someone else can take it
 */
func UpdateAppointmentStatus(ctx context.Context, caller *models.User, id string, newStatus string) (*models.Appointment, error) {
	appt, err := FetchAppointmentByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := ValidateTransition(appt, caller, newStatus, time.Now()); err != nil {
		return nil, err
	}

	now := time.Now()
	entry := models.StatusEntry{Status: newStatus, UpdatedBy: caller.ID.Hex(), Timestamp: now}
	_, err = db.UpdateOne(ctx, db.OpenCollection(db.AppointmentCollection),
		bson.M{"_id": appt.ID},
		bson.M{
			"$set":  bson.M{"status": newStatus, "updatedAt": now},
			"$push": bson.M{"history": entry},
		})
	if err != nil {
		log.Error().Err(err).Msg("status update failed")
		return nil, utils.ServerError("could not update appointment")
	}

	if newStatus == models.StatusCancelled && appt.SlotID != nil {
		if _, err := db.UpdateOne(ctx, db.OpenCollection(db.TimeSlotCollection),
			bson.M{"_id": *appt.SlotID},
			bson.M{"$set": bson.M{"isBooked": false}, "$unset": bson.M{"appointmentId": ""}}); err != nil {
			log.Warn().Err(err).Msg("slot release failed")
		}
	}

	appt.Status = newStatus
	appt.History = append(appt.History, entry)
	appt.UpdatedAt = now
	return appt, nil
}

// AppointmentOwnerIDs backs the ownership guard on appointment routes. Both
// the patient and the doctor of an appointment count as owners.
func AppointmentOwnerIDs(c *gin.Context) ([]string, error) {
	appt, err := FetchAppointmentByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		return nil, auth.ErrOwnerNotFound
	}
	owners := []string{}
	if !appt.PatientID.IsZero() {
		owners = append(owners, appt.PatientID.Hex())
	}
	if !appt.DoctorID.IsZero() {
		owners = append(owners, appt.DoctorID.Hex())
	}
	return owners, nil
}
