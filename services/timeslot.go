package services

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"MediConsult/auth"
	"MediConsult/db"
	"MediConsult/models"
	"MediConsult/utils"
)

const slotLayout = "15:04"

type SlotRequest struct {
	Date  string `json:"date" binding:"required"`  // 2006-01-02
	Start string `json:"start" binding:"required"` // 15:04
	End   string `json:"end" binding:"required"`   // 15:04
}

// GenerateSlots cuts a working window into half hour bookable slots.
func GenerateSlots(date string, start string, end string) ([]models.TimeSlot, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, utils.ValidationError("date must be yyyy-mm-dd")
	}
	startTime, err := time.Parse(slotLayout, start)
	if err != nil {
		return nil, utils.ValidationError("start must be hh:mm")
	}
	endTime, err := time.Parse(slotLayout, end)
	if err != nil {
		return nil, utils.ValidationError("end must be hh:mm")
	}
	if !startTime.Before(endTime) {
		return nil, utils.ValidationError("start must be before end")
	}

	slots := []models.TimeSlot{}
	for startTime.Before(endTime) {
		slotEnd := startTime.Add(30 * time.Minute)
		if slotEnd.After(endTime) {
			break
		}
		slots = append(slots, models.TimeSlot{
			Date:  date,
			Start: startTime.Format(slotLayout),
			End:   slotEnd.Format(slotLayout),
		})
		startTime = slotEnd
	}
	if len(slots) == 0 {
		return nil, utils.ValidationError("the window is shorter than one slot")
	}
	return slots, nil
}

/*
* A doctor publishes a working window for a date, stored as 30 minute slots
* Windows that already have slots for that date are rejected as duplicates
 */
func CreateSlots(ctx context.Context, doctor *models.User, req *SlotRequest) ([]models.TimeSlot, error) {
	slots, err := GenerateSlots(req.Date, req.Start, req.End)
	if err != nil {
		return nil, err
	}

	coll := db.OpenCollection(db.TimeSlotCollection)
	count, err := db.CountDocuments(ctx, coll, bson.M{"doctorId": doctor.ID, "date": req.Date})
	if err != nil {
		return nil, utils.ServerError("could not create slots")
	}
	if count > 0 {
		return nil, utils.Conflict("slots for this date already exist")
	}

	now := time.Now()
	docs := make([]interface{}, 0, len(slots))
	for i := range slots {
		slots[i].ID = primitive.NewObjectID()
		slots[i].DoctorID = doctor.ID
		slots[i].CreatedAt = now
		docs = append(docs, slots[i])
	}
	if _, err := coll.InsertMany(ctx, docs); err != nil {
		log.Error().Err(err).Msg("slot insert failed")
		return nil, utils.ServerError("could not create slots")
	}
	return slots, nil
}

// ListSlots returns a doctor's slots, optionally only the open ones.
func ListSlots(ctx context.Context, doctorID string, onlyOpen bool) ([]models.TimeSlot, error) {
	oid, err := primitive.ObjectIDFromHex(doctorID)
	if err != nil {
		return nil, utils.NotFound(utils.DOCTOR_NOT_FOUND)
	}
	filter := bson.M{"doctorId": oid}
	if onlyOpen {
		filter["isBooked"] = false
	}
	slots := []models.TimeSlot{}
	if err := db.FindAll(ctx, db.OpenCollection(db.TimeSlotCollection), filter, nil, &slots); err != nil {
		log.Error().Err(err).Msg("slot listing failed")
		return nil, utils.ServerError("could not load slots")
	}
	return slots, nil
}

func fetchSlot(ctx context.Context, id string) (*models.TimeSlot, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, utils.NotFound(utils.TIMESLOT_NOT_FOUND)
	}
	var slot models.TimeSlot
	if err := db.FindOne(ctx, db.OpenCollection(db.TimeSlotCollection), bson.M{"_id": oid}, &slot); err != nil {
		return nil, utils.NotFound(utils.TIMESLOT_NOT_FOUND)
	}
	return &slot, nil
}

// DeleteSlot removes an open slot. Booked slots stay until the appointment
// is cancelled.
func DeleteSlot(ctx context.Context, id string) error {
	slot, err := fetchSlot(ctx, id)
	if err != nil {
		return err
	}
	if slot.IsBooked {
		return utils.ValidationError(utils.SLOT_IS_BOOKED)
	}
	if _, err := db.DeleteOne(ctx, db.OpenCollection(db.TimeSlotCollection), bson.M{"_id": slot.ID}); err != nil {
		log.Error().Err(err).Msg("slot delete failed")
		return utils.ServerError("could not delete slot")
	}
	return nil
}

// TimeSlotOwnerIDs backs the ownership guard on slot routes.
func TimeSlotOwnerIDs(c *gin.Context) ([]string, error) {
	slot, err := fetchSlot(c.Request.Context(), c.Param("id"))
	if err != nil {
		return nil, auth.ErrOwnerNotFound
	}
	if slot.DoctorID.IsZero() {
		return []string{}, nil
	}
	return []string{slot.DoctorID.Hex()}, nil
}
