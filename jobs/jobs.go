package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"

	"MediConsult/db"
	"MediConsult/models"
)

// noShowGrace is how long after the scheduled time an unvisited appointment
// is left alone before the sweep marks it.
const noShowGrace = 6 * time.Hour

func StartDailyScheduler() {
	c := cron.New()

	// every day at 00:05
	c.AddFunc("5 0 * * *", func() {
		log.Info().Msg("running daily no-show sweep")
		if err := SweepMissedAppointments(context.Background()); err != nil {
			log.Error().Err(err).Msg("no-show sweep failed")
		}
	})

	// hourly reset-token cleanup
	c.AddFunc("0 * * * *", func() {
		if err := PurgeExpiredResetTokens(context.Background()); err != nil {
			log.Error().Err(err).Msg("reset token purge failed")
		}
	})

	c.Start()
}

/*
* Appointments still requested or confirmed well past their time become
* no-shows, each with a system audit entry appended to its history
 */
func SweepMissedAppointments(ctx context.Context) error {
	cutoff := time.Now().Add(-noShowGrace)
	entry := models.StatusEntry{
		Status:    models.StatusNoShow,
		UpdatedBy: "system",
		Timestamp: time.Now(),
	}
	result, err := db.UpdateMany(ctx, db.OpenCollection(db.AppointmentCollection),
		bson.M{
			"status":      bson.M{"$in": []string{models.StatusRequested, models.StatusConfirmed}},
			"scheduledAt": bson.M{"$lt": cutoff},
		},
		bson.M{
			"$set":  bson.M{"status": models.StatusNoShow, "updatedAt": time.Now()},
			"$push": bson.M{"history": entry},
		})
	if err != nil {
		return err
	}
	if result.ModifiedCount > 0 {
		log.Info().Int64("count", result.ModifiedCount).Msg("appointments marked no-show")
	}
	return nil
}

func PurgeExpiredResetTokens(ctx context.Context) error {
	result, err := db.UpdateMany(ctx, db.OpenCollection(db.UserCollection),
		bson.M{"resetTokenExpiry": bson.M{"$lt": time.Now()}},
		bson.M{"$unset": bson.M{"resetTokenHash": "", "resetTokenExpiry": ""}})
	if err != nil {
		return err
	}
	if result.ModifiedCount > 0 {
		log.Info().Int64("count", result.ModifiedCount).Msg("expired reset tokens purged")
	}
	return nil
}
