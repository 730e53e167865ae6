package migrations

import (
	"context"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"

	"MediConsult/db"
	"MediConsult/models"
	"MediConsult/services"
)

// BackfillRatingSummary recomputes the summary for every doctor profile that
// predates the ratingSummary field.
func BackfillRatingSummary() {
	ctx := context.Background()
	coll := db.OpenCollection(db.DoctorProfileCollection)

	var profiles []models.DoctorProfile
	err := db.FindAll(ctx, coll, bson.M{"ratingSummary": bson.M{"$exists": false}}, nil, &profiles)
	if err != nil {
		log.Fatal().Err(err).Msg("rating summary migration failed")
	}
	for i := range profiles {
		summary := services.RecomputeRating(profiles[i].Reviews)
		_, err := db.UpdateOne(ctx, coll,
			bson.M{"_id": profiles[i].ID},
			bson.M{"$set": bson.M{"ratingSummary": summary}})
		if err != nil {
			log.Fatal().Err(err).Msg("rating summary migration failed")
		}
	}
	log.Info().Int("count", len(profiles)).Msg("rating summaries backfilled")
}
