package migrations

import (
	"context"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"

	"MediConsult/db"
	"MediConsult/services"
)

// NormalizeAvailability rewrites legacy comma-string availability fields into
// the canonical day list.
func NormalizeAvailability() {
	ctx := context.Background()
	coll := db.OpenCollection(db.DoctorProfileCollection)

	var profiles []bson.M
	err := db.FindAll(ctx, coll, bson.M{"availability": bson.M{"$type": "string"}}, nil, &profiles)
	if err != nil {
		log.Fatal().Err(err).Msg("availability migration failed")
	}
	updated := 0
	for _, profile := range profiles {
		days, err := services.NormalizeAvailability(profile["availability"])
		if err != nil {
			log.Warn().Interface("id", profile["_id"]).Msg("skipping profile with unparseable availability")
			continue
		}
		_, err = db.UpdateOne(ctx, coll,
			bson.M{"_id": profile["_id"]},
			bson.M{"$set": bson.M{"availability": days}})
		if err != nil {
			log.Fatal().Err(err).Msg("availability migration failed")
		}
		updated++
	}
	log.Info().Int("count", updated).Msg("availability fields normalized")
}
