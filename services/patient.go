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
	"MediConsult/utils"
)

type PatientProfileRequest struct {
	DateOfBirth string `json:"dateOfBirth"`
	Gender      string `json:"gender"`
	BloodGroup  string `json:"bloodGroup"`
	Address     string `json:"address"`
}

type WellnessRequest struct {
	HeightCM          float64     `json:"heightCm"`
	WeightKG          float64     `json:"weightKg"`
	Allergies         interface{} `json:"allergies"`
	ChronicConditions interface{} `json:"chronicConditions"`
	Goals             string      `json:"goals"`
}

// FetchPatientProfile returns the caller's profile with an explicit
// completeness marker, tolerating a missing document.
func FetchPatientProfile(ctx context.Context, userID primitive.ObjectID) (map[string]interface{}, error) {
	var profile models.PatientProfile
	err := db.FindOne(ctx, db.OpenCollection(db.PatientProfileCollection), bson.M{"userId": userID}, &profile)
	if err != nil {
		return map[string]interface{}{"profileComplete": false}, nil
	}
	return map[string]interface{}{
		"profile":         profile,
		"profileComplete": profile.DateOfBirth != "" && profile.Gender != "",
	}, nil
}

/*
* Patch the patient profile, creating it lazily on first write
 */
func UpdatePatientProfile(ctx context.Context, userID primitive.ObjectID, req *PatientProfileRequest) (map[string]interface{}, error) {
	set := bson.M{"updatedAt": time.Now()}
	if req.DateOfBirth != "" {
		if _, err := time.Parse("2006-01-02", req.DateOfBirth); err != nil {
			return nil, utils.ValidationError("dateOfBirth must be yyyy-mm-dd")
		}
		set["dateOfBirth"] = req.DateOfBirth
	}
	if req.Gender != "" {
		set["gender"] = strings.ToLower(strings.TrimSpace(req.Gender))
	}
	if req.BloodGroup != "" {
		set["bloodGroup"] = strings.TrimSpace(req.BloodGroup)
	}
	if req.Address != "" {
		set["address"] = strings.TrimSpace(req.Address)
	}

	_, err := db.UpsertOne(ctx, db.OpenCollection(db.PatientProfileCollection),
		bson.M{"userId": userID},
		bson.M{"$set": set, "$setOnInsert": bson.M{"userId": userID, "createdAt": time.Now()}})
	if err != nil {
		log.Error().Err(err).Msg("patient profile update failed")
		return nil, utils.ServerError("could not update profile")
	}
	return FetchPatientProfile(ctx, userID)
}

func FetchWellness(ctx context.Context, userID primitive.ObjectID) (*models.Wellness, error) {
	var profile models.PatientProfile
	err := db.FindOne(ctx, db.OpenCollection(db.PatientProfileCollection), bson.M{"userId": userID}, &profile)
	if err != nil {
		return &models.Wellness{}, nil
	}
	return &profile.Wellness, nil
}

/*
* Patch the wellness section, list fields accept array or comma-string input
 */
func UpdateWellness(ctx context.Context, userID primitive.ObjectID, req *WellnessRequest) (*models.Wellness, error) {
	set := bson.M{"updatedAt": time.Now()}
	if req.HeightCM > 0 {
		set["wellness.heightCm"] = req.HeightCM
	}
	if req.WeightKG > 0 {
		set["wellness.weightKg"] = req.WeightKG
	}
	if req.Allergies != nil {
		list, err := utils.NormalizeStringList(req.Allergies)
		if err != nil {
			return nil, utils.ValidationError("allergies must be a list")
		}
		set["wellness.allergies"] = list
	}
	if req.ChronicConditions != nil {
		list, err := utils.NormalizeStringList(req.ChronicConditions)
		if err != nil {
			return nil, utils.ValidationError("chronicConditions must be a list")
		}
		set["wellness.chronicConditions"] = list
	}
	if req.Goals != "" {
		set["wellness.goals"] = strings.TrimSpace(req.Goals)
	}

	_, err := db.UpsertOne(ctx, db.OpenCollection(db.PatientProfileCollection),
		bson.M{"userId": userID},
		bson.M{"$set": set, "$setOnInsert": bson.M{"userId": userID, "createdAt": time.Now()}})
	if err != nil {
		log.Error().Err(err).Msg("wellness update failed")
		return nil, utils.ServerError("could not update wellness profile")
	}
	return FetchWellness(ctx, userID)
}
