package services

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"MediConsult/auth"
	"MediConsult/cache"
	"MediConsult/db"
	"MediConsult/models"
	"MediConsult/role"
	"MediConsult/utils"
)

const doctorListCacheKey = "DOCTORS:ALL"

var weekdays = map[string]bool{
	"monday": true, "tuesday": true, "wednesday": true, "thursday": true,
	"friday": true, "saturday": true, "sunday": true,
}

// DoctorView is the public doctor listing shape: identity fields joined with
// the profile, hash never included.
type DoctorView struct {
	ID             string               `json:"id"`
	Name           string               `json:"name"`
	Email          string               `json:"email"`
	Specialization string               `json:"specialization"`
	Degree         string               `json:"degree,omitempty"`
	Experience     int                  `json:"experience"`
	Fees           float64              `json:"fees"`
	About          string               `json:"about,omitempty"`
	PhotoURL       string               `json:"photoUrl,omitempty"`
	Availability   []string             `json:"availability"`
	RatingSummary  models.RatingSummary `json:"ratingSummary"`
}

type DoctorUpsertRequest struct {
	Name           string
	Email          string
	Password       string
	PhoneNo        string
	Specialization string
	Degree         string
	Experience     int
	Fees           float64
	About          string
	PhotoURL       string
	Availability   interface{}
}

/*
* Serve the public listing from cache when possible
* Otherwise join active doctor identities with their profiles
 */
func FetchAllDoctors(ctx context.Context) ([]DoctorView, error) {
	var cached []DoctorView
	if cache.GetJSON(ctx, doctorListCacheKey, &cached) {
		return cached, nil
	}

	var users []models.User
	err := db.FindAll(ctx, db.OpenCollection(db.UserCollection),
		bson.M{"role": role.Doctor, "isActive": true}, nil, &users)
	if err != nil {
		log.Error().Err(err).Msg("doctor listing failed")
		return nil, utils.ServerError("could not load doctors")
	}

	views := make([]DoctorView, 0, len(users))
	for i := range users {
		view := DoctorView{
			ID:           users[i].ID.Hex(),
			Name:         users[i].Name,
			Email:        users[i].Email,
			Availability: []string{},
		}
		var profile models.DoctorProfile
		if err := db.FindOne(ctx, db.OpenCollection(db.DoctorProfileCollection),
			bson.M{"userId": users[i].ID}, &profile); err == nil {
			view.Specialization = profile.Specialization
			view.Degree = profile.Degree
			view.Experience = profile.Experience
			view.Fees = profile.Fees
			view.About = profile.About
			view.PhotoURL = profile.PhotoURL
			view.RatingSummary = profile.RatingSummary
			if profile.Availability != nil {
				view.Availability = profile.Availability
			}
		}
		views = append(views, view)
	}

	cache.SetJSON(ctx, doctorListCacheKey, views, 5*time.Minute)
	return views, nil
}

func FetchDoctorByID(ctx context.Context, id string) (*DoctorView, error) {
	user, profile, err := loadDoctor(ctx, id)
	if err != nil {
		return nil, err
	}
	view := &DoctorView{
		ID:             user.ID.Hex(),
		Name:           user.Name,
		Email:          user.Email,
		Specialization: profile.Specialization,
		Degree:         profile.Degree,
		Experience:     profile.Experience,
		Fees:           profile.Fees,
		About:          profile.About,
		PhotoURL:       profile.PhotoURL,
		Availability:   profile.Availability,
		RatingSummary:  profile.RatingSummary,
	}
	if view.Availability == nil {
		view.Availability = []string{}
	}
	return view, nil
}

func loadDoctor(ctx context.Context, id string) (*models.User, *models.DoctorProfile, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil, utils.NotFound(utils.DOCTOR_NOT_FOUND)
	}
	var user models.User
	err = db.FindOne(ctx, db.OpenCollection(db.UserCollection),
		bson.M{"_id": oid, "role": role.Doctor}, &user)
	if err != nil {
		return nil, nil, utils.NotFound(utils.DOCTOR_NOT_FOUND)
	}
	var profile models.DoctorProfile
	err = db.FindOne(ctx, db.OpenCollection(db.DoctorProfileCollection),
		bson.M{"userId": oid}, &profile)
	if err != nil {
		// identity without a profile is tolerated, treated as incomplete
		profile = models.DoctorProfile{UserID: oid}
	}
	return &user, &profile, nil
}

/*
* Admin-created doctor account, identity plus profile
* Same compensation rule as signup, a failed profile write removes the identity
 */
func CreateDoctor(ctx context.Context, req *DoctorUpsertRequest) (*DoctorView, error) {
	if req.Name == "" {
		return nil, utils.ValidationError(utils.NAME_NOT_PROVIDED)
	}
	if req.Email == "" {
		return nil, utils.ValidationError(utils.EMAIL_NOT_PROVIDED)
	}
	if req.Password == "" {
		return nil, utils.ValidationError(utils.PASSWORD_NOT_PROVIDED)
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	users := db.OpenCollection(db.UserCollection)
	count, err := db.CountDocuments(ctx, users, bson.M{"email": email})
	if err != nil {
		return nil, utils.ServerError("could not create doctor")
	}
	if count > 0 {
		return nil, utils.Conflict(utils.EMAIL_ALREADY_REGISTERED)
	}

	availability := []string{}
	if req.Availability != nil {
		availability, err = NormalizeAvailability(req.Availability)
		if err != nil {
			return nil, err
		}
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, utils.ValidationError(err.Error())
	}

	now := time.Now()
	user := &models.User{
		ID:           primitive.NewObjectID(),
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: hash,
		Role:         role.Doctor,
		PhoneNo:      strings.TrimSpace(req.PhoneNo),
		IsActive:     true,
		IsVerified:   true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := db.CreateOne(ctx, users, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, utils.Conflict(utils.EMAIL_ALREADY_REGISTERED)
		}
		log.Error().Err(err).Msg("doctor identity insert failed")
		return nil, utils.ServerError("could not create doctor")
	}

	profile := &models.DoctorProfile{
		ID:             primitive.NewObjectID(),
		UserID:         user.ID,
		Specialization: strings.TrimSpace(req.Specialization),
		Degree:         strings.TrimSpace(req.Degree),
		Experience:     req.Experience,
		Fees:           req.Fees,
		About:          req.About,
		PhotoURL:       req.PhotoURL,
		Availability:   availability,
		Reviews:        []models.Review{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if _, err := db.CreateOne(ctx, db.OpenCollection(db.DoctorProfileCollection), profile); err != nil {
		if _, delErr := db.DeleteOne(ctx, users, bson.M{"_id": user.ID}); delErr != nil {
			log.Error().Err(delErr).Msg("doctor creation compensation failed")
		}
		log.Error().Err(err).Msg("doctor profile insert failed")
		return nil, utils.ServerError("could not create doctor")
	}

	cache.Del(ctx, doctorListCacheKey)
	return FetchDoctorByID(ctx, user.ID.Hex())
}

func UpdateDoctor(ctx context.Context, id string, req *DoctorUpsertRequest) (*DoctorView, error) {
	user, _, err := loadDoctor(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	userSet := bson.M{"updatedAt": now}
	if req.Name != "" {
		userSet["name"] = strings.TrimSpace(req.Name)
	}
	if req.PhoneNo != "" {
		userSet["phoneNo"] = strings.TrimSpace(req.PhoneNo)
	}
	if _, err := db.UpdateOne(ctx, db.OpenCollection(db.UserCollection),
		bson.M{"_id": user.ID}, bson.M{"$set": userSet}); err != nil {
		log.Error().Err(err).Msg("doctor identity update failed")
		return nil, utils.ServerError("could not update doctor")
	}

	profileSet := bson.M{"updatedAt": now}
	if req.Specialization != "" {
		profileSet["specialization"] = strings.TrimSpace(req.Specialization)
	}
	if req.Degree != "" {
		profileSet["degree"] = strings.TrimSpace(req.Degree)
	}
	if req.Experience > 0 {
		profileSet["experience"] = req.Experience
	}
	if req.Fees > 0 {
		profileSet["fees"] = req.Fees
	}
	if req.About != "" {
		profileSet["about"] = req.About
	}
	if req.PhotoURL != "" {
		profileSet["photoUrl"] = req.PhotoURL
	}
	if req.Availability != nil {
		availability, err := NormalizeAvailability(req.Availability)
		if err != nil {
			return nil, err
		}
		profileSet["availability"] = availability
	}
	if _, err := db.UpsertOne(ctx, db.OpenCollection(db.DoctorProfileCollection),
		bson.M{"userId": user.ID}, bson.M{"$set": profileSet}); err != nil {
		log.Error().Err(err).Msg("doctor profile update failed")
		return nil, utils.ServerError("could not update doctor")
	}

	cache.Del(ctx, doctorListCacheKey)
	return FetchDoctorByID(ctx, id)
}

func DeleteDoctor(ctx context.Context, id string) error {
	user, _, err := loadDoctor(ctx, id)
	if err != nil {
		return err
	}
	if _, err := db.DeleteOne(ctx, db.OpenCollection(db.UserCollection), bson.M{"_id": user.ID}); err != nil {
		log.Error().Err(err).Msg("doctor identity delete failed")
		return utils.ServerError("could not delete doctor")
	}
	if _, err := db.DeleteOne(ctx, db.OpenCollection(db.DoctorProfileCollection), bson.M{"userId": user.ID}); err != nil {
		log.Warn().Err(err).Msg("doctor profile delete failed")
	}
	if _, err := db.DeleteMany(ctx, db.OpenCollection(db.TimeSlotCollection),
		bson.M{"doctorId": user.ID, "isBooked": false}); err != nil {
		log.Warn().Err(err).Msg("doctor slot cleanup failed")
	}
	cache.Del(ctx, doctorListCacheKey)
	return nil
}

// NormalizeAvailability turns either input representation into a canonical
// lowercase day list and rejects anything that is not a weekday.
func NormalizeAvailability(raw interface{}) ([]string, error) {
	days, err := utils.NormalizeStringList(raw)
	if err != nil {
		return nil, utils.ValidationError(utils.INVALID_AVAILABILITY)
	}
	out := make([]string, 0, len(days))
	seen := make(map[string]bool, len(days))
	for _, day := range days {
		d := strings.ToLower(day)
		if !weekdays[d] {
			return nil, utils.ValidationError(utils.INVALID_AVAILABILITY)
		}
		if !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	return out, nil
}

/*
* Overwrite the availability day list
* Only the doctor themselves or an admin may change it
 */
func UpdateAvailability(ctx context.Context, caller *models.User, doctorID string, raw interface{}) ([]string, error) {
	if caller.Role != role.Admin && caller.ID.Hex() != doctorID {
		return nil, utils.Forbidden(utils.ACCESS_DENIED)
	}
	user, _, err := loadDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	availability, err := NormalizeAvailability(raw)
	if err != nil {
		return nil, err
	}
	_, err = db.UpsertOne(ctx, db.OpenCollection(db.DoctorProfileCollection),
		bson.M{"userId": user.ID},
		bson.M{"$set": bson.M{"availability": availability, "updatedAt": time.Now()}})
	if err != nil {
		log.Error().Err(err).Msg("availability update failed")
		return nil, utils.ServerError("could not update availability")
	}
	cache.Del(ctx, doctorListCacheKey)
	return availability, nil
}

// RecomputeRating takes the mean over the full review list. Always the full
// list, never an incremental accumulator.
func RecomputeRating(reviews []models.Review) models.RatingSummary {
	if len(reviews) == 0 {
		return models.RatingSummary{}
	}
	total := 0
	for _, r := range reviews {
		total += r.Rating
	}
	return models.RatingSummary{
		Average: float64(total) / float64(len(reviews)),
		Count:   len(reviews),
	}
}

// UpsertReview replaces a patient's existing review of the doctor or appends
// a new one, then recomputes the summary.
func UpsertReview(reviews []models.Review, review models.Review) []models.Review {
	for i := range reviews {
		if reviews[i].PatientID == review.PatientID {
			reviews[i] = review
			return reviews
		}
	}
	return append(reviews, review)
}

func AddReview(ctx context.Context, patient *models.User, doctorID string, rating int, comment string) (*models.RatingSummary, error) {
	if rating < 1 || rating > 5 {
		return nil, utils.ValidationError(utils.RATING_OUT_OF_RANGE)
	}
	user, profile, err := loadDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	reviews := UpsertReview(profile.Reviews, models.Review{
		PatientID: patient.ID,
		Rating:    rating,
		Comment:   strings.TrimSpace(comment),
		CreatedAt: time.Now(),
	})
	summary := RecomputeRating(reviews)

	_, err = db.UpsertOne(ctx, db.OpenCollection(db.DoctorProfileCollection),
		bson.M{"userId": user.ID},
		bson.M{"$set": bson.M{"reviews": reviews, "ratingSummary": summary, "updatedAt": time.Now()}})
	if err != nil {
		log.Error().Err(err).Msg("review update failed")
		return nil, utils.ServerError("could not save review")
	}
	cache.Del(ctx, doctorListCacheKey)
	return &summary, nil
}
