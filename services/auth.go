package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"MediConsult/auth"
	"MediConsult/cache"
	"MediConsult/db"
	"MediConsult/mailer"
	"MediConsult/models"
	"MediConsult/role"
	"MediConsult/utils"
)

const (
	maxLoginAttempts   = 5
	loginAttemptWindow = 10 * time.Minute
	resetTokenTTL      = time.Hour
)

type SignupRequest struct {
	Name           string  `json:"name" binding:"required"`
	Email          string  `json:"email" binding:"required,email"`
	Password       string  `json:"password" binding:"required,min=6"`
	Role           string  `json:"role" binding:"required"`
	PhoneNo        string  `json:"phoneNo"`
	Specialization string  `json:"specialization"`
	Degree         string  `json:"degree"`
	Fees           float64 `json:"fees"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

/*
* Validate the requested role, reject duplicate emails
* Insert the identity, then the role profile
* Profile failure deletes the just-created identity so no orphan remains
* Issue the session token last
 */
func Signup(ctx context.Context, req *SignupRequest) (*models.User, string, error) {
	if !role.CanSignup(req.Role) {
		return nil, "", utils.ValidationError(utils.INVALID_ROLE)
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	users := db.OpenCollection(db.UserCollection)
	count, err := db.CountDocuments(ctx, users, bson.M{"email": email})
	if err != nil {
		log.Error().Err(err).Msg("signup duplicate check failed")
		return nil, "", utils.ServerError("could not create account")
	}
	if count > 0 {
		return nil, "", utils.Conflict(utils.EMAIL_ALREADY_REGISTERED)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, "", utils.ValidationError(err.Error())
	}

	now := time.Now()
	user := &models.User{
		ID:           primitive.NewObjectID(),
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: hash,
		Role:         req.Role,
		PhoneNo:      strings.TrimSpace(req.PhoneNo),
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := db.CreateOne(ctx, users, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, "", utils.Conflict(utils.EMAIL_ALREADY_REGISTERED)
		}
		log.Error().Err(err).Msg("signup insert failed")
		return nil, "", utils.ServerError("could not create account")
	}

	if err := createRoleProfile(ctx, user, req); err != nil {
		// compensate: the identity must not outlive a failed profile write
		if _, delErr := db.DeleteOne(ctx, users, bson.M{"_id": user.ID}); delErr != nil {
			log.Error().Err(delErr).Str("user", user.ID.Hex()).Msg("signup compensation failed")
		}
		return nil, "", err
	}

	token, err := tokens.Generate(user.ID.Hex(), user.Role, user.Email)
	if err != nil {
		log.Error().Err(err).Msg("token generation failed")
		return nil, "", utils.ServerError("could not create session")
	}
	return user, token, nil
}

func createRoleProfile(ctx context.Context, user *models.User, req *SignupRequest) error {
	now := time.Now()
	switch user.Role {
	case role.Doctor:
		profile := &models.DoctorProfile{
			ID:             primitive.NewObjectID(),
			UserID:         user.ID,
			Specialization: strings.TrimSpace(req.Specialization),
			Degree:         strings.TrimSpace(req.Degree),
			Fees:           req.Fees,
			Availability:   []string{},
			Reviews:        []models.Review{},
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if _, err := db.CreateOne(ctx, db.OpenCollection(db.DoctorProfileCollection), profile); err != nil {
			log.Error().Err(err).Msg("doctor profile insert failed")
			return utils.ServerError("could not create profile")
		}
	case role.Patient:
		profile := &models.PatientProfile{
			ID:        primitive.NewObjectID(),
			UserID:    user.ID,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if _, err := db.CreateOne(ctx, db.OpenCollection(db.PatientProfileCollection), profile); err != nil {
			log.Error().Err(err).Msg("patient profile insert failed")
			return utils.ServerError("could not create profile")
		}
	}
	return nil
}

/*
* Look the identity up by email, count failed attempts per identity
* Five failures inside ten minutes locks the account out until the window ends
 */
func Login(ctx context.Context, req *LoginRequest) (*models.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	err := db.FindOne(ctx, db.OpenCollection(db.UserCollection), bson.M{"email": email}, &user)
	if err != nil {
		return nil, "", utils.Unauthenticated(utils.INVALID_CREDENTIALS)
	}
	if !user.IsActive {
		return nil, "", utils.Forbidden(utils.ACCOUNT_DISABLED)
	}

	if err := verifyLogin(ctx, &user, req.Password); err != nil {
		return nil, "", err
	}

	now := time.Now()
	_, err = db.UpdateOne(ctx, db.OpenCollection(db.UserCollection),
		bson.M{"_id": user.ID},
		bson.M{"$set": bson.M{"lastLoginAt": now, "updatedAt": now}})
	if err != nil {
		log.Warn().Err(err).Msg("could not record login timestamp")
	}

	token, err := tokens.Generate(user.ID.Hex(), user.Role, user.Email)
	if err != nil {
		log.Error().Err(err).Msg("token generation failed")
		return nil, "", utils.ServerError("could not create session")
	}
	user.LastLoginAt = &now
	return &user, token, nil
}

/*
* verifyLogin enforces the lockout window around the password check
* A locked identity is rejected before bcrypt runs, correct password included
* A successful login inside the window clears the counter
 */
func verifyLogin(ctx context.Context, user *models.User, password string) error {
	attemptKey := "LOGIN_FAIL:" + user.ID.Hex()
	if cache.GetAttempts(ctx, attemptKey) >= maxLoginAttempts {
		return utils.Forbidden(utils.TOO_MANY_LOGIN_ATTEMPTS)
	}
	if !auth.VerifyPassword(password, user.PasswordHash) {
		attempts, err := cache.IncrAttempts(ctx, attemptKey, loginAttemptWindow)
		if err != nil {
			log.Warn().Err(err).Msg("could not record failed login attempt")
		}
		if attempts >= maxLoginAttempts {
			return utils.Forbidden(utils.TOO_MANY_LOGIN_ATTEMPTS)
		}
		return utils.Unauthenticated(utils.INVALID_CREDENTIALS)
	}
	cache.ResetAttempts(ctx, attemptKey)
	return nil
}

// FetchUserByID backs the guard's identity loader.
func FetchUserByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, utils.NotFound(utils.USER_NOT_FOUND)
	}
	var user models.User
	if err := db.FindOne(ctx, db.OpenCollection(db.UserCollection), bson.M{"_id": oid}, &user); err != nil {
		return nil, utils.NotFound(utils.USER_NOT_FOUND)
	}
	return &user, nil
}

// CurrentUserView assembles the /auth/user payload: identity plus the role
// profile, with an explicit incomplete marker when the profile is missing.
func CurrentUserView(ctx context.Context, user *models.User) map[string]interface{} {
	view := map[string]interface{}{
		"user":            user,
		"profileComplete": false,
	}
	switch user.Role {
	case role.Doctor:
		var profile models.DoctorProfile
		if err := db.FindOne(ctx, db.OpenCollection(db.DoctorProfileCollection), bson.M{"userId": user.ID}, &profile); err == nil {
			view["profile"] = profile
			view["profileComplete"] = profile.Specialization != ""
		}
	case role.Patient:
		var profile models.PatientProfile
		if err := db.FindOne(ctx, db.OpenCollection(db.PatientProfileCollection), bson.M{"userId": user.ID}, &profile); err == nil {
			view["profile"] = profile
			view["profileComplete"] = profile.DateOfBirth != ""
		}
	default:
		view["profileComplete"] = true
	}
	return view
}

func UpdatePassword(ctx context.Context, user *models.User, oldPassword string, newPassword string) error {
	if !auth.VerifyPassword(oldPassword, user.PasswordHash) {
		return utils.ValidationError(utils.OLD_PASSWORD_MISMATCH)
	}
	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return utils.ValidationError(err.Error())
	}
	_, err = db.UpdateOne(ctx, db.OpenCollection(db.UserCollection),
		bson.M{"_id": user.ID},
		bson.M{"$set": bson.M{"passwordHash": hash, "updatedAt": time.Now()}})
	if err != nil {
		log.Error().Err(err).Msg("password update failed")
		return utils.ServerError("could not update password")
	}
	return nil
}

// HashResetToken is the one-way transform applied before a reset token ever
// touches the database.
func HashResetToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

/*
* Issue a one hour reset token, store only its hash
* A failed mail send rolls the token back so no unreachable token lingers
* The caller answers identically whether or not the email exists
 */
func ForgotPassword(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User
	err := db.FindOne(ctx, db.OpenCollection(db.UserCollection), bson.M{"email": email}, &user)
	if err != nil {
		// do not reveal whether the address is registered
		return nil
	}

	token := uuid.NewString()
	expiry := time.Now().Add(resetTokenTTL)
	users := db.OpenCollection(db.UserCollection)
	_, err = db.UpdateOne(ctx, users,
		bson.M{"_id": user.ID},
		bson.M{"$set": bson.M{"resetTokenHash": HashResetToken(token), "resetTokenExpiry": expiry}})
	if err != nil {
		log.Error().Err(err).Msg("reset token store failed")
		return utils.ServerError("could not start password reset")
	}

	link := cfg.FrontendURL + "/reset-password/" + token
	if err := mailer.SendPasswordReset(user.Email, user.Name, link); err != nil {
		log.Error().Err(err).Msg("reset mail failed, rolling token back")
		_, rbErr := db.UpdateOne(ctx, users,
			bson.M{"_id": user.ID},
			bson.M{"$unset": bson.M{"resetTokenHash": "", "resetTokenExpiry": ""}})
		if rbErr != nil {
			log.Error().Err(rbErr).Msg("reset token rollback failed")
		}
		return utils.ServerError("could not send reset mail")
	}
	return nil
}

func ResetPassword(ctx context.Context, token string, newPassword string) error {
	var user models.User
	err := db.FindOne(ctx, db.OpenCollection(db.UserCollection), bson.M{
		"resetTokenHash":   HashResetToken(token),
		"resetTokenExpiry": bson.M{"$gt": time.Now()},
	}, &user)
	if err != nil {
		return utils.ValidationError(utils.RESET_TOKEN_INVALID)
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return utils.ValidationError(err.Error())
	}
	_, err = db.UpdateOne(ctx, db.OpenCollection(db.UserCollection),
		bson.M{"_id": user.ID},
		bson.M{
			"$set":   bson.M{"passwordHash": hash, "updatedAt": time.Now()},
			"$unset": bson.M{"resetTokenHash": "", "resetTokenExpiry": ""},
		})
	if err != nil {
		log.Error().Err(err).Msg("password reset failed")
		return utils.ServerError("could not reset password")
	}
	return nil
}
