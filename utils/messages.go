package utils

// User facing messages shared between services and middleware.
const (
	EMAIL_NOT_PROVIDED        = "email is required"
	PASSWORD_NOT_PROVIDED     = "password is required"
	NAME_NOT_PROVIDED         = "name is required"
	INVALID_ROLE              = "invalid role"
	INVALID_CREDENTIALS       = "invalid email or password"
	EMAIL_ALREADY_REGISTERED  = "an account with this email already exists"
	ACCOUNT_DISABLED          = "this account has been disabled"
	TOO_MANY_LOGIN_ATTEMPTS   = "too many failed attempts, try again later"
	TOKEN_NOT_PROVIDED        = "authentication token missing"
	TOKEN_INVALID_OR_EXPIRED  = "authentication token invalid or expired"
	ACCESS_DENIED             = "you do not have access to this resource"
	RESOURCE_NOT_FOUND        = "resource not found"
	USER_NOT_FOUND            = "user not found"
	DOCTOR_NOT_FOUND          = "doctor not found"
	DOCTOR_ID_REQUIRED        = "doctorId is required"
	PATIENT_NOT_FOUND         = "patient not found"
	APPOINTMENT_NOT_FOUND     = "appointment not found"
	MEDICAL_RECORD_NOT_FOUND  = "medical record not found"
	PRESCRIPTION_NOT_FOUND    = "prescription not found"
	TIMESLOT_NOT_FOUND        = "time slot not found"
	SLOT_ALREADY_BOOKED       = "this slot is already booked"
	SLOT_IS_BOOKED            = "a booked slot cannot be removed"
	INVALID_APPOINTMENT_STATE = "invalid appointment status"
	CANCEL_WINDOW_CLOSED      = "appointments can only be cancelled more than 24 hours in advance"
	RATING_OUT_OF_RANGE       = "rating must be between 1 and 5"
	INVALID_VISIBILITY        = "invalid visibility value"
	INVALID_AVAILABILITY      = "availability must be a list of weekdays"
	RESET_TOKEN_INVALID       = "reset link is invalid or has expired"
	OLD_PASSWORD_MISMATCH     = "current password is incorrect"
	UNSUPPORTED_IMAGE_TYPE    = "unsupported image type"
	IMAGE_TOO_LARGE           = "image exceeds the maximum size"
)
