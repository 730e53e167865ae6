package role

const (
	Patient = "patient"
	Doctor  = "doctor"
	Admin   = "admin"
)

func IsValid(r string) bool {
	return r == Patient || r == Doctor || r == Admin
}

// CanSignup reports whether a caller may self-register with the role. Admin
// accounts are provisioned out of band.
func CanSignup(r string) bool {
	return r == Patient || r == Doctor
}
