package routes

import (
	"github.com/gin-gonic/gin"

	"MediConsult/auth"
	"MediConsult/controllers"
)

// Routes wires every controller group onto the engine. No business logic
// lives here, only the verb/path to guard-chain/controller mapping.
func Routes(r *gin.Engine, g *auth.Guard) {
	controllers.Auth(r, g)

	api := r.Group("/api")
	controllers.Doctor(api, g)
	controllers.Appointment(api, g)
	controllers.MedicalRecord(api, g)
	controllers.Prescription(api, g)
	controllers.TimeSlot(api, g)
	controllers.Patient(api, g)
}
