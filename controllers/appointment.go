package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"MediConsult/auth"
	"MediConsult/services"
	"MediConsult/utils"
)

func Appointment(api *gin.RouterGroup, g *auth.Guard) {
	appointments := api.Group("/appointments", g.Authenticate())
	{
		appointments.POST("", CreateAppointment)
		appointments.GET("", ListAppointments)
		appointments.GET("/:id", auth.RequireOwner(services.AppointmentOwnerIDs), FetchAppointment)
		appointments.PUT("/:id/status", auth.RequireOwner(services.AppointmentOwnerIDs), UpdateAppointmentStatus)
	}
}

func CreateAppointment(c *gin.Context) {
	var req services.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.FailedResponse(err))
		return
	}
	user, _ := auth.CurrentUser(c)
	appt, err := services.CreateAppointment(c.Request.Context(), user, &req)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, utils.SuccessResponse(appt))
}

func ListAppointments(c *gin.Context) {
	user, _ := auth.CurrentUser(c)
	appts, err := services.ListAppointments(c.Request.Context(), user)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.SuccessResponse(appts))
}

func FetchAppointment(c *gin.Context) {
	appt, err := services.FetchAppointmentByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.SuccessResponse(appt))
}

func UpdateAppointmentStatus(c *gin.Context) {
	var req services.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.FailedResponse(err))
		return
	}
	user, _ := auth.CurrentUser(c)
	appt, err := services.UpdateAppointmentStatus(c.Request.Context(), user, c.Param("id"), req.Status)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.SuccessResponse(appt))
}
