package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"MediConsult/auth"
	"MediConsult/role"
	"MediConsult/services"
	"MediConsult/utils"
)

func Patient(api *gin.RouterGroup, g *auth.Guard) {
	patient := api.Group("/patient", g.Authenticate(), auth.RequireRoles(role.Patient))
	{
		patient.GET("/profile", FetchPatientProfile)
		patient.PATCH("/profile", UpdatePatientProfile)
	}
	wellness := api.Group("/wellness", g.Authenticate(), auth.RequireRoles(role.Patient))
	{
		wellness.GET("", FetchWellness)
		wellness.PATCH("", UpdateWellness)
	}
}

func FetchPatientProfile(c *gin.Context) {
	user, _ := auth.CurrentUser(c)
	view, err := services.FetchPatientProfile(c.Request.Context(), user.ID)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.SuccessResponse(view))
}

func UpdatePatientProfile(c *gin.Context) {
	var req services.PatientProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.FailedResponse(err))
		return
	}
	user, _ := auth.CurrentUser(c)
	view, err := services.UpdatePatientProfile(c.Request.Context(), user.ID, &req)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.SuccessResponse(view))
}

func FetchWellness(c *gin.Context) {
	user, _ := auth.CurrentUser(c)
	wellness, err := services.FetchWellness(c.Request.Context(), user.ID)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.SuccessResponse(wellness))
}

func UpdateWellness(c *gin.Context) {
	var req services.WellnessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.FailedResponse(err))
		return
	}
	user, _ := auth.CurrentUser(c)
	wellness, err := services.UpdateWellness(c.Request.Context(), user.ID, &req)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.SuccessResponse(wellness))
}
