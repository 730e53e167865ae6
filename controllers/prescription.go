package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"MediConsult/auth"
	"MediConsult/role"
	"MediConsult/services"
	"MediConsult/utils"
)

func Prescription(api *gin.RouterGroup, g *auth.Guard) {
	prescriptions := api.Group("/prescriptions", g.Authenticate())
	{
		prescriptions.PUT("/:id", auth.RequireRoles(role.Doctor, role.Admin), UpdatePrescription)
	}
}

// ListPrescriptions and CreatePrescription are mounted under
// /api/medical-records/:id/prescriptions, prescriptions are nested in a record.
func ListPrescriptions(c *gin.Context) {
	user, _ := auth.CurrentUser(c)
	prescriptions, err := services.ListPrescriptions(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		utils.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.SuccessResponse(prescriptions))
}

func CreatePrescription(c *gin.Context) {
	var req services.PrescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.FailedResponse(err))
		return
	}
	user, _ := auth.CurrentUser(c)
	prescription, err := services.CreatePrescription(c.Request.Context(), user, c.Param("id"), &req)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, utils.SuccessResponse(prescription))
}

func UpdatePrescription(c *gin.Context) {
	var req services.PrescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.FailedResponse(err))
		return
	}
	user, _ := auth.CurrentUser(c)
	prescription, err := services.UpdatePrescription(c.Request.Context(), user, c.Param("id"), &req)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.SuccessResponse(prescription))
}
