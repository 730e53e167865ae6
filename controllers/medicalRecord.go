package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"MediConsult/auth"
	"MediConsult/role"
	"MediConsult/services"
	"MediConsult/utils"
)

func MedicalRecord(api *gin.RouterGroup, g *auth.Guard) {
	records := api.Group("/medical-records", g.Authenticate())
	{
		records.GET("", ListRecords)
		records.GET("/:id", FetchRecord)
		records.POST("", auth.RequireRoles(role.Doctor, role.Admin), CreateRecord)
		records.PUT("/:id", auth.RequireRoles(role.Doctor, role.Admin), UpdateRecord)
		records.GET("/:id/prescriptions", ListPrescriptions)
		records.POST("/:id/prescriptions", auth.RequireRoles(role.Doctor, role.Admin), CreatePrescription)
	}
}

func ListRecords(c *gin.Context) {
	user, _ := auth.CurrentUser(c)
	records, err := services.ListRecords(c.Request.Context(), user)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.SuccessResponse(records))
}

// FetchRecord applies the visibility rule in the service, a caller who is
// neither author, owner nor admin gets 403 unless the record is shared.
func FetchRecord(c *gin.Context) {
	user, _ := auth.CurrentUser(c)
	record, err := services.FetchRecord(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		utils.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.SuccessResponse(record))
}

func CreateRecord(c *gin.Context) {
	var req services.RecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.FailedResponse(err))
		return
	}
	user, _ := auth.CurrentUser(c)
	record, err := services.CreateRecord(c.Request.Context(), user, &req)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, utils.SuccessResponse(record))
}

func UpdateRecord(c *gin.Context) {
	var req services.RecordUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.FailedResponse(err))
		return
	}
	user, _ := auth.CurrentUser(c)
	record, err := services.UpdateRecord(c.Request.Context(), user, c.Param("id"), &req)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.SuccessResponse(record))
}
