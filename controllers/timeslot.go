package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"MediConsult/auth"
	"MediConsult/role"
	"MediConsult/services"
	"MediConsult/utils"
)

func TimeSlot(api *gin.RouterGroup, g *auth.Guard) {
	slots := api.Group("/timeslots")
	{
		// open slots of a doctor are public, the booking page needs them
		slots.GET("/:doctorId", ListOpenSlots)
		slots.GET("", g.Authenticate(), auth.RequireRoles(role.Doctor), ListOwnSlots)
		slots.POST("", g.Authenticate(), auth.RequireRoles(role.Doctor), CreateSlots)
		slots.DELETE("/:id", g.Authenticate(), auth.RequireRoles(role.Doctor), auth.RequireOwner(services.TimeSlotOwnerIDs), DeleteSlot)
	}
}

func ListOpenSlots(c *gin.Context) {
	slots, err := services.ListSlots(c.Request.Context(), c.Param("doctorId"), true)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.SuccessResponse(slots))
}

func ListOwnSlots(c *gin.Context) {
	user, _ := auth.CurrentUser(c)
	slots, err := services.ListSlots(c.Request.Context(), user.ID.Hex(), false)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.SuccessResponse(slots))
}

func CreateSlots(c *gin.Context) {
	var req services.SlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.FailedResponse(err))
		return
	}
	user, _ := auth.CurrentUser(c)
	slots, err := services.CreateSlots(c.Request.Context(), user, &req)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, utils.SuccessResponse(slots))
}

func DeleteSlot(c *gin.Context) {
	if err := services.DeleteSlot(c.Request.Context(), c.Param("id")); err != nil {
		utils.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.SuccessMessage("slot deleted"))
}
