package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"MediConsult/auth"
	"MediConsult/role"
	"MediConsult/services"
	"MediConsult/utils"
)

func Doctor(api *gin.RouterGroup, g *auth.Guard) {
	doctors := api.Group("/doctors")
	{
		doctors.GET("", FetchAllDoctors)
		doctors.GET("/:id", FetchDoctorByID)
		doctors.PUT("/:id/availability", g.Authenticate(), auth.RequireRoles(role.Doctor, role.Admin), UpdateAvailability)
		doctors.POST("/:id/reviews", g.Authenticate(), auth.RequireRoles(role.Patient), AddReview)
		doctors.POST("", g.Authenticate(), auth.RequireRoles(role.Admin), CreateDoctor)
		doctors.PUT("/:id", g.Authenticate(), auth.RequireRoles(role.Admin), UpdateDoctor)
		doctors.DELETE("/:id", g.Authenticate(), auth.RequireRoles(role.Admin), DeleteDoctor)
	}
}

func FetchAllDoctors(c *gin.Context) {
	doctors, err := services.FetchAllDoctors(c.Request.Context())
	if err != nil {
		utils.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.SuccessResponse(doctors))
}

func FetchDoctorByID(c *gin.Context) {
	doctor, err := services.FetchDoctorByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.SuccessResponse(doctor))
}

/*
* Doctor create and update accept multipart form data because of the optional
* profile image, everything else in the API is JSON
 */
func CreateDoctor(c *gin.Context) {
	req, err := bindDoctorForm(c)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	doctor, err := services.CreateDoctor(c.Request.Context(), req)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, utils.SuccessResponse(doctor))
}

func UpdateDoctor(c *gin.Context) {
	req, err := bindDoctorForm(c)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	doctor, err := services.UpdateDoctor(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.SuccessResponse(doctor))
}

func DeleteDoctor(c *gin.Context) {
	if err := services.DeleteDoctor(c.Request.Context(), c.Param("id")); err != nil {
		utils.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.SuccessMessage("doctor deleted"))
}

func UpdateAvailability(c *gin.Context) {
	var body struct {
		Availability interface{} `json:"availability"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, utils.FailedResponse(err))
		return
	}
	user, _ := auth.CurrentUser(c)
	availability, err := services.UpdateAvailability(c.Request.Context(), user, c.Param("id"), body.Availability)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.SuccessResponse(gin.H{"availability": availability}))
}

func AddReview(c *gin.Context) {
	var body struct {
		Rating  int    `json:"rating" binding:"required"`
		Comment string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, utils.FailedResponse(err))
		return
	}
	user, _ := auth.CurrentUser(c)
	summary, err := services.AddReview(c.Request.Context(), user, c.Param("id"), body.Rating, body.Comment)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.SuccessResponse(gin.H{"ratingSummary": summary}))
}

func bindDoctorForm(c *gin.Context) (*services.DoctorUpsertRequest, error) {
	req := &services.DoctorUpsertRequest{
		Name:           c.PostForm("name"),
		Email:          c.PostForm("email"),
		Password:       c.PostForm("password"),
		PhoneNo:        c.PostForm("phoneNo"),
		Specialization: c.PostForm("specialization"),
		Degree:         c.PostForm("degree"),
		About:          c.PostForm("about"),
	}
	if v := c.PostForm("experience"); v != "" {
		experience, err := strconv.Atoi(v)
		if err != nil {
			return nil, utils.ValidationError("experience must be a number")
		}
		req.Experience = experience
	}
	if v := c.PostForm("fees"); v != "" {
		fees, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, utils.ValidationError("fees must be a number")
		}
		req.Fees = fees
	}
	if vals, ok := c.GetPostFormArray("availability"); ok {
		if len(vals) == 1 {
			req.Availability = vals[0]
		} else {
			req.Availability = vals
		}
	}
	photoURL, err := utils.SaveProfileImage(c, "image", cfg.UploadDir)
	if err != nil {
		return nil, err
	}
	req.PhotoURL = photoURL
	return req, nil
}
