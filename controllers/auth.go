package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"MediConsult/auth"
	"MediConsult/services"
	"MediConsult/utils"
)

func Auth(r *gin.Engine, g *auth.Guard) {
	group := r.Group("/auth")
	{
		group.POST("/signup", Signup)
		group.POST("/login", Login)
		group.POST("/logout", g.Authenticate(), Logout)
		group.PATCH("/update-password", g.Authenticate(), UpdatePassword)
		group.POST("/forgot-password", ForgotPassword)
		group.POST("/reset-password/:token", ResetPassword)
		group.GET("/user", g.Authenticate(), CurrentUser)
	}
}

/*
* Bind the signup fields, create identity and profile, set the session cookie
 */
func Signup(c *gin.Context) {
	var req services.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.FailedResponse(err))
		return
	}
	user, token, err := services.Signup(c.Request.Context(), &req)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	setAuthCookie(c, token)
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": user, "token": token})
}

func Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.FailedResponse(err))
		return
	}
	user, token, err := services.Login(c.Request.Context(), &req)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	setAuthCookie(c, token)
	c.JSON(http.StatusOK, gin.H{"success": true, "data": user, "token": token})
}

// Logout clears the cookie. Tokens are stateless so the server holds nothing
// to revoke.
func Logout(c *gin.Context) {
	clearAuthCookie(c)
	c.JSON(http.StatusOK, utils.SuccessMessage("logged out"))
}

func CurrentUser(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.FailedResponse(errors.New(utils.TOKEN_NOT_PROVIDED)))
		return
	}
	c.JSON(http.StatusOK, utils.SuccessResponse(services.CurrentUserView(c.Request.Context(), user)))
}

func UpdatePassword(c *gin.Context) {
	var req struct {
		OldPassword string `json:"oldPassword" binding:"required"`
		NewPassword string `json:"newPassword" binding:"required,min=6"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.FailedResponse(err))
		return
	}
	user, _ := auth.CurrentUser(c)
	if err := services.UpdatePassword(c.Request.Context(), user, req.OldPassword, req.NewPassword); err != nil {
		utils.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.SuccessMessage("password updated"))
}

// ForgotPassword answers the same way whether or not the address exists.
func ForgotPassword(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.FailedResponse(err))
		return
	}
	if err := services.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		utils.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.SuccessMessage("if the address is registered, a reset mail is on its way"))
}

func ResetPassword(c *gin.Context) {
	var req struct {
		Password string `json:"password" binding:"required,min=6"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.FailedResponse(err))
		return
	}
	if err := services.ResetPassword(c.Request.Context(), c.Param("token"), req.Password); err != nil {
		utils.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.SuccessMessage("password reset"))
}

func setAuthCookie(c *gin.Context, token string) {
	if cfg.IsProduction() {
		c.SetSameSite(http.SameSiteNoneMode)
	} else {
		c.SetSameSite(http.SameSiteLaxMode)
	}
	c.SetCookie(auth.CookieName, token, int(auth.TokenTTL.Seconds()), "/", "", cfg.IsProduction(), true)
}

func clearAuthCookie(c *gin.Context) {
	if cfg.IsProduction() {
		c.SetSameSite(http.SameSiteNoneMode)
	} else {
		c.SetSameSite(http.SameSiteLaxMode)
	}
	c.SetCookie(auth.CookieName, "", -1, "/", "", cfg.IsProduction(), true)
}
