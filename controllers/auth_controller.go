// controllers/auth_controller.go
package controllers

import (
	"net/http"

	"rent-backend/config"
	"rent-backend/middleware"
	"rent-backend/models"
	"rent-backend/services"
	"rent-backend/utils"

	"github.com/gin-gonic/gin"
)

// ---------------------------
// Payload / DTOs
// ---------------------------

type SignupPayload struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	PhoneNumber string `json:"phoneNumber"`
	Password    string `json:"password" binding:"required,min=6"`
	Avatar      string `json:"avatar"`
}

type LoginPayload struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UpdateMePayload struct {
	Name        string `json:"name"`
	Email       string `json:"email" binding:"omitempty,email"`
	PhoneNumber string `json:"phoneNumber"`
	Avatar      string `json:"avatar"`
}

type UpdatePasswordPayload struct {
	PasswordCurrent string `json:"passwordCurrent" binding:"required"`
	Password        string `json:"password" binding:"required,min=6"`
}

type ForgotPasswordPayload struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordPayload struct {
	Password string `json:"password" binding:"required,min=6"`
}

// ---------------------------
// Controller
// ---------------------------

type AuthController struct {
	Users *services.UserService
	Cfg   *config.Config
}

func NewAuthController(users *services.UserService, cfg *config.Config) *AuthController {
	return &AuthController{Users: users, Cfg: cfg}
}

// sendToken issues a JWT, sets it as the httpOnly jwt cookie and returns it
// alongside the user in the body.
func (ctl *AuthController) sendToken(c *gin.Context, code int, user *models.User) {
	token, err := utils.GenerateToken([]byte(ctl.Cfg.JWTSecret), user.ID, ctl.Cfg.JWTExpiresIn)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to issue token")
		return
	}

	maxAge := ctl.Cfg.JWTCookieDays * 24 * 60 * 60
	c.SetCookie("jwt", token, maxAge, "/", "", false, true)

	c.JSON(code, gin.H{
		"status": "success",
		"token":  token,
		"user":   user,
	})
}

func (ctl *AuthController) Signup(c *gin.Context) {
	var payload SignupPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONFail(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := ctl.Users.Signup(services.SignupInput{
		Name:        payload.Name,
		Email:       payload.Email,
		PhoneNumber: payload.PhoneNumber,
		Password:    payload.Password,
		Avatar:      payload.Avatar,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	ctl.sendToken(c, http.StatusCreated, user)
}

func (ctl *AuthController) Login(c *gin.Context) {
	var payload LoginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONFail(c, http.StatusBadRequest, "please provide email and password")
		return
	}

	user, err := ctl.Users.Login(payload.Email, payload.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	ctl.sendToken(c, http.StatusOK, user)
}

// Logout overwrites the cookie with a short-lived sentinel.
func (ctl *AuthController) Logout(c *gin.Context) {
	c.SetCookie("jwt", "loggedout", 10, "/", "", false, true)
	utils.JSONSuccess(c, http.StatusOK, nil)
}

func (ctl *AuthController) Me(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	utils.JSONSuccess(c, http.StatusOK, gin.H{"user": user})
}

func (ctl *AuthController) UpdateMe(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var payload UpdateMePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONFail(c, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := ctl.Users.UpdateProfile(c.Request.Context(), user.ID, services.UpdateProfileInput{
		Name:        payload.Name,
		Email:       payload.Email,
		PhoneNumber: payload.PhoneNumber,
		Avatar:      payload.Avatar,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{"user": updated})
}

func (ctl *AuthController) UpdateMyPassword(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var payload UpdatePasswordPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONFail(c, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := ctl.Users.UpdatePassword(user.ID, payload.PasswordCurrent, payload.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	ctl.sendToken(c, http.StatusOK, updated)
}

func (ctl *AuthController) ForgotPassword(c *gin.Context) {
	var payload ForgotPasswordPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONFail(c, http.StatusBadRequest, "email required")
		return
	}

	if err := ctl.Users.ForgotPassword(payload.Email); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "token sent to email"})
}

func (ctl *AuthController) ResetPassword(c *gin.Context) {
	var payload ResetPasswordPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONFail(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := ctl.Users.ResetPassword(c.Param("token"), payload.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	ctl.sendToken(c, http.StatusOK, user)
}
