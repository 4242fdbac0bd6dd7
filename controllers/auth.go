package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"nailspa-backend/utils"
)

type LoginInput struct {
	Password string `json:"password" binding:"required"`
}

// AuthController logs the shop owner in. An empty password hash disables login.
type AuthController struct {
	passwordHash string
	secret       string
	ttl          time.Duration
	secureCookie bool
	log          *zap.Logger
}

func NewAuthController(passwordHash, secret string, ttl time.Duration, secureCookie bool, log *zap.Logger) *AuthController {
	return &AuthController{
		passwordHash: passwordHash,
		secret:       secret,
		ttl:          ttl,
		secureCookie: secureCookie,
		log:          log.Named("auth"),
	}
}

func (ac *AuthController) Enabled() bool {
	return ac.passwordHash != ""
}

// Login checks the owner password and issues a token as body and cookie.
func (ac *AuthController) Login(c *gin.Context) {
	if !ac.Enabled() {
		utils.RespondWithError(c, http.StatusNotFound, "Owner login is not configured")
		return
	}

	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if !utils.CheckPasswordHash(input.Password, ac.passwordHash) {
		ac.log.Warn("failed login", zap.String("ip", c.ClientIP()))
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, expires, err := utils.GenerateToken(ac.secret, utils.OwnerSubject, ac.ttl)
	if err != nil {
		ac.log.Error("sign token", zap.Error(err))
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("token", token, int(ac.ttl.Seconds()), "/", "", ac.secureCookie, true)
	c.JSON(http.StatusOK, gin.H{
		"token":     token,
		"expiresAt": expires,
	})
}

// Me reports who the request is authenticated as.
func (ac *AuthController) Me(c *gin.Context) {
	user := c.GetString("userId")
	if user == "" {
		user = utils.OwnerSubject
	}
	c.JSON(http.StatusOK, gin.H{
		"user":        user,
		"authEnabled": ac.Enabled(),
	})
}
