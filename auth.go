package main

import (
	"net/http"

	"bitbucket.org/mmdatafocus/servicedesk_backend/middlewares"
	"bitbucket.org/mmdatafocus/servicedesk_backend/models"
	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	UserId   string `json:"userId" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func loginHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}

		info, err := models.Login(c.Request.Context(), req.UserId, req.Password)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		maxAge := int(models.SessionLifespan().Seconds())
		c.SetCookie(middlewares.SessionCookieName, info.Token, maxAge, "/", "", middlewares.SecureCookies(), true)
		c.JSON(http.StatusOK, gin.H{"user": info})
	}
}

func logoutHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := models.Logout(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.SetCookie(middlewares.SessionCookieName, "", -1, "/", "", middlewares.SecureCookies(), true)
		c.JSON(http.StatusOK, gin.H{"success": ok})
	}
}

func authStatusHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := models.GetSessionUser(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusOK, gin.H{"authenticated": false})
			return
		}
		c.JSON(http.StatusOK, gin.H{"authenticated": true, "user": user})
	}
}
