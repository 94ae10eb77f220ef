package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// JSON writes payload with the given status. A nil payload writes the
// status with no body.
func JSON(c *gin.Context, status int, payload any) {
	if payload == nil {
		c.Status(status)
		return
	}
	c.JSON(status, payload)
}

// OK writes a 200 response.
func OK(c *gin.Context, payload any) {
	JSON(c, http.StatusOK, payload)
}

// Created writes a 201 response and points Location at the new resource
// when one is given.
func Created(c *gin.Context, location string, payload any) {
	if location != "" {
		c.Header("Location", location)
	}
	JSON(c, http.StatusCreated, payload)
}
