package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"trainslot/internal/apperr"
)

type ErrorResponse struct {
	Error string `json:"error" example:"something went wrong"`
	Kind  string `json:"kind,omitempty" example:"schedule_conflict"`
}

type MessageResponse struct {
	Message string `json:"message" example:"ok"`
}

type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}

// DomainError writes a structured error response: status from the error kind,
// body carrying the kind plus the human-readable reason.
func DomainError(c *gin.Context, err error) {
	c.JSON(apperr.HTTPStatus(err), ErrorResponse{
		Error: apperr.Reason(err),
		Kind:  string(apperr.KindOf(err)),
	})
}

// IntParam parses a positive integer path parameter, writing a 400 response
// and returning ok=false when it is malformed.
func IntParam(c *gin.Context, name string) (int, bool) {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil || v <= 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid " + name})
		return 0, false
	}
	return v, true
}

// IntQuery is IntParam for query string values.
func IntQuery(c *gin.Context, name string) (int, bool) {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil || v <= 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid " + name})
		return 0, false
	}
	return v, true
}
