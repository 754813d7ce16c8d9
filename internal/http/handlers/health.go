package handlers

import (
	"net/http"

	"github.com/diagnosis/local-hotel/internal/http/response"
)

const healthMessage = "Local Hotel API is alive and well"

func HealthChecker(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{
		"status":  response.StatusSuccess,
		"message": healthMessage,
	})
}

func NotFound(w http.ResponseWriter, r *http.Request) {
	response.Fail(w, http.StatusNotFound, "Content not found")
}

func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	response.Fail(w, http.StatusMethodNotAllowed, "Method not allowed")
}
