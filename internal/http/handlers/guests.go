package handlers

import (
	"net/http"

	"github.com/diagnosis/local-hotel/internal/domain"
	"github.com/diagnosis/local-hotel/internal/http/response"
)

func Me(w http.ResponseWriter, r *http.Request, guest *domain.Guest) {
	response.Data(w, http.StatusOK, "guest", guest.Filtered())
}
