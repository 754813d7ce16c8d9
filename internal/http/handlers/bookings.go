package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/diagnosis/local-hotel/internal/domain"
	"github.com/diagnosis/local-hotel/internal/http/response"
	"github.com/diagnosis/local-hotel/internal/service"
)

type BookingsHandler struct {
	bookings service.BookingService
}

func NewBookingsHandler(bookings service.BookingService) *BookingsHandler {
	return &BookingsHandler{bookings: bookings}
}

func (h *BookingsHandler) List(w http.ResponseWriter, r *http.Request, guest *domain.Guest) {
	page, ok := positiveQueryInt(w, r, "page")
	if !ok {
		return
	}
	limit, ok := positiveQueryInt(w, r, "limit")
	if !ok {
		return
	}

	bookings, err := h.bookings.List(r.Context(), guest, domain.FilterOptions{Page: page, Limit: limit})
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]any{
		"status":   response.StatusSuccess,
		"results":  len(bookings),
		"bookings": bookings,
	})
}

func (h *BookingsHandler) Create(w http.ResponseWriter, r *http.Request, guest *domain.Guest) {
	var req domain.CreateBookingRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	booking, err := h.bookings.Create(r.Context(), guest, &req)
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	response.Data(w, http.StatusCreated, "booking", booking)
}

func (h *BookingsHandler) Get(w http.ResponseWriter, r *http.Request, guest *domain.Guest) {
	id, ok := bookingID(w, r)
	if !ok {
		return
	}

	booking, err := h.bookings.Get(r.Context(), guest, id)
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	response.Data(w, http.StatusOK, "booking", booking)
}

func (h *BookingsHandler) Update(w http.ResponseWriter, r *http.Request, guest *domain.Guest) {
	id, ok := bookingID(w, r)
	if !ok {
		return
	}

	var req domain.UpdateBookingRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	booking, err := h.bookings.Update(r.Context(), guest, id, &req)
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	response.Data(w, http.StatusOK, "booking", booking)
}

func (h *BookingsHandler) Delete(w http.ResponseWriter, r *http.Request, guest *domain.Guest) {
	id, ok := bookingID(w, r)
	if !ok {
		return
	}

	if err := h.bookings.Delete(r.Context(), guest, id); err != nil {
		response.FromError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func bookingID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		response.Fail(w, http.StatusBadRequest, "Invalid booking id: "+raw)
		return 0, false
	}
	return id, true
}

// positiveQueryInt returns 0 when the parameter is absent so the service
// default applies.
func positiveQueryInt(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		response.Fail(w, http.StatusBadRequest, name+" must be a positive integer")
		return 0, false
	}
	return n, true
}
