package v1

import (
	"time"

	"github.com/clinicdesk/clinicdesk/internal/domain/doctor"
	"github.com/clinicdesk/clinicdesk/internal/service"
	"github.com/gin-gonic/gin"
)

type DoctorHandler struct {
	doctorSvc    *service.DoctorService
	availability *service.AvailabilityService
}

func NewDoctorHandler(doctorSvc *service.DoctorService, availability *service.AvailabilityService) *DoctorHandler {
	return &DoctorHandler{doctorSvc: doctorSvc, availability: availability}
}

type doctorResponse struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Specialty      string   `json:"specialty"`
	Email          string   `json:"email"`
	Phone          string   `json:"phone,omitempty"`
	AvailableTimes []string `json:"available_times"`
}

func toDoctorResponse(d *doctor.Doctor) doctorResponse {
	return doctorResponse{
		ID:             d.ID.String(),
		Name:           d.Name,
		Specialty:      d.Specialty,
		Email:          d.Email,
		Phone:          d.Phone,
		AvailableTimes: d.AvailableTimes,
	}
}

// List handles GET /doctors with optional name, specialty, and period
// (AM/PM) query parameters.
func (h *DoctorHandler) List(c *gin.Context) {
	doctors := h.doctorSvc.Find(c.Request.Context(), &doctor.ListDoctorsQuery{
		Name:      c.Query("name"),
		Specialty: c.Query("specialty"),
		Period:    c.Query("period"),
	})

	out := make([]doctorResponse, 0, len(doctors))
	for _, d := range doctors {
		out = append(out, toDoctorResponse(d))
	}
	respondOK(c, gin.H{"doctors": out, "count": len(out)})
}

// Availability handles GET /doctors/:id/availability?date=2024-06-01 and
// returns the doctor's free slots for that day. The fail-closed read path
// means unknown doctors and storage failures both read as no availability.
func (h *DoctorHandler) Availability(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	date, err := time.ParseInLocation("2006-01-02", c.Query("date"), time.Local)
	if err != nil {
		respondError(c, 400, "invalid date: expected YYYY-MM-DD")
		return
	}

	slots := h.availability.FreeSlots(c.Request.Context(), id, date)
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.String())
	}
	respondOK(c, gin.H{"doctor_id": id.String(), "date": c.Query("date"), "available_slots": out})
}

type createDoctorRequest struct {
	Name           string   `json:"name" binding:"required"`
	Specialty      string   `json:"specialty"`
	Email          string   `json:"email" binding:"required,email"`
	Phone          string   `json:"phone"`
	Password       string   `json:"password" binding:"required"`
	AvailableTimes []string `json:"available_times"`
}

func (h *DoctorHandler) Create(c *gin.Context) {
	var req createDoctorRequest
	if !bindJSON(c, &req) {
		return
	}

	d, err := h.doctorSvc.Create(c.Request.Context(), &doctor.CreateDoctorCommand{
		Name:           req.Name,
		Specialty:      req.Specialty,
		Email:          req.Email,
		Phone:          req.Phone,
		Password:       req.Password,
		AvailableTimes: req.AvailableTimes,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, toDoctorResponse(d))
}

type updateDoctorRequest struct {
	Name           *string   `json:"name"`
	Specialty      *string   `json:"specialty"`
	Phone          *string   `json:"phone"`
	AvailableTimes *[]string `json:"available_times"`
}

func (h *DoctorHandler) Update(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	var req updateDoctorRequest
	if !bindJSON(c, &req) {
		return
	}

	d, err := h.doctorSvc.Update(c.Request.Context(), id, &doctor.UpdateDoctorCommand{
		Name:           req.Name,
		Specialty:      req.Specialty,
		Phone:          req.Phone,
		AvailableTimes: req.AvailableTimes,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, toDoctorResponse(d))
}

func (h *DoctorHandler) Delete(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	if err := h.doctorSvc.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"message": "doctor deleted"})
}
