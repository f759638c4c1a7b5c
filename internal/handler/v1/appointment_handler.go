package v1

import (
	"time"

	"github.com/clinicdesk/clinicdesk/internal/domain/appointment"
	"github.com/clinicdesk/clinicdesk/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AppointmentHandler struct {
	apptSvc    *service.AppointmentService
	patientSvc *service.PatientService
}

func NewAppointmentHandler(apptSvc *service.AppointmentService, patientSvc *service.PatientService) *AppointmentHandler {
	return &AppointmentHandler{apptSvc: apptSvc, patientSvc: patientSvc}
}

type appointmentResponse struct {
	ID              string    `json:"id"`
	DoctorID        string    `json:"doctor_id"`
	PatientID       string    `json:"patient_id"`
	AppointmentTime time.Time `json:"appointment_time"`
	Status          int       `json:"status"`
}

func toAppointmentResponse(a *appointment.Appointment) appointmentResponse {
	return appointmentResponse{
		ID:              a.ID.String(),
		DoctorID:        a.DoctorID.String(),
		PatientID:       a.PatientID.String(),
		AppointmentTime: a.AppointmentTime,
		Status:          a.Status,
	}
}

type bookAppointmentRequest struct {
	DoctorID        uuid.UUID `json:"doctor_id" binding:"required"`
	AppointmentTime time.Time `json:"appointment_time" binding:"required"`
}

// Book handles POST /appointments for the patient role. The booked patient is
// always the verified caller; a patient cannot book on someone else's behalf.
func (h *AppointmentHandler) Book(c *gin.Context) {
	claims := claimsFrom(c)

	var req bookAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	p, err := h.patientSvc.GetByEmail(c.Request.Context(), claims.Subject)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	a, err := h.apptSvc.Book(c.Request.Context(), &appointment.BookAppointmentCommand{
		DoctorID:        req.DoctorID,
		PatientID:       p.ID,
		AppointmentTime: req.AppointmentTime,
	}, claims)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, toAppointmentResponse(a))
}

type updateAppointmentRequest struct {
	DoctorID        uuid.UUID `json:"doctor_id" binding:"required"`
	AppointmentTime time.Time `json:"appointment_time" binding:"required"`
}

// Update handles PUT /appointments/:id. Only the owning patient gets through;
// the caller's identity is resolved to a patient record and compared against
// the stored owner inside the service.
func (h *AppointmentHandler) Update(c *gin.Context) {
	claims := claimsFrom(c)

	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	var req updateAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	p, err := h.patientSvc.GetByEmail(c.Request.Context(), claims.Subject)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	a, err := h.apptSvc.Update(c.Request.Context(), id, &appointment.UpdateAppointmentCommand{
		PatientID:       p.ID,
		DoctorID:        req.DoctorID,
		AppointmentTime: req.AppointmentTime,
	}, claims)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, toAppointmentResponse(a))
}

// Cancel handles DELETE /appointments/:id. Cancellation removes the row.
func (h *AppointmentHandler) Cancel(c *gin.Context) {
	claims := claimsFrom(c)

	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	if err := h.apptSvc.Cancel(c.Request.Context(), id, claims); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"message": "appointment cancelled"})
}

type changeStatusRequest struct {
	Status int `json:"status"`
}

// ChangeStatus handles PATCH /appointments/:id/status for the doctor role.
func (h *AppointmentHandler) ChangeStatus(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	var req changeStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.apptSvc.ChangeStatus(c.Request.Context(), id, req.Status); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"message": "appointment status updated"})
}

// DoctorDay handles GET /appointments?date=YYYY-MM-DD&patient=smith — the
// verified doctor's agenda for the day. Unknown identities and storage
// failures both read as an empty agenda.
func (h *AppointmentHandler) DoctorDay(c *gin.Context) {
	claims := claimsFrom(c)

	date, err := time.ParseInLocation("2006-01-02", c.Query("date"), time.Local)
	if err != nil {
		respondError(c, 400, "invalid date: expected YYYY-MM-DD")
		return
	}

	appts, count := h.apptSvc.DoctorDay(c.Request.Context(), claims.Subject, date, c.Query("patient"))
	out := make([]appointmentResponse, 0, len(appts))
	for _, a := range appts {
		out = append(out, toAppointmentResponse(a))
	}
	respondOK(c, gin.H{"appointments": out, "count": count})
}
