package v1

import (
	"github.com/clinicdesk/clinicdesk/internal/domain/patient"
	"github.com/clinicdesk/clinicdesk/internal/service"
	"github.com/gin-gonic/gin"
)

type PatientHandler struct {
	patientSvc *service.PatientService
}

func NewPatientHandler(patientSvc *service.PatientService) *PatientHandler {
	return &PatientHandler{patientSvc: patientSvc}
}

type registerPatientRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password" binding:"required"`
}

// Register handles POST /patients. Registration is open; everything else a
// patient does requires a token.
func (h *PatientHandler) Register(c *gin.Context) {
	var req registerPatientRequest
	if !bindJSON(c, &req) {
		return
	}

	p, err := h.patientSvc.Register(c.Request.Context(), &patient.RegisterPatientCommand{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, gin.H{"id": p.ID.String(), "name": p.Name, "email": p.Email})
}

// MyAppointments handles GET /patients/me/appointments with optional doctor
// and condition (past/future) filters.
func (h *PatientHandler) MyAppointments(c *gin.Context) {
	claims := claimsFrom(c)

	appts, err := h.patientSvc.MyAppointments(
		c.Request.Context(),
		claims.Subject,
		c.Query("doctor"),
		c.Query("condition"),
	)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	out := make([]appointmentResponse, 0, len(appts))
	for _, a := range appts {
		out = append(out, toAppointmentResponse(a))
	}
	respondOK(c, gin.H{"appointments": out, "count": len(out)})
}
