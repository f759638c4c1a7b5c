package v1

import (
	"time"

	"github.com/clinicdesk/clinicdesk/internal/domain/prescription"
	"github.com/clinicdesk/clinicdesk/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PrescriptionHandler struct {
	prescriptionSvc *service.PrescriptionService
}

func NewPrescriptionHandler(prescriptionSvc *service.PrescriptionService) *PrescriptionHandler {
	return &PrescriptionHandler{prescriptionSvc: prescriptionSvc}
}

type issuePrescriptionRequest struct {
	AppointmentID uuid.UUID `json:"appointment_id" binding:"required"`
	PatientName   string    `json:"patient_name"`
	Medication    string    `json:"medication" binding:"required"`
	Dosage        string    `json:"dosage"`
	DoctorNotes   string    `json:"doctor_notes"`
	RefillCount   int       `json:"refill_count"`
}

type prescriptionResponse struct {
	ID            string    `json:"id"`
	AppointmentID string    `json:"appointment_id"`
	PatientName   string    `json:"patient_name"`
	Medication    string    `json:"medication"`
	Dosage        string    `json:"dosage"`
	DoctorNotes   string    `json:"doctor_notes,omitempty"`
	RefillCount   int       `json:"refill_count"`
	CreatedAt     time.Time `json:"created_at"`
}

func toPrescriptionResponse(p *prescription.Prescription) prescriptionResponse {
	return prescriptionResponse{
		ID:            p.ID.String(),
		AppointmentID: p.AppointmentID.String(),
		PatientName:   p.PatientName,
		Medication:    p.Medication,
		Dosage:        p.Dosage,
		DoctorNotes:   p.DoctorNotes,
		RefillCount:   p.RefillCount,
		CreatedAt:     p.CreatedAt,
	}
}

// Issue handles POST /prescriptions for the doctor role. The visit's
// completion is a best-effort side effect inside the service; this endpoint
// succeeds even when the status change does not.
func (h *PrescriptionHandler) Issue(c *gin.Context) {
	var req issuePrescriptionRequest
	if !bindJSON(c, &req) {
		return
	}

	p, err := h.prescriptionSvc.Issue(c.Request.Context(), &prescription.IssuePrescriptionCommand{
		AppointmentID: req.AppointmentID,
		PatientName:   req.PatientName,
		Medication:    req.Medication,
		Dosage:        req.Dosage,
		DoctorNotes:   req.DoctorNotes,
		RefillCount:   req.RefillCount,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, toPrescriptionResponse(p))
}

// GetByAppointment handles GET /prescriptions/:appointmentId.
func (h *PrescriptionHandler) GetByAppointment(c *gin.Context) {
	id, ok := parseUUID(c, "appointmentId")
	if !ok {
		return
	}

	p, err := h.prescriptionSvc.GetByAppointment(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, toPrescriptionResponse(p))
}
