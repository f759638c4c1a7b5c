package v1

import (
	"net/http"

	"github.com/clinicdesk/clinicdesk/internal/domain"
	"github.com/clinicdesk/clinicdesk/internal/service"
	"github.com/clinicdesk/clinicdesk/pkg/auth"
	"github.com/clinicdesk/clinicdesk/pkg/metrics"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type RouterDeps struct {
	JWTManager     *auth.JWTManager
	Gate           *service.AuthorizationGate
	AuthHandler    *AuthHandler
	DoctorHandler  *DoctorHandler
	PatientHandler *PatientHandler
	ApptHandler    *AppointmentHandler
	RxHandler      *PrescriptionHandler
	Collector      *metrics.Collector
	Logger         *zap.Logger
}

// NewRouter wires the HTTP surface. Reads that leak nothing sensitive are
// public; every write goes through RequireAuth plus the authorization gate.
func NewRouter(d RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(d.Logger))
	r.Use(Metrics(d.Collector))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.MetricsHandler()))

	api := r.Group("/api/v1")

	// Public surface: login, registration, and doctor discovery.
	api.POST("/auth/:role/login", d.AuthHandler.Login)
	api.POST("/auth/refresh", d.AuthHandler.Refresh)
	api.POST("/patients", d.PatientHandler.Register)
	api.GET("/doctors", d.DoctorHandler.List)
	api.GET("/doctors/:id/availability", d.DoctorHandler.Availability)

	authed := api.Group("")
	authed.Use(RequireAuth(d.JWTManager))

	asAdmin := authed.Group("")
	asAdmin.Use(RequireRole(d.Gate, domain.RoleAdmin))
	{
		asAdmin.POST("/doctors", d.DoctorHandler.Create)
		asAdmin.PUT("/doctors/:id", d.DoctorHandler.Update)
		asAdmin.DELETE("/doctors/:id", d.DoctorHandler.Delete)
	}

	asDoctor := authed.Group("")
	asDoctor.Use(RequireRole(d.Gate, domain.RoleDoctor))
	{
		asDoctor.GET("/appointments", d.ApptHandler.DoctorDay)
		asDoctor.PATCH("/appointments/:id/status", d.ApptHandler.ChangeStatus)
		asDoctor.POST("/prescriptions", d.RxHandler.Issue)
		asDoctor.GET("/prescriptions/:appointmentId", d.RxHandler.GetByAppointment)
	}

	asPatient := authed.Group("")
	asPatient.Use(RequireRole(d.Gate, domain.RolePatient))
	{
		asPatient.POST("/appointments", d.ApptHandler.Book)
		asPatient.PUT("/appointments/:id", d.ApptHandler.Update)
		asPatient.DELETE("/appointments/:id", d.ApptHandler.Cancel)
		asPatient.GET("/patients/me/appointments", d.PatientHandler.MyAppointments)
	}

	return r
}
