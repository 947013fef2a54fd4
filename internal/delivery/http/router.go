package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/Asjad-cell/HealthLink/internal/delivery/http/handler"
	"github.com/Asjad-cell/HealthLink/internal/delivery/http/middleware"
	"github.com/Asjad-cell/HealthLink/pkg/response"

	"github.com/gorilla/mux"
)

const healthCheckTimeout = 2 * time.Second

var routedMethods = []string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
}

// HealthCheck pings one dependency. Required checks turn the service
// unhealthy when they fail; optional ones only mark it degraded.
type HealthCheck struct {
	Name     string
	Required bool
	Ping     func(ctx context.Context) error
}

type Handlers struct {
	Availability *handler.AvailabilityHandler
	Appointment  *handler.AppointmentHandler
	Stats        *handler.StatsHandler
	Doctor       *handler.DoctorHandler
	Patient      *handler.PatientHandler
	AuditLog     *handler.AuditLogHandler
}

type Router struct {
	router            *mux.Router
	handlers          Handlers
	authMiddleware    *middleware.AuthMiddleware
	corsMiddleware    *middleware.CORSMiddleware
	loggingMiddleware *middleware.LoggingMiddleware
	healthChecks      []HealthCheck
}

func NewRouter(
	handlers Handlers,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	loggingMiddleware *middleware.LoggingMiddleware,
	healthChecks ...HealthCheck,
) *Router {
	return &Router{
		router:            mux.NewRouter(),
		handlers:          handlers,
		authMiddleware:    authMiddleware,
		corsMiddleware:    corsMiddleware,
		loggingMiddleware: loggingMiddleware,
		healthChecks:      healthChecks,
	}
}

// Setup registers every route. CORS and request logging wrap the whole
// router so preflight requests are answered before route matching.
func (r *Router) Setup() http.Handler {
	r.router.NotFoundHandler = http.HandlerFunc(r.notFound)
	r.router.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)

	api := r.router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Any authenticated caller
	shared := api.NewRoute().Subrouter()
	shared.Use(r.authMiddleware.Authenticate)
	shared.HandleFunc("/doctors/{doctorId}/availability", r.handlers.Availability.GetDoctorAvailability).Methods(http.MethodGet)
	shared.HandleFunc("/doctors/{doctorId}/slots/check", r.handlers.Availability.CheckSlot).Methods(http.MethodGet)
	shared.HandleFunc("/appointments/{id}", r.handlers.Appointment.GetAppointment).Methods(http.MethodGet)

	// Doctor routes
	doctor := api.PathPrefix("/doctor").Subrouter()
	doctor.Use(r.authMiddleware.Authenticate)
	doctor.Use(middleware.RequireDoctor)
	doctor.HandleFunc("/availability", r.handlers.Availability.GetMyAvailability).Methods(http.MethodGet)
	doctor.HandleFunc("/availability", r.handlers.Availability.SetMyAvailability).Methods(http.MethodPut)
	doctor.HandleFunc("/appointments", r.handlers.Appointment.GetDoctorAppointments).Methods(http.MethodGet)
	doctor.HandleFunc("/appointments/patient/{patientId}", r.handlers.Appointment.UpdateStatusForPatient).Methods(http.MethodPatch)
	doctor.HandleFunc("/appointments/{id}", r.handlers.Appointment.UpdateStatus).Methods(http.MethodPatch)
	doctor.HandleFunc("/patients", r.handlers.Patient.GetMyPatients).Methods(http.MethodGet)
	doctor.HandleFunc("/patients/{patientId}/records", r.handlers.Patient.AddMedicalRecord).Methods(http.MethodPost)
	doctor.HandleFunc("/patients/{patientId}/records/{recordId}", r.handlers.Patient.UpdateMedicalRecord).Methods(http.MethodPut)
	doctor.HandleFunc("/patients/{patientId}/billing", r.handlers.Patient.UpdateBilling).Methods(http.MethodPut)
	doctor.HandleFunc("/stats", r.handlers.Stats.GetDoctorStats).Methods(http.MethodGet)
	doctor.HandleFunc("/dashboard", r.handlers.Stats.GetDoctorDashboard).Methods(http.MethodGet)

	// Patient routes
	patient := api.PathPrefix("/patient").Subrouter()
	patient.Use(r.authMiddleware.Authenticate)
	patient.Use(middleware.RequirePatient)
	patient.HandleFunc("/appointments", r.handlers.Appointment.GetMyAppointments).Methods(http.MethodGet)
	patient.HandleFunc("/appointments", r.handlers.Appointment.BookAppointment).Methods(http.MethodPost)
	patient.HandleFunc("/appointments/{id}/cancel", r.handlers.Appointment.CancelAppointment).Methods(http.MethodPatch)

	// Admin routes
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)

	admin.HandleFunc("/doctors", r.handlers.Doctor.CreateDoctor).Methods(http.MethodPost)
	admin.HandleFunc("/doctors", r.handlers.Doctor.GetAllDoctors).Methods(http.MethodGet)
	admin.HandleFunc("/doctors/{id}", r.handlers.Doctor.GetDoctor).Methods(http.MethodGet)
	admin.HandleFunc("/doctors/{id}", r.handlers.Doctor.UpdateDoctor).Methods(http.MethodPatch)
	admin.HandleFunc("/doctors/{id}/toggle-status", r.handlers.Doctor.ToggleDoctorStatus).Methods(http.MethodPatch)
	admin.HandleFunc("/doctors/{id}/availability", r.handlers.Availability.SetDoctorAvailability).Methods(http.MethodPut)
	admin.HandleFunc("/doctors/{id}/appointments", r.handlers.Appointment.GetAppointmentsByDoctor).Methods(http.MethodGet)

	admin.HandleFunc("/patients", r.handlers.Patient.CreatePatient).Methods(http.MethodPost)
	admin.HandleFunc("/patients", r.handlers.Patient.GetAllPatients).Methods(http.MethodGet)
	admin.HandleFunc("/patients/{id}", r.handlers.Patient.UpdatePatient).Methods(http.MethodPatch)

	admin.HandleFunc("/appointments", r.handlers.Appointment.GetAllAppointments).Methods(http.MethodGet)
	admin.HandleFunc("/appointments", r.handlers.Appointment.BookAppointment).Methods(http.MethodPost)

	admin.HandleFunc("/dashboard/stats", r.handlers.Stats.GetAdminStats).Methods(http.MethodGet)
	admin.HandleFunc("/audit-logs", r.handlers.AuditLog.GetAllAuditLogs).Methods(http.MethodGet)
	admin.HandleFunc("/audit-logs/{id}", r.handlers.AuditLog.GetAuditLog).Methods(http.MethodGet)

	return r.loggingMiddleware.Handle(r.corsMiddleware.Handle(r.router))
}

// notFound answers 405 when the path is routed under another method. Routes
// inside a subrouter carry the inherited /api/v1 prefix matcher, and a later
// sibling matching that prefix resets mux's method mismatch to not found.
func (r *Router) notFound(w http.ResponseWriter, req *http.Request) {
	var allowed []string
	for _, method := range routedMethods {
		if method == req.Method {
			continue
		}
		candidate := req.Clone(req.Context())
		candidate.Method = method
		var match mux.RouteMatch
		if r.router.Match(candidate, &match) && match.MatchErr == nil {
			allowed = append(allowed, method)
		}
	}

	if len(allowed) > 0 {
		w.Header().Set("Allow", strings.Join(allowed, ", "))
		methodNotAllowed(w, req)
		return
	}
	response.NotFound(w, "Route not found")
}

func methodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	response.Error(w, http.StatusMethodNotAllowed, "Method not allowed", nil)
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), healthCheckTimeout)
	defer cancel()

	status := "ok"
	code := http.StatusOK
	components := make(map[string]string, len(r.healthChecks))
	for _, check := range r.healthChecks {
		if err := check.Ping(ctx); err != nil {
			components[check.Name] = "down"
			if check.Required {
				status = "unavailable"
				code = http.StatusServiceUnavailable
			} else if status == "ok" {
				status = "degraded"
			}
			continue
		}
		components[check.Name] = "up"
	}

	response.JSON(w, code, map[string]any{
		"status":     status,
		"components": components,
	})
}
