package http

import (
	"net/http"

	"healthlink/internal/delivery/http/handler"
	"healthlink/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router              *mux.Router
	authHandler         *handler.AuthHandler
	appointmentHandler  *handler.AppointmentHandler
	referralHandler     *handler.ReferralHandler
	practitionerHandler *handler.PractitionerHandler
	patientHandler      *handler.PatientHandler
	facilityHandler     *handler.FacilityHandler
	auditLogHandler     *handler.AuditLogHandler
	authMiddleware      *middleware.AuthMiddleware
	corsMiddleware      *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	appointmentHandler *handler.AppointmentHandler,
	referralHandler *handler.ReferralHandler,
	practitionerHandler *handler.PractitionerHandler,
	patientHandler *handler.PatientHandler,
	facilityHandler *handler.FacilityHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:              mux.NewRouter(),
		authHandler:         authHandler,
		appointmentHandler:  appointmentHandler,
		referralHandler:     referralHandler,
		practitionerHandler: practitionerHandler,
		patientHandler:      patientHandler,
		facilityHandler:     facilityHandler,
		auditLogHandler:     auditLogHandler,
		authMiddleware:      authMiddleware,
		corsMiddleware:      corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register/patient", r.authHandler.RegisterPatient).Methods(http.MethodPost)
	auth.HandleFunc("/register/practitioner", r.authHandler.RegisterPractitioner).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Appointment routes (patient)
	patientAppointments := api.PathPrefix("/appointments").Subrouter()
	patientAppointments.Use(r.authMiddleware.Authenticate)
	patientAppointments.Use(middleware.RequirePatient)
	patientAppointments.HandleFunc("", r.appointmentHandler.Create).Methods(http.MethodPost)
	patientAppointments.HandleFunc("/me", r.appointmentHandler.GetMyAppointments).Methods(http.MethodGet)

	// Appointment routes (practitioner)
	practitionerAppointments := api.PathPrefix("/appointments").Subrouter()
	practitionerAppointments.Use(r.authMiddleware.Authenticate)
	practitionerAppointments.Use(middleware.RequireAdminOrPractitioner)
	practitionerAppointments.HandleFunc("/calendar", r.appointmentHandler.GetMyCalendar).Methods(http.MethodGet)
	practitionerAppointments.HandleFunc("/{id}/complete", r.appointmentHandler.Complete).Methods(http.MethodPut)
	practitionerAppointments.HandleFunc("/{id}/no-show", r.appointmentHandler.MarkNoShow).Methods(http.MethodPut)

	// Appointment routes (any authenticated role, ownership enforced below)
	appointments := api.PathPrefix("/appointments").Subrouter()
	appointments.Use(r.authMiddleware.Authenticate)
	appointments.HandleFunc("/{id}", r.appointmentHandler.GetByID).Methods(http.MethodGet)
	appointments.HandleFunc("/{id}/reschedule", r.appointmentHandler.Reschedule).Methods(http.MethodPut)
	appointments.HandleFunc("/{id}/cancel", r.appointmentHandler.Cancel).Methods(http.MethodPut)

	// Referral routes (practitioner)
	practitionerReferrals := api.PathPrefix("/referrals").Subrouter()
	practitionerReferrals.Use(r.authMiddleware.Authenticate)
	practitionerReferrals.Use(middleware.RequireAdminOrPractitioner)
	practitionerReferrals.HandleFunc("", r.referralHandler.Create).Methods(http.MethodPost)
	practitionerReferrals.HandleFunc("/outgoing", r.referralHandler.GetOutgoing).Methods(http.MethodGet)
	practitionerReferrals.HandleFunc("/incoming", r.referralHandler.GetIncoming).Methods(http.MethodGet)
	practitionerReferrals.HandleFunc("/{id}/decide", r.referralHandler.Decide).Methods(http.MethodPut)
	practitionerReferrals.HandleFunc("/{id}/complete", r.referralHandler.Complete).Methods(http.MethodPut)
	practitionerReferrals.HandleFunc("/{id}/insurance", r.referralHandler.VerifyInsurance).Methods(http.MethodPut)

	// Referral routes (patient)
	patientReferrals := api.PathPrefix("/referrals").Subrouter()
	patientReferrals.Use(r.authMiddleware.Authenticate)
	patientReferrals.Use(middleware.RequirePatient)
	patientReferrals.HandleFunc("/me", r.referralHandler.GetMyReferrals).Methods(http.MethodGet)

	// Referral routes (any authenticated role)
	referrals := api.PathPrefix("/referrals").Subrouter()
	referrals.Use(r.authMiddleware.Authenticate)
	referrals.HandleFunc("/{id}", r.referralHandler.GetByID).Methods(http.MethodGet)

	// Practitioner directory
	practitioners := api.PathPrefix("/practitioners").Subrouter()
	practitioners.Use(r.authMiddleware.Authenticate)
	practitioners.HandleFunc("", r.practitionerHandler.GetAll).Methods(http.MethodGet)
	practitioners.HandleFunc("/working-hours", r.practitionerHandler.SetWorkingHours).Methods(http.MethodPut)
	practitioners.HandleFunc("/{id}", r.practitionerHandler.GetByID).Methods(http.MethodGet)
	practitioners.HandleFunc("/{id}/working-hours", r.practitionerHandler.GetWorkingHours).Methods(http.MethodGet)

	// Patient self-service
	patients := api.PathPrefix("/patients").Subrouter()
	patients.Use(r.authMiddleware.Authenticate)
	patients.Use(middleware.RequirePatient)
	patients.HandleFunc("/me", r.patientHandler.UpdateMe).Methods(http.MethodPut)

	// Facility directory (read for all authenticated users)
	facilities := api.PathPrefix("/facilities").Subrouter()
	facilities.Use(r.authMiddleware.Authenticate)
	facilities.HandleFunc("", r.facilityHandler.GetAll).Methods(http.MethodGet)
	facilities.HandleFunc("/{id}", r.facilityHandler.GetByID).Methods(http.MethodGet)

	// Admin routes
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/practitioners/{id}", r.practitionerHandler.Update).Methods(http.MethodPut)
	admin.HandleFunc("/patients", r.patientHandler.GetAll).Methods(http.MethodGet)
	admin.HandleFunc("/patients/{id}", r.patientHandler.GetByID).Methods(http.MethodGet)
	admin.HandleFunc("/facilities", r.facilityHandler.Create).Methods(http.MethodPost)
	admin.HandleFunc("/facilities/{id}", r.facilityHandler.Update).Methods(http.MethodPut)
	admin.HandleFunc("/facilities/{id}", r.facilityHandler.Delete).Methods(http.MethodDelete)
	admin.HandleFunc("/audit-logs", r.auditLogHandler.GetAll).Methods(http.MethodGet)
	admin.HandleFunc("/audit-logs/{id}", r.auditLogHandler.GetByID).Methods(http.MethodGet)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
