package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-scheduler/internal/cache"
	"github.com/BruksfildServices01/clinic-scheduler/internal/config"
	"github.com/BruksfildServices01/clinic-scheduler/internal/flash"
	"github.com/BruksfildServices01/clinic-scheduler/internal/handlers"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httpresp"
	infraRepo "github.com/BruksfildServices01/clinic-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
	"github.com/BruksfildServices01/clinic-scheduler/internal/usecase"
	ucAppointment "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/appointment"
	ucDashboard "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/dashboard"
	ucPatient "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/patient"
	"github.com/BruksfildServices01/clinic-scheduler/internal/web"
)

// Route is one (method, path, handler) binding.
type Route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
}

type Table []Route

// Apply registers every binding of t on r.
func Apply(r gin.IRoutes, t Table) {
	for _, rt := range t {
		r.Handle(rt.Method, rt.Path, rt.Handler)
	}
}

// Handlers groups everything the route tables point at.
type Handlers struct {
	Dashboard    *handlers.DashboardHandler
	Patients     *handlers.PatientWebHandler
	Appointments *handlers.AppointmentWebHandler
	API          *handlers.APIHandler
}

// WebTable lists the HTML pages and form posts.
func WebTable(h Handlers) Table {
	return Table{
		{http.MethodGet, "/", h.Dashboard.Show},

		{http.MethodGet, "/patients", h.Patients.List},
		{http.MethodGet, "/patients/new", h.Patients.NewForm},
		{http.MethodPost, "/patients/new", h.Patients.Create},
		{http.MethodGet, "/patients/:id/edit", h.Patients.EditForm},
		{http.MethodPost, "/patients/:id/edit", h.Patients.Update},
		{http.MethodPost, "/patients/:id/delete", h.Patients.Delete},

		{http.MethodGet, "/appointments", h.Appointments.List},
		{http.MethodGet, "/appointments/new", h.Appointments.NewForm},
		{http.MethodPost, "/appointments/new", h.Appointments.Create},
		{http.MethodPost, "/appointments/:id/delete", h.Appointments.Delete},

		{http.MethodGet, "/health", health},
	}
}

// APITable lists the JSON endpoints, relative to /api. OPTIONS entries let
// CORS preflights reach the group middleware.
func APITable(h Handlers) Table {
	return Table{
		{http.MethodGet, "/patients", h.API.Patients},
		{http.MethodOptions, "/patients", preflight},
		{http.MethodGet, "/appointments", h.API.Appointments},
		{http.MethodOptions, "/appointments", preflight},
	}
}

// NewHandlers wires repositories, use cases and handlers around one store.
func NewHandlers(cfg *config.Config, db *gorm.DB, c *cache.Cache, clock *timezone.Clock) Handlers {
	// ======================================================
	// INFRA
	// ======================================================
	patientRepo := infraRepo.NewPatientGormRepository(db)
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)

	var invalidator usecase.Invalidator = usecase.NopInvalidator{}
	if c.Enabled() {
		invalidator = c
	}

	// ======================================================
	// USE CASES
	// ======================================================
	listPatientsUC := ucPatient.NewListPatients(patientRepo)
	listAppointmentsUC := ucAppointment.NewListAppointments(appointmentRepo)

	view := handlers.NewView(flash.NewStore(cfg.SecretKey))

	// ======================================================
	// HANDLERS
	// ======================================================
	return Handlers{
		Dashboard: handlers.NewDashboardHandler(
			ucDashboard.NewGetSummary(patientRepo, appointmentRepo),
			view,
		),
		Patients: handlers.NewPatientWebHandler(
			ucPatient.NewCreatePatient(patientRepo, invalidator),
			ucPatient.NewUpdatePatient(patientRepo, invalidator),
			ucPatient.NewDeletePatient(patientRepo, invalidator),
			listPatientsUC,
			view,
		),
		Appointments: handlers.NewAppointmentWebHandler(
			ucAppointment.NewCreateAppointment(appointmentRepo, patientRepo, clock, invalidator),
			ucAppointment.NewDeleteAppointment(appointmentRepo, invalidator),
			listAppointmentsUC,
			listPatientsUC,
			clock,
			view,
		),
		API: handlers.NewAPIHandler(listPatientsUC, listAppointmentsUC, clock, c),
	}
}

// NewRouter builds the engine: templates, global middleware and both route
// tables.
func NewRouter(cfg *config.Config, db *gorm.DB, c *cache.Cache) (*gin.Engine, error) {
	clock := timezone.NewClock(cfg.ClinicTimezone)

	tmpl, err := web.Templates(clock)
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.SetHTMLTemplate(tmpl)

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		gin.Recovery(),
		middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst),
	)

	h := NewHandlers(cfg, db, c, clock)
	Apply(r, WebTable(h))

	api := r.Group("/api")
	api.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	Apply(api, APITable(h))

	return r, nil
}

func health(c *gin.Context) {
	httpresp.OK(c, gin.H{"status": "ok"})
}

func preflight(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
