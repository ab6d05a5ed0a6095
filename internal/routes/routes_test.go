package routes

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinic-scheduler/internal/cache"
	"github.com/BruksfildServices01/clinic-scheduler/internal/config"
	"github.com/BruksfildServices01/clinic-scheduler/internal/db/dbtest"
	"github.com/BruksfildServices01/clinic-scheduler/internal/flash"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type record map[string]any

func newServer(t *testing.T) *gin.Engine {
	t.Helper()
	return newCachedServer(t, nil)
}

func newCachedServer(t *testing.T, c *cache.Cache) *gin.Engine {
	t.Helper()

	cfg := &config.Config{
		SecretKey:      "test-secret",
		ClinicTimezone: "UTC",
	}

	r, err := NewRouter(cfg, dbtest.Open(t), c)
	if err != nil {
		t.Fatalf("NewRouter: %v", err)
	}
	return r
}

func get(r *gin.Engine, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func post(r *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func dump(t *testing.T, r *gin.Engine, path string) []record {
	t.Helper()

	rec := get(r, path)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET %s = %d", path, rec.Code)
	}

	var out []record
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %s: %v (%s)", path, err, rec.Body.String())
	}
	return out
}

func mustRedirect(t *testing.T, rec *httptest.ResponseRecorder, location string) {
	t.Helper()
	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302 (%s)", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Location"); got != location {
		t.Fatalf("location = %q, want %q", got, location)
	}
}

func flashCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == flash.CookieName {
			return ck
		}
	}
	return nil
}

func createPatient(t *testing.T, r *gin.Engine, form url.Values) uint {
	t.Helper()
	mustRedirect(t, post(r, "/patients/new", form), "/patients")

	patients := dump(t, r, "/api/patients")
	return uint(patients[0]["id"].(float64))
}

func TestCreatePatientShowsInAPI(t *testing.T) {
	r := newServer(t)

	createPatient(t, r, url.Values{"name": {"Jane Doe"}, "age": {"30"}, "phone": {"555-0101"}})

	patients := dump(t, r, "/api/patients")
	if len(patients) != 1 {
		t.Fatalf("got %d patients", len(patients))
	}
	p := patients[0]
	if p["name"] != "Jane Doe" || p["age"] != float64(30) || p["phone"] != "555-0101" {
		t.Fatalf("unexpected record %v", p)
	}
	if p["gender"] != nil {
		t.Fatalf("absent gender should be null, got %v", p["gender"])
	}
	if s, _ := p["created_at"].(string); s == "" {
		t.Fatal("created_at missing")
	}
}

func TestCreateAppointmentForPatient(t *testing.T) {
	r := newServer(t)

	jane := createPatient(t, r, url.Values{"name": {"Jane Doe"}, "age": {"30"}})

	rec := post(r, "/appointments/new", url.Values{
		"patient_id": {fmt.Sprint(jane)},
		"doctor":     {"Dr. Lee"},
		"appt_time":  {"2024-05-01 10:00"},
	})
	mustRedirect(t, rec, "/appointments")

	apps := dump(t, r, "/api/appointments")
	if len(apps) != 1 {
		t.Fatalf("got %d appointments", len(apps))
	}
	a := apps[0]
	if a["patient_name"] != "Jane Doe" || a["doctor"] != "Dr. Lee" || a["status"] != "Scheduled" {
		t.Fatalf("unexpected record %v", a)
	}
	if a["appt_time"] != "2024-05-01T10:00:00Z" {
		t.Fatalf("appt_time = %v", a["appt_time"])
	}
	if a["patient_id"] != float64(jane) {
		t.Fatalf("patient_id = %v", a["patient_id"])
	}
}

func TestAppointmentMissingDoctor(t *testing.T) {
	r := newServer(t)
	jane := createPatient(t, r, url.Values{"name": {"Jane Doe"}})

	rec := post(r, "/appointments/new", url.Values{
		"patient_id": {fmt.Sprint(jane)},
		"doctor":     {""},
		"appt_time":  {"2024-05-01 10:00"},
	})
	mustRedirect(t, rec, "/appointments/new")

	if n := len(dump(t, r, "/api/appointments")); n != 0 {
		t.Fatalf("rejected form stored %d appointments", n)
	}

	ck := flashCookie(rec)
	if ck == nil {
		t.Fatal("no flash cookie set")
	}
	page := get(r, "/appointments/new", ck)
	if !strings.Contains(page.Body.String(), "Patient, doctor and appointment time are required") {
		t.Fatalf("flash message not rendered:\n%s", page.Body.String())
	}
}

func TestAppointmentBadTimeIsValidationFailure(t *testing.T) {
	r := newServer(t)
	jane := createPatient(t, r, url.Values{"name": {"Jane Doe"}})

	rec := post(r, "/appointments/new", url.Values{
		"patient_id": {fmt.Sprint(jane)},
		"doctor":     {"Dr. Lee"},
		"appt_time":  {"2024-13-45 10:00"},
	})
	mustRedirect(t, rec, "/appointments/new")

	if n := len(dump(t, r, "/api/appointments")); n != 0 {
		t.Fatalf("stored %d appointments", n)
	}
}

func TestPatientSearch(t *testing.T) {
	r := newServer(t)
	createPatient(t, r, url.Values{"name": {"Jane Doe"}})
	createPatient(t, r, url.Values{"name": {"John Smith"}})

	body := get(r, "/patients?q=jan").Body.String()
	if !strings.Contains(body, "Jane Doe") {
		t.Fatal("search for jan missed Jane Doe")
	}
	if strings.Contains(body, "John Smith") {
		t.Fatal("search for jan matched John Smith")
	}

	body = get(r, "/patients").Body.String()
	if !strings.Contains(body, "Jane Doe") || !strings.Contains(body, "John Smith") {
		t.Fatal("empty query should list everyone")
	}
}

func TestPatientSearchWildcardsMatchLiterally(t *testing.T) {
	r := newServer(t)
	createPatient(t, r, url.Values{"name": {"Jane Doe"}})
	createPatient(t, r, url.Values{"name": {"John Smith"}})

	for _, q := range []string{"%", "_", "J%n", "J_hn"} {
		body := get(r, "/patients?q="+url.QueryEscape(q)).Body.String()
		if strings.Contains(body, "Jane Doe") || strings.Contains(body, "John Smith") {
			t.Fatalf("q=%q matched names without that text", q)
		}
		if !strings.Contains(body, "No patients found.") {
			t.Fatalf("q=%q should show the empty list", q)
		}
	}
}

func TestPatientEditBlankNameKeepsName(t *testing.T) {
	r := newServer(t)
	id := createPatient(t, r, url.Values{"name": {"Jane Doe"}, "phone": {"555-0101"}})

	rec := post(r, fmt.Sprintf("/patients/%d/edit", id), url.Values{
		"name":  {""},
		"phone": {"555-0199"},
	})
	mustRedirect(t, rec, "/patients")

	p := dump(t, r, "/api/patients")[0]
	if p["name"] != "Jane Doe" {
		t.Fatalf("name = %v", p["name"])
	}
	if p["phone"] != "555-0199" {
		t.Fatalf("phone = %v", p["phone"])
	}

	form := get(r, fmt.Sprintf("/patients/%d/edit", id))
	if form.Code != http.StatusOK || !strings.Contains(form.Body.String(), "555-0199") {
		t.Fatalf("edit form = %d", form.Code)
	}
}

func TestPatientEditRejectsBadAge(t *testing.T) {
	r := newServer(t)
	id := createPatient(t, r, url.Values{"name": {"Jane Doe"}, "age": {"30"}})

	path := fmt.Sprintf("/patients/%d/edit", id)
	mustRedirect(t, post(r, path, url.Values{"name": {"Jane"}, "age": {"old"}}), path)

	p := dump(t, r, "/api/patients")[0]
	if p["name"] != "Jane Doe" || p["age"] != float64(30) {
		t.Fatalf("rejected edit changed the record: %v", p)
	}
}

func TestDeletePatientCascades(t *testing.T) {
	r := newServer(t)
	jane := createPatient(t, r, url.Values{"name": {"Jane Doe"}})
	john := createPatient(t, r, url.Values{"name": {"John Smith"}})

	for _, pid := range []uint{jane, jane, john} {
		mustRedirect(t, post(r, "/appointments/new", url.Values{
			"patient_id": {fmt.Sprint(pid)},
			"doctor":     {"Dr. Lee"},
			"appt_time":  {"2024-05-01 10:00"},
		}), "/appointments")
	}

	mustRedirect(t, post(r, fmt.Sprintf("/patients/%d/delete", jane), nil), "/patients")

	apps := dump(t, r, "/api/appointments")
	if len(apps) != 1 || apps[0]["patient_name"] != "John Smith" {
		t.Fatalf("appointments after delete: %v", apps)
	}
	if n := len(dump(t, r, "/api/patients")); n != 1 {
		t.Fatalf("patients after delete: %d", n)
	}
}

func TestDeleteAppointment(t *testing.T) {
	r := newServer(t)
	jane := createPatient(t, r, url.Values{"name": {"Jane Doe"}})
	mustRedirect(t, post(r, "/appointments/new", url.Values{
		"patient_id": {fmt.Sprint(jane)},
		"doctor":     {"Dr. Lee"},
		"appt_time":  {"2024-05-01 10:00"},
	}), "/appointments")

	id := uint(dump(t, r, "/api/appointments")[0]["id"].(float64))
	mustRedirect(t, post(r, fmt.Sprintf("/appointments/%d/delete", id), nil), "/appointments")

	if n := len(dump(t, r, "/api/appointments")); n != 0 {
		t.Fatalf("appointments left: %d", n)
	}
	if n := len(dump(t, r, "/api/patients")); n != 1 {
		t.Fatalf("patient removed with its appointment: %d", n)
	}
}

func TestMissingRecordsAre404(t *testing.T) {
	r := newServer(t)
	createPatient(t, r, url.Values{"name": {"Jane Doe"}})

	cases := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/patients/999/edit"},
		{http.MethodPost, "/patients/999/edit"},
		{http.MethodPost, "/patients/999/delete"},
		{http.MethodPost, "/appointments/999/delete"},
		{http.MethodGet, "/patients/abc/edit"},
	}

	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			var rec *httptest.ResponseRecorder
			if tc.method == http.MethodGet {
				rec = get(r, tc.path)
			} else {
				rec = post(r, tc.path, url.Values{"name": {"X"}})
			}
			if rec.Code != http.StatusNotFound {
				t.Fatalf("status = %d", rec.Code)
			}
		})
	}

	if n := len(dump(t, r, "/api/patients")); n != 1 {
		t.Fatalf("patients = %d", n)
	}
}

func TestDashboard(t *testing.T) {
	r := newServer(t)
	jane := createPatient(t, r, url.Values{"name": {"Jane Doe"}})
	createPatient(t, r, url.Values{"name": {"John Smith"}})

	for i := 1; i <= 6; i++ {
		mustRedirect(t, post(r, "/appointments/new", url.Values{
			"patient_id": {fmt.Sprint(jane)},
			"doctor":     {fmt.Sprintf("Dr. %d", i)},
			"appt_time":  {fmt.Sprintf("2024-05-0%d 10:00", i)},
		}), "/appointments")
	}

	rec := get(r, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `id="patient-count">2<`) || !strings.Contains(body, `id="appointment-count">6<`) {
		t.Fatalf("counts missing:\n%s", body)
	}
	if !strings.Contains(body, "2024-05-01 10:00") || strings.Contains(body, "2024-05-06 10:00") {
		t.Fatal("dashboard should list only the five earliest appointments")
	}
}

func TestAppointmentFormListsPatientsByName(t *testing.T) {
	r := newServer(t)
	createPatient(t, r, url.Values{"name": {"Zoe Adams"}})
	createPatient(t, r, url.Values{"name": {"Amy Brown"}})

	body := get(r, "/appointments/new").Body.String()
	amy, zoe := strings.Index(body, "Amy Brown"), strings.Index(body, "Zoe Adams")
	if amy < 0 || zoe < 0 || amy > zoe {
		t.Fatalf("patients not ordered by name (amy=%d zoe=%d)", amy, zoe)
	}
}

func TestHealthAndPreflight(t *testing.T) {
	r := newServer(t)

	if rec := get(r, "/health"); rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Fatalf("health = %d %s", rec.Code, rec.Body.String())
	}

	req := httptest.NewRequest(http.MethodOptions, "/api/patients", nil)
	req.Header.Set("Origin", "http://clinic.test")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Fatalf("preflight not answered by CORS: %d %v", rec.Code, rec.Header())
	}
}

func TestTablesAreComplete(t *testing.T) {
	cfg := &config.Config{SecretKey: "test-secret", ClinicTimezone: "UTC"}
	h := NewHandlers(cfg, dbtest.Open(t), nil, timezone.NewClock(cfg.ClinicTimezone))

	seen := map[string]bool{}
	for _, rt := range WebTable(h) {
		seen[rt.Method+" "+rt.Path] = true
	}
	for _, want := range []string{
		"GET /", "GET /patients", "GET /patients/new", "POST /patients/new",
		"GET /patients/:id/edit", "POST /patients/:id/edit", "POST /patients/:id/delete",
		"GET /appointments", "GET /appointments/new", "POST /appointments/new",
		"POST /appointments/:id/delete",
	} {
		if !seen[want] {
			t.Errorf("missing route %s", want)
		}
	}
}

func TestAPICacheStaysFreshAfterWrites(t *testing.T) {
	mr := miniredis.RunT(t)
	c, err := cache.New(context.Background(), "redis://"+mr.Addr(), time.Minute)
	if err != nil {
		t.Fatalf("cache.New: %v", err)
	}
	t.Cleanup(func() { c.Close() })

	r := newCachedServer(t, c)

	if n := len(dump(t, r, "/api/patients")); n != 0 {
		t.Fatalf("patients = %d", n)
	}
	if !mr.Exists(cache.KeyPatients) {
		t.Fatal("patient dump not cached")
	}

	// a hit is served as stored
	mr.Set(cache.KeyPatients, `[{"id":42,"name":"Cached"}]`)
	if got := dump(t, r, "/api/patients"); len(got) != 1 || got[0]["name"] != "Cached" {
		t.Fatalf("cache hit not served: %v", got)
	}

	mustRedirect(t, post(r, "/patients/new", url.Values{"name": {"Jane Doe"}}), "/patients")
	if mr.Exists(cache.KeyPatients) {
		t.Fatal("patient write left the dump cached")
	}
	got := dump(t, r, "/api/patients")
	if len(got) != 1 || got[0]["name"] != "Jane Doe" {
		t.Fatalf("patients after create: %v", got)
	}
	jane := uint(got[0]["id"].(float64))

	dump(t, r, "/api/appointments")
	mustRedirect(t, post(r, "/appointments/new", url.Values{
		"patient_id": {fmt.Sprint(jane)},
		"doctor":     {"Dr. Lee"},
		"appt_time":  {"2024-05-01 10:00"},
	}), "/appointments")
	if got := dump(t, r, "/api/appointments"); len(got) != 1 || got[0]["patient_name"] != "Jane Doe" {
		t.Fatalf("appointments after create: %v", got)
	}

	mustRedirect(t, post(r, fmt.Sprintf("/patients/%d/delete", jane), nil), "/patients")
	if n := len(dump(t, r, "/api/appointments")); n != 0 {
		t.Fatalf("cascade hidden by stale cache: %d appointments", n)
	}
	if n := len(dump(t, r, "/api/patients")); n != 0 {
		t.Fatalf("patients after delete: %d", n)
	}
}

func TestAppointmentsPage(t *testing.T) {
	r := newServer(t)
	jane := createPatient(t, r, url.Values{"name": {"Jane Doe"}})

	mustRedirect(t, post(r, "/appointments/new", url.Values{
		"patient_id": {fmt.Sprint(jane)},
		"doctor":     {"Dr. Lee"},
		"appt_time":  {"2024-05-01T10:00"},
		"notes":      {"fasting"},
	}), "/appointments")

	rec := get(r, "/appointments")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"2024-05-01 10:00", "Jane Doe", "Dr. Lee", "Scheduled", "fasting"} {
		if !strings.Contains(body, want) {
			t.Fatalf("appointments page missing %q:\n%s", want, body)
		}
	}
}
