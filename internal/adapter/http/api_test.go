package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"rental-backend/internal/adapter/middleware"
	"rental-backend/internal/adapter/repository/mysql"
	"rental-backend/internal/infrastructure/db"
	"rental-backend/internal/usecase/application"
	"rental-backend/internal/usecase/lead"
	"rental-backend/internal/usecase/property"
	"rental-backend/internal/usecase/visit"
	"rental-backend/pkg/id"
	"rental-backend/pkg/pagination"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
)

// -------- helpers --------

// newTestServer wires the full stack over an in-memory sqlite database.
func newTestServer(t *testing.T, mw ...echo.MiddlewareFunc) *echo.Echo {
	t.Helper()
	gdb, err := db.OpenGormWithDialector(sqlite.Open(":memory:"))
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	// every connection to :memory: is a new database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, mysql.AutoMigrate(gdb))

	apps := mysql.NewApplicationRepository(gdb)
	tx := mysql.NewGormUoW(gdb)

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(false, nil)
	RegisterRoutes(e, Handlers{
		Health:       NewHandler(),
		Applications: NewApplicationHandler(application.NewUsecase(apps, tx, nil)),
		Visits:       NewVisitHandler(visit.NewUsecase(apps, mysql.NewVisitRepository(gdb), tx, nil)),
		Leads:        NewLeadHandler(lead.NewUsecase(mysql.NewLeadRepository(gdb))),
		Properties:   NewPropertyHandler(property.NewUsecase(mysql.NewPropertyRepository(gdb))),
	}, mw...)
	return e
}

func do(t *testing.T, e *echo.Echo, method, path string, body any, hdr ...string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for i := 0; i+1 < len(hdr); i += 2 {
		req.Header.Set(hdr[i], hdr[i+1])
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), "raw=%s", rec.Body.String())
	return out
}

type fixture struct {
	leadID     string
	propertyID string
}

func seed(t *testing.T, e *echo.Echo) fixture {
	t.Helper()
	rec := do(t, e, http.MethodPost, "/leads", map[string]any{"name": "Ana Torres", "dni": "12345678a"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	l := decode[lead.LeadDTO](t, rec)

	rec = do(t, e, http.MethodPost, "/properties", map[string]any{"address": "Av. Larco 123", "monthlyRent": 1800.5})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	p := decode[property.PropertyDTO](t, rec)

	return fixture{leadID: l.ID, propertyID: p.ID}
}

func createApp(t *testing.T, e *echo.Echo, f fixture) application.ApplicationDTO {
	t.Helper()
	rec := do(t, e, http.MethodPost, "/applications", map[string]any{"leadId": f.leadID, "propertyId": f.propertyID})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[application.ApplicationDTO](t, rec)
}

func act(t *testing.T, e *echo.Echo, appID, action string, body any) *httptest.ResponseRecorder {
	t.Helper()
	return do(t, e, http.MethodPost, "/applications/"+appID+"/"+action, body)
}

func date(s string) time.Time {
	d, _ := time.Parse(time.DateOnly, s)
	return d
}

// -------- lifecycle --------

func TestAPI_CreateAndGet(t *testing.T) {
	e := newTestServer(t)
	f := seed(t, e)

	created := createApp(t, e, f)
	assert.Equal(t, "New", created.Status)
	assert.True(t, id.Valid(created.ID))
	require.NotNil(t, created.LeadName)
	assert.Equal(t, "Ana Torres", *created.LeadName)

	rec := do(t, e, http.MethodGet, "/applications/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[application.ApplicationDTO](t, rec)
	assert.Equal(t, created.ID, got.ID)
	require.NotNil(t, got.PropertyAddress)
	assert.Equal(t, "Av. Larco 123", *got.PropertyAddress)
	assert.Nil(t, got.ReviewStartedAt)
}

func TestAPI_RejectFromNew(t *testing.T) {
	e := newTestServer(t)
	app := createApp(t, e, seed(t, e))

	rec := act(t, e, app.ID, "reject", map[string]any{"rejectedReason": "Incomplete documents", "rejectedAt": "2024-01-01"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	got := decode[application.ApplicationDTO](t, rec)
	assert.Equal(t, "Rejected", got.Status)
	require.NotNil(t, got.RejectedReason)
	assert.Equal(t, "Incomplete documents", *got.RejectedReason)
	require.NotNil(t, got.RejectedAt)
	assert.True(t, got.RejectedAt.Equal(date("2024-01-01")))
}

func TestAPI_RejectAfterApproveConflicts(t *testing.T) {
	e := newTestServer(t)
	app := createApp(t, e, seed(t, e))

	require.Equal(t, http.StatusOK, act(t, e, app.ID, "start-review", map[string]any{"reviewStartedAt": "2024-01-02"}).Code)
	rec := act(t, e, app.ID, "approve", map[string]any{"approvedAt": "2024-01-03"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Approved", decode[application.ApplicationDTO](t, rec).Status)

	rec = act(t, e, app.ID, "reject", map[string]any{"rejectedReason": "late", "rejectedAt": "2024-01-04"})
	require.Equal(t, http.StatusConflict, rec.Code)
	body := decode[ErrorResponse](t, rec)
	assert.Equal(t, `Cannot reject application with status "Approved". Application must be in "New" or "Under Review" status.`, body.Detail)

	// record untouched
	got := decode[application.ApplicationDTO](t, do(t, e, http.MethodGet, "/applications/"+app.ID, nil))
	assert.Equal(t, "Approved", got.Status)
	assert.Nil(t, got.RejectedAt)
	assert.Nil(t, got.RejectedReason)
}

func TestAPI_ReserveAndSign(t *testing.T) {
	e := newTestServer(t)
	app := createApp(t, e, seed(t, e))

	act(t, e, app.ID, "start-review", map[string]any{"reviewStartedAt": "2024-05-01"})
	act(t, e, app.ID, "approve", map[string]any{"approvedAt": "2024-05-10"})
	rec := act(t, e, app.ID, "reserve", map[string]any{"reservedAt": "2024-05-15", "reservedAmount": 2500.75})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	got := decode[application.ApplicationDTO](t, rec)
	assert.Equal(t, "Reserved", got.Status)
	require.NotNil(t, got.ReservedAmount)
	assert.Equal(t, 2500.75, *got.ReservedAmount)
	require.NotNil(t, got.ApprovedAt)
	assert.True(t, got.ApprovedAt.Equal(date("2024-05-10")))

	rec = act(t, e, app.ID, "sign-contract", map[string]any{"contractSignedAt": "2024-05-20T15:30:00Z"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	got = decode[application.ApplicationDTO](t, rec)
	assert.Equal(t, "Contract Signed", got.Status)
	assert.True(t, got.ContractSignedAt.Equal(time.Date(2024, 5, 20, 15, 30, 0, 0, time.UTC)))
}

func TestAPI_ReserveWithdrawnConflicts(t *testing.T) {
	e := newTestServer(t)
	app := createApp(t, e, seed(t, e))

	rec := act(t, e, app.ID, "withdraw", map[string]any{"withdrawnReason": "found another flat", "withdrawnAt": "2024-02-01"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = act(t, e, app.ID, "reserve", map[string]any{"reservedAt": "2024-02-02", "reservedAmount": 100})
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t,
		`Cannot reserve application with status "Withdrawn". Application must be in "Approved" status.`,
		decode[ErrorResponse](t, rec).Detail)
}

func TestAPI_CreateWithMissingProperty(t *testing.T) {
	e := newTestServer(t)
	f := seed(t, e)
	missing := id.New()

	rec := do(t, e, http.MethodPost, "/applications", map[string]any{"leadId": f.leadID, "propertyId": missing})
	require.Equal(t, http.StatusNotFound, rec.Code)
	body := decode[ErrorResponse](t, rec)
	assert.Contains(t, body.Detail, "Property")
	assert.Contains(t, body.Detail, missing)

	page := decode[pagination.Page[application.ApplicationDTO]](t, do(t, e, http.MethodGet, "/applications", nil))
	assert.Zero(t, page.TotalCount)
	assert.Empty(t, page.Items)
	assert.Zero(t, page.TotalPages)
}

// -------- validation & errors --------

func TestAPI_InvalidPayloadLeavesRecordUntouched(t *testing.T) {
	e := newTestServer(t)
	app := createApp(t, e, seed(t, e))
	act(t, e, app.ID, "start-review", map[string]any{"reviewStartedAt": "2024-01-02"})
	act(t, e, app.ID, "approve", map[string]any{"approvedAt": "2024-01-03"})

	for _, amount := range []float64{0, -5} {
		rec := act(t, e, app.ID, "reserve", map[string]any{"reservedAt": "2024-01-04", "reservedAmount": amount})
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
		body := decode[ErrorResponse](t, rec)
		require.NotEmpty(t, body.Details)
		assert.Equal(t, "reservedAmount", body.Details[0].Path)
	}

	got := decode[application.ApplicationDTO](t, do(t, e, http.MethodGet, "/applications/"+app.ID, nil))
	assert.Equal(t, "Approved", got.Status)
	assert.Nil(t, got.ReservedAmount)
	assert.Nil(t, got.ReservedAt)
}

func TestAPI_ValidationBeforeGuard(t *testing.T) {
	e := newTestServer(t)
	app := createApp(t, e, seed(t, e))
	act(t, e, app.ID, "withdraw", map[string]any{"withdrawnReason": "moved", "withdrawnAt": "2024-02-01"})

	// malformed payload on a terminal record is still a validation error
	rec := act(t, e, app.ID, "reject", map[string]any{"rejectedReason": "   ", "rejectedAt": "yesterday"})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	paths := []string{}
	for _, d := range decode[ErrorResponse](t, rec).Details {
		paths = append(paths, d.Path)
	}
	assert.ElementsMatch(t, []string{"rejectedReason", "rejectedAt"}, paths)
}

func TestAPI_MalformedIDsAndBodies(t *testing.T) {
	e := newTestServer(t)

	rec := do(t, e, http.MethodPost, "/applications", map[string]any{"leadId": "nope", "propertyId": "nope"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Len(t, decode[ErrorResponse](t, rec).Details, 2)

	rec = do(t, e, http.MethodPost, "/applications", `{"leadId":`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid body", decode[ErrorResponse](t, rec).Detail)

	rec = do(t, e, http.MethodGet, "/applications?pageNumber=abc", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid query", decode[ErrorResponse](t, rec).Detail)

	rec = do(t, e, http.MethodGet, "/applications?pageSize=101", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestAPI_NotFound(t *testing.T) {
	e := newTestServer(t)
	missing := id.New()

	for _, tc := range []struct {
		method, path string
		body         any
	}{
		{http.MethodGet, "/applications/" + missing, nil},
		{http.MethodPut, "/applications/" + missing, map[string]any{"notes": "x"}},
		{http.MethodPost, "/applications/" + missing + "/approve", map[string]any{"approvedAt": "2024-01-01"}},
		{http.MethodGet, "/applications/" + missing + "/visits", nil},
		{http.MethodGet, "/leads/" + missing, nil},
		{http.MethodGet, "/properties/" + missing, nil},
	} {
		rec := do(t, e, tc.method, tc.path, tc.body)
		require.Equal(t, http.StatusNotFound, rec.Code, "%s %s", tc.method, tc.path)
		assert.Contains(t, decode[ErrorResponse](t, rec).Detail, missing)
	}
}

func TestAPI_UpdateNotes(t *testing.T) {
	e := newTestServer(t)
	app := createApp(t, e, seed(t, e))
	act(t, e, app.ID, "reject", map[string]any{"rejectedReason": "no", "rejectedAt": "2024-01-01"})

	// notes are editable in any status
	rec := do(t, e, http.MethodPut, "/applications/"+app.ID, map[string]any{"notes": "call back in March"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	got := decode[application.ApplicationDTO](t, rec)
	require.NotNil(t, got.Notes)
	assert.Equal(t, "call back in March", *got.Notes)
	assert.Equal(t, "Rejected", got.Status)

	rec = do(t, e, http.MethodPut, "/applications/"+app.ID, map[string]any{"notes": nil})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, decode[application.ApplicationDTO](t, rec).Notes)
}

// -------- listing --------

func TestAPI_ListPagination(t *testing.T) {
	e := newTestServer(t)
	f := seed(t, e)
	for i := 0; i < 6; i++ {
		createApp(t, e, f)
	}

	rec := do(t, e, http.MethodGet, "/applications?pageNumber=1&pageSize=5", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	p1 := decode[pagination.Page[application.ApplicationDTO]](t, rec)
	assert.Len(t, p1.Items, 5)
	assert.EqualValues(t, 6, p1.TotalCount)
	assert.Equal(t, 2, p1.TotalPages)

	p2 := decode[pagination.Page[application.ApplicationDTO]](t, do(t, e, http.MethodGet, "/applications?pageNumber=2&pageSize=5", nil))
	assert.Len(t, p2.Items, 1)
	assert.Equal(t, 2, p2.PageNumber)

	seen := map[string]bool{}
	for _, it := range append(p1.Items, p2.Items...) {
		seen[it.ID] = true
	}
	assert.Len(t, seen, 6, "pages must not overlap")

	def := decode[pagination.Page[application.ApplicationDTO]](t, do(t, e, http.MethodGet, "/applications", nil))
	assert.Equal(t, 1, def.PageNumber)
	assert.Equal(t, pagination.DefaultPageSize, def.PageSize)
	assert.Len(t, def.Items, 6)
}

func TestAPI_ListFilters(t *testing.T) {
	e := newTestServer(t)
	f := seed(t, e)
	createApp(t, e, f)

	rec := do(t, e, http.MethodPost, "/properties", map[string]any{"address": "Jr. Cusco 45"})
	other := decode[property.PropertyDTO](t, rec)
	createApp(t, e, fixture{leadID: f.leadID, propertyID: other.ID})
	createApp(t, e, fixture{leadID: f.leadID, propertyID: other.ID})

	page := decode[pagination.Page[application.ApplicationDTO]](t,
		do(t, e, http.MethodGet, "/applications?propertyId="+other.ID, nil))
	assert.EqualValues(t, 2, page.TotalCount)
	for _, it := range page.Items {
		assert.Equal(t, other.ID, it.PropertyID)
	}

	page = decode[pagination.Page[application.ApplicationDTO]](t,
		do(t, e, http.MethodGet, "/applications?leadId="+f.leadID, nil))
	assert.EqualValues(t, 3, page.TotalCount)

	tomorrow := time.Now().UTC().AddDate(0, 0, 1).Format(time.DateOnly)
	page = decode[pagination.Page[application.ApplicationDTO]](t,
		do(t, e, http.MethodGet, "/applications?startCreatedAt="+tomorrow, nil))
	assert.Zero(t, page.TotalCount)
}

// -------- collaborators --------

func TestAPI_LeadDuplicateDNI(t *testing.T) {
	e := newTestServer(t)
	seed(t, e)

	rec := do(t, e, http.MethodPost, "/leads", map[string]any{"name": "Someone Else", "dni": " 12345678A "})
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, decode[ErrorResponse](t, rec).Detail, "12345678A")
}

func TestAPI_Visits(t *testing.T) {
	e := newTestServer(t)
	f := seed(t, e)
	app := createApp(t, e, f)
	base := "/applications/" + app.ID + "/visits"

	rec := do(t, e, http.MethodPost, base, map[string]any{"scheduledAt": "2024-03-10T10:00:00Z"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	late := decode[visit.VisitDTO](t, rec)
	rec = do(t, e, http.MethodPost, base, map[string]any{"scheduledAt": "2024-03-05", "notes": "bring keys"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	early := decode[visit.VisitDTO](t, rec)
	assert.Equal(t, "Scheduled", early.Status)

	list := decode[[]visit.VisitDTO](t, do(t, e, http.MethodGet, base, nil))
	require.Len(t, list, 2)
	assert.Equal(t, early.ID, list[0].ID)
	assert.Equal(t, late.ID, list[1].ID)

	rec = do(t, e, http.MethodPost, base+"/"+early.ID+"/complete", map[string]any{"completedAt": "2024-03-05"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Completed", decode[visit.VisitDTO](t, rec).Status)

	rec = do(t, e, http.MethodPost, base+"/"+early.ID+"/cancel", map[string]any{"cancelledAt": "2024-03-06", "cancelledReason": "oops"})
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, e, http.MethodPost, base+"/"+late.ID+"/no-show", map[string]any{"markedAt": "2024-03-10"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// visit belongs to another application
	otherApp := createApp(t, e, f)
	rec = do(t, e, http.MethodPost, "/applications/"+otherApp.ID+"/visits/"+late.ID+"/complete", map[string]any{"completedAt": "2024-03-10"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// no visits on a closed application
	act(t, e, app.ID, "reject", map[string]any{"rejectedReason": "no", "rejectedAt": "2024-03-11"})
	rec = do(t, e, http.MethodPost, base, map[string]any{"scheduledAt": "2024-03-12"})
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, decode[ErrorResponse](t, rec).Detail, `"Rejected"`)
}

// -------- idempotency --------

func TestAPI_IdempotentReserveReplays(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	e := newTestServer(t, middleware.Idempotency(rdb, time.Minute, nil))
	app := createApp(t, e, seed(t, e))
	act(t, e, app.ID, "start-review", map[string]any{"reviewStartedAt": "2024-05-01"})
	act(t, e, app.ID, "approve", map[string]any{"approvedAt": "2024-05-02"})

	hdr := []string{
		middleware.HeaderIdempotencyKey, id.New(),
		middleware.HeaderRequestAt, strconv.FormatInt(time.Now().Unix(), 10),
	}
	body := map[string]any{"reservedAt": "2024-05-15", "reservedAmount": 2500.75}
	path := "/applications/" + app.ID + "/reserve"

	first := do(t, e, http.MethodPost, path, body, hdr...)
	require.Equal(t, http.StatusOK, first.Code, first.Body.String())

	// without the replay this would be a guard conflict (Reserved -> reserve)
	second := do(t, e, http.MethodPost, path, body, hdr...)
	require.Equal(t, http.StatusOK, second.Code, second.Body.String())
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, "true", second.Header().Get(middleware.HeaderReplayed))

	// same call without a key reaches the guard
	third := do(t, e, http.MethodPost, path, body)
	assert.Equal(t, http.StatusConflict, third.Code)
}

func TestAPI_ListPageNumberBounds(t *testing.T) {
	e := newTestServer(t)
	f := seed(t, e)
	for i := 0; i < 3; i++ {
		createApp(t, e, f)
	}

	rec := do(t, e, http.MethodGet, "/applications?pageNumber=9223372036854775807&pageSize=2", nil)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
	body := decode[ErrorResponse](t, rec)
	require.Len(t, body.Details, 1)
	assert.Equal(t, "pageNumber", body.Details[0].Path)

	// past the last page is an empty page, not a wrap-around
	rec = do(t, e, http.MethodGet, "/applications?pageNumber=3&pageSize=2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	page := decode[pagination.Page[application.ApplicationDTO]](t, rec)
	assert.Empty(t, page.Items)
	assert.EqualValues(t, 3, page.TotalCount)
	assert.Equal(t, 2, page.TotalPages)
}

func TestAPI_ReserveAmountAboveColumnRange(t *testing.T) {
	e := newTestServer(t)
	app := createApp(t, e, seed(t, e))
	act(t, e, app.ID, "start-review", map[string]any{"reviewStartedAt": "2024-05-01"})
	act(t, e, app.ID, "approve", map[string]any{"approvedAt": "2024-05-02"})

	rec := act(t, e, app.ID, "reserve", map[string]any{"reservedAt": "2024-05-15", "reservedAmount": 1e15})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
	assert.Equal(t, "reservedAmount", decode[ErrorResponse](t, rec).Details[0].Path)

	got := decode[application.ApplicationDTO](t, do(t, e, http.MethodGet, "/applications/"+app.ID, nil))
	assert.Equal(t, "Approved", got.Status)
}
