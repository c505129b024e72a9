package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/anjiri1684/tutor_orm/client"
	"github.com/anjiri1684/tutor_orm/middleware"
	"github.com/anjiri1684/tutor_orm/query"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const secret = "handler-secret"

type env struct {
	app   *fiber.App
	mock  sqlmock.Sqlmock
	org   uuid.UUID
	token string
}

func newEnv(t *testing.T) *env {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	orm, err := client.New(db)
	require.NoError(t, err)

	org := uuid.New()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret!"), bcrypt.MinCost)
	require.NoError(t, err)
	h := New(orm, &Auth{Secret: secret, TTL: time.Hour, Email: "admin@school.test", PasswordHash: hash, OrgID: org})

	app := fiber.New(fiber.Config{StrictRouting: true, CaseSensitive: true})
	app.Get("/health", h.Health)
	api := app.Group("/api/v1")
	api.Post("/auth/login", h.Login)
	protected := api.Group("", middleware.Protected(secret))
	protected.Post("/invoices/:id/document", h.RenderInvoice)
	protected.Post("/enrollments/:id/status", h.ChangeStatus)
	h.MountModels(protected)

	token, err := middleware.IssueToken(secret, "admin@school.test", org, middleware.RoleAdmin, time.Hour)
	require.NoError(t, err)
	return &env{app: app, mock: mock, org: org, token: token}
}

func (e *env) do(t *testing.T, method, path string, body interface{}) (int, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if e.token != "" {
		req.Header.Set("Authorization", "Bearer "+e.token)
	}
	resp, err := e.app.Test(req, 5000)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]interface{}{}
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &out))
	}
	return resp.StatusCode, out
}

func TestLogin(t *testing.T) {
	e := newEnv(t)
	e.token = ""

	code, body := e.do(t, fiber.MethodPost, "/api/v1/auth/login", LoginRequest{Email: "Admin@School.test", Password: "s3cret!"})
	require.Equal(t, fiber.StatusOK, code)
	claims, err := middleware.ParseToken(secret, body["token"].(string))
	require.NoError(t, err)
	assert.Equal(t, e.org.String(), claims["org_id"])

	code, _ = e.do(t, fiber.MethodPost, "/api/v1/auth/login", LoginRequest{Email: "admin@school.test", Password: "nope"})
	assert.Equal(t, fiber.StatusUnauthorized, code)

	code, _ = e.do(t, fiber.MethodPost, "/api/v1/auth/login", LoginRequest{Email: "not-an-email"})
	assert.Equal(t, fiber.StatusBadRequest, code)
}

func TestNewAuthHashesPlainPassword(t *testing.T) {
	a, err := NewAuth(secret, time.Hour, "Admin@School.test", "plain", uuid.New())
	require.NoError(t, err)
	assert.Equal(t, "admin@school.test", a.Email)
	assert.NoError(t, bcrypt.CompareHashAndPassword(a.PasswordHash, []byte("plain")))

	hash, err := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	require.NoError(t, err)
	b, err := NewAuth(secret, time.Hour, "a@b.test", string(hash), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, hash, b.PasswordHash)
}

func TestDataRoutesRequireToken(t *testing.T) {
	e := newEnv(t)
	e.token = ""
	code, _ := e.do(t, fiber.MethodPost, "/api/v1/students/query", nil)
	assert.Equal(t, fiber.StatusBadRequest, code)
}

func TestGetByID(t *testing.T) {
	e := newEnv(t)
	id := uuid.New()
	e.mock.ExpectQuery(`SELECT \* FROM "students" WHERE .*"students"."org_id" = `).
		WillReturnRows(sqlmock.NewRows([]string{"id", "org_id", "first_name", "last_name"}).
			AddRow(id.String(), e.org.String(), "Ada", "Lovelace"))

	code, body := e.do(t, fiber.MethodGet, "/api/v1/students/"+id.String(), nil)
	require.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, "Ada", body["firstName"])
	assert.Equal(t, id.String(), body["id"])
	assert.NoError(t, e.mock.ExpectationsWereMet())
}

func TestGetByIDNotFound(t *testing.T) {
	e := newEnv(t)
	e.mock.ExpectQuery(`SELECT \* FROM "rooms"`).WillReturnRows(sqlmock.NewRows([]string{"id"}))

	code, body := e.do(t, fiber.MethodGet, "/api/v1/rooms/"+uuid.NewString(), nil)
	assert.Equal(t, fiber.StatusNotFound, code)
	assert.Equal(t, client.CodeRecordNotFound, body["code"])
}

func TestGetByIDRejectsBadID(t *testing.T) {
	e := newEnv(t)
	code, _ := e.do(t, fiber.MethodGet, "/api/v1/teachers/42", nil)
	assert.Equal(t, fiber.StatusBadRequest, code)
}

func TestQuery(t *testing.T) {
	e := newEnv(t)
	e.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "courses" WHERE "courses"."org_id" = $1 AND "courses"."level" = $2`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow(uuid.NewString(), "Conversation").
			AddRow(uuid.NewString(), "Grammar"))

	code, body := e.do(t, fiber.MethodPost, "/api/v1/courses/query", map[string]interface{}{
		"where": map[string]interface{}{"level": map[string]interface{}{"equals": "INTERMEDIATE"}},
		"take":  2,
	})
	require.Equal(t, fiber.StatusOK, code)
	assert.EqualValues(t, 2, body["count"])
	assert.NoError(t, e.mock.ExpectationsWereMet())
}

func TestQueryMalformedBody(t *testing.T) {
	e := newEnv(t)
	for _, ct := range []string{"application/json", ""} {
		req := httptest.NewRequest(fiber.MethodPost, "/api/v1/courses/query", bytes.NewReader([]byte(`{"where":`)))
		req.Header.Set("Authorization", "Bearer "+e.token)
		if ct != "" {
			req.Header.Set("Content-Type", ct)
		}
		resp, err := e.app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, ct)
	}
}

func TestCount(t *testing.T) {
	e := newEnv(t)
	e.mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "invoices"`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(7)))

	code, body := e.do(t, fiber.MethodPost, "/api/v1/invoices/count", map[string]interface{}{
		"where": map[string]interface{}{"isPaid": map[string]interface{}{"equals": false}},
	})
	require.Equal(t, fiber.StatusOK, code)
	assert.EqualValues(t, 7, body["count"])
}

func TestCreateValidatesBody(t *testing.T) {
	e := newEnv(t)
	code, body := e.do(t, fiber.MethodPost, "/api/v1/students", map[string]interface{}{"firstName": "Ada"})
	assert.Equal(t, fiber.StatusBadRequest, code)
	assert.Contains(t, body["error"], "LastName")
}

func TestCreateAppliesDefaultsUnlessGiven(t *testing.T) {
	anyArg := sqlmock.AnyArg()
	cases := []struct {
		name     string
		body     map[string]interface{}
		duration int
		active   bool
	}{
		{"omitted", map[string]interface{}{"name": "Algebra"}, 60, true},
		{"explicit zero", map[string]interface{}{"name": "Algebra", "durationMinutes": 0, "isActive": false}, 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := newEnv(t)
			e.mock.ExpectQuery(`INSERT INTO "courses"`).
				WithArgs(e.org, "Algebra", anyArg, anyArg, anyArg, anyArg, tc.duration, anyArg, anyArg, tc.active, false, false, anyArg, anyArg).
				WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.NewString()))

			code, body := e.do(t, fiber.MethodPost, "/api/v1/courses", tc.body)
			require.Equal(t, fiber.StatusCreated, code, body)
			assert.EqualValues(t, tc.duration, body["durationMinutes"])
			assert.Equal(t, tc.active, body["isActive"])
			assert.NoError(t, e.mock.ExpectationsWereMet())
		})
	}
}

func TestCreateConflict(t *testing.T) {
	e := newEnv(t)
	e.mock.ExpectQuery(`INSERT INTO "students"`).
		WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key", ConstraintName: "idx_students_email_org"})

	code, body := e.do(t, fiber.MethodPost, "/api/v1/students", map[string]interface{}{
		"firstName": "Ada", "lastName": "Lovelace", "email": "ada@home.test",
	})
	assert.Equal(t, fiber.StatusConflict, code)
	assert.Equal(t, client.CodeUniqueViolation, body["code"])
}

func TestUpdateMany(t *testing.T) {
	e := newEnv(t)
	e.mock.ExpectExec(regexp.QuoteMeta(`UPDATE "rooms" SET "is_active"=$1,"updated_at"=$2 WHERE "rooms"."org_id" = $3 AND "rooms"."capacity" < $4`)).
		WillReturnResult(sqlmock.NewResult(0, 3))

	code, body := e.do(t, fiber.MethodPatch, "/api/v1/rooms", map[string]interface{}{
		"where": map[string]interface{}{"capacity": map[string]interface{}{"lt": 2}},
		"data":  map[string]interface{}{"isActive": false},
	})
	require.Equal(t, fiber.StatusOK, code)
	assert.EqualValues(t, 3, body["count"])
	assert.NoError(t, e.mock.ExpectationsWereMet())
}

func TestUpdateRejectsUnknownField(t *testing.T) {
	e := newEnv(t)
	code, _ := e.do(t, fiber.MethodPatch, "/api/v1/rooms/"+uuid.NewString(), map[string]interface{}{"colour": "red"})
	assert.Equal(t, fiber.StatusBadRequest, code)
}

func TestRenderInvoiceNotConfigured(t *testing.T) {
	e := newEnv(t)
	code, _ := e.do(t, fiber.MethodPost, "/api/v1/invoices/"+uuid.NewString()+"/document", nil)
	assert.Equal(t, fiber.StatusServiceUnavailable, code)
}

func TestChangeStatusRequiresStatus(t *testing.T) {
	e := newEnv(t)
	code, _ := e.do(t, fiber.MethodPost, "/api/v1/enrollments/"+uuid.NewString()+"/status", map[string]interface{}{"note": "x"})
	assert.Equal(t, fiber.StatusBadRequest, code)
}

func TestHealth(t *testing.T) {
	e := newEnv(t)
	code, body := e.do(t, fiber.MethodGet, "/health", nil)
	assert.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, "ok", body["status"])
}

func TestFailMapping(t *testing.T) {
	app := fiber.New()
	errs := map[string]error{
		"/validation": &query.ValidationError{Model: "Room", Reason: "bad"},
		"/missing":    &client.KnownRequestError{Code: client.CodeRecordNotFound, Message: "gone"},
		"/fk":         &client.KnownRequestError{Code: client.CodeForeignKey, Message: "fk"},
		"/long":       &client.KnownRequestError{Code: client.CodeValueTooLong, Message: "long"},
		"/fiber":      fiber.NewError(fiber.StatusTeapot, "tea"),
		"/other":      errors.New("boom"),
	}
	for path, err := range errs {
		err := err
		app.Get(path, func(c *fiber.Ctx) error { return fail(c, err) })
	}
	want := map[string]int{
		"/validation": fiber.StatusBadRequest,
		"/missing":    fiber.StatusNotFound,
		"/fk":         fiber.StatusConflict,
		"/long":       fiber.StatusBadRequest,
		"/fiber":      fiber.StatusTeapot,
		"/other":      fiber.StatusInternalServerError,
	}
	for path, status := range want {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, path, nil))
		require.NoError(t, err)
		assert.Equal(t, status, resp.StatusCode, path)
	}
}
