package app_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"employee-management/internal/app"
	"employee-management/internal/employee"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&employee.Employee{}))

	return app.NewRouter(app.RouterDeps{
		DB:       db,
		Registry: prometheus.NewRegistry(),
		Logger:   zap.NewNop(),
		Clock:    func() time.Time { return time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC) },
	})
}

func call(t *testing.T, r http.Handler, method, path, body string) (int, map[string]any) {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var out map[string]any
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	}
	return w.Code, out
}

func employeeJSON(first, email, department string) string {
	return fmt.Sprintf(`{"first_name":%q,"last_name":"Tester","email":%q,"position":"Analyst","department":%q,"salary":50000,"hire_date":"2024-01-15"}`,
		first, email, department)
}

func TestEmployeeLifecycle(t *testing.T) {
	r := setupRouter(t)

	code, body := call(t, r, http.MethodPost, "/api/employees", employeeJSON("Ada", "Ada.L@Gmail.com", "Engineering"))
	require.Equal(t, http.StatusCreated, code, body)
	created := body["data"].(map[string]any)
	assert.Equal(t, "adal@gmail.com", created["email"])
	assert.Equal(t, "2024-01-15", created["hire_date"])
	assert.Nil(t, created["phone"])
	id := int(created["id"].(float64))

	code, body = call(t, r, http.MethodPost, "/api/employees", employeeJSON("Other", "a.d.a.l+x@googlemail.com", "Sales"))
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "Email already exists", body["message"])

	code, body = call(t, r, http.MethodGet, fmt.Sprintf("/api/employees/%d", id), "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Ada", body["data"].(map[string]any)["first_name"])

	code, body = call(t, r, http.MethodPut, fmt.Sprintf("/api/employees/%d", id), employeeJSON("Grace", "grace@example.com", "Operations"))
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, "Grace", body["data"].(map[string]any)["first_name"])

	code, _ = call(t, r, http.MethodPut, "/api/employees/9999", employeeJSON("Nobody", "nobody@example.com", "Sales"))
	assert.Equal(t, http.StatusNotFound, code)

	code, body = call(t, r, http.MethodGet, "/api/employees/stats", "")
	require.Equal(t, http.StatusOK, code)
	stats := body["data"].(map[string]any)
	assert.Equal(t, float64(1), stats["total"])
	assert.Equal(t, float64(50000), stats["averageSalary"])

	code, _ = call(t, r, http.MethodDelete, fmt.Sprintf("/api/employees/%d", id), "")
	assert.Equal(t, http.StatusOK, code)

	code, body = call(t, r, http.MethodGet, fmt.Sprintf("/api/employees/%d", id), "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Employee not found", body["message"])

	code, _ = call(t, r, http.MethodDelete, fmt.Sprintf("/api/employees/%d", id), "")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestPaginationAndSearch(t *testing.T) {
	r := setupRouter(t)

	for i := 0; i < 15; i++ {
		dept := "Sales"
		if i%3 == 0 {
			dept = "Engineering"
		}
		code, body := call(t, r, http.MethodPost, "/api/employees",
			employeeJSON("Person", fmt.Sprintf("person%d@example.com", i), dept))
		require.Equal(t, http.StatusCreated, code, body)
	}

	code, body := call(t, r, http.MethodGet, "/api/employees?page=1&limit=10", "")
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["data"], 10)
	assert.Equal(t, map[string]any{
		"currentPage": float64(1), "totalPages": float64(2), "totalEmployees": float64(15),
		"hasNext": true, "hasPrev": false,
	}, body["pagination"])

	code, body = call(t, r, http.MethodGet, "/api/employees?page=2&limit=10", "")
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["data"], 5)
	assert.Equal(t, false, body["pagination"].(map[string]any)["hasNext"])

	code, body = call(t, r, http.MethodGet, "/api/employees?page=3", "")
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, body["data"])

	code, body = call(t, r, http.MethodGet, "/api/employees?department=Engineering", "")
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["data"], 5)

	code, body = call(t, r, http.MethodPost, "/api/employees/search", `{"searchTerm":"eng"}`)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["data"], 5)
	assert.Equal(t, `Found 5 employee(s) matching "eng"`, body["message"])
}

func TestValidationEnvelope(t *testing.T) {
	r := setupRouter(t)

	code, body := call(t, r, http.MethodPost, "/api/employees",
		`{"first_name":"Ada","last_name":"Tester","email":"ada@example.com","position":"Engineer","department":"Engineering","hire_date":"2024-06-16"}`)

	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Validation failed", body["message"])
	assert.Equal(t, []any{map[string]any{"field": "hire_date", "message": "Hire date cannot be in the future"}}, body["errors"])
}

func TestMistypedSalaryIsReportedWithOtherFields(t *testing.T) {
	r := setupRouter(t)

	code, body := call(t, r, http.MethodPost, "/api/employees",
		`{"first_name":"A","last_name":"Tester","email":"nope","position":"Engineer","department":"Engineering","salary":"abc","hire_date":"2024-01-10"}`)

	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, []any{
		map[string]any{"field": "first_name", "message": "First name must be between 2 and 50 characters"},
		map[string]any{"field": "email", "message": "Please provide a valid email address"},
		map[string]any{"field": "salary", "message": "Salary must be a positive number"},
	}, body["errors"])
}

func TestHugePageIsEmpty(t *testing.T) {
	r := setupRouter(t)

	code, body := call(t, r, http.MethodPost, "/api/employees", employeeJSON("Ada", "ada@example.com", "Engineering"))
	require.Equal(t, http.StatusCreated, code, body)

	code, body = call(t, r, http.MethodGet, "/api/employees?page=922337203685477582&limit=10", "")
	require.Equal(t, http.StatusOK, code, body)
	assert.Empty(t, body["data"])
	pagination := body["pagination"].(map[string]any)
	assert.Equal(t, false, pagination["hasNext"])
	assert.Equal(t, true, pagination["hasPrev"])
}

func TestOperationalEndpoints(t *testing.T) {
	r := setupRouter(t)

	code, body := call(t, r, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Employee Management API", body["message"])

	code, body = call(t, r, http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, map[string]any{"database": "ok"}, body["data"])

	code, body = call(t, r, http.MethodGet, "/api/departments", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Len(t, body["data"], len(employee.Departments))

	code, _ = call(t, r, http.MethodGet, "/api/nowhere", "")
	assert.Equal(t, http.StatusNotFound, code)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `employees_http_requests_total{method="GET",path="/api/health",status="200"} 1`)
	assert.Contains(t, w.Body.String(), `employees_mutations_total{operation="create",result="success"} 0`)
}
