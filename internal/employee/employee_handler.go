package employee

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"employee-management/internal/middleware"
	"employee-management/internal/shared/apperror"
	"employee-management/internal/shared/contextutil"
	"employee-management/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	rdb     *redis.Client
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	return NewHandlerWithRedis(service, nil, logger...)
}

// NewHandlerWithRedis enables storing Idempotency-Key results of Create.
func NewHandlerWithRedis(service Service, rdb *redis.Client, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("employee.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.handler")
	}
	return &Handler{service: service, rdb: rdb, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error, fallback string) {
	httpErr := apperror.ToHTTP(err, fallback)
	contextutil.GetLogger(c.Request.Context(), h.logger).Warn("employee request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
		zap.Error(err),
	)
	response.FromHTTPError(c, httpErr)
}

func (h *Handler) List(c *gin.Context) {
	params := ListParams{
		Search:     strings.TrimSpace(c.Query("search")),
		Department: strings.TrimSpace(c.Query("department")),
		Page:       atoiOr(c.Query("page"), DefaultPage),
		Limit:      atoiOr(c.Query("limit"), DefaultLimit),
	}

	page, err := h.service.List(c.Request.Context(), params)
	if err != nil {
		h.writeServiceError(c, err, "Error fetching employees")
		return
	}

	meta := response.NewPaginationMeta(page.Total, page.Page, page.Limit)
	response.Paginated(c, http.StatusOK, page.Items, meta)
}

func (h *Handler) GetByID(c *gin.Context) {
	id := c.GetUint64(ctxEmployeeID)

	resp, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.writeServiceError(c, err, "Error fetching employee")
		return
	}

	response.Success(c, http.StatusOK, resp, "")
}

func (h *Handler) Create(c *gin.Context) {
	req, ok := payloadFrom(c)
	if !ok {
		response.Error(c, http.StatusInternalServerError, "Error creating employee", "employee payload missing")
		return
	}

	resp, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err, "Error creating employee")
		return
	}

	body := response.ApiEnvelope{
		Success: true,
		Message: "Employee created successfully",
		Data:    resp,
	}
	middleware.StoreIdempotentResponse(c, h.rdb, http.StatusCreated, body)
	c.JSON(http.StatusCreated, body)
}

func (h *Handler) Update(c *gin.Context) {
	id := c.GetUint64(ctxEmployeeID)
	req, ok := payloadFrom(c)
	if !ok {
		response.Error(c, http.StatusInternalServerError, "Error updating employee", "employee payload missing")
		return
	}

	resp, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.writeServiceError(c, err, "Error updating employee")
		return
	}

	response.Success(c, http.StatusOK, resp, "Employee updated successfully")
}

func (h *Handler) Delete(c *gin.Context) {
	id := c.GetUint64(ctxEmployeeID)

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.writeServiceError(c, err, "Error deleting employee")
		return
	}

	response.Success(c, http.StatusOK, nil, "Employee deleted successfully")
}

func (h *Handler) Search(c *gin.Context) {
	var term string
	if v, ok := c.Get(ctxSearchPayload); ok {
		if req, ok := v.(SearchRequest); ok {
			term = req.Term()
		}
	}

	resp, err := h.service.Search(c.Request.Context(), term)
	if err != nil {
		h.writeServiceError(c, err, "Error searching employees")
		return
	}

	response.Success(c, http.StatusOK, resp, fmt.Sprintf("Found %d employee(s) matching \"%s\"", len(resp), term))
}

func (h *Handler) Stats(c *gin.Context) {
	resp, err := h.service.GetStats(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err, "Error fetching statistics")
		return
	}

	response.Success(c, http.StatusOK, resp, "")
}

// Departments lists the suggested department names.
func (h *Handler) Departments(c *gin.Context) {
	response.Success(c, http.StatusOK, Departments, "")
}

func payloadFrom(c *gin.Context) (EmployeeRequest, bool) {
	v, ok := c.Get(ctxEmployeePayload)
	if !ok {
		return EmployeeRequest{}, false
	}
	req, ok := v.(EmployeeRequest)
	return req, ok
}

// atoiOr parses s, falling back to def for empty, malformed or non-positive
// values.
func atoiOr(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return def
	}
	return n
}
