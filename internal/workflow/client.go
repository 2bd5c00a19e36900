// Package workflow is the HTTP client for the n8n-style webhook service
// that owns validation and the authoritative copy of every collection.
// Every endpoint is a POST with a JSON body; a non-2xx response or a
// transport failure surfaces as an error and the caller falls back to
// local behavior.
package workflow

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"jiscare/internal/models"
)

// Webhook paths under the base URL.
const (
	pathScheduleCheck  = "schedule-check"
	pathDayOffSubmit   = "dayoff-submit"
	pathCreateShift    = "create-shift"
	pathGetShifts      = "get-shifts"
	pathDeleteShift    = "delete-shift"
	pathCreateEmployee = "create-employee"
	pathGetEmployees   = "get-employees"
	pathDeleteEmployee = "delete-employee"
	pathGetDayOffs     = "get-dayoffs"
	pathUpdateDayOff   = "update-dayoff"
	pathGetAuth        = "get-auth"
	pathSendEmail      = "send-schedule-email"
)

// Client calls the workflow webhooks.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter

	redis    *redis.Client
	cacheTTL time.Duration
}

// NewClient constructs a client for the webhook base URL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		// Reconciler retries must not hammer the webhook host.
		limiter: rate.NewLimiter(rate.Limit(5), 10),
	}
}

// UseRedisCache configures optional Redis caching for the read endpoints.
func (c *Client) UseRedisCache(redisClient *redis.Client, ttl time.Duration) {
	c.redis = redisClient
	c.cacheTTL = ttl
}

// apiError is the error body shape the workflow service returns.
type apiError struct {
	Message string `json:"message"`
}

// listResponse wraps collection reads.
type listResponse[T any] struct {
	Data []T `json:"data"`
}

// CheckSchedule asks the validator for a verdict on a candidate shift.
func (c *Client) CheckSchedule(ctx context.Context, req ScheduleCheckRequest) (*models.CheckResult, error) {
	var res models.CheckResult
	if err := c.post(ctx, pathScheduleCheck, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// SubmitDayOff sends a day-off request for validation and approval.
func (c *Client) SubmitDayOff(ctx context.Context, req DayOffSubmitRequest) (*models.CheckResult, error) {
	var res models.CheckResult
	if err := c.post(ctx, pathDayOffSubmit, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// CreateShift pushes a shift upsert to the service.
func (c *Client) CreateShift(ctx context.Context, shift models.Shift) error {
	return c.post(ctx, pathCreateShift, shift, nil)
}

// DeleteShift removes a shift remotely by its compound key.
func (c *Client) DeleteShift(ctx context.Context, employeeID, date string) error {
	body := map[string]string{"employee_id": employeeID, "date": date}
	return c.post(ctx, pathDeleteShift, body, nil)
}

// GetShifts pulls the authoritative shift collection.
func (c *Client) GetShifts(ctx context.Context) ([]models.Shift, error) {
	return fetchList[models.Shift](ctx, c, pathGetShifts, "shifts")
}

// CreateEmployee pushes an employee upsert to the service.
func (c *Client) CreateEmployee(ctx context.Context, emp models.Employee) error {
	return c.post(ctx, pathCreateEmployee, emp, nil)
}

// DeleteEmployee removes an employee remotely.
func (c *Client) DeleteEmployee(ctx context.Context, id string) error {
	body := map[string]string{"employee_id": id}
	return c.post(ctx, pathDeleteEmployee, body, nil)
}

// GetEmployees pulls the authoritative employee collection.
func (c *Client) GetEmployees(ctx context.Context) ([]models.Employee, error) {
	return fetchList[models.Employee](ctx, c, pathGetEmployees, "employees")
}

// GetDayOffs pulls the authoritative day-off collection.
func (c *Client) GetDayOffs(ctx context.Context) ([]models.DayOffRequest, error) {
	return fetchList[models.DayOffRequest](ctx, c, pathGetDayOffs, "dayoffs")
}

// UpdateDayOff pushes a status decision for a request.
func (c *Client) UpdateDayOff(ctx context.Context, id, status, managerNote string) error {
	body := map[string]string{"id": id, "status": status, "manager_note": managerNote}
	return c.post(ctx, pathUpdateDayOff, body, nil)
}

// GetAuth pulls the authoritative credential collection.
func (c *Client) GetAuth(ctx context.Context) ([]models.AuthCredential, error) {
	return fetchList[models.AuthCredential](ctx, c, pathGetAuth, "auth")
}

// SendScheduleEmail asks the service to mail a weekly schedule summary.
func (c *Client) SendScheduleEmail(ctx context.Context, req ScheduleEmailRequest) error {
	return c.post(ctx, pathSendEmail, req, nil)
}

// fetchList reads a collection endpoint through the optional Redis cache.
func fetchList[T any](ctx context.Context, c *Client, path, cacheKey string) ([]T, error) {
	var wrap listResponse[T]
	if c.readCache(ctx, cacheKey, &wrap) {
		return wrap.Data, nil
	}
	if err := c.post(ctx, path, struct{}{}, &wrap); err != nil {
		return nil, err
	}
	c.writeCache(ctx, cacheKey, wrap)
	return wrap.Data, nil
}

func (c *Client) readCache(ctx context.Context, key string, out any) bool {
	if c.redis == nil || c.cacheTTL <= 0 {
		return false
	}
	val, err := c.redis.Get(ctx, "workflow:"+key).Result()
	if err != nil {
		return false
	}
	return json.Unmarshal([]byte(val), out) == nil
}

func (c *Client) writeCache(ctx context.Context, key string, val any) {
	if c.redis == nil || c.cacheTTL <= 0 {
		return
	}
	data, err := json.Marshal(val)
	if err != nil {
		return
	}
	_ = c.redis.Set(ctx, "workflow:"+key, data, c.cacheTTL).Err()
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	endpoint := fmt.Sprintf("%s/%s", c.baseURL, path)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(string(data)))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		var apiErr apiError
		if json.NewDecoder(resp.Body).Decode(&apiErr) == nil && apiErr.Message != "" {
			return fmt.Errorf("%s: %s", path, apiErr.Message)
		}
		return fmt.Errorf("%s: http %d", path, resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
