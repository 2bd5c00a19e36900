package workflow

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jiscare/internal/models"
)

func TestCheckSchedule(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/schedule-check", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

		var req ScheduleCheckRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "EMP-001", req.EmployeeID)
		require.NotNil(t, req.RoomID)
		assert.Equal(t, "ROOM-01", *req.RoomID)

		json.NewEncoder(w).Encode(models.CheckResult{
			Success: true,
			Status:  models.CheckClear,
			Message: "Schedule looks clear!",
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	room := "ROOM-01"
	res, err := c.CheckSchedule(context.Background(), ScheduleCheckRequest{
		EmployeeID: "EMP-001", Date: "2026-03-02", ShiftType: models.ShiftMorning, RoomID: &room,
	})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, models.CheckClear, res.Status)
}

func TestPost_ErrorSurfacesMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"message": "employee not found"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	err := c.CreateShift(context.Background(), models.Shift{EmployeeID: "EMP-404", Date: "2026-03-02"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "employee not found")
}

func TestPost_ErrorWithoutBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	err := c.DeleteShift(context.Background(), "EMP-001", "2026-03-02")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "http 502")
}

func TestPost_NetworkFailure(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", 200*time.Millisecond)
	_, err := c.GetShifts(context.Background())
	assert.Error(t, err)
}

func TestGetEmployees_RedisCache(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, "/get-employees", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"data": []models.Employee{{ID: "EMP-001", Name: "Maria Santos"}},
		})
	}))
	defer srv.Close()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	c := NewClient(srv.URL, time.Second)
	c.UseRedisCache(rdb, time.Minute)
	ctx := context.Background()

	first, err := c.GetEmployees(ctx)
	require.NoError(t, err)
	require.Len(t, first, 1)

	second, err := c.GetEmployees(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// Second read is served from the cache.
	assert.Equal(t, int32(1), hits.Load())
}

func TestGetDayOffs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/get-dayoffs", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"data": []models.DayOffRequest{{ID: "DO-001", EmployeeID: "EMP-001", Status: models.StatusPending}},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	got, err := c.GetDayOffs(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "DO-001", got[0].ID)
}

func TestSendScheduleEmail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/send-schedule-email", r.URL.Path)
		var req ScheduleEmailRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "maria@jiscare.com", req.EmployeeEmail)
		assert.Len(t, req.Shifts, 7)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	rows := make([]EmailShiftRow, 7)
	err := c.SendScheduleEmail(context.Background(), ScheduleEmailRequest{
		EmployeeID:    "EMP-001",
		EmployeeEmail: "maria@jiscare.com",
		Shifts:        rows,
	})
	assert.NoError(t, err)
}
