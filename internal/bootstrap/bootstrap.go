// Package bootstrap performs the one-shot pull of authoritative state
// at startup. Each collection is best-effort and independent: a failed
// or empty pull leaves the local copy untouched, and nothing is retried.
package bootstrap

import (
	"context"

	"github.com/rs/zerolog"

	"jiscare/internal/metrics"
	"jiscare/internal/models"
	"jiscare/internal/store"
)

// Source is the slice of the workflow client the bootstrap needs.
type Source interface {
	GetEmployees(ctx context.Context) ([]models.Employee, error)
	GetShifts(ctx context.Context) ([]models.Shift, error)
	GetDayOffs(ctx context.Context) ([]models.DayOffRequest, error)
}

// Results reports which collections were overwritten.
type Results struct {
	Employees bool
	Shifts    bool
	DayOffs   bool
}

// Run pulls employees, shifts and day-offs and overwrites the local
// collections that came back non-empty.
func Run(ctx context.Context, src Source, st *store.Store, logger *zerolog.Logger) Results {
	var res Results

	if employees, err := src.GetEmployees(ctx); err != nil {
		metrics.IncBootstrapSync("employees", "failure")
		logger.Info().Err(err).Msg("employee pull skipped, keeping local cache")
	} else if len(employees) > 0 {
		if err := st.ReplaceEmployees(employees); err != nil {
			logger.Warn().Err(err).Msg("pulled employees not persisted")
		}
		metrics.IncBootstrapSync("employees", "success")
		res.Employees = true
	} else {
		metrics.IncBootstrapSync("employees", "empty")
	}

	if shifts, err := src.GetShifts(ctx); err != nil {
		metrics.IncBootstrapSync("shifts", "failure")
		logger.Info().Err(err).Msg("shift pull skipped, keeping local cache")
	} else if len(shifts) > 0 {
		if err := st.ReplaceShifts(shifts); err != nil {
			logger.Warn().Err(err).Msg("pulled shifts not persisted")
		}
		metrics.IncBootstrapSync("shifts", "success")
		res.Shifts = true
	} else {
		metrics.IncBootstrapSync("shifts", "empty")
	}

	if dayoffs, err := src.GetDayOffs(ctx); err != nil {
		metrics.IncBootstrapSync("dayoffs", "failure")
		logger.Info().Err(err).Msg("day-off pull skipped, keeping local cache")
	} else if len(dayoffs) > 0 {
		if err := st.ReplaceDayOffs(dayoffs); err != nil {
			logger.Warn().Err(err).Msg("pulled day-offs not persisted")
		}
		metrics.IncBootstrapSync("dayoffs", "success")
		res.DayOffs = true
	} else {
		metrics.IncBootstrapSync("dayoffs", "empty")
	}

	return res
}
