package handler

import (
	"errors"
	"net/http"
	"parcels/internal/scheduler"

	"github.com/sirupsen/logrus"
)

const (
	rateRefreshStarted   = "Задача обновления курса доллара запущена."
	recalculationStarted = "Задача пересчета стоимости доставки запущена."
)

// TriggerRateRefresh godoc
// @Summary Refresh the USD rate now
// @Description Queues the rate refresh job and returns immediately
// @Tags Jobs
// @Produce json
// @Success 202 {object} MessageResponse
// @Failure 503 {object} errorResponse "scheduler is not running"
// @Router /jobs/rate-refresh [post]
func (h *Handler) TriggerRateRefresh(w http.ResponseWriter, _ *http.Request) {
	h.trigger(w, h.jobs.TriggerRateRefresh, rateRefreshStarted, "TriggerRateRefresh")
}

// TriggerRecalculation godoc
// @Summary Recalculate pending delivery costs now
// @Description Queues the bulk recalculation job and returns immediately
// @Tags Jobs
// @Produce json
// @Success 202 {object} MessageResponse
// @Failure 503 {object} errorResponse "scheduler is not running"
// @Router /jobs/recalculation [post]
func (h *Handler) TriggerRecalculation(w http.ResponseWriter, _ *http.Request) {
	h.trigger(w, h.jobs.TriggerRecalculation, recalculationStarted, "TriggerRecalculation")
}

func (h *Handler) trigger(w http.ResponseWriter, run func() error, message, handlerName string) {
	if err := run(); err != nil {
		if errors.Is(err, scheduler.ErrNotStarted) {
			writeError(w, http.StatusServiceUnavailable, err.Error())
			return
		}
		msg := "failed to start the job"
		logrus.WithError(err).WithFields(logrus.Fields{"handler": handlerName}).Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}
	writeJSON(w, http.StatusAccepted, MessageResponse{Message: message})
}
