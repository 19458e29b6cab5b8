package handler

import (
	"encoding/json"
	"net/http"

	"github.com/daylightco/finops-reporter/internal/domain"
	"github.com/daylightco/finops-reporter/internal/usecases/reporting"
	"github.com/daylightco/finops-reporter/pkg/apiErrors"
	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// RunReport triggers a report pipeline manually.
func RunReport(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunReport")

		kind := httprouter.ParamsFromContext(r.Context()).ByName("kind")
		if kind == "" {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "report kind not specified", nil)
			return
		}

		if err := service.Run(r.Context(), domain.ReportKind(kind)); err != nil {
			logrus.WithFields(logrus.Fields{
				"report": kind,
				"error":  err.Error(),
			}).Error("manual report run failed")
			writeRunError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		response := map[string]any{
			"message": "report run completed",
			"kind":    kind,
		}
		json.NewEncoder(w).Encode(response)
	}
}

// GetReportStatus returns the run state of every report pipeline.
func GetReportStatus(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetReportStatus")

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(service.Status())
	}
}

func writeRunError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, reporting.ErrUnknownReportKind):
		apiErrors.WriteError(w, apiErrors.ErrUnknownReport, err.Error(), nil)
	case errors.Is(err, reporting.ErrAlreadyRunning):
		apiErrors.WriteError(w, apiErrors.ErrReportConflict, err.Error(), nil)
	default:
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, err.Error(), nil)
	}
}
