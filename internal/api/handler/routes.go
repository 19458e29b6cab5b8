package handler

import (
	"net/http"

	"github.com/daylightco/finops-reporter/internal/api/handler/router"
	"github.com/daylightco/finops-reporter/internal/usecases/reporting"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Reports(service reporting.Reporter) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/reports/status",
			Method:  http.MethodGet,
			Handler: GetReportStatus(service),
		},
		{
			Path:    "/v1/reports/:kind/run",
			Method:  http.MethodPost,
			Handler: RunReport(service),
		},
	}
}
