package httpapi

import (
	"errors"
	"net/http"

	"github.com/emstack/ems-console/internal/emsapi"
	"github.com/emstack/ems-console/pkg/querycache"
)

// WriteFailure maps a service-layer failure onto the response. Upstream
// statuses pass through as-is; an unreachable upstream becomes a 502 so the
// client can tell a gateway problem from its own bad request.
func WriteFailure(w http.ResponseWriter, err error) error {
	if errors.Is(err, querycache.ErrMutationInFlight) {
		return WriteError(w, http.StatusConflict, "MUTATION_IN_FLIGHT",
			"this action is already being processed", nil)
	}
	var apiErr *emsapi.APIError
	if errors.As(err, &apiErr) {
		status := apiErr.Status
		if status < 400 || status > 599 {
			status = http.StatusBadGateway
		}
		return WriteError(w, status, "UPSTREAM_ERROR", apiErr.Message, nil)
	}
	return WriteError(w, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR",
		"internal error", nil)
}
