package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/CodyMacMLE/athletiq-backend-go/internal/config"
	"github.com/CodyMacMLE/athletiq-backend-go/internal/handler/http/response"
	sweepService "github.com/CodyMacMLE/athletiq-backend-go/internal/service/sweep"
)

// SweepHandler exposes the reconciliation sweeps for manual, org-scoped
// runs. The scheduler drives the same service across all organizations.
type SweepHandler interface {
	RunAbsences(w http.ResponseWriter, r *http.Request)
	RunAutoCheckouts(w http.ResponseWriter, r *http.Request)
}

type sweepHandlerImpl struct {
	sweepService *sweepService.SweepService
	cfg          config.SweepConfig
}

func NewSweepHandler(svc *sweepService.SweepService, cfg config.SweepConfig) SweepHandler {
	return &sweepHandlerImpl{
		sweepService: svc,
		cfg:          cfg,
	}
}

type sweepRequest struct {
	LookbackMinutes *int `json:"lookback_minutes,omitempty"`
}

var errInvalidLookback = errors.New("lookback_minutes must be positive")

// sweepLookback reads the optional lookback override from the request
// body. An empty body means the caller accepts the fallback.
func sweepLookback(r *http.Request, fallback time.Duration) (time.Duration, error) {
	var req sweepRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return fallback, nil
		}
		return 0, err
	}
	if req.LookbackMinutes == nil {
		return fallback, nil
	}
	if *req.LookbackMinutes <= 0 {
		return 0, errInvalidLookback
	}
	return time.Duration(*req.LookbackMinutes) * time.Minute, nil
}

// RunAbsences implements SweepHandler.
func (h *sweepHandlerImpl) RunAbsences(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Invalid access token")
		return
	}
	orgID := claims.OrgID

	// Without an override, manual runs use the catch-up lookback so an
	// admin can repair a scheduler outage without waiting for a restart.
	lookback, err := sweepLookback(r, h.cfg.AbsenceCatchupLookback)
	if err != nil {
		response.BadRequest(w, "Invalid lookback_minutes", nil)
		return
	}

	created, err := h.sweepService.SweepAbsences(r.Context(), lookback, &orgID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]int{"absences_recorded": created})
}

// RunAutoCheckouts implements SweepHandler.
func (h *sweepHandlerImpl) RunAutoCheckouts(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Invalid access token")
		return
	}
	orgID := claims.OrgID

	lookback, err := sweepLookback(r, h.cfg.AutoCheckoutLookback)
	if err != nil {
		response.BadRequest(w, "Invalid lookback_minutes", nil)
		return
	}

	closed, err := h.sweepService.SweepAutoCheckouts(r.Context(), lookback, &orgID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]int{"auto_checked_out": closed})
}
