// Package locator runs locate requests: it resolves call numbers, records
// search statistics and metrics, and maps resolution errors to HTTP codes.
package locator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"locationservice/internal/db"
	"locationservice/internal/metrics"
	"locationservice/internal/models"
	"locationservice/internal/resolver"
)

// Resolver resolves a call number within an owner, looking first among the
// locations carrying collectionCode when it is not empty.
type Resolver interface {
	ResolveInCollection(ctx context.Context, callNumber, owner, collectionCode string) (resolver.Result, error)
}

// LocationStore loads a location by ID.
type LocationStore interface {
	GetLocationByID(ctx context.Context, id uuid.UUID, owner string) (*models.Location, error)
}

// Recorder queues search events.
type Recorder interface {
	Record(e models.SearchEvent) bool
}

// Request is one validated locate request.
type Request struct {
	CallNo     string
	Owner      string
	Collection string
	Lang       string
	Available  bool
	ID         *uuid.UUID
	IP         string
}

// Service runs locate requests.
type Service struct {
	resolver Resolver
	store    LocationStore
	recorder Recorder
	timeout  time.Duration
}

// New creates a service. store and recorder may be nil.
func New(r Resolver, store LocationStore, recorder Recorder, timeout time.Duration) *Service {
	return &Service{resolver: r, store: store, recorder: recorder, timeout: timeout}
}

// Locate resolves req.CallNo and builds the response. Items that are not on
// the shelf are reported as not available without resolving.
func (s *Service) Locate(ctx context.Context, req Request) (*models.LocateResponse, error) {
	start := time.Now()
	resp := &models.LocateResponse{
		CallNo:     req.CallNo,
		Owner:      req.Owner,
		Collection: req.Collection,
		Lang:       req.Lang,
		Available:  req.Available,
	}

	if !req.Available {
		resp.Outcome = models.OutcomeNotAvailable
		s.record(req, resp.Outcome, "", start)
		return resp, nil
	}

	if req.ID != nil && s.store != nil {
		loc, err := s.store.GetLocationByID(ctx, *req.ID, req.Owner)
		switch {
		case err == nil:
			resp.Outcome = models.OutcomeResolved
			resp.Location = loc
			metrics.RecordResolution(resp.Outcome, loc.Tier, 1)
			s.record(req, resp.Outcome, loc.Tier, start)
			return resp, nil
		case errors.Is(err, db.ErrLocationNotFound):
			// Stale or foreign id; resolve the call number instead.
		default:
			s.record(req, models.OutcomeError, "", start)
			return nil, fmt.Errorf("%w: load location %s: %w", resolver.ErrLookupFailure, req.ID, err)
		}
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	res, err := s.resolver.ResolveInCollection(ctx, req.CallNo, req.Owner, req.Collection)
	if err != nil {
		outcome := models.OutcomeError
		if errors.Is(err, resolver.ErrInvalidInput) {
			outcome = models.OutcomeInvalid
		}
		metrics.RecordResolution(outcome, "", 0)
		s.record(req, outcome, "", start)
		return nil, err
	}

	resp.ResolvedCallNo = res.CallNumber
	resp.Outcome = OutcomeOf(res)
	if res.Found() {
		resp.Location = res.Location
		resp.Window = res.Window
	}

	metrics.RecordResolution(resp.Outcome, res.Tier(), res.Lookups)
	s.record(req, resp.Outcome, res.Tier(), start)
	return resp, nil
}

// OutcomeOf names the statistics outcome of a resolution result.
func OutcomeOf(res resolver.Result) string {
	switch {
	case !res.Found():
		return models.OutcomeNotFound
	case res.Redirected:
		return models.OutcomeRedirected
	default:
		return models.OutcomeResolved
	}
}

func (s *Service) record(req Request, outcome string, tier models.Tier, start time.Time) {
	if s.recorder == nil {
		return
	}
	ok := s.recorder.Record(models.SearchEvent{
		ID:               uuid.New(),
		CallNo:           req.CallNo,
		Owner:            req.Owner,
		Lang:             req.Lang,
		Outcome:          outcome,
		Tier:             tier,
		IPAddress:        req.IP,
		ProcessingTimeMS: time.Since(start).Milliseconds(),
	})
	if !ok {
		slog.Debug("search event dropped", "owner", req.Owner)
	}
}

// StatusCode maps a Locate error to an HTTP status code.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, resolver.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, resolver.ErrCancelled):
		return http.StatusGatewayTimeout
	case errors.Is(err, resolver.ErrLookupFailure):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Message returns a client-safe description of a Locate error.
func Message(err error) string {
	switch StatusCode(err) {
	case http.StatusBadRequest:
		return "Invalid call number"
	case http.StatusGatewayTimeout:
		return "Location search timed out"
	case http.StatusServiceUnavailable:
		return "Location database unavailable"
	default:
		return "Internal Server Error"
	}
}
