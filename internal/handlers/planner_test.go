package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/GregMSThompson/finan-bff/internal/dto"
	"github.com/GregMSThompson/finan-bff/internal/errs"
	"github.com/GregMSThompson/finan-bff/internal/models"
)

type stubPlannerService struct {
	lastDate   string
	lastToggle dto.ToggleRequest
	lastClaim  dto.ClaimRequest
	lastDays   int
	claimErr   error
}

func (s *stubPlannerService) Day(_ context.Context, date string) (dto.PlannerDay, error) {
	s.lastDate = date
	return dto.PlannerDay{Date: date}, nil
}

func (s *stubPlannerService) Toggle(_ context.Context, req dto.ToggleRequest) (dto.PlannerDay, error) {
	s.lastToggle = req
	return dto.PlannerDay{}, nil
}

func (s *stubPlannerService) Claim(_ context.Context, req dto.ClaimRequest) (models.Claim, error) {
	s.lastClaim = req
	return models.Claim{CardID: req.CardID}, s.claimErr
}

func (s *stubPlannerService) Completions(_ context.Context, days int) (dto.CompletionSeries, error) {
	s.lastDays = days
	return dto.CompletionSeries{Max: 1}, nil
}

func TestPlannerGetDay(t *testing.T) {
	svc := &stubPlannerService{}
	resp := &stubResponseHandler{}
	h := NewPlannerHandlers(&Deps{ResponseHandler: resp, PlannerSvc: svc})

	h.GetDay(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/planner?date=2025-01-15", nil))
	if svc.lastDate != "2025-01-15" || !resp.writeSuccessCalled {
		t.Fatalf("date=%q success=%v", svc.lastDate, resp.writeSuccessCalled)
	}
}

func TestPlannerToggle(t *testing.T) {
	svc := &stubPlannerService{}
	resp := &stubResponseHandler{}
	h := NewPlannerHandlers(&Deps{ResponseHandler: resp, PlannerSvc: svc})

	body := `{"date":"2025-01-15","taskId":"run"}`
	h.Toggle(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/planner/toggle", strings.NewReader(body)))
	if svc.lastToggle.TaskID != "run" || svc.lastToggle.Date != "2025-01-15" {
		t.Fatalf("unexpected %+v", svc.lastToggle)
	}
}

func TestPlannerClaim(t *testing.T) {
	svc := &stubPlannerService{}
	resp := &stubResponseHandler{}
	h := NewPlannerHandlers(&Deps{ResponseHandler: resp, PlannerSvc: svc})

	body := `{"date":"2025-01-15","cardId":"c1"}`
	h.Claim(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/planner/claim", strings.NewReader(body)))
	if resp.writeSuccessStatus != http.StatusCreated || svc.lastClaim.CardID != "c1" {
		t.Fatalf("status=%d claim=%+v", resp.writeSuccessStatus, svc.lastClaim)
	}
}

func TestPlannerClaim_Duplicate(t *testing.T) {
	svc := &stubPlannerService{claimErr: errs.NewAlreadyExistsError("already claimed")}
	resp := &stubResponseHandler{}
	h := NewPlannerHandlers(&Deps{ResponseHandler: resp, PlannerSvc: svc})

	body := `{"date":"2025-01-15","cardId":"c1"}`
	h.Claim(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/planner/claim", strings.NewReader(body)))

	var ae *errs.AlreadyExistsError
	if !errors.As(resp.handleError, &ae) {
		t.Fatalf("expected AlreadyExistsError, got %v", resp.handleError)
	}
}

func TestPlannerCompletions(t *testing.T) {
	svc := &stubPlannerService{}
	resp := &stubResponseHandler{}
	h := NewPlannerHandlers(&Deps{ResponseHandler: resp, PlannerSvc: svc})

	h.GetCompletions(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/planner/completions?days=14", nil))
	if svc.lastDays != 14 || !resp.writeSuccessCalled {
		t.Fatalf("days=%d", svc.lastDays)
	}
}
