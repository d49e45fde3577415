package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/GregMSThompson/finan-bff/internal/dto"
)

type stubGoalService struct {
	lastID     string
	lastAmount float64
	completed  bool
}

func (s *stubGoalService) List(_ context.Context) ([]dto.GoalView, error) { return nil, nil }

func (s *stubGoalService) Create(_ context.Context, _ dto.GoalRequest) (dto.GoalView, error) {
	return dto.GoalView{}, nil
}

func (s *stubGoalService) AddMoney(_ context.Context, id string, amount float64) (dto.GoalView, error) {
	s.lastID = id
	s.lastAmount = amount
	return dto.GoalView{}, nil
}

func (s *stubGoalService) Complete(_ context.Context, id string) (dto.GoalView, error) {
	s.lastID = id
	s.completed = true
	return dto.GoalView{}, nil
}

func TestGoalAddMoneyAndComplete(t *testing.T) {
	svc := &stubGoalService{}
	resp := &stubResponseHandler{}
	h := NewGoalHandlers(&Deps{ResponseHandler: resp, GoalSvc: svc})

	req := httptest.NewRequest(http.MethodPost, "/goals/g1/add-money", strings.NewReader(`{"amount":25}`))
	h.AddMoney(httptest.NewRecorder(), withChiParam(req, "goalId", "g1"))
	if svc.lastID != "g1" || svc.lastAmount != 25 {
		t.Fatalf("id=%q amount=%v", svc.lastID, svc.lastAmount)
	}

	req = httptest.NewRequest(http.MethodPost, "/goals/g2/complete", nil)
	h.CompleteGoal(httptest.NewRecorder(), withChiParam(req, "goalId", "g2"))
	if !svc.completed || svc.lastID != "g2" || !resp.writeSuccessCalled {
		t.Fatal("expected completion of g2")
	}
}
