package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/GregMSThompson/finan-bff/internal/dto"
)

type stubHistoryService struct {
	lastQuery    dto.HistoryQuery
	lastDeleteID string
	deleteErr    error
}

func (s *stubHistoryService) Query(_ context.Context, q dto.HistoryQuery) (dto.HistoryPage, error) {
	s.lastQuery = q
	return dto.HistoryPage{Page: q.Page}, nil
}

func (s *stubHistoryService) Delete(_ context.Context, id string) error {
	s.lastDeleteID = id
	return s.deleteErr
}

func TestGetHistory_ParsesQuery(t *testing.T) {
	svc := &stubHistoryService{}
	resp := &stubResponseHandler{}
	h := NewHistoryHandlers(&Deps{ResponseHandler: resp, HistorySvc: svc})

	req := httptest.NewRequest(http.MethodGet,
		"/history?search=coffee&type=expense&category=Food&status=all&range=month&sort=amount&order=asc&page=2&pageSize=20", nil)
	h.GetHistory(httptest.NewRecorder(), req)

	if !resp.writeSuccessCalled {
		t.Fatalf("expected success, got error %v", resp.handleError)
	}
	want := dto.HistoryQuery{
		Filter:   dto.TransactionFilter{Type: "expense", Category: "Food", Status: "all", DateRange: "month", SearchTerm: "coffee"},
		Sort:     dto.SortSpec{Key: dto.SortByAmount, Order: dto.SortAsc},
		Page:     2,
		PageSize: 20,
	}
	if svc.lastQuery != want {
		t.Fatalf("got %+v, want %+v", svc.lastQuery, want)
	}
}

func TestGetHistory_DefaultsPage(t *testing.T) {
	svc := &stubHistoryService{}
	resp := &stubResponseHandler{}
	h := NewHistoryHandlers(&Deps{ResponseHandler: resp, HistorySvc: svc})

	h.GetHistory(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/history", nil))
	if svc.lastQuery.Page != 1 || svc.lastQuery.PageSize != 0 {
		t.Fatalf("unexpected %+v", svc.lastQuery)
	}
}

func TestDeleteTransaction_UsesPathID(t *testing.T) {
	svc := &stubHistoryService{}
	resp := &stubResponseHandler{}
	h := NewHistoryHandlers(&Deps{ResponseHandler: resp, HistorySvc: svc})

	req := httptest.NewRequest(http.MethodDelete, "/history/tx1", nil)
	req = withChiParam(req, "transactionId", "tx1")
	h.DeleteTransaction(httptest.NewRecorder(), req)

	if svc.lastDeleteID != "tx1" || !resp.writeSuccessCalled {
		t.Fatalf("id=%q success=%v", svc.lastDeleteID, resp.writeSuccessCalled)
	}
}
