package financeclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/GregMSThompson/finan-bff/internal/dto"
	"github.com/GregMSThompson/finan-bff/internal/errs"
	"github.com/GregMSThompson/finan-bff/internal/models"
	"github.com/GregMSThompson/finan-bff/pkg/logger"
)

const serviceName = "finance-api"

// Adapter talks to the Finance API over HTTP/JSON. Listings are bare JSON
// arrays; error bodies may carry a "message".
type Adapter struct {
	baseURL string
	http    *http.Client
}

func NewAdapter(baseURL string, timeout time.Duration) *Adapter {
	return &Adapter{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// --- Cards ---

func (a *Adapter) ListCards(ctx context.Context) ([]dto.RawCard, error) {
	return list[dto.RawCard](ctx, a, "/cards")
}

func (a *Adapter) GetCard(ctx context.Context, id string) (dto.RawCard, error) {
	var out dto.RawCard
	err := a.do(ctx, http.MethodGet, "/cards/"+url.PathEscape(id), nil, &out)
	return out, err
}

func (a *Adapter) CreateCard(ctx context.Context, req dto.CardRequest) (dto.RawCard, error) {
	var out dto.RawCard
	err := a.do(ctx, http.MethodPost, "/cards", req, &out)
	return out, err
}

func (a *Adapter) UpdateCard(ctx context.Context, id string, req dto.CardRequest) (dto.RawCard, error) {
	var out dto.RawCard
	err := a.do(ctx, http.MethodPut, "/cards/"+url.PathEscape(id), req, &out)
	return out, err
}

func (a *Adapter) DeleteCard(ctx context.Context, id string) error {
	return a.do(ctx, http.MethodDelete, "/cards/"+url.PathEscape(id), nil, nil)
}

// --- Transactions ---

func (a *Adapter) CreateTransaction(ctx context.Context, cardID string, req dto.CreateTransactionRequest) (dto.RawTransaction, error) {
	var out dto.RawTransaction
	err := a.do(ctx, http.MethodPost, "/cards/"+url.PathEscape(cardID)+"/transaction", req, &out)
	return out, err
}

func (a *Adapter) ListTransactions(ctx context.Context) ([]dto.RawTransaction, error) {
	return list[dto.RawTransaction](ctx, a, "/transactions")
}

func (a *Adapter) ListCardTransactions(ctx context.Context, cardID string) ([]dto.RawTransaction, error) {
	return list[dto.RawTransaction](ctx, a, "/transactions/card/"+url.PathEscape(cardID))
}

func (a *Adapter) DeleteTransaction(ctx context.Context, id string) error {
	return a.do(ctx, http.MethodDelete, "/transactions/"+url.PathEscape(id), nil, nil)
}

// --- Goals ---

func (a *Adapter) ListGoals(ctx context.Context) ([]dto.RawGoal, error) {
	return list[dto.RawGoal](ctx, a, "/goals")
}

func (a *Adapter) CreateGoal(ctx context.Context, req dto.GoalRequest) (dto.RawGoal, error) {
	var out dto.RawGoal
	err := a.do(ctx, http.MethodPost, "/goals", req, &out)
	return out, err
}

func (a *Adapter) UpdateGoal(ctx context.Context, id string, patch map[string]any) (dto.RawGoal, error) {
	var out dto.RawGoal
	err := a.do(ctx, http.MethodPatch, "/goals/"+url.PathEscape(id), patch, &out)
	return out, err
}

func (a *Adapter) AddMoney(ctx context.Context, id string, amount float64) (dto.RawGoal, error) {
	var out dto.RawGoal
	err := a.do(ctx, http.MethodPost, "/goals/"+url.PathEscape(id)+"/add-money", dto.AddMoneyRequest{Amount: amount}, &out)
	return out, err
}

// --- Tasks & planner ---

func (a *Adapter) ListTasks(ctx context.Context) ([]dto.RawTask, error) {
	return list[dto.RawTask](ctx, a, "/tasks")
}

func (a *Adapter) CreateTask(ctx context.Context, req dto.TaskRequest) (dto.RawTask, error) {
	var out dto.RawTask
	err := a.do(ctx, http.MethodPost, "/tasks", req, &out)
	return out, err
}

func (a *Adapter) UpdateTask(ctx context.Context, id string, req dto.TaskRequest) error {
	return a.do(ctx, http.MethodPatch, "/tasks/"+url.PathEscape(id), req, nil)
}

func (a *Adapter) DeleteTask(ctx context.Context, id string) error {
	return a.do(ctx, http.MethodDelete, "/tasks/"+url.PathEscape(id), nil, nil)
}

func (a *Adapter) PlannerHistory(ctx context.Context) ([]models.HistoryRecord, error) {
	return list[models.HistoryRecord](ctx, a, "/planner/history")
}

// --- Plumbing ---

// list fetches a JSON array and decodes it record by record so one bad
// record cannot sink the listing. A record with a mistyped field keeps its
// other fields; a record that is not an object at all is dropped.
func list[T any](ctx context.Context, a *Adapter, path string) ([]T, error) {
	var raw []json.RawMessage
	if err := a.do(ctx, http.MethodGet, path, nil, &raw); err != nil {
		return nil, err
	}

	out := make([]T, 0, len(raw))
	for i, msg := range raw {
		var rec T
		err := json.Unmarshal(msg, &rec)
		if err == nil {
			out = append(out, rec)
			continue
		}
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			logger.FromContext(ctx).Warn("finance api record partially decoded",
				"path", path,
				"index", i,
				"field", typeErr.Field,
				"error", err)
			out = append(out, rec)
			continue
		}
		logger.FromContext(ctx).Warn("finance api record dropped",
			"path", path,
			"index", i,
			"error", err)
	}
	return out, nil
}

type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (a *Adapter) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log := logger.FromContext(ctx)
	start := time.Now()
	resp, err := a.http.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return errs.NewExternalServiceError(serviceName, 0,
			fmt.Sprintf("%s %s: %v", method, path, err), err)
	}
	defer resp.Body.Close()

	if logger.IsDebugEnabled(ctx) {
		log.Debug("finance api call",
			"method", method,
			"path", path,
			"status", resp.StatusCode,
			"duration", time.Since(start).String())
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(method, path, resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return errs.NewExternalServiceError(serviceName, resp.StatusCode,
			fmt.Sprintf("decode %s %s: %v", method, path, err), err)
	}
	return nil
}

func statusError(method, path string, resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var body errorBody
	_ = json.Unmarshal(raw, &body)

	msg := body.Message
	if msg == "" {
		msg = body.Error
	}
	if msg == "" {
		msg = fmt.Sprintf("%s %s returned %d", method, path, resp.StatusCode)
	}
	if resp.StatusCode == http.StatusNotFound {
		return errs.NewNotFoundError(msg)
	}
	return errs.NewExternalServiceError(serviceName, resp.StatusCode, msg, nil)
}
