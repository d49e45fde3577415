package services

import (
	"context"
	"regexp"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/GregMSThompson/finan-bff/internal/analytics"
	"github.com/GregMSThompson/finan-bff/internal/datasource"
	"github.com/GregMSThompson/finan-bff/internal/dto"
	"github.com/GregMSThompson/finan-bff/internal/errs"
	"github.com/GregMSThompson/finan-bff/internal/models"
	"github.com/GregMSThompson/finan-bff/internal/store"
	"github.com/GregMSThompson/finan-bff/pkg/helpers"
	"github.com/GregMSThompson/finan-bff/pkg/logger"
)

const (
	localIDPrefix = "local-"

	MoveUp   = "up"
	MoveDown = "down"
)

// Finance API ids are 24 word characters; anything else was made here.
var serverIDPattern = regexp.MustCompile(`^\w{24}$`)

func isServerID(id string) bool {
	return serverIDPattern.MatchString(id)
}

type taskSource interface {
	ListTasks(ctx context.Context) ([]dto.RawTask, error)
	CreateTask(ctx context.Context, req dto.TaskRequest) (dto.RawTask, error)
	UpdateTask(ctx context.Context, id string, req dto.TaskRequest) error
	DeleteTask(ctx context.Context, id string) error
}

type kvCache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Put(ctx context.Context, key string, v any) error
}

// taskService keeps the planner task list usable while the Finance API is
// down. Every change is written to the cache first; tasks created offline
// carry a local id until the next successful sync swaps in the server id.
type taskService struct {
	source taskSource
	cache  kvCache
	mu     sync.Mutex
}

func NewTaskService(source taskSource, cache kvCache) *taskService {
	return &taskService{source: source, cache: cache}
}

func (s *taskService) List(ctx context.Context) (dto.TaskList, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.list(ctx)
}

func (s *taskService) Create(ctx context.Context, req dto.TaskRequest) (models.Task, error) {
	name, incentive, err := validateTask(req)
	if err != nil {
		return models.Task{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	current, err := s.list(ctx)
	if err != nil {
		return models.Task{}, err
	}

	order := len(current.Tasks)
	task := models.Task{Name: name, Incentive: incentive, Order: order}
	if !current.Offline {
		raw, err := s.source.CreateTask(ctx, dto.TaskRequest{Name: name, Incentive: incentive, Order: &order})
		switch {
		case err == nil:
			task = analytics.NormalizeTasks([]dto.RawTask{raw})[0]
		case datasource.Degraded(err):
			logger.FromContext(ctx).Warn("task create failed, keeping it locally", "error", err)
		default:
			return models.Task{}, err
		}
	}
	if task.ID == "" {
		task.ID = localIDPrefix + uuid.NewString()
	}

	if err := s.save(ctx, append(current.Tasks, task)); err != nil {
		return models.Task{}, err
	}
	return task, nil
}

func (s *taskService) Update(ctx context.Context, id string, req dto.TaskRequest) (models.Task, error) {
	name, incentive, err := validateTask(req)
	if err != nil {
		return models.Task{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	current, err := s.list(ctx)
	if err != nil {
		return models.Task{}, err
	}
	i := taskIndex(current.Tasks, id)
	if i < 0 {
		return models.Task{}, errs.NewNotFoundError("task not found")
	}

	task := current.Tasks[i]
	task.Name, task.Incentive = name, incentive
	task.Order = helpers.ValueOr(req.Order, task.Order)
	if isServerID(id) && !current.Offline {
		err := s.source.UpdateTask(ctx, id, dto.TaskRequest{Name: name, Incentive: incentive, Order: req.Order})
		if err != nil && !datasource.Degraded(err) {
			return models.Task{}, err
		}
		if err != nil {
			logger.FromContext(ctx).Warn("task update failed, kept locally", "taskId", id, "error", err)
		}
	}

	current.Tasks[i] = task
	if err := s.save(ctx, current.Tasks); err != nil {
		return models.Task{}, err
	}
	return task, nil
}

func (s *taskService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, err := s.list(ctx)
	if err != nil {
		return err
	}
	i := taskIndex(current.Tasks, id)
	if i < 0 {
		return errs.NewNotFoundError("task not found")
	}

	if isServerID(id) && !current.Offline {
		err := s.source.DeleteTask(ctx, id)
		if err != nil && !datasource.Degraded(err) {
			return err
		}
		if err != nil {
			logger.FromContext(ctx).Warn("task delete failed upstream, removed locally", "taskId", id, "error", err)
		}
	}
	return s.save(ctx, slices.Delete(current.Tasks, i, i+1))
}

// Move swaps a task with its neighbour and renumbers the whole list. New
// positions of server tasks are pushed upstream in parallel; if that fails
// the local order stands and the list is reported offline.
func (s *taskService) Move(ctx context.Context, id, direction string) (dto.TaskList, error) {
	if direction != MoveUp && direction != MoveDown {
		return dto.TaskList{}, errs.NewValidationError("direction must be up or down")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	current, err := s.list(ctx)
	if err != nil {
		return dto.TaskList{}, err
	}
	tasks := current.Tasks
	i := taskIndex(tasks, id)
	if i < 0 {
		return dto.TaskList{}, errs.NewNotFoundError("task not found")
	}

	j := i - 1
	if direction == MoveDown {
		j = i + 1
	}
	if j < 0 || j >= len(tasks) {
		return current, nil
	}
	tasks[i], tasks[j] = tasks[j], tasks[i]
	for idx := range tasks {
		tasks[idx].Order = idx
	}
	if err := s.save(ctx, tasks); err != nil {
		return dto.TaskList{}, err
	}

	if !current.Offline {
		if err := s.pushOrder(ctx, tasks); err != nil {
			logger.FromContext(ctx).Warn("failed to persist task order", "error", err)
			current.Offline = true
		}
	}
	current.Tasks = tasks
	return current, nil
}

func (s *taskService) pushOrder(ctx context.Context, tasks []models.Task) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, t := range tasks {
		t := t
		if !isServerID(t.ID) {
			continue
		}
		g.Go(func() error {
			return s.source.UpdateTask(gctx, t.ID, dto.TaskRequest{Order: helpers.Ptr(t.Order)})
		})
	}
	return g.Wait()
}

// Name and Poll let the poller push offline-created tasks in the background.
func (s *taskService) Name() string { return "tasks" }

func (s *taskService) Poll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tasks, err := s.load(ctx)
	if err != nil {
		return err
	}
	return s.save(ctx, tasks)
}

// list serves the remote list when reachable, the cached one otherwise.
func (s *taskService) list(ctx context.Context) (dto.TaskList, error) {
	tasks, err := s.load(ctx)
	if err == nil {
		if err := s.save(ctx, tasks); err != nil {
			logger.FromContext(ctx).Warn("failed to cache tasks", "error", err)
		}
		return dto.TaskList{Tasks: tasks}, nil
	}

	logger.FromContext(ctx).Warn("task list unavailable, serving cached tasks", "error", err)
	cached, cerr := s.cached(ctx)
	if cerr != nil {
		return dto.TaskList{}, err
	}
	return dto.TaskList{Tasks: cached, Offline: true}, nil
}

// load fetches the remote list and appends local-only tasks, creating them
// upstream first. A task that still cannot be created keeps its local id.
// Planner ticks recorded against a synced local id move to the server id.
func (s *taskService) load(ctx context.Context) ([]models.Task, error) {
	raw, err := s.source.ListTasks(ctx)
	if err != nil {
		return nil, err
	}
	tasks := analytics.NormalizeTasks(raw)

	cached, err := s.cached(ctx)
	if err != nil {
		logger.FromContext(ctx).Warn("failed to read cached tasks", "error", err)
		return tasks, nil
	}
	synced := make(map[string]string)
	for _, t := range cached {
		if isServerID(t.ID) {
			continue
		}
		order := len(tasks)
		created, err := s.source.CreateTask(ctx, dto.TaskRequest{Name: t.Name, Incentive: t.Incentive, Order: helpers.Ptr(order)})
		if err != nil {
			logger.FromContext(ctx).Warn("local task not synced", "taskId", t.ID, "error", err)
			t.Order = order
			tasks = append(tasks, t)
			continue
		}
		task := analytics.NormalizeTasks([]dto.RawTask{created})[0]
		logger.FromContext(ctx).Info("local task synced", "localId", t.ID, "taskId", task.ID)
		synced[t.ID] = task.ID
		tasks = append(tasks, task)
	}
	if len(synced) > 0 {
		if err := s.remapHistory(ctx, synced); err != nil {
			logger.FromContext(ctx).Warn("failed to move planner history to synced tasks", "error", err)
		}
	}
	return tasks, nil
}

// remapHistory rewrites cached planner ticks from local ids to server ids.
func (s *taskService) remapHistory(ctx context.Context, ids map[string]string) error {
	var history models.CompletionHistory
	ok, err := s.cache.Get(ctx, store.HistoryKey, &history)
	if err != nil || !ok {
		return err
	}
	moved := false
	for _, day := range history {
		for local, server := range ids {
			done, found := day[local]
			if !found {
				continue
			}
			delete(day, local)
			day[server] = day[server] || done
			moved = true
		}
	}
	if !moved {
		return nil
	}
	return s.cache.Put(ctx, store.HistoryKey, history)
}

func (s *taskService) cached(ctx context.Context) ([]models.Task, error) {
	tasks := make([]models.Task, 0)
	if _, err := s.cache.Get(ctx, store.TasksKey, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (s *taskService) save(ctx context.Context, tasks []models.Task) error {
	return s.cache.Put(ctx, store.TasksKey, tasks)
}

func validateTask(req dto.TaskRequest) (string, string, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return "", "", errs.NewValidationError("task name is required")
	}
	return name, strings.TrimSpace(req.Incentive), nil
}

func taskIndex(tasks []models.Task, id string) int {
	return slices.IndexFunc(tasks, func(t models.Task) bool { return t.ID == id })
}
