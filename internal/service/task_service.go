package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"tasklist/internal/cache"
	apperrors "tasklist/internal/errors"
	"tasklist/internal/model"
	"tasklist/internal/repository"
)

const publicTasksCacheKey = "tasks:public"

const publicTasksCacheTTL = 1 * time.Minute

// TaskUpdate carries a partial task update; nil fields are left unchanged.
type TaskUpdate struct {
	Name     *string
	IsPublic *bool
}

// TaskService exposes task domain operations.
type TaskService interface {
	CreateTask(ctx context.Context, name string, isPublic *bool) (*model.Task, error)
	GetTask(ctx context.Context, id uint) (*model.Task, error)
	ListTasks(ctx context.Context) ([]model.Task, error)
	ListPublicTasks(ctx context.Context) ([]model.Task, error)
	UpdateTask(ctx context.Context, id uint, update TaskUpdate) (*model.Task, error)
	DeleteTask(ctx context.Context, id uint) error
}

type taskService struct {
	repo  repository.TaskRepository
	cache *cache.Client
}

// NewTaskService builds a TaskService with repository and cache.
func NewTaskService(repo repository.TaskRepository, cache *cache.Client) TaskService {
	return &taskService{repo: repo, cache: cache}
}

// CreateTask stores a new task. Visibility defaults to public when the
// caller does not say otherwise.
func (s *taskService) CreateTask(ctx context.Context, name string, isPublic *bool) (*model.Task, error) {
	task := &model.Task{
		Name:     name,
		IsPublic: true,
	}
	if isPublic != nil {
		task.IsPublic = *isPublic
	}

	if err := s.repo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	_ = s.cache.Delete(ctx, publicTasksCacheKey)
	return task, nil
}

func (s *taskService) GetTask(ctx context.Context, id uint) (*model.Task, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, err
	}
	return task, nil
}

func (s *taskService) ListTasks(ctx context.Context) ([]model.Task, error) {
	return s.repo.List(ctx)
}

// ListPublicTasks serves the anonymous listing through a short-lived cache;
// every task write invalidates it.
func (s *taskService) ListPublicTasks(ctx context.Context) ([]model.Task, error) {
	if data, _ := s.cache.Get(ctx, publicTasksCacheKey); data != nil {
		var cached []model.Task
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	tasks, err := s.repo.ListPublic(ctx)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(tasks); err == nil {
		_ = s.cache.Set(ctx, publicTasksCacheKey, payload, publicTasksCacheTTL)
	}
	return tasks, nil
}

func (s *taskService) UpdateTask(ctx context.Context, id uint, update TaskUpdate) (*model.Task, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, err
	}

	if update.Name != nil {
		task.Name = *update.Name
	}
	if update.IsPublic != nil {
		task.IsPublic = *update.IsPublic
	}

	if err := s.repo.Save(ctx, task); err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}

	_ = s.cache.Delete(ctx, publicTasksCacheKey)
	return task, nil
}

func (s *taskService) DeleteTask(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrTaskNotFound
		}
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	_ = s.cache.Delete(ctx, publicTasksCacheKey)
	return nil
}
