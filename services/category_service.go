package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/akinalp/sigma/models"
	"github.com/akinalp/sigma/pkg"
	"github.com/akinalp/sigma/repository"
	"github.com/akinalp/sigma/ws"
)

// CategoryService, kategori iş mantığı interface'i.
type CategoryService interface {
	// Tree, tüm kategorileri iki seviyeli ağaç olarak döner.
	Tree(ctx context.Context) ([]models.OrganizedCategory, error)
	Create(ctx context.Context, req *models.CreateCategoryRequest) (*models.Category, error)
	Delete(ctx context.Context, id string) error
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
	hub          ws.EventPublisher
}

func NewCategoryService(categoryRepo repository.CategoryRepository, hub ws.EventPublisher) CategoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
		hub:          hub,
	}
}

func (s *categoryService) Tree(ctx context.Context) ([]models.OrganizedCategory, error) {
	categories, err := s.categoryRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return BuildCategoryTree(categories), nil
}

// Create, parent verilmişse onun var olduğunu ve kök olduğunu kontrol eder;
// böylece ağaç yazma anında da iki seviyede kalır.
func (s *categoryService) Create(ctx context.Context, req *models.CreateCategoryRequest) (*models.Category, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	if req.ParentID != nil {
		parent, err := s.categoryRepo.GetByID(ctx, *req.ParentID)
		if err != nil {
			if errors.Is(err, pkg.ErrNotFound) {
				return nil, fmt.Errorf("%w: parent category not found", pkg.ErrBadRequest)
			}
			return nil, err
		}
		if parent.ParentID != nil {
			return nil, fmt.Errorf("%w: parent must be a top-level category", pkg.ErrBadRequest)
		}
	}

	category := &models.Category{
		Name:     req.Name,
		ParentID: req.ParentID,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	s.hub.BroadcastToAll(ws.Event{
		Op:   ws.OpCategoryCreate,
		Data: category,
	})

	return category, nil
}

func (s *categoryService) Delete(ctx context.Context, id string) error {
	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.hub.BroadcastToAll(ws.Event{
		Op:   ws.OpCategoryDelete,
		Data: ws.CategoryDeleteData{ID: id},
	})

	return nil
}
