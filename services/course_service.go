package services

import (
	"context"
	"fmt"

	"github.com/akinalp/sigma/models"
	"github.com/akinalp/sigma/pkg"
	"github.com/akinalp/sigma/repository"
)

// CourseService, kurs katalog ve eğitmen işlemleri.
type CourseService interface {
	ListPublished(ctx context.Context, categoryID string) ([]models.Course, error)
	// GetPublished, yayında olmayan kursu yokmuş gibi gösterir (404).
	GetPublished(ctx context.Context, id string) (*models.Course, error)
	Create(ctx context.Context, instructorID string, req *models.CreateCourseRequest) (*models.Course, error)
	Update(ctx context.Context, instructorID, courseID string, req *models.UpdateCourseRequest) (*models.Course, error)
	ListByInstructor(ctx context.Context, instructorID string) ([]models.Course, error)
}

type courseService struct {
	courseRepo repository.CourseRepository
}

func NewCourseService(courseRepo repository.CourseRepository) CourseService {
	return &courseService{courseRepo: courseRepo}
}

func (s *courseService) ListPublished(ctx context.Context, categoryID string) ([]models.Course, error) {
	return s.courseRepo.ListPublished(ctx, categoryID)
}

func (s *courseService) GetPublished(ctx context.Context, id string) (*models.Course, error) {
	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !course.Published {
		return nil, fmt.Errorf("%w: course not found", pkg.ErrNotFound)
	}
	return course, nil
}

// Create, kursu yayında olmayan halde oluşturur; eğitmen PATCH ile yayınlar.
func (s *courseService) Create(ctx context.Context, instructorID string, req *models.CreateCourseRequest) (*models.Course, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	course := &models.Course{
		InstructorID: instructorID,
		CategoryID:   req.CategoryID,
		Title:        req.Title,
		Description:  req.Description,
		Price:        req.Price,
	}
	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *courseService) Update(ctx context.Context, instructorID, courseID string, req *models.UpdateCourseRequest) (*models.Course, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if course.InstructorID != instructorID {
		return nil, fmt.Errorf("%w: not the owner of this course", pkg.ErrForbidden)
	}

	req.Apply(course)
	if err := s.courseRepo.Update(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *courseService) ListByInstructor(ctx context.Context, instructorID string) ([]models.Course, error) {
	return s.courseRepo.ListByInstructor(ctx, instructorID)
}
