package repository

import (
	"context"
	"errors"
	"fmt"

	"bytebabies/internal/docstore"
	"bytebabies/internal/models"
)

// TeacherRepository handles the Teachers collection
type TeacherRepository struct {
	store docstore.Store
}

func NewTeacherRepository(store docstore.Store) *TeacherRepository {
	return &TeacherRepository{store: store}
}

// CreateTeacher adds the teacher and returns the generated id
func (r *TeacherRepository) CreateTeacher(ctx context.Context, teacher *models.Teacher) (string, error) {
	id, err := r.store.Add(ctx, TeachersCollection, teacherToFields(teacher))
	if err != nil {
		return "", fmt.Errorf("failed to create teacher: %w", err)
	}
	return id, nil
}

func (r *TeacherRepository) GetTeacher(ctx context.Context, id string) (*models.Teacher, error) {
	doc, err := r.store.Get(ctx, TeachersCollection, id)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get teacher: %w", err)
	}
	return teacherFromDocument(doc), nil
}

func (r *TeacherRepository) ListTeachers(ctx context.Context) ([]models.Teacher, error) {
	docs, err := r.store.List(ctx, TeachersCollection)
	if err != nil {
		return nil, fmt.Errorf("failed to list teachers: %w", err)
	}
	teachers := make([]models.Teacher, 0, len(docs))
	for _, doc := range docs {
		teachers = append(teachers, *teacherFromDocument(doc))
	}
	return teachers, nil
}

func (r *TeacherRepository) UpdateTeacher(ctx context.Context, id string, teacher *models.Teacher) error {
	if err := r.store.Update(ctx, TeachersCollection, id, teacherToFields(teacher)); err != nil {
		return fmt.Errorf("failed to update teacher: %w", err)
	}
	return nil
}

func (r *TeacherRepository) DeleteTeacher(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, TeachersCollection, id); err != nil {
		return fmt.Errorf("failed to delete teacher: %w", err)
	}
	return nil
}

func teacherToFields(t *models.Teacher) docstore.Fields {
	return docstore.Fields{
		"name":          t.Name,
		"email":         t.Email,
		"phone":         t.Phone,
		"assignedClass": t.AssignedClass,
	}
}

func teacherFromDocument(doc docstore.Document) *models.Teacher {
	return &models.Teacher{
		ID:            doc.ID,
		Name:          doc.Fields.String("name"),
		Email:         doc.Fields.String("email"),
		Phone:         doc.Fields.String("phone"),
		AssignedClass: doc.Fields.String("assignedClass"),
	}
}
