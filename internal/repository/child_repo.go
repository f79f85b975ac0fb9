package repository

import (
	"context"
	"errors"
	"fmt"

	"bytebabies/internal/docstore"
	"bytebabies/internal/models"
)

// ChildFields are the field names a partial child update may touch
var ChildFields = map[string]bool{
	"name":             true,
	"parentId":         true,
	"teacherId":        true,
	"age":              true,
	"emergencyContact": true,
	"allergies":        true,
	"medicalNotes":     true,
}

// ChildRepository handles the Children collection
type ChildRepository struct {
	store docstore.Store
}

func NewChildRepository(store docstore.Store) *ChildRepository {
	return &ChildRepository{store: store}
}

// CreateChild adds the child and returns the generated id
func (r *ChildRepository) CreateChild(ctx context.Context, child *models.Child) (string, error) {
	id, err := r.store.Add(ctx, ChildrenCollection, childToFields(child))
	if err != nil {
		return "", fmt.Errorf("failed to create child: %w", err)
	}
	return id, nil
}

func (r *ChildRepository) GetChild(ctx context.Context, id string) (*models.Child, error) {
	doc, err := r.store.Get(ctx, ChildrenCollection, id)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get child: %w", err)
	}
	return childFromDocument(doc), nil
}

func (r *ChildRepository) ListChildren(ctx context.Context) ([]models.Child, error) {
	docs, err := r.store.List(ctx, ChildrenCollection)
	if err != nil {
		return nil, fmt.Errorf("failed to list children: %w", err)
	}
	return childrenFromDocuments(docs), nil
}

// ListChildrenByParent returns the children whose parentId is parentID
func (r *ChildRepository) ListChildrenByParent(ctx context.Context, parentID string) ([]models.Child, error) {
	docs, err := r.store.Where(ctx, ChildrenCollection, "parentId", parentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list children for parent: %w", err)
	}
	return childrenFromDocuments(docs), nil
}

// UpdateChildFields merges fields into the child document. Callers restrict keys to ChildFields.
func (r *ChildRepository) UpdateChildFields(ctx context.Context, id string, fields docstore.Fields) error {
	if err := r.store.Update(ctx, ChildrenCollection, id, fields); err != nil {
		return fmt.Errorf("failed to update child: %w", err)
	}
	return nil
}

func (r *ChildRepository) DeleteChild(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, ChildrenCollection, id); err != nil {
		return fmt.Errorf("failed to delete child: %w", err)
	}
	return nil
}

func childToFields(c *models.Child) docstore.Fields {
	return docstore.Fields{
		"name":             c.Name,
		"parentId":         c.ParentID,
		"teacherId":        c.TeacherID,
		"age":              c.Age,
		"emergencyContact": c.EmergencyContact,
		"allergies":        c.Allergies,
		"medicalNotes":     c.MedicalNotes,
	}
}

func childFromDocument(doc docstore.Document) *models.Child {
	return &models.Child{
		ID:               doc.ID,
		Name:             doc.Fields.String("name"),
		ParentID:         doc.Fields.String("parentId"),
		TeacherID:        doc.Fields.String("teacherId"),
		Age:              doc.Fields.Int("age"),
		EmergencyContact: doc.Fields.String("emergencyContact"),
		Allergies:        doc.Fields.String("allergies"),
		MedicalNotes:     doc.Fields.String("medicalNotes"),
	}
}

func childrenFromDocuments(docs []docstore.Document) []models.Child {
	children := make([]models.Child, 0, len(docs))
	for _, doc := range docs {
		children = append(children, *childFromDocument(doc))
	}
	return children
}
