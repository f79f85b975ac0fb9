package repository

import (
	"context"
	"errors"
	"fmt"

	"bytebabies/internal/docstore"
	"bytebabies/internal/models"
)

// RoleParent is the role tag written on parent profiles
const RoleParent = "parent"

// UserRepository handles the uid-keyed Users documents: the role tag and, for
// parents, the profile stored alongside it
type UserRepository struct {
	store docstore.Store
}

// NewUserRepository creates a new user repository
func NewUserRepository(store docstore.Store) *UserRepository {
	return &UserRepository{store: store}
}

// GetRole returns the stored role string, or "" when the user has no role document
func (r *UserRepository) GetRole(ctx context.Context, uid string) (string, error) {
	doc, err := r.store.Get(ctx, UsersCollection, uid)
	if errors.Is(err, docstore.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get role: %w", err)
	}
	return doc.Fields.String("role"), nil
}

// SetRole tags uid with role, keeping any profile fields already stored. Users with no
// document get a bare role document.
func (r *UserRepository) SetRole(ctx context.Context, uid, role string) error {
	fields := docstore.Fields{"role": role}
	err := r.store.Update(ctx, UsersCollection, uid, fields)
	if errors.Is(err, docstore.ErrNotFound) {
		err = r.store.Set(ctx, UsersCollection, uid, fields)
	}
	if err != nil {
		return fmt.Errorf("failed to set role: %w", err)
	}
	return nil
}

// CreateParent writes the parent's profile tagged role=parent under their uid
func (r *UserRepository) CreateParent(ctx context.Context, parent *models.Parent) error {
	fields := parentToFields(parent)
	fields["role"] = RoleParent
	if err := r.store.Set(ctx, UsersCollection, parent.ID, fields); err != nil {
		return fmt.Errorf("failed to create parent: %w", err)
	}
	return nil
}

// GetParent returns the parent, or nil when no parent profile exists for id
func (r *UserRepository) GetParent(ctx context.Context, id string) (*models.Parent, error) {
	doc, err := r.store.Get(ctx, UsersCollection, id)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get parent: %w", err)
	}
	if doc.Fields.String("role") != RoleParent {
		return nil, nil
	}
	return parentFromDocument(doc), nil
}

// ListParents returns every user tagged role=parent
func (r *UserRepository) ListParents(ctx context.Context) ([]models.Parent, error) {
	docs, err := r.store.Where(ctx, UsersCollection, "role", RoleParent)
	if err != nil {
		return nil, fmt.Errorf("failed to list parents: %w", err)
	}
	parents := make([]models.Parent, 0, len(docs))
	for _, doc := range docs {
		parents = append(parents, *parentFromDocument(doc))
	}
	return parents, nil
}

// UpdateParent overwrites the profile fields, leaving the role tag alone
func (r *UserRepository) UpdateParent(ctx context.Context, id string, parent *models.Parent) error {
	if err := r.store.Update(ctx, UsersCollection, id, parentToFields(parent)); err != nil {
		return fmt.Errorf("failed to update parent: %w", err)
	}
	return nil
}

// DeleteUser removes the user's document
func (r *UserRepository) DeleteUser(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, UsersCollection, id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

func parentToFields(p *models.Parent) docstore.Fields {
	return docstore.Fields{
		"name":         p.Name,
		"email":        p.Email,
		"phone":        p.Phone,
		"consentMedia": p.ConsentMedia,
	}
}

func parentFromDocument(doc docstore.Document) *models.Parent {
	return &models.Parent{
		ID:           doc.ID,
		Name:         doc.Fields.String("name"),
		Email:        doc.Fields.String("email"),
		Phone:        doc.Fields.String("phone"),
		ConsentMedia: doc.Fields.Bool("consentMedia"),
	}
}
