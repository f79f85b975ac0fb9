package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"

	"bytebabies/internal/docstore"
	"bytebabies/internal/models"
	"bytebabies/internal/repository"
)

var (
	ErrParentHasChildren = errors.New("cannot delete parent with registered children")
	ErrUnknownChildField = errors.New("unknown child field")
	ErrInvalidChildField = errors.New("invalid child field")
)

// Parents

// FetchParents returns every parent; read failures yield an empty list
func (f *Facade) FetchParents(ctx context.Context) []models.Parent {
	parents, err := f.users.ListParents(ctx)
	if err != nil {
		logReadFailure("parents", err)
		return []models.Parent{}
	}
	return parents
}

// FetchParent returns the parent with id
func (f *Facade) FetchParent(ctx context.Context, id string) (models.Parent, bool) {
	parent, err := f.users.GetParent(ctx, id)
	if err != nil {
		logReadFailure("parent", err)
		return models.Parent{}, false
	}
	if parent == nil {
		return models.Parent{}, false
	}
	return *parent, true
}

// UpdateParent replaces the parent's profile fields. Users that are not parents are
// reported as docstore.ErrNotFound.
func (f *Facade) UpdateParent(ctx context.Context, parent models.Parent) error {
	if err := f.requireParent(ctx, parent.ID); err != nil {
		return err
	}
	return f.users.UpdateParent(ctx, parent.ID, &parent)
}

// DeleteParent deletes the parent's profile unless a child still references them.
// A failing children lookup also aborts the delete; so does an id that is not a parent.
func (f *Facade) DeleteParent(ctx context.Context, id string) error {
	if err := f.requireParent(ctx, id); err != nil {
		return err
	}
	children, err := f.children.ListChildrenByParent(ctx, id)
	if err != nil {
		return err
	}
	if len(children) > 0 {
		return ErrParentHasChildren
	}
	return f.users.DeleteUser(ctx, id)
}

func (f *Facade) requireParent(ctx context.Context, id string) error {
	parent, err := f.users.GetParent(ctx, id)
	if err != nil {
		return err
	}
	if parent == nil {
		return fmt.Errorf("parent %s: %w", id, docstore.ErrNotFound)
	}
	return nil
}

// Teachers

// CreateTeacher stores a teacher and returns the generated id
func (f *Facade) CreateTeacher(ctx context.Context, teacher models.Teacher) (string, error) {
	return f.teachers.CreateTeacher(ctx, &teacher)
}

func (f *Facade) UpdateTeacher(ctx context.Context, teacher models.Teacher) error {
	return f.teachers.UpdateTeacher(ctx, teacher.ID, &teacher)
}

func (f *Facade) DeleteTeacher(ctx context.Context, id string) error {
	return f.teachers.DeleteTeacher(ctx, id)
}

func (f *Facade) FetchTeachers(ctx context.Context) []models.Teacher {
	teachers, err := f.teachers.ListTeachers(ctx)
	if err != nil {
		logReadFailure("teachers", err)
		return []models.Teacher{}
	}
	return teachers
}

func (f *Facade) FetchTeacher(ctx context.Context, id string) (models.Teacher, bool) {
	teacher, err := f.teachers.GetTeacher(ctx, id)
	if err != nil {
		logReadFailure("teacher", err)
		return models.Teacher{}, false
	}
	if teacher == nil {
		return models.Teacher{}, false
	}
	return *teacher, true
}

// Children

// CreateChild stores a child and returns the generated id
func (f *Facade) CreateChild(ctx context.Context, child models.Child) (string, error) {
	return f.children.CreateChild(ctx, &child)
}

// UpdateChild applies only the named fields. Keys outside repository.ChildFields are
// rejected before anything is written.
func (f *Facade) UpdateChild(ctx context.Context, id string, fields map[string]interface{}) error {
	update := make(docstore.Fields, len(fields))
	for k, v := range fields {
		if !repository.ChildFields[k] {
			return fmt.Errorf("%w: %s", ErrUnknownChildField, k)
		}
		if k == "age" {
			age, ok := docstore.AsInt(v)
			if !ok {
				return fmt.Errorf("%w: age must be a whole number", ErrInvalidChildField)
			}
			v = age
		} else if _, ok := v.(string); !ok {
			return fmt.Errorf("%w: %s must be a string", ErrInvalidChildField, k)
		}
		update[k] = v
	}
	return f.children.UpdateChildFields(ctx, id, update)
}

func (f *Facade) DeleteChild(ctx context.Context, id string) error {
	return f.children.DeleteChild(ctx, id)
}

func (f *Facade) FetchChildren(ctx context.Context) []models.Child {
	children, err := f.children.ListChildren(ctx)
	if err != nil {
		logReadFailure("children", err)
		return []models.Child{}
	}
	return children
}

func (f *Facade) FetchChild(ctx context.Context, id string) (models.Child, bool) {
	child, err := f.children.GetChild(ctx, id)
	if err != nil {
		logReadFailure("child", err)
		return models.Child{}, false
	}
	if child == nil {
		return models.Child{}, false
	}
	return *child, true
}

// FetchChildrenOfParent returns the children referencing parentID
func (f *Facade) FetchChildrenOfParent(ctx context.Context, parentID string) []models.Child {
	children, err := f.children.ListChildrenByParent(ctx, parentID)
	if err != nil {
		logReadFailure("children of parent", err)
		return []models.Child{}
	}
	return children
}

// Events

func (f *Facade) CreateEvent(ctx context.Context, event models.Event) (string, error) {
	return f.events.CreateEvent(ctx, &event)
}

func (f *Facade) UpdateEvent(ctx context.Context, event models.Event) error {
	return f.events.UpdateEvent(ctx, event.ID, &event)
}

func (f *Facade) DeleteEvent(ctx context.Context, id string) error {
	return f.events.DeleteEvent(ctx, id)
}

// FetchEvents returns every event ordered by date
func (f *Facade) FetchEvents(ctx context.Context) []models.Event {
	events, err := f.events.ListEvents(ctx)
	if err != nil {
		logReadFailure("events", err)
		return []models.Event{}
	}
	sort.SliceStable(events, func(i, j int) bool { return events[i].Date < events[j].Date })
	return events
}

func (f *Facade) FetchEvent(ctx context.Context, id string) (models.Event, bool) {
	event, err := f.events.GetEvent(ctx, id)
	if err != nil {
		logReadFailure("event", err)
		return models.Event{}, false
	}
	if event == nil {
		return models.Event{}, false
	}
	return *event, true
}

func logReadFailure(what string, err error) {
	log.Printf("Warning: failed to fetch %s: %v", what, err)
}
