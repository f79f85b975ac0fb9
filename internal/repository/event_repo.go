package repository

import (
	"context"
	"errors"
	"fmt"

	"bytebabies/internal/docstore"
	"bytebabies/internal/models"
)

// EventRepository handles the Events collection
type EventRepository struct {
	store docstore.Store
}

func NewEventRepository(store docstore.Store) *EventRepository {
	return &EventRepository{store: store}
}

func (r *EventRepository) CreateEvent(ctx context.Context, event *models.Event) (string, error) {
	id, err := r.store.Add(ctx, EventsCollection, eventToFields(event))
	if err != nil {
		return "", fmt.Errorf("failed to create event: %w", err)
	}
	return id, nil
}

func (r *EventRepository) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	doc, err := r.store.Get(ctx, EventsCollection, id)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return eventFromDocument(doc), nil
}

func (r *EventRepository) ListEvents(ctx context.Context) ([]models.Event, error) {
	docs, err := r.store.List(ctx, EventsCollection)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	events := make([]models.Event, 0, len(docs))
	for _, doc := range docs {
		events = append(events, *eventFromDocument(doc))
	}
	return events, nil
}

func (r *EventRepository) UpdateEvent(ctx context.Context, id string, event *models.Event) error {
	if err := r.store.Update(ctx, EventsCollection, id, eventToFields(event)); err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}
	return nil
}

func (r *EventRepository) DeleteEvent(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, EventsCollection, id); err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	return nil
}

func eventToFields(e *models.Event) docstore.Fields {
	return docstore.Fields{
		"title":       e.Title,
		"description": e.Description,
		"date":        e.Date,
		"location":    e.Location,
	}
}

func eventFromDocument(doc docstore.Document) *models.Event {
	return &models.Event{
		ID:          doc.ID,
		Title:       doc.Fields.String("title"),
		Description: doc.Fields.String("description"),
		Date:        doc.Fields.String("date"),
		Location:    doc.Fields.String("location"),
	}
}
