package repository

import (
	"context"
	"fmt"

	"bytebabies/internal/docstore"
	"bytebabies/internal/models"
)

// MessageRepository handles the Messages collection
type MessageRepository struct {
	store docstore.Store
}

func NewMessageRepository(store docstore.Store) *MessageRepository {
	return &MessageRepository{store: store}
}

// CreateMessage appends the message and fills in its generated id
func (r *MessageRepository) CreateMessage(ctx context.Context, msg *models.Message) error {
	id, err := r.store.Add(ctx, MessagesCollection, messageToFields(msg))
	if err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}
	msg.ID = id
	return nil
}

// ListByToAdmin returns parent messages (true) or announcements (false)
func (r *MessageRepository) ListByToAdmin(ctx context.Context, toAdmin bool) ([]models.Message, error) {
	docs, err := r.store.Where(ctx, MessagesCollection, "toAdmin", toAdmin)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return messagesFromDocuments(docs), nil
}

// ListFromParent returns the messages a parent has sent
func (r *MessageRepository) ListFromParent(ctx context.Context, parentID string) ([]models.Message, error) {
	docs, err := r.store.Where(ctx, MessagesCollection, "fromParentId", parentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return messagesFromDocuments(docs), nil
}

func messageToFields(m *models.Message) docstore.Fields {
	fields := docstore.Fields{
		"content":   m.Content,
		"toAdmin":   m.ToAdmin,
		"timestamp": m.Timestamp,
	}
	if m.FromParentID != "" {
		fields["fromParentId"] = m.FromParentID
	}
	if m.ToParentID != "" {
		fields["toParentId"] = m.ToParentID
	}
	return fields
}

func messagesFromDocuments(docs []docstore.Document) []models.Message {
	messages := make([]models.Message, 0, len(docs))
	for _, doc := range docs {
		from, _ := doc.Fields.OptionalString("fromParentId")
		to, _ := doc.Fields.OptionalString("toParentId")
		messages = append(messages, models.Message{
			ID:           doc.ID,
			Content:      doc.Fields.String("content"),
			FromParentID: from,
			ToParentID:   to,
			ToAdmin:      doc.Fields.Bool("toAdmin"),
			Timestamp:    doc.Fields.String("timestamp"),
		})
	}
	return messages
}
