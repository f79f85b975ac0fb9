package service

import (
	"context"
	"sort"

	"bytebabies/internal/models"
)

// PostAnnouncement broadcasts content from the office to all parents
func (f *Facade) PostAnnouncement(ctx context.Context, content string) error {
	return f.messages.CreateMessage(ctx, &models.Message{
		Content:   content,
		ToAdmin:   false,
		Timestamp: f.timestamp(),
	})
}

// SendParentMessage sends content from parentID to the office
func (f *Facade) SendParentMessage(ctx context.Context, parentID, content string) error {
	return f.messages.CreateMessage(ctx, &models.Message{
		Content:      content,
		FromParentID: parentID,
		ToAdmin:      true,
		Timestamp:    f.timestamp(),
	})
}

// FetchParentMessages returns every message sent to the office, oldest first
func (f *Facade) FetchParentMessages(ctx context.Context) []models.Message {
	return f.fetchMessages(ctx, true)
}

// FetchAnnouncements returns every message sent by the office, oldest first
func (f *Facade) FetchAnnouncements(ctx context.Context) []models.Message {
	return f.fetchMessages(ctx, false)
}

func (f *Facade) fetchMessages(ctx context.Context, toAdmin bool) []models.Message {
	messages, err := f.messages.ListByToAdmin(ctx, toAdmin)
	if err != nil {
		logReadFailure("messages", err)
		return []models.Message{}
	}
	sortByTimestamp(messages)
	return messages
}

// FetchAnnouncementsForParent returns the announcements a parent may see: broadcasts
// and notices addressed to them
func (f *Facade) FetchAnnouncementsForParent(ctx context.Context, parentID string) []models.Message {
	visible := []models.Message{}
	for _, msg := range f.FetchAnnouncements(ctx) {
		if msg.ToParentID == "" || msg.ToParentID == parentID {
			visible = append(visible, msg)
		}
	}
	return visible
}

// FetchConversation is a parent's view of their messages: everything they sent plus
// office messages that are broadcast or addressed to them
func (f *Facade) FetchConversation(ctx context.Context, parentID string) []models.Message {
	conversation := []models.Message{}

	sent, err := f.messages.ListFromParent(ctx, parentID)
	if err != nil {
		logReadFailure("sent messages", err)
		return conversation
	}
	conversation = append(conversation, sent...)

	conversation = append(conversation, f.FetchAnnouncementsForParent(ctx, parentID)...)
	sortByTimestamp(conversation)
	return conversation
}

func sortByTimestamp(messages []models.Message) {
	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].Time().Before(messages[j].Time())
	})
}
