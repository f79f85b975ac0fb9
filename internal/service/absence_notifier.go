package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"bytebabies/internal/models"
	"bytebabies/internal/repository"
)

// AbsenceNotifier tells a child's parent about a recorded absence: it appends a
// message addressed to the parent and, when email is enabled, mails them
type AbsenceNotifier struct {
	children *repository.ChildRepository
	users    *repository.UserRepository
	messages *repository.MessageRepository
	mailer   Mailer
	now      func() time.Time
}

// AbsenceMessage is the text of the notice for childName on date
func AbsenceMessage(childName, date string) string {
	return fmt.Sprintf("%s was marked absent on %s.", childName, date)
}

// Notify handles one attendance record. Present records are ignored; a missing child
// or parent ends the cascade quietly.
func (n *AbsenceNotifier) Notify(ctx context.Context, rec models.AttendanceRecord) error {
	if rec.Present {
		return nil
	}

	child, err := n.children.GetChild(ctx, rec.ChildID)
	if err != nil {
		return err
	}
	if child == nil || child.ParentID == "" {
		log.Printf("Skipping absence notice for %s: no child or parent on record", rec.ChildID)
		return nil
	}

	parent, err := n.users.GetParent(ctx, child.ParentID)
	if err != nil {
		return err
	}
	if parent == nil {
		log.Printf("Skipping absence notice for %s: parent %s not found", rec.ChildID, child.ParentID)
		return nil
	}

	msg := &models.Message{
		Content:    AbsenceMessage(child.Name, rec.Date),
		ToParentID: parent.ID,
		ToAdmin:    false,
		Timestamp:  n.now().UTC().Format(time.RFC3339Nano),
	}
	if err := n.messages.CreateMessage(ctx, msg); err != nil {
		return err
	}

	if n.mailer != nil && n.mailer.IsEnabled() && parent.Email != "" {
		if err := n.mailer.SendAbsenceEmail(ctx, parent.Email, parent.Name, child.Name, rec.Date); err != nil {
			return err
		}
	}
	return nil
}
