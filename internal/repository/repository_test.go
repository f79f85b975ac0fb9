package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bytebabies/internal/docstore"
	"bytebabies/internal/models"
)

func TestChildRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewChildRepository(docstore.NewMemoryStore())

	child := &models.Child{
		Name:             "Ava",
		ParentID:         "p1",
		TeacherID:        "t1",
		Age:              4,
		EmergencyContact: "Gran 555-0100",
		Allergies:        "peanuts",
		MedicalNotes:     "inhaler in bag",
	}
	id, err := repo.CreateChild(ctx, child)
	require.NoError(t, err)

	got, err := repo.GetChild(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)

	child.ID = id
	assert.Equal(t, child, got)
}

func TestChildDefaultsForMissingFields(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemoryStore()
	require.NoError(t, store.Set(ctx, ChildrenCollection, "c1", docstore.Fields{"name": "Ben"}))

	got, err := NewChildRepository(store).GetChild(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, &models.Child{ID: "c1", Name: "Ben"}, got)
}

func TestGetChildMissing(t *testing.T) {
	got, err := NewChildRepository(docstore.NewMemoryStore()).GetChild(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestListChildrenByParent(t *testing.T) {
	ctx := context.Background()
	repo := NewChildRepository(docstore.NewMemoryStore())
	_, err := repo.CreateChild(ctx, &models.Child{Name: "A", ParentID: "p1"})
	require.NoError(t, err)
	_, err = repo.CreateChild(ctx, &models.Child{Name: "B", ParentID: "p2"})
	require.NoError(t, err)

	kids, err := repo.ListChildrenByParent(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, kids, 1)
	assert.Equal(t, "A", kids[0].Name)
}

func TestParentsOnlyListRoleParent(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(docstore.NewMemoryStore())
	require.NoError(t, repo.SetRole(ctx, "admin-1", "admin"))
	require.NoError(t, repo.CreateParent(ctx, &models.Parent{ID: "p1", Name: "Pat", Email: "pat@example.com", ConsentMedia: true}))

	parents, err := repo.ListParents(ctx)
	require.NoError(t, err)
	require.Len(t, parents, 1)
	assert.Equal(t, models.Parent{ID: "p1", Name: "Pat", Email: "pat@example.com", ConsentMedia: true}, parents[0])

	role, err := repo.GetRole(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "parent", role)

	admin, err := repo.GetParent(ctx, "admin-1")
	require.NoError(t, err)
	assert.Nil(t, admin)
}

func TestSetRoleKeepsProfile(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemoryStore()
	repo := NewUserRepository(store)
	require.NoError(t, repo.CreateParent(ctx, &models.Parent{ID: "p1", Name: "Pat", Phone: "555"}))

	require.NoError(t, repo.SetRole(ctx, "p1", "admin"))

	doc, err := store.Get(ctx, UsersCollection, "p1")
	require.NoError(t, err)
	assert.Equal(t, "admin", doc.Fields.String("role"))
	assert.Equal(t, "Pat", doc.Fields.String("name"))
	assert.Equal(t, "555", doc.Fields.String("phone"))

	require.NoError(t, repo.SetRole(ctx, "fresh", "admin"))
	role, err := repo.GetRole(ctx, "fresh")
	require.NoError(t, err)
	assert.Equal(t, "admin", role)
}

func TestUpdateParentKeepsRole(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(docstore.NewMemoryStore())
	require.NoError(t, repo.CreateParent(ctx, &models.Parent{ID: "p1", Name: "Pat"}))

	require.NoError(t, repo.UpdateParent(ctx, "p1", &models.Parent{Name: "Patricia", Phone: "555"}))

	role, err := repo.GetRole(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "parent", role)

	got, err := repo.GetParent(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "Patricia", got.Name)
	assert.Equal(t, "555", got.Phone)
}

func TestGetRoleMissingDocument(t *testing.T) {
	role, err := NewUserRepository(docstore.NewMemoryStore()).GetRole(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Empty(t, role)
}

func TestMarkAttendanceOverwrites(t *testing.T) {
	ctx := context.Background()
	repo := NewAttendanceRepository(docstore.NewMemoryStore())

	_, err := repo.MarkAttendance(ctx, "c1", "2024-05-01", true)
	require.NoError(t, err)
	_, err = repo.MarkAttendance(ctx, "c1", "2024-05-01", false)
	require.NoError(t, err)

	records, err := repo.ListByChild(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "c1_2024-05-01", records[0].ID)
	assert.False(t, records[0].Present)
}

func TestMessagesOptionalParentIDs(t *testing.T) {
	ctx := context.Background()
	repo := NewMessageRepository(docstore.NewMemoryStore())

	announcement := &models.Message{Content: "Closed Monday", Timestamp: "2024-05-01T08:00:00Z"}
	require.NoError(t, repo.CreateMessage(ctx, announcement))
	require.NotEmpty(t, announcement.ID)
	require.NoError(t, repo.CreateMessage(ctx, &models.Message{Content: "Hi", FromParentID: "p1", ToAdmin: true}))

	announcements, err := repo.ListByToAdmin(ctx, false)
	require.NoError(t, err)
	require.Len(t, announcements, 1)
	assert.Empty(t, announcements[0].FromParentID)
	assert.Equal(t, "Closed Monday", announcements[0].Content)

	sent, err := repo.ListFromParent(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, sent, 1)
	assert.True(t, sent[0].ToAdmin)
}

func TestAccountEmailIsCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	repo := NewAccountRepository(docstore.NewMemoryStore())

	account := &models.Account{Email: " Pat@Example.com ", PasswordHash: "hash"}
	require.NoError(t, repo.CreateAccount(ctx, account))
	assert.Equal(t, "pat@example.com", account.Email)

	got, err := repo.GetAccountByEmail(ctx, "PAT@example.COM")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, account.UID, got.UID)

	byID, err := repo.GetAccount(ctx, account.UID)
	require.NoError(t, err)
	assert.Equal(t, "hash", byID.PasswordHash)
}

func TestTeacherAndEventCRUD(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemoryStore()
	teachers := NewTeacherRepository(store)
	events := NewEventRepository(store)

	tid, err := teachers.CreateTeacher(ctx, &models.Teacher{Name: "Mia", AssignedClass: "Ducklings"})
	require.NoError(t, err)
	require.NoError(t, teachers.UpdateTeacher(ctx, tid, &models.Teacher{Name: "Mia", AssignedClass: "Owls"}))
	got, err := teachers.GetTeacher(ctx, tid)
	require.NoError(t, err)
	assert.Equal(t, "Owls", got.AssignedClass)

	eid, err := events.CreateEvent(ctx, &models.Event{Title: "Picnic", Date: "2024-06-01"})
	require.NoError(t, err)
	require.NoError(t, events.DeleteEvent(ctx, eid))
	list, err := events.ListEvents(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	require.NoError(t, teachers.DeleteTeacher(ctx, tid))
	gone, err := teachers.GetTeacher(ctx, tid)
	require.NoError(t, err)
	assert.Nil(t, gone)
}
