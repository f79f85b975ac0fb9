package repository

// Collection names shared by every backend
const (
	UsersCollection      = "Users"
	AccountsCollection   = "Accounts"
	TeachersCollection   = "Teachers"
	ChildrenCollection   = "Children"
	EventsCollection     = "Events"
	AttendanceCollection = "Attendance"
	MessagesCollection   = "Messages"
)

// Collections lists every collection in backup order
var Collections = []string{
	UsersCollection,
	AccountsCollection,
	TeachersCollection,
	ChildrenCollection,
	EventsCollection,
	AttendanceCollection,
	MessagesCollection,
}
