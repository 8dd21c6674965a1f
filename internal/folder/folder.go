package folder

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound         = errors.New("folder not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrAlreadyMember    = errors.New("user is already a member")
)

// Folder is a named collection of items with its own membership.
type Folder struct {
	ID        uuid.UUID
	Name      string
	Currency  string
	CreatedAt time.Time
	Members   []Member
}

// Member is a user participating in a folder with a folder-scoped role set.
type Member struct {
	UserID   uuid.UUID
	Email    string
	FullName string
	Roles    Roles
}

// Roles is the per-folder capability set of a member. Flags are independent;
// Admin implies everything at the capability level, not at the flag level.
type Roles struct {
	View       bool
	AddItem    bool
	DeleteItem bool
	Edit       bool
	Invite     bool
	Manager    bool
	Admin      bool
}

func (r Roles) CanRevert() bool  { return r.Admin || r.Manager || r.Edit }
func (r Roles) CanAddItem() bool { return r.Admin || r.AddItem }
func (r Roles) CanDelete() bool { return r.Admin || r.DeleteItem }
func (r Roles) CanClone() bool  { return r.Admin || r.AddItem }
func (r Roles) CanInvite() bool { return r.Admin || r.Invite }
func (r Roles) CanEdit() bool   { return r.Admin || r.Manager || r.Edit }

// AdminRoles is the role set granted to a folder's creator.
func AdminRoles() Roles {
	return Roles{
		View:       true,
		AddItem:    true,
		DeleteItem: true,
		Edit:       true,
		Invite:     true,
		Manager:    true,
		Admin:      true,
	}
}
