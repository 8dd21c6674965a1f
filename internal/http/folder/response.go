package folder

import (
	"time"

	"github.com/google/uuid"

	"github.com/stockroomhq/stockroom/internal/folder"
)

type folderResponse struct {
	ID        uuid.UUID        `json:"id"`
	Name      string           `json:"name"`
	Currency  string           `json:"currency"`
	CreatedAt time.Time        `json:"created_at"`
	Members   []memberResponse `json:"members,omitempty"`
}

type memberResponse struct {
	UserID   uuid.UUID    `json:"user_id"`
	Email    string       `json:"email"`
	FullName string       `json:"full_name"`
	Roles    rolesPayload `json:"roles"`
}

type rolesPayload struct {
	View       bool `json:"is_view"`
	AddItem    bool `json:"is_add_item"`
	DeleteItem bool `json:"is_delete_item"`
	Edit       bool `json:"is_edit"`
	Invite     bool `json:"is_invite"`
	Manager    bool `json:"is_manager"`
	Admin      bool `json:"is_admin"`
}

func (p rolesPayload) toRoles() folder.Roles {
	return folder.Roles{
		View:       p.View,
		AddItem:    p.AddItem,
		DeleteItem: p.DeleteItem,
		Edit:       p.Edit,
		Invite:     p.Invite,
		Manager:    p.Manager,
		Admin:      p.Admin,
	}
}

func fromRoles(r folder.Roles) rolesPayload {
	return rolesPayload{
		View:       r.View,
		AddItem:    r.AddItem,
		DeleteItem: r.DeleteItem,
		Edit:       r.Edit,
		Invite:     r.Invite,
		Manager:    r.Manager,
		Admin:      r.Admin,
	}
}

func toResponse(f *folder.Folder) folderResponse {
	return folderResponse{
		ID:        f.ID,
		Name:      f.Name,
		Currency:  f.Currency,
		CreatedAt: f.CreatedAt,
		Members:   toMemberResponseList(f.Members),
	}
}

func toResponseList(folders []*folder.Folder) []folderResponse {
	out := make([]folderResponse, 0, len(folders))
	for _, f := range folders {
		out = append(out, toResponse(f))
	}

	return out
}

func toMemberResponseList(members []folder.Member) []memberResponse {
	out := make([]memberResponse, 0, len(members))
	for _, m := range members {
		out = append(out, memberResponse{
			UserID:   m.UserID,
			Email:    m.Email,
			FullName: m.FullName,
			Roles:    fromRoles(m.Roles),
		})
	}

	return out
}
