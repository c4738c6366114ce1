package dto

import "github.com/google/uuid"

type UpdateRoleRequest struct {
	UserId uuid.UUID
	Role   string `json:"role" validate:"required,oneof=admin leader member guest"`
}

type BanUserRequest struct {
	UserId uuid.UUID
	Banned bool `json:"banned"`
}

type DashboardResponse struct {
	Users         int64 `json:"users"`
	Folders       int64 `json:"folders"`
	Reports       int64 `json:"reports"`
	Drafts        int64 `json:"drafts"`
	Missions      int64 `json:"missions"`
	OpenMissions  int64 `json:"open_missions"`
	Notifications int64 `json:"notifications"`
}
