package unitofwork

import (
	"context"

	"ops-collab-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	UserRepository() contract.UserRepository
	FolderRepository() contract.FolderRepository
	ReportRepository() contract.ReportRepository
	DraftRepository() contract.DraftRepository
	MissionRepository() contract.MissionRepository
	NotificationRepository() contract.NotificationRepository
}
