package unitofwork

import (
	"context"
	"fmt"

	"ops-collab-be/internal/repository/contract"
	"ops-collab-be/internal/repository/implementation"

	"go.mongodb.org/mongo-driver/v2/mongo"
)

type UnitOfWorkImpl struct {
	client *mongo.Client
	db     *mongo.Database
	sess   *mongo.Session
}

func NewUnitOfWork(client *mongo.Client, db *mongo.Database) UnitOfWork {
	return &UnitOfWorkImpl{
		client: client,
		db:     db,
	}
}

// Begin starts a session-backed transaction. Without Begin the repositories
// run their operations unsessioned, which is fine for single-document work.
func (u *UnitOfWorkImpl) Begin(ctx context.Context) error {
	if u.sess != nil {
		return fmt.Errorf("transaction already started")
	}
	sess, err := u.client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	if err := sess.StartTransaction(); err != nil {
		sess.EndSession(ctx)
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	u.sess = sess
	return nil
}

func (u *UnitOfWorkImpl) Commit(ctx context.Context) error {
	if u.sess == nil {
		return fmt.Errorf("no transaction to commit")
	}
	err := u.sess.CommitTransaction(ctx)
	u.sess.EndSession(ctx)
	u.sess = nil
	return err
}

func (u *UnitOfWorkImpl) Rollback(ctx context.Context) error {
	if u.sess == nil {
		return fmt.Errorf("no transaction to rollback")
	}
	err := u.sess.AbortTransaction(ctx)
	u.sess.EndSession(ctx)
	u.sess = nil
	return err
}

// Repository Accessors

func (u *UnitOfWorkImpl) UserRepository() contract.UserRepository {
	return implementation.NewUserRepository(u.db, u.sess)
}

func (u *UnitOfWorkImpl) FolderRepository() contract.FolderRepository {
	return implementation.NewFolderRepository(u.db, u.sess)
}

func (u *UnitOfWorkImpl) ReportRepository() contract.ReportRepository {
	return implementation.NewReportRepository(u.db, u.sess)
}

func (u *UnitOfWorkImpl) DraftRepository() contract.DraftRepository {
	return implementation.NewDraftRepository(u.db, u.sess)
}

func (u *UnitOfWorkImpl) MissionRepository() contract.MissionRepository {
	return implementation.NewMissionRepository(u.db, u.sess)
}

func (u *UnitOfWorkImpl) NotificationRepository() contract.NotificationRepository {
	return implementation.NewNotificationRepository(u.db, u.sess)
}
