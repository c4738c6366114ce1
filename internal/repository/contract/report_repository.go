package contract

import (
	"context"

	"ops-collab-be/internal/entity"
	"ops-collab-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ReportRepository interface {
	Create(ctx context.Context, report *entity.Report) error
	Update(ctx context.Context, report *entity.Report) error
	// Delete soft-deletes; the document stays until purged.
	Delete(ctx context.Context, id uuid.UUID) error
	Purge(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Report, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Report, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

type DraftRepository interface {
	Create(ctx context.Context, draft *entity.Draft) error
	Update(ctx context.Context, draft *entity.Draft) error
	Delete(ctx context.Context, id uuid.UUID) error
	// DeleteWhere hard-deletes all drafts matching the specs and returns
	// how many went. The janitor uses it with UpdatedBefore.
	DeleteWhere(ctx context.Context, specs ...specification.Specification) (int64, error)
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Draft, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Draft, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
