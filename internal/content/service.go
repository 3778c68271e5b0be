package content

import (
	"context"
	"log/slog"
	"time"

	"github.com/frahmantamala/rbac-dashboard/internal"
	"github.com/frahmantamala/rbac-dashboard/internal/activitylog"
	contentDatamodel "github.com/frahmantamala/rbac-dashboard/internal/core/datamodel/content"
	"github.com/frahmantamala/rbac-dashboard/internal/core/rbac"
)

// RepositoryAPI returns (nil, nil) from GetByID when nothing matches.
// Reads populate Author and Parent.
type RepositoryAPI interface {
	List(ctx context.Context, filter Filter) ([]*contentDatamodel.Content, error)
	GetByID(ctx context.Context, id int64) (*contentDatamodel.Content, error)
	Create(ctx context.Context, c *contentDatamodel.Content) error
	Update(ctx context.Context, c *contentDatamodel.Content) error
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context, filter Filter, since time.Time) (*StatsCounts, error)
}

type Service struct {
	repo   RepositoryAPI
	audit  activitylog.RecorderAPI
	logger *slog.Logger
	now    func() time.Time
}

func NewService(repo RepositoryAPI, audit activitylog.RecorderAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		audit:  audit,
		logger: logger,
		now:    time.Now,
	}
}

// List returns the content visible to the actor, newest first.
func (s *Service) List(ctx context.Context, actor *internal.User) (*ListResponse, error) {
	rows, err := s.repo.List(ctx, FilterFor(actor.Role))
	if err != nil {
		s.logger.Error("failed to list content", "error", err)
		return nil, internal.NewInternalError("Failed to fetch content", err)
	}

	items := make([]*Content, 0, len(rows))
	for _, row := range rows {
		items = append(items, FromDataModel(row))
	}

	return &ListResponse{
		Content:  items,
		Total:    len(items),
		UserRole: actor.Role,
	}, nil
}

func (s *Service) Get(ctx context.Context, actor *internal.User, id int64) (*Content, error) {
	row, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if Status(row.Status) != StatusPublished && !rbac.SeesUnpublished(actor.Role) {
		return nil, internal.ErrContentNotPublished
	}
	return FromDataModel(row), nil
}

// Create always publishes and always attributes the content to the actor.
func (s *Service) Create(ctx context.Context, actor *internal.User, dto CreateContentDTO) (*Content, error) {
	dto.Normalize()
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if dto.ParentContent != nil {
		parent, err := s.repo.GetByID(ctx, *dto.ParentContent)
		if err != nil {
			return nil, internal.NewInternalError("Failed to create content", err)
		}
		if parent == nil {
			return nil, internal.ErrParentNotFound
		}
	}

	row := &contentDatamodel.Content{
		Title:    dto.Title,
		Body:     dto.Content,
		Type:     dto.Type,
		Status:   string(StatusPublished),
		Tags:     encodeTags(dto.Tags),
		AuthorID: actor.ID,
		ParentID: dto.ParentContent,
	}
	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Error("failed to create content", "error", err, "author_id", actor.ID)
		return nil, internal.NewInternalError("Failed to create content", err)
	}

	s.audit.Record(ctx, actor.ID, activitylog.ActionCreateContent, activitylog.ResourceContent, map[string]any{
		"contentId": row.ID,
		"title":     row.Title,
		"type":      row.Type,
	})

	return s.reload(ctx, row)
}

// Update applies a partial change. Only the author may update, admins included.
func (s *Service) Update(ctx context.Context, actor *internal.User, id int64, dto UpdateContentDTO) (*Content, error) {
	dto.Normalize()
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	row, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !rbac.CanModifyContent(actor.ID, row.AuthorID) {
		return nil, internal.ErrNotContentOwner
	}

	if dto.Title != nil {
		row.Title = *dto.Title
	}
	if dto.Content != nil {
		row.Body = *dto.Content
	}
	if dto.Tags != nil {
		row.Tags = encodeTags(dto.Tags)
	}
	row.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, row); err != nil {
		s.logger.Error("failed to update content", "error", err, "content_id", id)
		return nil, internal.NewInternalError("Failed to update content", err)
	}

	s.audit.Record(ctx, actor.ID, activitylog.ActionUpdateContent, activitylog.ResourceContent, map[string]any{
		"contentId": row.ID,
		"title":     row.Title,
		"type":      row.Type,
	})

	return s.reload(ctx, row)
}

// Delete removes content. Only the author may delete, admins included.
func (s *Service) Delete(ctx context.Context, actor *internal.User, id int64) error {
	row, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if !rbac.CanModifyContent(actor.ID, row.AuthorID) {
		return internal.ErrNotContentOwner
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete content", "error", err, "content_id", id)
		return internal.NewInternalError("Failed to delete content", err)
	}

	s.audit.Record(ctx, actor.ID, activitylog.ActionDeleteContent, activitylog.ResourceContent, map[string]any{
		"contentId": row.ID,
		"title":     row.Title,
		"type":      row.Type,
	})
	return nil
}

// Stats counts the content visible to the actor.
func (s *Service) Stats(ctx context.Context, actor *internal.User) (*Stats, error) {
	counts, err := s.repo.Stats(ctx, FilterFor(actor.Role), s.now().UTC().Add(-RecentWindow))
	if err != nil {
		s.logger.Error("failed to compute content stats", "error", err)
		return nil, internal.NewInternalError("Failed to fetch content statistics", err)
	}

	return &Stats{
		TotalContent:  counts.Total,
		Posts:         counts.Posts,
		Comments:      counts.Comments,
		RecentContent: counts.Recent,
		UserRole:      actor.Role,
	}, nil
}

func (s *Service) load(ctx context.Context, id int64) (*contentDatamodel.Content, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, internal.NewInternalError("Failed to fetch content", err)
	}
	if row == nil {
		return nil, internal.ErrContentNotFound
	}
	return row, nil
}

// reload fetches the row again so the response carries populated relations.
func (s *Service) reload(ctx context.Context, row *contentDatamodel.Content) (*Content, error) {
	fresh, err := s.repo.GetByID(ctx, row.ID)
	if err != nil || fresh == nil {
		s.logger.Warn("content written but reload failed", "content_id", row.ID, "error", err)
		return FromDataModel(row), nil
	}
	return FromDataModel(fresh), nil
}
