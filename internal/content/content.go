package content

import (
	"encoding/json"
	"time"

	contentDatamodel "github.com/frahmantamala/rbac-dashboard/internal/core/datamodel/content"
	"github.com/frahmantamala/rbac-dashboard/internal/core/rbac"
)

type Type string

const (
	TypePost    Type = "post"
	TypeComment Type = "comment"
)

// Status exists in full in the model; the API only ever creates published content.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
)

// RecentWindow is how far back Stats looks for "recent" content.
const RecentWindow = 7 * 24 * time.Hour

type Author struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type ParentRef struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

type Content struct {
	ID              int64      `json:"id"`
	Title           string     `json:"title"`
	Body            string     `json:"content"`
	Type            Type       `json:"type"`
	Status          Status     `json:"status"`
	Tags            []string   `json:"tags"`
	AuthorID        int64      `json:"authorId"`
	Author          *Author    `json:"author"`
	ParentContentID *int64     `json:"parentContentId,omitempty"`
	ParentContent   *ParentRef `json:"parentContent,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

type ListResponse struct {
	Content  []*Content `json:"content"`
	Total    int        `json:"total"`
	UserRole rbac.Role  `json:"userRole"`
}

type ItemResponse struct {
	Content  *Content  `json:"content"`
	UserRole rbac.Role `json:"userRole"`
}

type MutationResponse struct {
	Message string   `json:"message"`
	Content *Content `json:"content"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type Stats struct {
	TotalContent  int64     `json:"totalContent"`
	Posts         int64     `json:"posts"`
	Comments      int64     `json:"comments"`
	RecentContent int64     `json:"recentContent"`
	UserRole      rbac.Role `json:"userRole"`
}

// StatsCounts is what the repository computes for Stats.
type StatsCounts struct {
	Total    int64
	Posts    int64
	Comments int64
	Recent   int64
}

// Filter narrows content queries to what the caller may see.
type Filter struct {
	PublishedOnly bool
}

func FilterFor(role rbac.Role) Filter {
	return Filter{PublishedOnly: !rbac.SeesUnpublished(role)}
}

func FromDataModel(c *contentDatamodel.Content) *Content {
	out := &Content{
		ID:              c.ID,
		Title:           c.Title,
		Body:            c.Body,
		Type:            Type(c.Type),
		Status:          Status(c.Status),
		Tags:            decodeTags(c.Tags),
		AuthorID:        c.AuthorID,
		ParentContentID: c.ParentID,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
	if c.Author != nil {
		out.Author = &Author{ID: c.Author.ID, Username: c.Author.Username, Email: c.Author.Email}
	}
	if c.Parent != nil {
		out.ParentContent = &ParentRef{ID: c.Parent.ID, Title: c.Parent.Title}
	}
	return out
}

func encodeTags(tags []string) []byte {
	if tags == nil {
		tags = []string{}
	}
	raw, _ := json.Marshal(tags)
	return raw
}

func decodeTags(raw []byte) []string {
	tags := []string{}
	if len(raw) == 0 {
		return tags
	}
	if err := json.Unmarshal(raw, &tags); err != nil {
		return []string{}
	}
	return tags
}
