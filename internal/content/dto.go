package content

import (
	"strings"

	"github.com/frahmantamala/rbac-dashboard/internal"
	"github.com/frahmantamala/rbac-dashboard/internal/core/common/validation"
)

const (
	TitleMaxLength = 200
	MaxTags        = 20
	TagMaxLength   = 50
)

type CreateContentDTO struct {
	Title         string   `json:"title"`
	Content       string   `json:"content"`
	Type          string   `json:"type"`
	Tags          []string `json:"tags"`
	ParentContent *int64   `json:"parentContent,omitempty"`
}

func (d *CreateContentDTO) Normalize() {
	d.Title = strings.TrimSpace(d.Title)
	d.Type = strings.TrimSpace(d.Type)
	d.Tags = normalizeTags(d.Tags)
}

func (d CreateContentDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("title", d.Title).Required().MinLength(1).MaxLength(TitleMaxLength)
	v.Field("content", d.Content).NonEmpty()
	v.Field("type", d.Type).Required().OneOf(internal.ErrCodeValidationFailed, string(TypePost), string(TypeComment))
	v.Field("tags", d.Tags).Custom(validateTags)
	return v.Validate()
}

// UpdateContentDTO is a partial update: nil fields are left as they are.
// An explicit empty tags array clears the tags.
type UpdateContentDTO struct {
	Title   *string  `json:"title,omitempty"`
	Content *string  `json:"content,omitempty"`
	Tags    []string `json:"tags,omitempty"`
}

func (d *UpdateContentDTO) Normalize() {
	if d.Title != nil {
		t := strings.TrimSpace(*d.Title)
		d.Title = &t
	}
	if d.Tags != nil {
		d.Tags = normalizeTags(d.Tags)
	}
}

func (d UpdateContentDTO) Validate() error {
	v := validation.NewValidator()
	if d.Title != nil {
		v.Field("title", d.Title).Required().MinLength(1).MaxLength(TitleMaxLength)
	}
	if d.Content != nil {
		v.Field("content", d.Content).NonEmpty()
	}
	v.Field("tags", d.Tags).Custom(validateTags)
	return v.Validate()
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func validateTags(value interface{}) *internal.ValidationError {
	tags, _ := value.([]string)
	if len(tags) > MaxTags {
		return &internal.ValidationError{Field: "tags", Message: "tags must not have more than 20 entries", Code: string(internal.ErrCodeValidationFailed)}
	}
	for _, t := range tags {
		if len([]rune(t)) > TagMaxLength {
			return &internal.ValidationError{Field: "tags", Message: "each tag must not exceed 50 characters", Code: string(internal.ErrCodeValidationFailed)}
		}
	}
	return nil
}
