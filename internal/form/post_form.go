package form

import (
	"context"
	"errors"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"github.com/d60-Lab/miniblog/internal/model"
)

var validate = validator.New()

// GroupLookup resolves a submitted group id against existing groups.
type GroupLookup interface {
	FindByID(ctx context.Context, id uint) (*model.Group, error)
}

// PostForm 用户提交的原始表单。nil 字段表示该字段未提交，
// 编辑时用当前帖子的值兜底。
type PostForm struct {
	Text  *string
	Group *string
	Image *multipart.FileHeader
}

// PostInput is a validated value bundle, ready to persist. Validation never
// persists anything itself so callers can attach derived fields (author)
// before saving.
type PostInput struct {
	Text    string
	GroupID *uint
	Image   *multipart.FileHeader
}

// FieldErrors 字段级校验错误
type FieldErrors map[string]string

func (e FieldErrors) Get(field string) string { return e[field] }

// BindPost reads the post form fields from the request, distinguishing
// omitted fields from empty ones.
func BindPost(c *gin.Context) *PostForm {
	f := &PostForm{}
	if v, ok := c.GetPostForm("text"); ok {
		f.Text = &v
	}
	if v, ok := c.GetPostForm("group"); ok {
		f.Group = &v
	}
	if fh, err := c.FormFile("image"); err == nil {
		f.Image = fh
	}
	return f
}

type postFields struct {
	Text string `validate:"required"`
}

// Validate checks the submission against the model's constraints. current
// seeds defaults for omitted fields when editing (nil for a new post).
// Returns either a validated input or per-field errors; the error return is
// for lookup failures only, never for bad user input.
func (f *PostForm) Validate(ctx context.Context, groups GroupLookup, current *model.Post) (*PostInput, FieldErrors, error) {
	fieldErrs := FieldErrors{}

	text := ""
	switch {
	case f.Text != nil:
		text = *f.Text
	case current != nil:
		text = current.Text
	}
	text = strings.TrimSpace(text)
	if err := validate.Struct(postFields{Text: text}); err != nil {
		fieldErrs["text"] = "This field is required."
	}

	var groupID *uint
	switch {
	case f.Group == nil:
		if current != nil {
			groupID = current.GroupID
		}
	case strings.TrimSpace(*f.Group) == "" || *f.Group == "0":
		// explicit "no group"
	default:
		id, err := strconv.ParseUint(strings.TrimSpace(*f.Group), 10, 32)
		if err != nil {
			fieldErrs["group"] = "Select a valid group."
			break
		}
		gid := uint(id)
		if _, err := groups.FindByID(ctx, gid); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				fieldErrs["group"] = "Select a valid group."
				break
			}
			return nil, nil, err
		}
		groupID = &gid
	}

	if len(fieldErrs) > 0 {
		return nil, fieldErrs, nil
	}
	return &PostInput{Text: text, GroupID: groupID, Image: f.Image}, nil, nil
}
