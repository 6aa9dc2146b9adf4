package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/miniblog/internal/api/middleware"
	"github.com/d60-Lab/miniblog/internal/form"
	"github.com/d60-Lab/miniblog/internal/model"
	"github.com/d60-Lab/miniblog/internal/service"
	"github.com/d60-Lab/miniblog/pkg/response"
)

// Index 全站信息流，newest-first 分页
func (h *Handler) Index(c *gin.Context) {
	page, err := h.posts.ListAll(c.Request.Context(), c.Query("page"))
	if err != nil {
		response.ServerError(c, err)
		return
	}
	response.HTML(c, http.StatusOK, "index.html", gin.H{"page_obj": page})
}

// GroupPosts 分组信息流；slug 不存在返回 404
func (h *Handler) GroupPosts(c *gin.Context) {
	group, page, err := h.posts.ListByGroup(c.Request.Context(), c.Param("slug"), c.Query("page"))
	if err != nil {
		if errors.Is(err, service.ErrGroupNotFound) {
			response.NotFound(c)
			return
		}
		response.ServerError(c, err)
		return
	}
	response.HTML(c, http.StatusOK, "group_list.html", gin.H{
		"group":    group,
		"page_obj": page,
	})
}

// Profile 作者信息流，附作者帖子总数
func (h *Handler) Profile(c *gin.Context) {
	author, page, err := h.posts.ListByAuthor(c.Request.Context(), c.Param("username"), c.Query("page"))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c)
			return
		}
		response.ServerError(c, err)
		return
	}
	response.HTML(c, http.StatusOK, "profile.html", gin.H{
		"author":     author,
		"page_obj":   page,
		"post_count": page.TotalItems,
	})
}

// PostDetail 单帖页，附同作者帖子总数
func (h *Handler) PostDetail(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		response.NotFound(c)
		return
	}
	post, authorPosts, err := h.posts.Detail(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			response.NotFound(c)
			return
		}
		response.ServerError(c, err)
		return
	}
	response.HTML(c, http.StatusOK, "post_detail.html", gin.H{
		"post":       post,
		"post_count": authorPosts,
	})
}

// PostCreate 发帖。未登录跳转登录页；校验失败原页重渲染，不落库。
func (h *Handler) PostCreate(c *gin.Context) {
	user := middleware.UserFrom(c)
	if user == nil {
		response.Redirect(c, "/auth/login/")
		return
	}
	if c.Request.Method == http.MethodGet {
		h.renderPostForm(c, postFormView{}, false, 0)
		return
	}

	f := form.BindPost(c)
	in, fieldErrs, err := f.Validate(c.Request.Context(), h.groups, nil)
	if err != nil {
		response.ServerError(c, err)
		return
	}
	if fieldErrs != nil {
		h.renderPostForm(c, viewFromForm(f, fieldErrs), false, 0)
		return
	}

	imagePath, ok := h.saveImage(c, in)
	if !ok {
		return
	}
	if _, err := h.posts.Create(c.Request.Context(), user, in, imagePath); err != nil {
		response.ServerError(c, err)
		return
	}
	response.Redirect(c, "/profile/"+user.Username+"/")
}

// PostEdit 编辑。非作者静默跳回详情页，帖子不变；pub_date/author 不动。
func (h *Handler) PostEdit(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		response.NotFound(c)
		return
	}
	post, _, err := h.posts.Detail(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			response.NotFound(c)
			return
		}
		response.ServerError(c, err)
		return
	}
	detailURL := fmt.Sprintf("/posts/%d/", post.ID)

	user := middleware.UserFrom(c)
	if user == nil || post.AuthorID != user.ID {
		response.Redirect(c, detailURL)
		return
	}

	if c.Request.Method == http.MethodGet {
		h.renderPostForm(c, viewFromPost(post), true, post.ID)
		return
	}

	f := form.BindPost(c)
	in, fieldErrs, err := f.Validate(c.Request.Context(), h.groups, post)
	if err != nil {
		response.ServerError(c, err)
		return
	}
	if fieldErrs != nil {
		h.renderPostForm(c, viewFromForm(f, fieldErrs), true, post.ID)
		return
	}

	imagePath, ok := h.saveImage(c, in)
	if !ok {
		return
	}
	if _, err := h.posts.Edit(c.Request.Context(), user, id, in, imagePath); err != nil {
		if errors.Is(err, service.ErrNotAuthor) {
			response.Redirect(c, detailURL)
			return
		}
		response.ServerError(c, err)
		return
	}
	response.Redirect(c, detailURL)
}

// postFormView 表单回显数据
type postFormView struct {
	Text   string
	Group  string
	Errors form.FieldErrors
}

func viewFromForm(f *form.PostForm, errs form.FieldErrors) postFormView {
	v := postFormView{Errors: errs}
	if f.Text != nil {
		v.Text = *f.Text
	}
	if f.Group != nil {
		v.Group = *f.Group
	}
	return v
}

func viewFromPost(post *model.Post) postFormView {
	v := postFormView{Text: post.Text}
	if post.GroupID != nil {
		v.Group = strconv.FormatUint(uint64(*post.GroupID), 10)
	}
	return v
}

func (h *Handler) renderPostForm(c *gin.Context, view postFormView, isEdit bool, postID uint) {
	groups, err := h.posts.Groups(c.Request.Context())
	if err != nil {
		response.ServerError(c, err)
		return
	}
	response.HTML(c, http.StatusOK, "create_post.html", gin.H{
		"form":    view,
		"groups":  groups,
		"is_edit": isEdit,
		"post_id": postID,
	})
}

func (h *Handler) saveImage(c *gin.Context, in *form.PostInput) (string, bool) {
	if in.Image == nil {
		return "", true
	}
	path, err := h.media.SavePost(in.Image)
	if err != nil {
		response.ServerError(c, err)
		return "", false
	}
	return path, true
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}
