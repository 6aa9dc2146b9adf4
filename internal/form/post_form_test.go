package form

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/d60-Lab/miniblog/internal/model"
)

type fakeGroups map[uint]*model.Group

func (f fakeGroups) FindByID(_ context.Context, id uint) (*model.Group, error) {
	if g, ok := f[id]; ok {
		return g, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func strPtr(s string) *string { return &s }

func uintPtr(u uint) *uint { return &u }

func TestValidateRejectsEmptyText(t *testing.T) {
	groups := fakeGroups{}
	for _, text := range []string{"", "   ", "\n\t"} {
		f := &PostForm{Text: strPtr(text)}
		in, errs, err := f.Validate(context.Background(), groups, nil)
		require.NoError(t, err)
		require.Nil(t, in)
		require.Contains(t, errs, "text")
	}
}

func TestValidateTextOnly(t *testing.T) {
	f := &PostForm{Text: strPtr("  hello world  ")}
	in, errs, err := f.Validate(context.Background(), fakeGroups{}, nil)
	require.NoError(t, err)
	require.Nil(t, errs)
	require.Equal(t, "hello world", in.Text)
	require.Nil(t, in.GroupID)
	require.Nil(t, in.Image)
}

func TestValidateGroup(t *testing.T) {
	groups := fakeGroups{2: {ID: 2, Title: "Travel", Slug: "travel"}}

	in, errs, err := (&PostForm{Text: strPtr("x"), Group: strPtr("2")}).Validate(context.Background(), groups, nil)
	require.NoError(t, err)
	require.Nil(t, errs)
	require.Equal(t, uint(2), *in.GroupID)

	for _, raw := range []string{"7", "abc", "-1"} {
		_, errs, err := (&PostForm{Text: strPtr("x"), Group: strPtr(raw)}).Validate(context.Background(), groups, nil)
		require.NoError(t, err, raw)
		require.Contains(t, errs, "group", raw)
	}

	for _, raw := range []string{"", "0", "  "} {
		in, errs, err := (&PostForm{Text: strPtr("x"), Group: strPtr(raw)}).Validate(context.Background(), groups, nil)
		require.NoError(t, err, raw)
		require.Nil(t, errs, raw)
		require.Nil(t, in.GroupID, raw)
	}
}

func TestValidateSeedsDefaultsOnEdit(t *testing.T) {
	groups := fakeGroups{1: {ID: 1}, 2: {ID: 2}}
	current := &model.Post{ID: 5, Text: "original", GroupID: uintPtr(1)}

	// omitted fields fall back to the current record
	in, errs, err := (&PostForm{}).Validate(context.Background(), groups, current)
	require.NoError(t, err)
	require.Nil(t, errs)
	require.Equal(t, "original", in.Text)
	require.Equal(t, uint(1), *in.GroupID)

	// submitted fields win
	in, errs, err = (&PostForm{Text: strPtr("edited"), Group: strPtr("2")}).Validate(context.Background(), groups, current)
	require.NoError(t, err)
	require.Nil(t, errs)
	require.Equal(t, "edited", in.Text)
	require.Equal(t, uint(2), *in.GroupID)

	// explicit "no group" clears the default
	in, errs, err = (&PostForm{Text: strPtr("edited"), Group: strPtr("")}).Validate(context.Background(), groups, current)
	require.NoError(t, err)
	require.Nil(t, errs)
	require.Nil(t, in.GroupID)
}
