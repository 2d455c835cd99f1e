package shared_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/phrazzld/physref/internal/api/shared"
	"github.com/phrazzld/physref/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceID(t *testing.T) {
	t.Parallel()

	assert.Empty(t, shared.GetTraceID(context.Background()))

	a := shared.GetTraceID(shared.SetTraceID(context.Background()))
	b := shared.GetTraceID(shared.SetTraceID(context.Background()))
	assert.Len(t, a, 2*shared.TraceIDLength)
	assert.NotEqual(t, a, b)
}

func TestUserIDAndNotices(t *testing.T) {
	t.Parallel()

	_, ok := shared.GetUserID(context.Background())
	assert.False(t, ok)

	ctx := shared.WithUserID(context.Background(), 9)
	id, ok := shared.GetUserID(ctx)
	assert.True(t, ok)
	assert.Equal(t, int64(9), id)

	assert.Nil(t, shared.GetNotices(ctx))
	notices := []domain.Notice{{Category: domain.NoticeInfo, Message: "hello"}}
	assert.Equal(t, notices, shared.GetNotices(shared.WithNotices(ctx, notices)))
}

func postForm(t *testing.T, values url.Values) *http.Request {
	t.Helper()
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	require.NoError(t, shared.ParseForm(httptest.NewRecorder(), r))
	return r
}

func TestFormFloat(t *testing.T) {
	t.Parallel()

	r := postForm(t, url.Values{
		"mass":     {" 2.5 "},
		"blank":    {""},
		"exp":      {"1e-6"},
		"text":     {"abc"},
		"inf":      {"Inf"},
		"nan":      {"NaN"},
		"negative": {"-3"},
	})

	v, err := shared.FormFloat(r, "mass")
	require.NoError(t, err)
	assert.Equal(t, 2.5, *v)

	v, err = shared.FormFloat(r, "exp")
	require.NoError(t, err)
	assert.Equal(t, 1e-6, *v)

	v, err = shared.FormFloat(r, "negative")
	require.NoError(t, err)
	assert.Equal(t, -3.0, *v)

	for _, name := range []string{"blank", "missing"} {
		v, err = shared.FormFloat(r, name)
		assert.NoError(t, err, name)
		assert.Nil(t, v, name)
	}

	for _, name := range []string{"text", "inf", "nan"} {
		_, err = shared.FormFloat(r, name)
		assert.Error(t, err, name)
	}
}

func TestSubmittedAndFormString(t *testing.T) {
	t.Parallel()

	r := postForm(t, url.Values{"calculate_force": {""}, "username": {"  alice "}})
	assert.True(t, shared.Submitted(r, "calculate_force"))
	assert.False(t, shared.Submitted(r, "calculate_energy"))
	assert.Equal(t, "alice", shared.FormString(r, "username"))
}

func TestParseFormTooLarge(t *testing.T) {
	t.Parallel()

	body := "username=" + strings.Repeat("a", shared.MaxFormBytes+1)
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	assert.Error(t, shared.ParseForm(httptest.NewRecorder(), r))
}
