package binder_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luckyblinds/site/pkg/binder"
)

type inner struct {
	Name  string `json:"name" form:"name"`
	Email string `json:"email" form:"email"`
}

type payload struct {
	inner
	FormID  string   `json:"formId" form:"form_id"`
	Consent bool     `form:"consent"`
	Count   int      `form:"count"`
	Tags    []string `form:"tag"`
	Skip    string   `form:"-"`
}

func TestJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		contentType string
		body        string
		wantErr     error
	}{
		{"valid", "application/json", `{"name":"Jane","email":"jane@example.com"}`, nil},
		{"charset param", "application/json; charset=utf-8", `{"name":"Jane"}`, nil},
		{"missing content type", "", `{}`, binder.ErrMissingContentType},
		{"wrong media type", "text/plain", `{}`, binder.ErrUnsupportedMediaType},
		{"unknown field", "application/json", `{"name":"Jane","admin":true}`, binder.ErrFailedToParseJSON},
		{"trailing data", "application/json", `{"name":"Jane"}{"name":"Joe"}`, binder.ErrFailedToParseJSON},
		{"empty body", "application/json", ``, binder.ErrFailedToParseJSON},
		{"malformed", "application/json", `{"name":`, binder.ErrFailedToParseJSON},
		{"too large", "application/json", `{"name":"` + strings.Repeat("a", binder.DefaultMaxJSONSize) + `"}`, binder.ErrFailedToParseJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(tt.body))
			if tt.contentType != "" {
				r.Header.Set("Content-Type", tt.contentType)
			}

			var got inner
			err := binder.JSON()(r, &got)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Jane", got.Name)
		})
	}
}

func TestForm(t *testing.T) {
	t.Parallel()

	t.Run("urlencoded", func(t *testing.T) {
		t.Parallel()
		body := "name=Jane+Doe&email=jane%40example.com&form_id=abc&consent=on&count=3&tag=a&tag=b&Skip=x"
		r := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(body))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		var got payload
		require.NoError(t, binder.Form()(r, &got))
		assert.Equal(t, "Jane Doe", got.Name)
		assert.Equal(t, "jane@example.com", got.Email)
		assert.Equal(t, "abc", got.FormID)
		assert.True(t, got.Consent)
		assert.Equal(t, 3, got.Count)
		assert.Equal(t, []string{"a", "b"}, got.Tags)
		assert.Empty(t, got.Skip)
	})

	t.Run("multipart", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		require.NoError(t, mw.WriteField("name", "Jane"))
		require.NoError(t, mw.Close())

		r := httptest.NewRequest(http.MethodPost, "/contact", &buf)
		r.Header.Set("Content-Type", mw.FormDataContentType())

		var got payload
		require.NoError(t, binder.Form()(r, &got))
		assert.Equal(t, "Jane", got.Name)
	})

	t.Run("not applicable", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(`{}`))
		r.Header.Set("Content-Type", "application/json")
		assert.ErrorIs(t, binder.Form()(r, &payload{}), binder.ErrBinderNotApplicable)

		r = httptest.NewRequest(http.MethodGet, "/contact?name=x", nil)
		assert.ErrorIs(t, binder.Form()(r, &payload{}), binder.ErrBinderNotApplicable)
	})

	t.Run("bad int", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader("count=many"))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		assert.ErrorIs(t, binder.Form()(r, &payload{}), binder.ErrFailedToParseForm)
	})

	t.Run("invalid target", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader("name=x"))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		var s string
		assert.ErrorIs(t, binder.Form()(r, &s), binder.ErrInvalidTarget)
	})
}

func TestSignals(t *testing.T) {
	t.Parallel()

	t.Run("datastar post", func(t *testing.T) {
		t.Parallel()
		body := `{"name":"Jane","email":"jane@example.com","formId":"f-1","submitting":true}`
		r := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(body))
		r.Header.Set("Datastar-Request", "true")
		r.Header.Set("Content-Type", "application/json")

		var got payload
		require.NoError(t, binder.Signals()(r, &got))
		assert.Equal(t, "Jane", got.Name)
		assert.Equal(t, "f-1", got.FormID)
	})

	t.Run("malformed signals", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(`{"name":`))
		r.Header.Set("Datastar-Request", "true")
		assert.ErrorIs(t, binder.Signals()(r, &payload{}), binder.ErrFailedToReadSignals)
	})

	t.Run("body over the cap", func(t *testing.T) {
		t.Parallel()
		body := `{"name":"` + strings.Repeat("a", binder.DefaultMaxJSONSize) + `"}`
		r := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(body))
		r.Header.Set("Datastar-Request", "true")
		r.Header.Set("Content-Type", "application/json")

		var got payload
		err := binder.Signals()(r, &got)
		assert.ErrorIs(t, err, binder.ErrFailedToReadSignals)
		assert.ErrorContains(t, err, "body too large")
		assert.Empty(t, got.Name)
	})

	t.Run("body at the cap", func(t *testing.T) {
		t.Parallel()
		prefix, suffix := `{"name":"`, `"}`
		name := strings.Repeat("a", binder.DefaultMaxJSONSize-len(prefix)-len(suffix))
		r := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(prefix+name+suffix))
		r.Header.Set("Datastar-Request", "true")
		r.Header.Set("Content-Type", "application/json")

		var got payload
		require.NoError(t, binder.Signals()(r, &got))
		assert.Len(t, got.Name, len(name))
	})

	t.Run("plain request", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader("name=x"))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		assert.ErrorIs(t, binder.Signals()(r, &payload{}), binder.ErrBinderNotApplicable)
	})
}
