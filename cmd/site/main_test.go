package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	contactmod "github.com/luckyblinds/site/modules/contact"
	"github.com/luckyblinds/site/pkg/email"
	"github.com/luckyblinds/site/pkg/httpserver"
	"github.com/luckyblinds/site/pkg/logger"
	"github.com/luckyblinds/site/svc/catalog"
	"github.com/luckyblinds/site/svc/contact"
	"github.com/luckyblinds/site/svc/contact/form"
)

func newTestRouter(t *testing.T) (http.Handler, string) {
	t.Helper()
	dir := t.TempDir()
	h, err := newRouter(deps{
		log:     logger.Discard(),
		catalog: catalog.MustLoad(),
		sender:  email.NewDevSender(dir),
		form:    contactmod.Config{InFlightTTL: time.Minute},
		contact: contact.Config{Recipient: "owner@example.com"},
	})
	require.NoError(t, err)
	return h, dir
}

func TestRouter_Pages(t *testing.T) {
	t.Parallel()
	h, _ := newTestRouter(t)

	tests := []struct {
		path   string
		status int
		want   string
	}{
		{path: "/healthz", status: http.StatusOK, want: "ALIVE"},
		{path: "/readyz", status: http.StatusOK, want: "ALIVE"},
		{path: "/", status: http.StatusOK, want: `id="contact-form"`},
		{path: "/products/2", status: http.StatusOK, want: "<!DOCTYPE html>"},
		{path: "/static/site.css", status: http.StatusOK, want: ".quick-look"},
		{path: "/no-such-page", status: http.StatusNotFound, want: "We couldn&#39;t find that page."},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.want)
			assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
		})
	}
}

func TestRouter_ContactAPISendsOneEmail(t *testing.T) {
	t.Parallel()
	h, dir := newTestRouter(t)

	body := `{"name":"Jane Doe","phone":"2505550123","email":"jane@example.com","message":"Line one\nLine two"}`
	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"data":{"success":true}}`, rec.Body.String())

	metas, err := filepath.Glob(filepath.Join(dir, "*.json"))
	require.NoError(t, err)
	require.Len(t, metas, 1)

	raw, err := os.ReadFile(metas[0])
	require.NoError(t, err)
	var meta struct {
		SendTo  string `json:"send_to"`
		ReplyTo string `json:"reply_to"`
		Subject string `json:"subject"`
		Tag     string `json:"tag"`
	}
	require.NoError(t, json.Unmarshal(raw, &meta))
	assert.Equal(t, "owner@example.com", meta.SendTo)
	assert.Equal(t, "jane@example.com", meta.ReplyTo)
	assert.Equal(t, "New Contact Form Submission from Jane Doe", meta.Subject)
	assert.Equal(t, "contact-form", meta.Tag)

	html, err := os.ReadFile(strings.TrimSuffix(metas[0], ".json") + ".html")
	require.NoError(t, err)
	assert.Contains(t, string(html), "Line one<br>Line two")
}

func TestRouter_ContactAPIRejectsInvalid(t *testing.T) {
	t.Parallel()
	h, dir := newTestRouter(t)

	body := `{"name":"","phone":"2505550123","email":"nope","message":"Hi"}`
	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var env struct {
		Data contact.Result `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.False(t, env.Data.Success)
	assert.Equal(t, contact.FailureMessage, env.Data.Error)
	assert.Equal(t, "Name is required", env.Data.Fields["name"])
	assert.Equal(t, "Invalid email address", env.Data.Fields["email"])

	files, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestReport(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	require.NoError(t, report(&out, form.State{Status: form.StatusSubmitted, FirstName: "Jane"}))
	assert.Contains(t, out.String(), "Thank you, Jane!")

	out.Reset()
	err := report(&out, form.State{Status: form.StatusEditingWithError, Error: contact.FailureMessage})
	assert.ErrorIs(t, err, errSubmissionFailed)
	assert.Contains(t, out.String(), contact.FailureMessage)

	out.Reset()
	err = report(&out, form.State{
		Status: form.StatusEditing,
		Errors: map[contact.Field]string{contact.FieldPhone: "Phone number is required"},
	})
	assert.ErrorIs(t, err, errSubmissionFailed)
	assert.Contains(t, out.String(), "--phone: Phone number is required")
}

func TestPrintConfig(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	printConfig(&out, appConfig{
		Env:  "production",
		HTTP: httpserver.Config{Addr: ":8080"},
		Email: email.Config{
			Provider:     email.ProviderSMTP,
			User:         "site@example.com",
			Pass:         "app-password-123",
			SenderName:   "Lucky Blinds Website",
			SMTPHost:     "smtp.gmail.com",
			SMTPPort:     465,
			SMTPSecurity: email.SecurityTLS,
		},
		Contact: contact.Config{Recipient: "owner@example.com"},
		Form:    contactmod.Config{InFlightTTL: 2 * time.Minute},
	})

	s := out.String()
	assert.Contains(t, s, "smtp.gmail.com:465 (tls)")
	assert.Contains(t, s, "owner@example.com")
	assert.Contains(t, s, "disabled (in-memory guard)")
	assert.NotContains(t, s, "app-password-123")
}

func TestSubmitCommand(t *testing.T) {
	h, dir := newTestRouter(t)
	srv := httptest.NewServer(h)
	defer srv.Close()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{
		"submit",
		"--endpoint", srv.URL + "/api/contact",
		"--name", "Jane Doe",
		"--phone", "2505550123",
		"--email", "jane@example.com",
		"--message", "Quote please",
	})
	t.Cleanup(func() { rootCmd.SetArgs(nil); rootCmd.SetOut(nil) })

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "Thank you, Jane!")

	metas, err := filepath.Glob(filepath.Join(dir, "*.json"))
	require.NoError(t, err)
	assert.Len(t, metas, 1)
}
