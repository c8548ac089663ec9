package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luckyblinds/site/pkg/requestid"
	"github.com/luckyblinds/site/svc/contact"
	"github.com/luckyblinds/site/svc/contact/client"
)

func janeDoe() contact.Request {
	return contact.Request{Name: "Jane Doe", Phone: "2505550123", Email: "jane@example.com", Message: "Quote please"}
}

func TestClient_Submit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		body   string
		want   contact.Result
	}{
		{
			name:   "success",
			status: http.StatusOK,
			body:   `{"data":{"success":true}}`,
			want:   contact.Success(),
		},
		{
			name:   "validation failure",
			status: http.StatusUnprocessableEntity,
			body:   `{"data":{"success":false,"error":"Failed to send email. Please try again later.","fields":{"email":"Invalid email address"}}}`,
			want: contact.Result{
				Error:  contact.FailureMessage,
				Fields: map[string]string{"email": "Invalid email address"},
			},
		},
		{
			name:   "dispatch failure",
			status: http.StatusBadGateway,
			body:   `{"data":{"success":false,"error":"Failed to send email. Please try again later."}}`,
			want:   contact.Failure(contact.FailureMessage),
		},
		{
			name:   "not an envelope",
			status: http.StatusInternalServerError,
			body:   `<html>oops</html>`,
			want:   contact.Failure(contact.FailureMessage),
		},
		{
			name:   "missing data",
			status: http.StatusOK,
			body:   `{"error":{"code":500}}`,
			want:   contact.Failure(contact.FailureMessage),
		},
		{
			name:   "failure without reason",
			status: http.StatusOK,
			body:   `{"data":{"success":false}}`,
			want:   contact.Failure(contact.FailureMessage),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
				var got contact.Request
				assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
				assert.Equal(t, janeDoe(), got)

				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			res := client.New(srv.URL).Submit(context.Background(), janeDoe())
			assert.Equal(t, tt.want, res)
		})
	}
}

func TestClient_ForwardsRequestID(t *testing.T) {
	t.Parallel()

	seen := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen <- r.Header.Get(requestid.Header)
		_, _ = w.Write([]byte(`{"data":{"success":true}}`))
	}))
	defer srv.Close()

	ctx := requestid.WithContext(context.Background(), "cli-123")
	res := client.New(srv.URL, client.WithHTTPClient(srv.Client())).Submit(ctx, janeDoe())
	require.True(t, res.Success)
	assert.Equal(t, "cli-123", <-seen)
}

func TestClient_Unreachable(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	res := client.New(url).Submit(context.Background(), janeDoe())
	assert.Equal(t, contact.Failure(contact.FailureMessage), res)
}
