package email

import (
	"context"
	"io"
	"mime"
	"mime/multipart"
	"net"
	"net/mail"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSMTP accepts a single session and records the DATA payload.
type fakeSMTP struct {
	ln       net.Listener
	authCode string
	data     chan string
}

func newFakeSMTP(t *testing.T, authCode string) *fakeSMTP {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	f := &fakeSMTP{ln: ln, authCode: authCode, data: make(chan string, 1)}
	t.Cleanup(func() { _ = ln.Close() })
	go f.serve()
	return f
}

func (f *fakeSMTP) port() int {
	return f.ln.Addr().(*net.TCPAddr).Port
}

func (f *fakeSMTP) serve() {
	conn, err := f.ln.Accept()
	if err != nil {
		return
	}
	defer conn.Close()

	tp := textproto.NewConn(conn)
	_ = tp.PrintfLine("220 localhost ESMTP")
	for {
		line, err := tp.ReadLine()
		if err != nil {
			return
		}
		cmd := strings.ToUpper(strings.Fields(line + " x")[0])
		switch cmd {
		case "EHLO":
			_ = tp.PrintfLine("250-localhost")
			_ = tp.PrintfLine("250 AUTH PLAIN")
		case "AUTH":
			if f.authCode == "235" {
				_ = tp.PrintfLine("235 2.7.0 Authentication successful")
			} else {
				_ = tp.PrintfLine("535 5.7.8 Authentication failed")
			}
		case "MAIL", "RCPT":
			_ = tp.PrintfLine("250 OK")
		case "DATA":
			_ = tp.PrintfLine("354 Go ahead")
			body, err := tp.ReadDotBytes()
			if err != nil {
				return
			}
			f.data <- string(body)
			_ = tp.PrintfLine("250 OK queued")
		case "QUIT":
			_ = tp.PrintfLine("221 Bye")
			return
		default:
			_ = tp.PrintfLine("502 Unrecognized command")
		}
	}
}

func plainConfig(port int) Config {
	return Config{
		Provider:     ProviderSMTP,
		User:         "site@example.com",
		Pass:         "secret",
		SenderName:   "Lucky Blinds Website",
		SMTPHost:     "127.0.0.1",
		SMTPPort:     port,
		SMTPSecurity: SecurityNone,
	}
}

func testParams() SendEmailParams {
	return SendEmailParams{
		SendTo:   "owner@example.com",
		ReplyTo:  "jane@example.com",
		Subject:  "New Contact Form Submission from Jane Doe",
		BodyHTML: "<p>Need a quote</p>",
		BodyText: "Need a quote",
		Tag:      "contact-form",
	}
}

func TestSMTPSender_SendEmail(t *testing.T) {
	t.Parallel()

	t.Run("delivers message", func(t *testing.T) {
		t.Parallel()
		srv := newFakeSMTP(t, "235")
		sender, err := NewSMTPSender(plainConfig(srv.port()))
		require.NoError(t, err)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		require.NoError(t, sender.SendEmail(ctx, testParams()))

		select {
		case data := <-srv.data:
			msg, err := mail.ReadMessage(strings.NewReader(data))
			require.NoError(t, err)
			assert.Equal(t, "owner@example.com", msg.Header.Get("To"))
			assert.Equal(t, "jane@example.com", msg.Header.Get("Reply-To"))
		case <-time.After(time.Second):
			t.Fatal("no DATA received")
		}
	})

	t.Run("auth failure", func(t *testing.T) {
		t.Parallel()
		srv := newFakeSMTP(t, "535")
		sender, err := NewSMTPSender(plainConfig(srv.port()))
		require.NoError(t, err)

		err = sender.SendEmail(context.Background(), testParams())
		assert.ErrorIs(t, err, ErrFailedToSendEmail)
		assert.Contains(t, err.Error(), "smtp auth")
	})

	t.Run("connection refused", func(t *testing.T) {
		t.Parallel()
		ln, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)
		port := ln.Addr().(*net.TCPAddr).Port
		require.NoError(t, ln.Close())

		sender, err := NewSMTPSender(plainConfig(port))
		require.NoError(t, err)
		err = sender.SendEmail(context.Background(), testParams())
		assert.ErrorIs(t, err, ErrFailedToSendEmail)
	})

	t.Run("invalid params", func(t *testing.T) {
		t.Parallel()
		sender, err := NewSMTPSender(plainConfig(1))
		require.NoError(t, err)
		p := testParams()
		p.SendTo = "nobody"
		assert.ErrorIs(t, sender.SendEmail(context.Background(), p), ErrInvalidParams)
	})
}

func TestBuildMessage(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)
	p := testParams()
	p.Subject = "Nouvelle demande de Zoé"

	raw, err := buildMessage(plainConfig(25).From(), p, now)
	require.NoError(t, err)

	msg, err := mail.ReadMessage(strings.NewReader(string(raw)))
	require.NoError(t, err)

	dec := new(mime.WordDecoder)
	subject, err := dec.DecodeHeader(msg.Header.Get("Subject"))
	require.NoError(t, err)
	assert.Equal(t, "Nouvelle demande de Zoé", subject)
	assert.Equal(t, "contact-form", msg.Header.Get("X-Tag"))
	assert.Equal(t, now.Format(time.RFC1123Z), msg.Header.Get("Date"))

	mediaType, params, err := mime.ParseMediaType(msg.Header.Get("Content-Type"))
	require.NoError(t, err)
	assert.Equal(t, "multipart/alternative", mediaType)

	mr := multipart.NewReader(msg.Body, params["boundary"])
	var types []string
	var bodies []string
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		b, err := io.ReadAll(part)
		require.NoError(t, err)
		types = append(types, part.Header.Get("Content-Type"))
		bodies = append(bodies, string(b))
	}
	assert.Equal(t, []string{"text/plain; charset=utf-8", "text/html; charset=utf-8"}, types)
	assert.Equal(t, []string{"Need a quote", "<p>Need a quote</p>"}, bodies)
}

func TestNewSMTPSender_InvalidConfig(t *testing.T) {
	t.Parallel()

	cfg := plainConfig(25)
	cfg.SMTPHost = ""
	_, err := NewSMTPSender(cfg)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	cfg = plainConfig(25)
	cfg.User = "site"
	_, err = NewSMTPSender(cfg)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
