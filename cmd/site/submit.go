package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/luckyblinds/site/pkg/logger"
	"github.com/luckyblinds/site/pkg/requestid"
	"github.com/luckyblinds/site/svc/contact"
	"github.com/luckyblinds/site/svc/contact/client"
	"github.com/luckyblinds/site/svc/contact/form"
)

// errSubmissionFailed marks an outcome already reported to the user.
var errSubmissionFailed = errors.New("submission failed")

var submitFlags struct {
	endpoint string
	req      contact.Request
	verbose  bool
}

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Send a contact request to a running site",
	Long: `Fills in the contact form from flags and submits it once to the
/api/contact endpoint of a running site.

Example:
  site submit --endpoint https://luckyblinds.ca/api/contact \
    --name "Jane Doe" --phone 2505550123 --email jane@example.com \
    --message "Quote for three windows"`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		log := logger.Discard()
		if submitFlags.verbose {
			log = logger.New(logger.WithEnvironment("development", "site-submit"), logger.WithOutput(cmd.ErrOrStderr()))
		}
		f := form.NewForm(client.New(submitFlags.endpoint, client.WithLogger(log)), form.WithLogger(log))
		for _, field := range contact.Fields {
			if _, err := f.Edit(field, submitFlags.req.Get(field)); err != nil {
				return err
			}
		}

		ctx := requestid.WithContext(cmd.Context(), uuid.NewString())
		state, err := f.Submit(ctx)
		if err != nil {
			return err
		}
		return report(cmd.OutOrStdout(), state)
	},
}

func init() {
	fl := submitCmd.Flags()
	fl.StringVar(&submitFlags.endpoint, "endpoint", envOr("SITE_CONTACT_ENDPOINT", "http://localhost:8080/api/contact"), "contact API URL")
	fl.StringVar(&submitFlags.req.Name, "name", "", "full name")
	fl.StringVar(&submitFlags.req.Phone, "phone", "", "phone number")
	fl.StringVar(&submitFlags.req.Email, "email", "", "email address")
	fl.StringVar(&submitFlags.req.Message, "message", "", "message")
	fl.BoolVarP(&submitFlags.verbose, "verbose", "v", false, "log request details to stderr")
}

// report prints the final form state the way the page would show it.
func report(w io.Writer, s form.State) error {
	switch s.Status {
	case form.StatusSubmitted:
		fmt.Fprintf(w, "Thank you, %s! A Lucky Blinds specialist will contact you within 24 hours.\n", s.FirstName)
		return nil
	case form.StatusEditingWithError:
		fmt.Fprintln(w, s.Error)
	}
	for _, field := range contact.Fields {
		if msg := s.FieldError(field); msg != "" {
			fmt.Fprintf(w, "  --%s: %s\n", field, msg)
		}
	}
	return errSubmissionFailed
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
