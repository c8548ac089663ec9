package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/luckyblinds/site/pkg/config"
	"github.com/luckyblinds/site/pkg/email"
)

var checkConfigCmd = &cobra.Command{
	Use:   "check-config",
	Short: "Validate configuration and print the effective settings",
	Long: `Loads the same configuration as serve and fails on the same errors.
Secrets are never printed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		var cfg appConfig
		if err := config.Load(&cfg); err != nil {
			return err
		}
		if err := cfg.Email.Validate(); err != nil {
			return err
		}
		if !email.ValidAddress(cfg.Contact.Recipient) {
			return fmt.Errorf("%w: CONTACT_RECIPIENT must be a valid email address", email.ErrInvalidConfig)
		}
		printConfig(cmd.OutOrStdout(), cfg)
		return nil
	},
}

func printConfig(w io.Writer, cfg appConfig) {
	redisState := "disabled (in-memory guard)"
	if cfg.Redis.Enabled() {
		redisState = "enabled"
	}
	rows := [][2]string{
		{"environment", cfg.Env},
		{"http address", cfg.HTTP.Addr},
		{"email provider", cfg.Email.Provider},
		{"email from", cfg.Email.From()},
		{"contact recipient", cfg.Contact.Recipient},
		{"in-flight ttl", cfg.Form.InFlightTTL.String()},
		{"redis", redisState},
	}
	if cfg.Email.Provider == email.ProviderSMTP {
		rows = append(rows,
			[2]string{"smtp server", fmt.Sprintf("%s:%d (%s)", cfg.Email.SMTPHost, cfg.Email.SMTPPort, cfg.Email.SMTPSecurity)},
		)
	}
	if cfg.Email.Provider == email.ProviderDev {
		rows = append(rows, [2]string{"dev mail dir", cfg.Email.DevDir})
	}
	for _, row := range rows {
		fmt.Fprintf(w, "%-18s %s\n", row[0]+":", row[1])
	}
}
