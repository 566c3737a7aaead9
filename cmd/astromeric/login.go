package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/btltech/astromeric-sub000/internal/auth"
)

// NewLoginCmd creates the login command.
func NewLoginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the Astromeric backend",
		Long: `Login obtains a session token and stores it in the state directory
with owner-only permissions. Once logged in, readings are saved to the
full local history instead of the anonymous cache.

The password is read from stdin so it never appears in shell history.

Examples:
  # Interactive login
  astromeric login --email alice@example.com

  # Store an existing token directly (e.g. from the web app)
  astromeric login --token eyJhbGci...`,
		RunE: runLoginCmd,
	}

	cmd.Flags().StringP("email", "e", "", "Account email address")
	cmd.Flags().StringP("token", "t", "", "Store an existing bearer token instead of logging in")

	return cmd
}

// runLoginCmd executes the login command.
func runLoginCmd(cmd *cobra.Command, _ []string) error {
	logger := setupLogger(cmd)

	cfg, err := buildBaseConfig(cmd)
	if err != nil {
		return err
	}

	token, err := cmd.Flags().GetString("token")
	if err != nil {
		return err
	}

	if token == "" {
		email, err := cmd.Flags().GetString("email")
		if err != nil {
			return err
		}
		if email == "" {
			return errors.New("--email is required (or pass --token to store an existing token)")
		}

		fmt.Fprint(cmd.OutOrStdout(), "Password: ")
		reader := bufio.NewReader(cmd.InOrStdin())
		password, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		password = strings.TrimRight(password, "\r\n")
		fmt.Fprintln(cmd.OutOrStdout())

		ctx, cancel := newSignalContext(logger)
		defer cancel()

		client := newAPIClient(cfg)
		token, err = client.Login(ctx, email, password)
		if err != nil {
			return fmt.Errorf("login failed: %w", err)
		}
	}

	store := auth.NewTokenStore(cfg.StateDir)
	if err := store.Save(token); err != nil {
		return err
	}

	info := auth.Inspect(token)
	if info.Subject != "" {
		fmt.Printf("Logged in as %s\n", info.Subject)
	} else {
		fmt.Println("Logged in")
	}
	if !info.ExpiresAt.IsZero() {
		fmt.Printf("Session expires %s\n", info.ExpiresAt.Format("2006-01-02 15:04 MST"))
	}

	return nil
}

// NewLogoutCmd creates the logout command.
func NewLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the stored session token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			setupLogger(cmd)

			cfg, err := buildBaseConfig(cmd)
			if err != nil {
				return err
			}

			if err := auth.NewTokenStore(cfg.StateDir).Clear(); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

// NewWhoamiCmd creates the whoami command.
func NewWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		Long: `Whoami shows who the stored session token belongs to and when it
expires. The token is decoded locally without contacting the backend.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			setupLogger(cmd)

			cfg, err := buildBaseConfig(cmd)
			if err != nil {
				return err
			}

			token, err := auth.NewTokenStore(cfg.StateDir).Load()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			info := auth.Inspect(token)

			if info.Opaque {
				fmt.Fprintln(out, "Logged in with an opaque token")
				return nil
			}

			if info.Subject != "" {
				fmt.Fprintf(out, "Logged in as %s\n", info.Subject)
			} else {
				fmt.Fprintln(out, "Logged in")
			}

			if !info.ExpiresAt.IsZero() {
				if info.Expired() {
					fmt.Fprintf(out, "Session EXPIRED %s - run 'astromeric login' again\n",
						info.ExpiresAt.Format("2006-01-02 15:04 MST"))
				} else {
					fmt.Fprintf(out, "Session expires %s (in %s)\n",
						info.ExpiresAt.Format("2006-01-02 15:04 MST"),
						time.Until(info.ExpiresAt).Round(time.Minute))
				}
			}

			return nil
		},
	}
}
