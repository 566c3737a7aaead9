package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"github.com/btltech/astromeric-sub000/internal/chat"
)

// NewChatCmd creates the chat command.
func NewChatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start a live advisor chat session",
		Long: `Chat opens a live websocket session with an Astromeric advisor.
Type a message and press enter to send it; advisor and system messages
are printed as they arrive. End the session with Ctrl-D or Ctrl-C.

Chat requires a logged-in session ('astromeric login').`,
		RunE: runChatCmd,
	}
}

// runChatCmd executes the chat command.
func runChatCmd(cmd *cobra.Command, _ []string) error {
	logger := setupLogger(cmd)

	cfg, err := buildBaseConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Token == "" {
		return errors.New("chat requires a logged-in session: run 'astromeric login' first")
	}

	wsURL, err := chatURL(cfg.APIBaseURL)
	if err != nil {
		return err
	}

	ctx, cancel := newSignalContext(logger)
	defer cancel()

	session, err := chat.Dial(ctx, wsURL, chat.Options{
		Token:            cfg.Token,
		HandshakeTimeout: cfg.Timeout,
	})
	if err != nil {
		return err
	}
	defer session.Close()

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Connected. Type a message and press enter (Ctrl-D to leave).")

	// Receive loop runs concurrently with the stdin read loop below;
	// recvDone closes when the peer ends the session.
	recvDone := make(chan error, 1)
	go func() {
		for {
			msg, err := session.Recv()
			if err != nil {
				recvDone <- err
				return
			}
			printChatMessage(out, msg)
		}
	}()

	input := make(chan string)
	go func() {
		defer close(input)
		scanner := bufio.NewScanner(cmd.InOrStdin())
		for scanner.Scan() {
			input <- scanner.Text()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			fmt.Fprintln(out, "\nLeaving chat.")
			return nil
		case err := <-recvDone:
			if errors.Is(err, chat.ErrSessionClosed) {
				fmt.Fprintln(out, "Session ended by the advisor.")
				return nil
			}
			return err
		case line, ok := <-input:
			if !ok {
				fmt.Fprintln(out, "Leaving chat.")
				return nil
			}
			text := strings.TrimSpace(line)
			if text == "" {
				continue
			}
			if err := session.Send(text); err != nil {
				if errors.Is(err, chat.ErrSessionClosed) {
					fmt.Fprintln(out, "Session ended by the advisor.")
					return nil
				}
				return err
			}
		}
	}
}

// chatURL derives the websocket chat endpoint from the API base URL.
func chatURL(apiBaseURL string) (string, error) {
	u, err := url.Parse(apiBaseURL)
	if err != nil {
		return "", fmt.Errorf("invalid API base URL: %w", err)
	}

	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	case "http":
		u.Scheme = "ws"
	default:
		return "", fmt.Errorf("unsupported API base URL scheme %q", u.Scheme)
	}

	u.Path = strings.TrimRight(u.Path, "/") + "/v1/chat"
	return u.String(), nil
}

// printChatMessage renders one incoming chat frame.
func printChatMessage(out io.Writer, msg *chat.Message) {
	switch msg.Role {
	case chat.RoleSystem:
		fmt.Fprintf(out, "* %s\n", msg.Text)
	case chat.RoleAdvisor:
		fmt.Fprintf(out, "advisor> %s\n", msg.Text)
	default:
		fmt.Fprintf(out, "%s> %s\n", msg.Role, msg.Text)
	}
}
