package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"hashnotes/internal/client"
	"hashnotes/internal/ui"
	"hashnotes/internal/views"

	"github.com/spf13/cobra"
)

var (
	apiURLFlag string
	rawFlag    bool
)

var rootCmd = &cobra.Command{
	Use:           "hashnotes",
	Short:         "Anonymous notes keyed by a hash",
	Long:          `Create notes without an account. The first note hands you a hash; keep it, it is the only way back to your notes.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURLFlag, "api-url", "", "notes server URL (default $HASHNOTES_API_URL or the built-in URL)")
	rootCmd.PersistentFlags().BoolVar(&rawFlag, "raw", false, "print note text without markdown rendering")

	rootCmd.AddCommand(loginCmd, newCmd, notesCmd, addCmd, whoamiCmd, versionCmd)
}

// Execute runs the CLI and prints any failure as an alert.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), ui.Error(alertMessage(err)))
	}
	return err
}

func resolveAPIURL() string {
	if apiURLFlag != "" {
		return apiURLFlag
	}
	if v := os.Getenv("HASHNOTES_API_URL"); v != "" {
		return v
	}
	return apiURL
}

func newClient() *client.Client {
	return client.New(resolveAPIURL())
}

// alertMessage turns an error into the line shown to the user.
func alertMessage(err error) string {
	var netErr *client.NetworkError
	var apiErr *client.APIError
	switch {
	case errors.Is(err, client.ErrNotFound):
		return "No notes found for this hash."
	case errors.Is(err, views.ErrNoHash):
		return "Error: No hash returned from the server."
	case errors.As(err, &netErr):
		return "Could not reach the notes server. Please try again."
	case errors.As(err, &apiErr):
		return fmt.Sprintf("Request failed (%d): %s. Please try again.", apiErr.StatusCode, apiErr.Message)
	default:
		return err.Error()
	}
}

// noteFields returns title and text from flags, prompting on in for any
// field the user did not pass.
func noteFields(cmd *cobra.Command, in io.Reader, out io.Writer) (string, string, error) {
	title, _ := cmd.Flags().GetString("title")
	text, _ := cmd.Flags().GetString("text")

	var reader *bufio.Reader
	prompt := func(label string) (string, error) {
		if reader == nil {
			reader = bufio.NewReader(in)
		}
		fmt.Fprintf(out, "%s: ", label)
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", err
		}
		return strings.TrimRight(line, "\r\n"), nil
	}

	var err error
	if !cmd.Flags().Changed("title") {
		if title, err = prompt("Title"); err != nil {
			return "", "", err
		}
	}
	if !cmd.Flags().Changed("text") {
		if text, err = prompt("Text"); err != nil {
			return "", "", err
		}
	}
	return title, text, nil
}

func addNoteFlags(cmd *cobra.Command) {
	cmd.Flags().String("title", "", "note title")
	cmd.Flags().String("text", "", "note text")
}

func renderNotes(out io.Writer, v *views.Notes) {
	fmt.Fprint(out, ui.FormatNoteList(v.List(), rawFlag))
}
