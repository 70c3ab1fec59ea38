package main

import (
	"fmt"

	"hashnotes/internal/client"
	"hashnotes/internal/ui"
	"hashnotes/internal/views"

	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login <hash>",
	Short: "Open your notes with an existing hash",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hash, err := views.Landing(args[0])
		if err != nil {
			return err
		}
		v, err := views.OpenNotes(cmd.Context(), newClient(), hash)
		if err != nil {
			return err
		}
		renderNotes(cmd.OutOrStdout(), v)
		return nil
	},
}

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Create your first note and get a hash",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		title, text, err := noteFields(cmd, cmd.InOrStdin(), out)
		if err != nil {
			return err
		}

		api := newClient()
		res, err := views.FirstNote(cmd.Context(), api, client.DefaultStateFile(), title, text)
		if err != nil {
			return err
		}

		fmt.Fprint(out, ui.FormatHashNotice(res.Hash))
		if res.SaveErr != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), ui.Error(fmt.Sprintf("could not save hash locally: %v", res.SaveErr)))
		}

		v, err := views.OpenNotes(cmd.Context(), api, res.Hash)
		if err != nil {
			return err
		}
		renderNotes(out, v)
		return nil
	},
}

var notesCmd = &cobra.Command{
	Use:   "notes <hash>",
	Short: "List the notes for a hash",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hash, err := views.Landing(args[0])
		if err != nil {
			return err
		}
		v, err := views.OpenNotes(cmd.Context(), newClient(), hash)
		if err != nil {
			return err
		}
		renderNotes(cmd.OutOrStdout(), v)
		return nil
	},
}

var addCmd = &cobra.Command{
	Use:   "add <hash>",
	Short: "Add a note",
	Long:  `Add a note to the notes for <hash>. Title and text come from --title and --text, or are prompted for.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		hash, err := views.Landing(args[0])
		if err != nil {
			return err
		}
		v, err := views.OpenNotes(cmd.Context(), newClient(), hash)
		if err != nil {
			return err
		}

		title, text, err := noteFields(cmd, cmd.InOrStdin(), out)
		if err != nil {
			return err
		}
		n, err := v.Add(cmd.Context(), title, text)
		if err != nil {
			return err
		}

		fmt.Fprintln(out, ui.Success(fmt.Sprintf("Added note #%d", n.ID)))
		renderNotes(out, v)
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Print the last hash created on this machine",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := client.DefaultStateFile().Load()
		if err != nil {
			return err
		}
		if st.UserHash == "" {
			return fmt.Errorf("no hash saved on this machine")
		}
		fmt.Fprintln(cmd.OutOrStdout(), st.UserHash)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "hashnotes %s\n", version)
	},
}

func init() {
	addNoteFlags(newCmd)
	addNoteFlags(addCmd)
}
