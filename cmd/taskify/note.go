package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Joseda-hg/taskify/internal/model"
)

var (
	noteContent string
	noteTags    []string
	notePinned  bool

	noteListTag    string
	noteListSearch string
	noteListJSON   bool
)

var noteCmd = &cobra.Command{
	Use:   "note",
	Short: "Manage notes",
}

var noteAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Create a note",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		note, err := app.ws.Notes.Create(cmd.Context(), model.NoteInput{
			Title:    strings.Join(args, " "),
			Content:  noteContent,
			Tags:     noteTags,
			IsPinned: notePinned,
		})
		if err != nil {
			return err
		}
		fmt.Println(formatNoteLine(note, time.Now()))
		return nil
	},
}

var noteListCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes, pinned first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var (
			notes []model.Note
			err   error
		)
		switch {
		case noteListSearch != "":
			notes, err = app.ws.Notes.Search(ctx, noteListSearch)
		case noteListTag != "":
			notes, err = app.ws.Notes.ListByTag(ctx, noteListTag)
		default:
			notes, err = app.ws.Notes.List(ctx)
		}
		if err != nil {
			return err
		}

		if noteListJSON {
			if notes == nil {
				notes = []model.Note{}
			}
			return writeJSON(os.Stdout, notes)
		}
		if len(notes) == 0 {
			fmt.Println(dimStyle.Render("No notes."))
			return nil
		}
		now := time.Now()
		for _, note := range notes {
			fmt.Println(formatNoteLine(note, now))
		}
		return nil
	},
}

var notePinCmd = &cobra.Command{
	Use:   "pin <id>",
	Short: "Pin or unpin a note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		note, err := app.ws.Notes.TogglePin(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Println(formatNoteLine(note, time.Now()))
		return nil
	},
}

var noteRmCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"delete"},
	Short:   "Delete a note",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := app.ws.Notes.Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted note %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(noteCmd)
	noteCmd.AddCommand(noteAddCmd, noteListCmd, notePinCmd, noteRmCmd)

	noteAddCmd.Flags().StringVarP(&noteContent, "content", "m", "", "note content")
	noteAddCmd.Flags().StringSliceVarP(&noteTags, "tag", "t", nil, "tag, repeatable or comma separated")
	noteAddCmd.Flags().BoolVar(&notePinned, "pin", false, "pin the note")
	_ = noteAddCmd.MarkFlagRequired("content")

	noteListCmd.Flags().StringVarP(&noteListTag, "tag", "t", "", "only notes with this tag")
	noteListCmd.Flags().StringVar(&noteListSearch, "search", "", "only notes whose title or content contains this text")
	noteListCmd.Flags().BoolVar(&noteListJSON, "json", false, "output as JSON")
}
