package cli

import (
	"context"
	"fmt"
	"os"
	"time"
)

// getMultiline is a test seam, same as getSimpleText.
var getMultiline = GetMultiline

// AddNote prompts for a title and body and stores the note under the
// current user.
func (a *App) AddNote(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Title", os.Stdout)
	if err != nil {
		return err
	}

	body, err := getMultiline(a.reader, "Body", os.Stdout)
	if err != nil {
		return err
	}

	note, err := a.noteService.Add(ctx, a.currentUser.UserID, title, body)
	if err != nil {
		fmt.Println("Could not add note:", err)
		return err
	}

	fmt.Printf("Added note %s\n", note.ID)
	return nil
}

// ListNotes prints the current user's notes, oldest first.
func (a *App) ListNotes(ctx context.Context) error {
	notes, err := a.noteService.List(ctx, a.currentUser.UserID)
	if err != nil {
		fmt.Println("Could not list notes:", err)
		return err
	}

	if len(notes) == 0 {
		fmt.Println("No notes yet.")
		return nil
	}
	for _, n := range notes {
		created := time.UnixMilli(n.CreatedAt).Format("2006-01-02 15:04")
		fmt.Printf("%s  %s  %s\n", n.ID, created, n.Title)
	}
	return nil
}

// DeleteNote prompts for a note id and removes it.
func (a *App) DeleteNote(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Note id", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.noteService.Delete(ctx, a.currentUser.UserID, id); err != nil {
		fmt.Println("Could not delete note:", err)
		return err
	}

	fmt.Println("Deleted.")
	return nil
}
