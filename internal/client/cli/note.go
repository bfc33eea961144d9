package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
)

func (a *App) AddNote(ctx context.Context) error {
	title, err := GetSimpleText(a.reader, "Enter title", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	content, err := GetMultiline(a.reader, "Enter note text", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	note, err := a.noteService.Create(ctx, title, content, nil)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	printlnFn(fmt.Sprintf("Created note %d", note.ID))
	return nil
}

func (a *App) List(ctx context.Context) error {
	notes, err := a.noteService.List(ctx)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	for _, n := range notes {
		pin := " "
		if n.Pinned {
			pin = "*"
		}
		printlnFn(fmt.Sprintf("%s %d: %s", pin, n.ID, n.Title))
	}
	return nil
}

func (a *App) promptNoteID() (int64, error) {
	text, err := GetSimpleText(a.reader, "Enter note id", os.Stdout)
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id: %q", text)
	}
	return id, nil
}

func (a *App) Show(ctx context.Context) error {
	id, err := a.promptNoteID()
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	note, err := a.noteService.Get(ctx, id)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	printlnFn(fmt.Sprintf("#%d %s", note.ID, note.Title))
	printlnFn(note.Content)
	if note.ImageURL != nil {
		printlnFn("image: " + *note.ImageURL)
	}
	if note.Shared && note.SharedToken != nil {
		printlnFn("shared: " + *note.SharedToken)
	}
	return nil
}

func (a *App) Delete(ctx context.Context) error {
	id, err := a.promptNoteID()
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	if err := a.noteService.Delete(ctx, id); err != nil {
		log.Printf("error: %v", err)
		return err
	}
	printlnFn("Deleted")
	return nil
}

func (a *App) Pin(ctx context.Context) error {
	id, err := a.promptNoteID()
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	note, err := a.noteService.TogglePin(ctx, id)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	if note.Pinned {
		printlnFn("Pinned")
	} else {
		printlnFn("Unpinned")
	}
	return nil
}

func (a *App) Share(ctx context.Context) error {
	id, err := a.promptNoteID()
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	note, err := a.noteService.Share(ctx, id)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	if note.SharedToken != nil {
		printlnFn("Share token: " + *note.SharedToken)
	}
	return nil
}

func (a *App) Duplicate(ctx context.Context) error {
	id, err := a.promptNoteID()
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	note, err := a.noteService.Duplicate(ctx, id)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	printlnFn(fmt.Sprintf("Created note %d", note.ID))
	return nil
}
