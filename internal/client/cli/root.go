package cli

import (
	"bufio"
	"context"
	"log"
	"os"
)

func (a *App) getStatus() string {
	if a.user == nil {
		return "not logged in"
	}
	s := a.user.Username
	if a.user.IsPremium() {
		s += " (premium)"
	}
	return s
}

func (a *App) Root(ctx context.Context) {
	log.Println("Welcome to WeNotes CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}
