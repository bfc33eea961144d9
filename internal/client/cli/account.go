package cli

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/dmitrijs2005/wenotes/internal/common"
)

func (a *App) ChangePassword(ctx context.Context) error {
	if a.user == nil {
		return nil
	}

	fmt.Println("Current password")
	current, err := GetPassword(os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	defer common.WipeByteArray(current)

	fmt.Println("New password")
	next, err := GetPassword(os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	defer common.WipeByteArray(next)

	if _, err := a.userService.ChangePassword(ctx, a.user.ID, current, next); err != nil {
		log.Printf("error: %v", err)
		return err
	}

	// every other session is now revoked; this one keeps its access token
	// until expiry
	printlnFn("Password changed")
	return nil
}

func (a *App) DeleteAccount(ctx context.Context) error {
	if a.user == nil {
		return nil
	}

	confirm, err := GetSimpleText(a.reader, "Type 'delete' to remove your account and all notes", os.Stdout)
	if err != nil || confirm != "delete" {
		printlnFn("Cancelled")
		return nil
	}

	current, err := GetPassword(os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	defer common.WipeByteArray(current)

	if err := a.userService.DeleteAccount(ctx, a.user.ID, current); err != nil {
		log.Printf("error: %v", err)
		return err
	}

	a.user = nil
	printlnFn("Account deleted")
	return nil
}
