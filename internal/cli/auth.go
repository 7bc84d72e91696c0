package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/BAWimmer/lockbox/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate
// testing. They point to interactive input helpers and can be swapped in
// tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for a username and password and creates the account.
// The password buffer is wiped before returning.
func (a *App) Register(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Choose a username", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	user, err := a.authService.Register(ctx, username, string(password))
	if err != nil {
		fmt.Println("Registration failed:", err)
		return err
	}

	fmt.Printf("Registered %s. You can log in now.\n", user.Username)
	return nil
}

// Login prompts for credentials and opens a session.
func (a *App) Login(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Username", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	user, err := a.authService.Authenticate(ctx, username, string(password))
	if err != nil {
		fmt.Println("Login failed:", err)
		return err
	}

	a.currentUser = user
	fmt.Printf("Logged in as %s\n", user.Username)
	return nil
}

// Logout tears the session down.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		fmt.Println("Logout failed:", err)
		return err
	}
	a.currentUser = nil
	fmt.Println("Logged out.")
	return nil
}

// WhoAmI reports the active session, re-reading it from storage so an
// expired session is noticed here rather than on the next mutation.
func (a *App) WhoAmI(ctx context.Context) error {
	user, err := a.authService.CurrentSession(ctx)
	if err != nil {
		fmt.Println("Could not read session:", err)
		return err
	}
	if user == nil {
		a.currentUser = nil
		fmt.Println("Not logged in.")
		return nil
	}
	a.currentUser = user
	fmt.Printf("Logged in as %s (%s)\n", user.Username, user.UserID)
	return nil
}
