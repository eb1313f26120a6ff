package cli

import (
	"context"
	"log"
	"os"
)

// getSimpleText and getPassword are indirections used to facilitate
// testing. They point to interactive input helpers and can be swapped in
// tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for account details and attempts to create a new
// account. Password length and confirmation are validated locally before
// any request is sent. On success the resulting session becomes the live
// one (the session store is the single writer).
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter display name", os.Stdout)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword("Enter password (at least 6 characters)", os.Stdout)
	if err != nil {
		return err
	}
	confirm, err := getPassword("Confirm password", os.Stdout)
	if err != nil {
		return err
	}

	sess, err := a.gateway.Register(ctx, name, email, password, confirm)
	if err != nil {
		log.Printf("Registration unsuccessful: %s", userMessage(err))
		return err
	}

	if err := a.store.Set(ctx, sess); err != nil {
		return err
	}
	log.Printf("Registered and logged in as %s", sess.Profile.Name)
	return nil
}

// Login prompts for credentials and authenticates against the server.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword("Enter password", os.Stdout)
	if err != nil {
		return err
	}

	sess, err := a.gateway.Login(ctx, email, password)
	if err != nil {
		log.Printf("Login unsuccessful: %s", userMessage(err))
		return err
	}

	if err := a.store.Set(ctx, sess); err != nil {
		return err
	}
	log.Printf("Logged in as %s (%s)", sess.Profile.Name, sess.Profile.Role)
	return nil
}

// Logout destroys the live session and removes the persisted token.
func (a *App) Logout(ctx context.Context) error {
	if err := a.store.Clear(ctx); err != nil {
		return err
	}
	log.Println("Logged out")
	return nil
}
