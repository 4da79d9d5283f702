package cli

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/medvault/medvault/internal/client/api"
	"github.com/medvault/medvault/internal/shared"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for the account details and attempts to create a new
// operator account.
//
// Registration never returns a token. On success the method prints a hint
// to log in; the password byte slice is wiped before returning.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	fullName, err := getSimpleText(a.reader, "Enter full name", os.Stdout)
	if err != nil {
		return err
	}

	dateOfBirth, err := getSimpleText(a.reader, "Enter date of birth (YYYY-MM-DD)", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer shared.WipeByteArray(password)

	_, err = a.client.Register(ctx, &api.RegisterRequest{
		Email:       email,
		Password:    string(password),
		FullName:    fullName,
		DateOfBirth: dateOfBirth,
	})
	if err != nil {
		log.Printf("Registration unsuccessful: %s", err.Error())
		return err
	}

	fmt.Println("Success! Log in to continue.")
	return nil
}

// Login prompts for credentials and authenticates against the server.
// On success the API client keeps the bearer token for subsequent calls.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer shared.WipeByteArray(password)

	result, err := a.client.Login(ctx, email, string(password))
	if err != nil {
		log.Printf("Login unsuccessful: %s", err.Error())
		return err
	}

	a.userName = result.Email
	log.Printf("Login successful, session valid until %s", result.ExpiresAt)
	return nil
}

// Logout discards the bearer token.
func (a *App) Logout(ctx context.Context) error {
	a.client.Logout()
	a.userName = ""
	return nil
}

// Profile fetches and prints the identity claims of the current session.
func (a *App) Profile(ctx context.Context) error {
	profile, err := a.client.GetProfile(ctx)
	if err != nil {
		log.Printf("Profile request failed: %s", err.Error())
		return err
	}

	fmt.Printf("id: %s\nemail: %s\nfull name: %s\n", profile.ID, profile.Email, profile.FullName)
	return nil
}
