package cli

import (
	"context"
	"errors"
	"os"

	"inkwell/internal/client/identity"
)

// getSimpleText, getPassword, and getMultiline are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getMultiline  = GetMultiline
	getCommaList  = GetCommaList
)

// Register prompts the user for an email and password and attempts to create
// a new account with the identity provider. A successful registration still
// needs to be confirmed with the emailed code before the user can log in.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	if err := a.sessions.SignUp(ctx, email, string(password)); err != nil {
		switch {
		case errors.Is(err, identity.ErrAccountExists):
			printlnFn("An account with this email already exists.")
		case errors.Is(err, identity.ErrPasswordPolicy):
			printlnFn("Password does not meet the pool's password policy.")
		case errors.Is(err, identity.ErrConfigurationMissing):
			printlnFn("Authentication is not configured; registration is unavailable.")
		default:
			printlnFn("Registration failed:", err.Error())
		}
		return err
	}

	printlnFn("Success! Check your inbox for a confirmation code, then run 'confirm'.")
	return nil
}

// Confirm prompts for the emailed confirmation code and completes a pending
// registration.
func (a *App) Confirm(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	code, err := getSimpleText(a.reader, "Enter confirmation code", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.sessions.ConfirmSignUp(ctx, email, code); err != nil {
		switch {
		case errors.Is(err, identity.ErrInvalidCode):
			printlnFn("That code does not match. Double-check it or run 'resend'.")
		case errors.Is(err, identity.ErrCodeExpired):
			printlnFn("That code has expired. Run 'resend' to get a new one.")
		default:
			printlnFn("Confirmation failed:", err.Error())
		}
		return err
	}

	printlnFn("Account confirmed. You can log in now.")
	return nil
}

// Resend asks the identity provider to send a fresh confirmation code.
func (a *App) Resend(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.sessions.ResendConfirmationCode(ctx, email); err != nil {
		printlnFn("Resend failed:", err.Error())
		return err
	}

	printlnFn("A new confirmation code is on its way.")
	return nil
}

// Login prompts the user for credentials and tries to authenticate. On
// success the session is persisted locally and the entry list is fetched so
// the user lands on fresh data.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	if err := a.sessions.SignIn(ctx, email, string(password)); err != nil {
		switch {
		case errors.Is(err, identity.ErrInvalidCredentials):
			printlnFn("Login failed: invalid email or password.")
		case errors.Is(err, identity.ErrUserNotConfirmed):
			printlnFn("This account is not confirmed yet. Run 'confirm' first.")
		case errors.Is(err, identity.ErrNewPasswordRequired):
			printlnFn("A new password is required for this account; reset it with your administrator.")
		case errors.Is(err, identity.ErrConfigurationMissing):
			printlnFn("Authentication is not configured; login is unavailable.")
		default:
			printlnFn("Login failed:", err.Error())
		}
		return err
	}

	printlnFn("Welcome back!")
	a.journal.FetchAll(ctx)
	return nil
}

// Logout signs the user out. The local session is always cleared, even when
// the provider-side sign-out fails, and logging out while already signed out
// is a no-op.
func (a *App) Logout(ctx context.Context) error {
	if err := a.sessions.SignOut(ctx); err != nil {
		return err
	}
	printlnFn("Logged out.")
	return nil
}
