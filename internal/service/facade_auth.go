package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"bytebabies/internal/models"
	"bytebabies/internal/session"
)

// Login signs in and loads the caller's role into the session manager. A user with no
// role document signs in successfully with session.RoleNone; callers must treat that
// as a routing failure.
func (f *Facade) Login(ctx context.Context, email, password string) (session.Session, error) {
	sess, err := f.SignIn(ctx, email, password)
	if err != nil {
		return session.Session{}, err
	}
	f.sessions.Set(sess)
	return sess, nil
}

// SignIn authenticates and resolves the role like Login, but leaves the process
// session untouched. The HTTP API uses it for per-request sessions.
func (f *Facade) SignIn(ctx context.Context, email, password string) (session.Session, error) {
	cred, err := f.auth.SignIn(ctx, email, password)
	if err != nil {
		return session.Session{}, err
	}

	sess, err := f.FetchUserRole(ctx, cred.UID)
	if err != nil {
		if signOutErr := f.auth.SignOut(ctx, cred.Token); signOutErr != nil {
			log.Printf("Warning: failed to sign out after role lookup failure: %v", signOutErr)
		}
		return session.Session{}, err
	}
	sess.Token = cred.Token
	return sess, nil
}

// FetchUserRole reads Users/{uid} and builds the session it describes
func (f *Facade) FetchUserRole(ctx context.Context, uid string) (session.Session, error) {
	roleName, err := f.users.GetRole(ctx, uid)
	if err != nil {
		return session.Session{}, fmt.Errorf("failed to fetch role: %w", err)
	}

	sess := session.Session{UID: uid, Role: session.ParseRole(roleName)}
	if sess.Role == session.RoleParent {
		sess.ParentID = uid
	}
	return sess, nil
}

// ResolveToken maps a bearer token to its session without touching the process session
func (f *Facade) ResolveToken(ctx context.Context, token string) (session.Session, error) {
	uid, err := f.auth.CurrentUID(ctx, token)
	if err != nil {
		return session.Session{}, err
	}
	sess, err := f.FetchUserRole(ctx, uid)
	if err != nil {
		return session.Session{}, err
	}
	sess.Token = token
	return sess, nil
}

// RegisterParent creates the credential and then the parent profile. The two writes are
// not atomic: if the profile write fails the credential stays behind and the store's
// error is returned.
func (f *Facade) RegisterParent(ctx context.Context, name, email, phone, password string, consentMedia bool) error {
	cred, err := f.auth.SignUp(ctx, email, password)
	if err != nil {
		return err
	}
	// Registration does not sign the parent in; they log in with the new credential.
	if err := f.auth.SignOut(ctx, cred.Token); err != nil {
		log.Printf("Warning: failed to release registration token for %s: %v", cred.UID, err)
	}

	parent := &models.Parent{
		ID:           cred.UID,
		Name:         name,
		Email:        email,
		Phone:        phone,
		ConsentMedia: consentMedia,
	}
	if err := f.users.CreateParent(ctx, parent); err != nil {
		log.Printf("Warning: account %s has no parent profile: %v", cred.UID, err)
		return err
	}

	if f.mailer != nil && f.mailer.IsEnabled() {
		if err := f.mailer.SendWelcomeEmail(ctx, email, name); err != nil {
			log.Printf("Warning: failed to send welcome email to %s: %v", email, err)
		}
	}
	return nil
}

// PromoteToAdmin tags uid as an admin
func (f *Facade) PromoteToAdmin(ctx context.Context, uid string) error {
	return f.users.SetRole(ctx, uid, session.RoleAdmin.String())
}

// EnsureAdmin makes sure an admin account exists for email, creating it on first start
func (f *Facade) EnsureAdmin(ctx context.Context, email, password string) error {
	cred, err := f.auth.SignIn(ctx, email, password)
	if errors.Is(err, ErrInvalidCredentials) {
		cred, err = f.auth.SignUp(ctx, email, password)
	}
	if err != nil {
		return fmt.Errorf("failed to bootstrap admin: %w", err)
	}
	defer func() {
		_ = f.auth.SignOut(ctx, cred.Token)
	}()

	role, err := f.users.GetRole(ctx, cred.UID)
	if err != nil {
		return err
	}
	if session.ParseRole(role) == session.RoleAdmin {
		return nil
	}
	log.Printf("Promoting %s to admin", email)
	return f.PromoteToAdmin(ctx, cred.UID)
}

// Logout clears the process session and revokes its token. It always succeeds locally.
func (f *Facade) Logout(ctx context.Context) {
	token := f.sessions.Current().Token
	f.sessions.Clear()
	if token == "" {
		return
	}
	if err := f.auth.SignOut(ctx, token); err != nil {
		log.Printf("Warning: sign out failed: %v", err)
	}
}

// SignOutToken revokes a request token without touching the process session
func (f *Facade) SignOutToken(ctx context.Context, token string) error {
	return f.auth.SignOut(ctx, token)
}

// Session returns the process session
func (f *Facade) Session() session.Session {
	return f.sessions.Current()
}

// SetPendingPayment stores the in-progress payment
func (f *Facade) SetPendingPayment(amount, childName string) error {
	return f.sessions.SetPendingPayment(amount, childName)
}

// PendingPayment returns the in-progress payment, if any
func (f *Facade) PendingPayment() (session.PendingPayment, bool) {
	return f.sessions.PendingPayment()
}

// ClearPendingPayment drops the in-progress payment
func (f *Facade) ClearPendingPayment() {
	f.sessions.ClearPendingPayment()
}
