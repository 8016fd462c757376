package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/20mouhcine/jobgate-client/internal/api/request"
	"github.com/20mouhcine/jobgate-client/internal/domain"
)

func runLogin(ctx context.Context, e *env, args []string) error {
	fs := newFlagSet("login")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	if err := parse(fs, args); err != nil {
		return err
	}
	if *email == "" || *password == "" {
		fs.Usage()

		return errUsage
	}

	if ok := e.session.Login(ctx, *email, *password); !ok {
		return errors.New("login failed: check your credentials and the API endpoint")
	}

	identity := e.session.Identity()
	fmt.Printf("logged in as %s (%s)\n", identity.FullName(), identity.Role)

	return nil
}

func runLogout(_ context.Context, e *env, args []string) error {
	fs := newFlagSet("logout")
	if err := parse(fs, args); err != nil {
		return err
	}

	e.session.Logout()
	fmt.Println("logged out")

	return nil
}

func runSignup(ctx context.Context, e *env, args []string) error {
	fs := newFlagSet("signup")
	req := request.SignupRequest{}
	fs.StringVar(&req.Email, "email", "", "account email")
	fs.StringVar(&req.Password, "password", "", "password (8+ chars, 1 letter, 1 number)")
	fs.StringVar(&req.ConfirmPassword, "confirm-password", "", "password confirmation")
	fs.StringVar(&req.FirstName, "first-name", "", "first name")
	fs.StringVar(&req.LastName, "last-name", "", "last name")
	fs.StringVar(&req.Role, "role", domain.RoleTalent, "talent or recruiter")
	fs.StringVar(&req.Phone, "phone", "", "phone number")
	fs.StringVar(&req.Etablissement, "etablissement", "", "school (talent)")
	fs.StringVar(&req.Filiere, "filiere", "", "field of study (talent)")
	fs.StringVar(&req.CompanyName, "company", "", "company name (recruiter)")
	if err := parse(fs, args); err != nil {
		return err
	}

	identity, err := e.client.Signup(ctx, req)
	if err != nil {
		return fmt.Errorf("signup failed -> %w", err)
	}

	fmt.Printf("account created for %s; run \"jobgate login\" to authenticate\n", identity.Email)

	return nil
}

func runWhoami(_ context.Context, e *env, args []string) error {
	fs := newFlagSet("whoami")
	if err := parse(fs, args); err != nil {
		return err
	}

	identity := e.session.Identity()
	if identity == nil {
		return errors.New("not authenticated: the stored token was rejected, run \"jobgate login\"")
	}

	fmt.Printf("%s <%s>\nrole: %s\n", identity.FullName(), identity.Email, identity.Role)
	if identity.IsTalent() {
		fmt.Printf("etablissement: %s\nfiliere: %s\n", identity.Etablissement, identity.Filiere)
	}
	if identity.IsRecruiter() {
		fmt.Printf("company: %s\n", identity.CompanyName)
	}

	return nil
}

func runProfile(ctx context.Context, e *env, args []string) error {
	fs := newFlagSet("profile")
	req := request.ProfileUpdateRequest{}
	avatarPath := fs.String("avatar", "", "path of an avatar image to upload")
	fs.StringVar(&req.FirstName, "first-name", "", "first name")
	fs.StringVar(&req.LastName, "last-name", "", "last name")
	fs.StringVar(&req.Phone, "phone", "", "phone number")
	fs.StringVar(&req.Etablissement, "etablissement", "", "school (talent)")
	fs.StringVar(&req.Filiere, "filiere", "", "field of study (talent)")
	fs.StringVar(&req.CompanyName, "company", "", "company name (recruiter)")
	if err := parse(fs, args); err != nil {
		return err
	}
	if *avatarPath == "" && req == (request.ProfileUpdateRequest{}) {
		fs.Usage()

		return errUsage
	}

	if *avatarPath != "" {
		f, err := os.Open(*avatarPath)
		if err != nil {
			return fmt.Errorf("opening avatar failed -> %w", err)
		}
		defer f.Close()

		updated, err := e.client.UploadAvatar(ctx, filepath.Base(*avatarPath), f)
		if err != nil {
			return fmt.Errorf("avatar upload failed -> %w", err)
		}
		e.session.SetIdentity(&updated)
		fmt.Println("avatar updated")
	}

	if req == (request.ProfileUpdateRequest{}) {
		return nil
	}

	updated, err := e.client.UpdateProfile(ctx, req)
	if err != nil {
		return fmt.Errorf("profile update failed -> %w", err)
	}

	// Keep the session's view in sync without re-fetching.
	e.session.SetIdentity(&updated)
	fmt.Printf("profile updated: %s\n", updated.FullName())

	return nil
}
