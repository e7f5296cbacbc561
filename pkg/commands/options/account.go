// Package options defines shared flag helpers for CLI commands.
package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/roster/pkg/account"
)

// AccountOptions holds the optional account fields.
type AccountOptions struct {
	Username      string
	Password      string
	Nickname      string
	SteamID64     string
	Email         string
	EmailPassword string
	EmailURL      string
	Notes         string
	Prime         bool
}

func AddAccountArgs(cmd *cobra.Command, o *AccountOptions) {
	cmd.Flags().StringVarP(&o.Nickname, "nickname", "n", "",
		"Display name shown instead of the username.")
	cmd.Flags().StringVar(&o.SteamID64, "steam-id", "",
		"SteamID64 used for ban status and nickname lookups.")
	cmd.Flags().StringVar(&o.Email, "email", "",
		"Email address bound to the account.")
	cmd.Flags().StringVar(&o.EmailPassword, "email-password", "",
		"Password of the bound email.")
	cmd.Flags().StringVar(&o.EmailURL, "email-url", "",
		"Where to log in to the bound email.")
	cmd.Flags().StringVar(&o.Notes, "notes", "",
		"Free-form notes.")
	cmd.Flags().BoolVar(&o.Prime, "prime", false,
		"Mark as a prime account.")
}

// AddCredentialArgs adds the flags only edit needs; add takes them as
// arguments.
func AddCredentialArgs(cmd *cobra.Command, o *AccountOptions) {
	cmd.Flags().StringVar(&o.Username, "username", "",
		"New login name.")
	cmd.Flags().StringVar(&o.Password, "password", "",
		"New password.")
}

// Patch returns the fields whose flags were given on the command line.
func (o *AccountOptions) Patch(cmd *cobra.Command) account.Patch {
	var p account.Patch
	str := func(flag string, v string) *string {
		if !cmd.Flags().Changed(flag) {
			return nil
		}
		return &v
	}
	p.Username = str("username", o.Username)
	p.Password = str("password", o.Password)
	p.Nickname = str("nickname", o.Nickname)
	p.SteamID64 = str("steam-id", o.SteamID64)
	p.Email = str("email", o.Email)
	p.EmailPassword = str("email-password", o.EmailPassword)
	p.EmailURL = str("email-url", o.EmailURL)
	p.Notes = str("notes", o.Notes)
	if cmd.Flags().Changed("prime") {
		prime := o.Prime
		p.Prime = &prime
	}
	return p
}

// Fill copies the options onto a.
func (o *AccountOptions) Fill(a *account.Account) {
	a.Nickname = o.Nickname
	a.SteamID64 = o.SteamID64
	a.Email = o.Email
	a.EmailPassword = o.EmailPassword
	a.EmailURL = o.EmailURL
	a.Notes = o.Notes
	a.Prime = o.Prime
}
