package commands

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"tableflip.dev/roster/pkg/account"
	"tableflip.dev/roster/pkg/commands/options"
	"tableflip.dev/roster/pkg/prompt"
	"tableflip.dev/roster/pkg/runner/add"
)

func addAdd(topLevel *cobra.Command) {
	ao := &options.AccountOptions{}
	so := &options.StatusOptions{}
	i := &options.InteractiveOptions{}

	cmd := &cobra.Command{
		Use:   "add <username> [password]",
		Short: "Add an account",
		Long: `Add an account. When the password is left out it is read from the
terminal without echo.`,
		Example: `
roster add alice
roster add alice hunter2 --nickname Ally --steam-id 76561198000000000
roster add bob swordfish --cooldown 7d
roster add carol -i
`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			password := ""
			if len(args) == 2 {
				password = args[1]
			} else {
				var err error
				if password, err = readPassword(cmd, "Password for "+args[0]); err != nil {
					return output.HandleError(err)
				}
			}

			a := account.New(args[0], password)
			ao.Fill(a)

			var p account.Patch
			if err := so.Apply(&p); err != nil {
				return output.HandleError(err)
			}
			if i.Interactive {
				if err := promptAccount(cmd, a, &p); err != nil {
					return output.HandleError(err)
				}
			}

			s, err := open(cmd.Context(), openOptions{})
			if err != nil {
				return output.HandleError(err)
			}
			r := add.Add{
				Roster:  s.Roster,
				Account: a,
				Patch:   p,
			}
			err = r.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	options.AddAccountArgs(cmd, ao)
	options.AddStatusArgs(cmd, so)
	options.InteractiveArgs(cmd, i)
	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}

// readPassword reads without echo from a terminal, or one line from a pipe.
func readPassword(cmd *cobra.Command, label string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		var line string
		if _, err := fmt.Fscanln(cmd.InOrStdin(), &line); err != nil {
			return "", errors.New("password required")
		}
		return line, nil
	}
	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "%s: ", label)
	b, err := term.ReadPassword(fd)
	_, _ = fmt.Fprintln(cmd.ErrOrStderr())
	if err != nil {
		return "", err
	}
	if len(b) == 0 {
		return "", errors.New("password required")
	}
	return string(b), nil
}

func promptAccount(cmd *cobra.Command, a *account.Account, p *account.Patch) error {
	in := io.NopCloser(cmd.InOrStdin())
	out := prompt.NopCloser(cmd.OutOrStdout())

	var err error
	if a.Nickname, err = prompt.String(in, out, "Nickname", a.Nickname, false); err != nil {
		return err
	}
	if a.SteamID64, err = prompt.String(in, out, "SteamID64", a.SteamID64, false); err != nil {
		return err
	}
	if p.CooldownDays != nil || p.CooldownHours != nil {
		return nil
	}
	status, err := prompt.Status(in, out, a.Status)
	if err != nil {
		return err
	}
	if status != account.Cooldown {
		p.Status = &status
		return nil
	}
	raw, err := prompt.String(in, out, "Cooldown (e.g. 7d, 3d12h)", "7d", true)
	if err != nil {
		return err
	}
	so := options.StatusOptions{Cooldown: raw}
	return so.Apply(p)
}
