// Package prompt asks for command line input with promptui.
package prompt

import (
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"

	"tableflip.dev/roster/pkg/account"
	"tableflip.dev/roster/pkg/glyph"
)

var templates = &promptui.PromptTemplates{
	Prompt:  "{{ . }}: ",
	Valid:   "{{ . | green }}: ",
	Invalid: "{{ . | red }}: ",
	Success: "{{ . | bold }}: ",
}

// String asks for a line of text. An empty answer is rejected when required
// and there is no default.
func String(in io.ReadCloser, out io.WriteCloser, label, def string, required bool) (string, error) {
	validate := func(input string) error {
		if required && strings.TrimSpace(input) == "" && def == "" {
			return errors.New("empty")
		}
		return nil
	}

	p := promptui.Prompt{
		Label:     label,
		Default:   def,
		Templates: templates,
		Validate:  validate,
		Stdin:     in,
		Stdout:    out,
	}
	result, err := p.Run()
	if err != nil {
		return "", err
	}
	if result == "" {
		result = def
	}
	return strings.TrimSpace(result), nil
}

// Secret asks for a value without echoing it.
func Secret(in io.ReadCloser, out io.WriteCloser, label string) (string, error) {
	p := promptui.Prompt{
		Label:     label,
		Mask:      '•',
		Templates: templates,
		Validate: func(input string) error {
			if input == "" {
				return errors.New("empty")
			}
			return nil
		},
		Stdin:  in,
		Stdout: out,
	}
	return p.Run()
}

// Confirm asks a yes/no question. Anything but yes is false.
func Confirm(in io.ReadCloser, out io.WriteCloser, question string) (bool, error) {
	p := promptui.Prompt{
		Label:     question,
		IsConfirm: true,
		Stdin:     in,
		Stdout:    out,
	}
	_, err := p.Run()
	if errors.Is(err, promptui.ErrAbort) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Status lets the user pick an account status from the legend.
func Status(in io.ReadCloser, out io.WriteCloser, current account.Status) (account.Status, error) {
	statuses := account.AllStatuses()
	items := make([]glyph.Glyph, 0, len(statuses))
	cursor := 0
	for i, s := range statuses {
		items = append(items, glyph.For(s))
		if s == current {
			cursor = i
		}
	}

	sel := promptui.Select{
		HideHelp: true,
		Label:    "Status",
		Items:    items,
		Templates: &promptui.SelectTemplates{
			Label:    "{{ . }}?",
			Active:   "➜  {{ .Symbol }} {{ .Key | bold }} {{ .Meaning | green }}",
			Inactive: "   {{ .Symbol }} {{ .Key }} {{ .Meaning | cyan }}",
			Selected: "{{ .Symbol }} {{ .Key | bold }}",
		},
		Size:      len(items),
		CursorPos: cursor,
		Stdin:     in,
		Stdout:    out,
	}
	i, _, err := sel.Run()
	if err != nil {
		return current, err
	}
	return statuses[i], nil
}

// ParseBool is strconv.ParseBool with the addition of yes/no and on/off.
func ParseBool(str string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(str)) {
	case "1", "t", "true", "y", "yes", "on":
		return true, nil
	case "0", "f", "false", "n", "no", "off":
		return false, nil
	}
	return false, &strconv.NumError{Func: "ParseBool", Num: str, Err: strconv.ErrSyntax}
}

// NopCloser keeps promptui from closing the command's output.
func NopCloser(w io.Writer) io.WriteCloser {
	return nopCloser{w}
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
