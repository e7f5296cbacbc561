// Package importer turns pasted account lists into roster accounts.
package importer

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"tableflip.dev/roster/pkg/account"
)

// ErrNoAccounts is returned when no line yielded an account.
var ErrNoAccounts = errors.New("importer: no valid accounts parsed (need at least username----password)")

// Delimiters are tried longest first: the shorter ones are substrings of the
// longer ones and must not win on a line that uses "----".
var Delimiters = []string{"----", "---", "--", "-", ",", "|"}

// Joiner is used to rejoin surplus fields into the notes.
const Joiner = "----"

// Policy decides where fields after username and password go.
type Policy int

const (
	// PolicyPositional fills nickname, email, email password and email URL
	// in that order and keeps anything left over as notes.
	PolicyPositional Policy = iota
	// PolicyNotes keeps every extra field as notes.
	PolicyNotes
)

// ParsePolicy accepts "positional" or "notes".
func ParsePolicy(raw string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "positional", "fields":
		return PolicyPositional, nil
	case "notes", "note", "rejoin":
		return PolicyNotes, nil
	default:
		return PolicyPositional, fmt.Errorf("importer: unknown policy %q", raw)
	}
}

func (p Policy) String() string {
	if p == PolicyNotes {
		return "notes"
	}
	return "positional"
}

// Options control Parse.
type Options struct {
	Policy      Policy
	CleanLabels bool
}

// DefaultOptions fills fields positionally and strips labels.
func DefaultOptions() Options {
	return Options{Policy: PolicyPositional, CleanLabels: true}
}

// Skipped records a line that did not produce an account.
type Skipped struct {
	Line   int    `json:"line"`
	Text   string `json:"text"`
	Reason string `json:"reason"`
}

// Result is the outcome of Parse.
type Result struct {
	Accounts []*account.Account `json:"accounts"`
	Skipped  []Skipped          `json:"skipped,omitempty"`
}

// Err returns ErrNoAccounts when nothing was parsed.
func (r Result) Err() error {
	if len(r.Accounts) == 0 {
		return ErrNoAccounts
	}
	return nil
}

// Parse reads one account per line. Lines with fewer than two fields, or
// whose account would not pass validation, are skipped.
func Parse(text string, o Options) Result {
	res := Result{Accounts: []*account.Account{}}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	for i, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		var fields []string
		if o.CleanLabels {
			fields = SplitLabelled(line)
		} else {
			fields = Split(line)
		}
		if len(fields) < 2 || fields[0] == "" || fields[1] == "" {
			res.Skipped = append(res.Skipped, Skipped{Line: i + 1, Text: raw, Reason: "needs username and password"})
			continue
		}
		a := build(fields, o.Policy)
		if err := a.Validate(); err != nil {
			res.Skipped = append(res.Skipped, Skipped{Line: i + 1, Text: raw, Reason: err.Error()})
			continue
		}
		res.Accounts = append(res.Accounts, a)
	}
	return res
}

// Split cuts a line on the first delimiter, in precedence order, that it
// contains. Fields are trimmed.
func Split(line string) []string {
	for _, d := range Delimiters {
		if !strings.Contains(line, d) {
			continue
		}
		parts := strings.Split(line, d)
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	return []string{strings.TrimSpace(line)}
}

// SplitLabelled is Split for lines pasted with field names, such as
// "username: alice----password: secret". Labels are only removed when the
// first field carries one, and then only from the start of each field, so
// values that merely contain a label word are kept.
func SplitLabelled(line string) []string {
	fields := Split(hyphenatedEmail.ReplaceAllString(line, "email$1"))
	if _, ok := stripLabel(fields[0]); !ok {
		return Split(line)
	}
	for i, f := range fields {
		fields[i], _ = stripLabel(f)
	}
	return fields
}

func build(fields []string, policy Policy) *account.Account {
	a := account.New(fields[0], fields[1])
	extra := fields[2:]
	if policy == PolicyPositional {
		slots := []*string{&a.Nickname, &a.Email, &a.EmailPassword, &a.EmailURL}
		for len(extra) > 0 && len(slots) > 0 {
			*slots[0] = extra[0]
			slots, extra = slots[1:], extra[1:]
		}
		// A recovery address without a scheme is still worth keeping.
		if a.EmailURL != "" && !isURL(a.EmailURL) {
			extra = append([]string{a.EmailURL}, extra...)
			a.EmailURL = ""
		}
	}
	if len(extra) > 0 {
		a.Notes = strings.Join(extra, Joiner)
	}
	return a
}

func isURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.Scheme != "" && u.Host != ""
}

var (
	englishLabel    = regexp.MustCompile(`(?i)^(?:e-?mail[ _]?password|e-?mail[ _]?pass|e-?mail[ _]?pwd|e-?mail[ _]?url|recovery[ _]?url|username|user[ _]?name|login|account|password|passwd|pass|pwd|nickname|nick|e-?mail|steam[ _]?id(?:64)?)\s*[:：]\s*`)
	chineseLabel    = regexp.MustCompile(`^(?:邮箱密码|邮箱链接|邮箱地址|用户名|账号|帐号|账户|密码|昵称|备注|邮箱)\s*([:：])?\s*`)
	hyphenatedEmail = regexp.MustCompile(`(?i)\be-mail((?:[ _]?(?:password|pass|pwd|url))?\s*[:：])`)
)

// stripLabel removes one leading field name from a field. English labels
// need a colon. Chinese labels may drop it, but only when the value does not
// go on in Chinese, as in "密码secret" but not "密码学".
func stripLabel(field string) (string, bool) {
	if loc := englishLabel.FindStringIndex(field); loc != nil {
		return strings.TrimSpace(field[loc[1]:]), true
	}
	m := chineseLabel.FindStringSubmatchIndex(field)
	if m == nil {
		return field, false
	}
	rest := field[m[1]:]
	if m[2] < 0 {
		r, _ := utf8.DecodeRuneInString(rest)
		if rest == "" || unicode.Is(unicode.Han, r) {
			return field, false
		}
	}
	return strings.TrimSpace(rest), true
}
