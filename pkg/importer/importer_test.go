package importer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/roster/pkg/account"
)

func TestParsePositional(t *testing.T) {
	res := Parse("alice----secret----note1----note2", DefaultOptions())
	require.NoError(t, res.Err())
	require.Len(t, res.Accounts, 1)

	a := res.Accounts[0]
	assert.Equal(t, "alice", a.Username)
	assert.Equal(t, "secret", a.Password)
	assert.Equal(t, "note1", a.Nickname)
	assert.Equal(t, "note2", a.Email)
	assert.Empty(t, a.Notes)
	assert.Equal(t, account.Unknown, a.Status)
	assert.NotEmpty(t, a.ID)
}

func TestParseNotesPolicy(t *testing.T) {
	res := Parse("alice----secret----note1----note2", Options{Policy: PolicyNotes})
	require.Len(t, res.Accounts, 1)
	assert.Equal(t, "note1----note2", res.Accounts[0].Notes)
	assert.Empty(t, res.Accounts[0].Nickname)
}

func TestParsePositionalOverflowGoesToNotes(t *testing.T) {
	res := Parse("u|p|nick|mail@example.com|mailpw|https://mail.example.com|extra1|extra2", DefaultOptions())
	require.Len(t, res.Accounts, 1)
	a := res.Accounts[0]
	assert.Equal(t, "nick", a.Nickname)
	assert.Equal(t, "mail@example.com", a.Email)
	assert.Equal(t, "mailpw", a.EmailPassword)
	assert.Equal(t, "https://mail.example.com", a.EmailURL)
	assert.Equal(t, "extra1----extra2", a.Notes)
}

func TestParseSingleFieldYieldsNothing(t *testing.T) {
	res := Parse("justoneword", DefaultOptions())
	assert.Empty(t, res.Accounts)
	require.Len(t, res.Skipped, 1)
	assert.Equal(t, 1, res.Skipped[0].Line)
	assert.True(t, errors.Is(res.Err(), ErrNoAccounts))
}

func TestSplitPrefersLongestDelimiter(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, Split("a---b"))
	assert.Equal(t, []string{"a", "b"}, Split("a--b"))
	assert.Equal(t, []string{"user", "pass", "first-last@example.com"}, Split("user----pass----first-last@example.com"))
	assert.Equal(t, []string{"a", "b", "c"}, Split("a, b ,c"))
	assert.Equal(t, []string{"a", "b"}, Split("a|b"))
}

func TestParseSkipsBlankAndShortLines(t *testing.T) {
	text := "alice----pw1\r\n\r\nnope\r\nbob,pw2\r\n   \r\n----\r\n"
	res := Parse(text, DefaultOptions())
	require.Len(t, res.Accounts, 2)
	assert.Equal(t, "alice", res.Accounts[0].Username)
	assert.Equal(t, "bob", res.Accounts[1].Username)
	require.Len(t, res.Skipped, 2)
	assert.Equal(t, 3, res.Skipped[0].Line)
	assert.Equal(t, 6, res.Skipped[1].Line)
}

func TestParseCleansLabels(t *testing.T) {
	tests := map[string][2]string{
		"username: alice----password: secret": {"alice", "secret"},
		"Account:alice|Pass:secret":            {"alice", "secret"},
		"账号：alice----密码：secret":               {"alice", "secret"},
		"账号alice----密码secret":                 {"alice", "secret"},
	}
	for in, want := range tests {
		res := Parse(in, DefaultOptions())
		require.Len(t, res.Accounts, 1, in)
		assert.Equal(t, want[0], res.Accounts[0].Username, in)
		assert.Equal(t, want[1], res.Accounts[0].Password, in)
	}
}

func TestParseWithoutCleaningKeepsLabels(t *testing.T) {
	res := Parse("user:alice----secret", Options{})
	require.Len(t, res.Accounts, 1)
	assert.Equal(t, "user:alice", res.Accounts[0].Username)
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("NOTES")
	require.NoError(t, err)
	assert.Equal(t, PolicyNotes, p)

	_, err = ParsePolicy("sideways")
	assert.Error(t, err)
}

func TestParseKeepsValuesThatLookLikeLabels(t *testing.T) {
	tests := map[string]struct {
		line     string
		password string
		nickname string
	}{
		"password with english label word": {line: "alice----pass:w0rd", password: "pass:w0rd"},
		"password starting with chinese label": {line: "alice----密码学123", password: "密码学123"},
		"nickname starting with chinese label": {line: "alice----secret----账号二号", password: "secret", nickname: "账号二号"},
		"nickname after a delimiter and space": {line: "alice, secret, nick: Ally", password: "secret", nickname: "nick: Ally"},
		"labelled line keeps inner label words": {line: "账号：alice----密码：pass:w0rd----昵称：密码学", password: "pass:w0rd", nickname: "密码学"},
		"colonless chinese label before chinese": {line: "账号alice----密码学123", password: "密码学123"},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			res := Parse(tc.line, DefaultOptions())
			require.Len(t, res.Accounts, 1)
			a := res.Accounts[0]
			assert.Equal(t, "alice", a.Username)
			assert.Equal(t, tc.password, a.Password)
			assert.Equal(t, tc.nickname, a.Nickname)
		})
	}
}

func TestParseLabelledHyphenatedEmail(t *testing.T) {
	res := Parse("username: alice, password: secret, nickname: Ally, e-mail: a@example.com", DefaultOptions())
	require.Len(t, res.Accounts, 1)
	a := res.Accounts[0]
	assert.Equal(t, "secret", a.Password)
	assert.Equal(t, "Ally", a.Nickname)
	assert.Equal(t, "a@example.com", a.Email)
}

func TestParseEmailURLWithoutSchemeGoesToNotes(t *testing.T) {
	res := Parse("alice----pw1\nbob----pw2----nick----b@qq.com----mailpw----mail.qq.com----extra", DefaultOptions())
	require.NoError(t, res.Err())
	require.Len(t, res.Accounts, 2)
	assert.Empty(t, res.Skipped)

	bob := res.Accounts[1]
	assert.Equal(t, "mailpw", bob.EmailPassword)
	assert.Empty(t, bob.EmailURL)
	assert.Equal(t, "mail.qq.com----extra", bob.Notes)
	for _, a := range res.Accounts {
		require.NoError(t, a.Validate(), a.Username)
	}
}

func TestParseSkipsInvalidAccountsAndKeepsTheRest(t *testing.T) {
	res := Parse("alice----pw1\nbob----   \ncarol----pw3", DefaultOptions())
	require.Len(t, res.Accounts, 2)
	assert.Equal(t, "alice", res.Accounts[0].Username)
	assert.Equal(t, "carol", res.Accounts[1].Username)
	require.Len(t, res.Skipped, 1)
	assert.Equal(t, 2, res.Skipped[0].Line)
}
