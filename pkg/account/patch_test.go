package account

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatchApply(t *testing.T) {
	a := New("alice", "secret")
	nick, prime := "Al", true
	days := 2

	p := Patch{Nickname: &nick, Prime: &prime, CooldownDays: &days}
	require.NoError(t, p.Apply(a, epoch))
	assert.Equal(t, "Al", a.Nickname)
	assert.True(t, a.Prime)
	assert.Equal(t, Cooldown, a.Status)
	assert.True(t, a.CooldownExpiry.Equal(epoch.Add(48*time.Hour)))
	assert.Equal(t, "alice", a.Username)

	normal := Normal
	require.NoError(t, Patch{Status: &normal}.Apply(a, epoch))
	assert.Equal(t, Normal, a.Status)
	assert.Nil(t, a.CooldownExpiry)
}

func TestPatchCooldownStatusNeedsDuration(t *testing.T) {
	a := New("alice", "secret")
	cd := Cooldown
	assert.ErrorIs(t, Patch{Status: &cd}.Apply(a, epoch), ErrCooldownExpiry)

	zero := 0
	assert.ErrorIs(t, Patch{CooldownDays: &zero}.Apply(a, epoch), ErrCooldownDuration)
	assert.True(t, Patch{}.Empty())
}

func TestRedacted(t *testing.T) {
	a := New("alice", "secret")
	a.EmailPassword = "mailpw"
	r := a.Redacted()
	assert.Empty(t, r.Password)
	assert.Empty(t, r.EmailPassword)
	assert.Equal(t, "secret", a.Password)
}
