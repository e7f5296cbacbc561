package account

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

// checkInvariant fails when the expiry and the Cooldown status disagree.
func checkInvariant(t *testing.T, a *Account) {
	t.Helper()
	if (a.CooldownExpiry != nil) != (a.Status == Cooldown) {
		t.Fatalf("invariant broken: status=%s expiry=%v", a.Status, a.CooldownExpiry)
	}
}

func TestStartCooldownSetsAbsoluteExpiry(t *testing.T) {
	a := New("alice", "secret")
	require.NoError(t, a.StartCooldown(epoch, 2, 5))

	assert.Equal(t, Cooldown, a.Status)
	require.NotNil(t, a.CooldownExpiry)
	assert.True(t, a.CooldownExpiry.Equal(epoch.Add(53*time.Hour)))
	checkInvariant(t, a)
}

func TestStartCooldownRejectsEmptyDuration(t *testing.T) {
	a := New("alice", "secret")
	a.Status = Normal

	err := a.StartCooldown(epoch, 0, 0)
	assert.ErrorIs(t, err, ErrCooldownDuration)
	assert.Equal(t, Normal, a.Status)
	checkInvariant(t, a)
}

func TestSetStatusClearsExpiry(t *testing.T) {
	for _, target := range []Status{Normal, GameBan, VacBan, Unknown} {
		a := New("alice", "secret")
		require.NoError(t, a.StartCooldown(epoch, 1, 0))

		require.NoError(t, a.SetStatus(target))
		assert.Equal(t, target, a.Status)
		checkInvariant(t, a)
	}
}

func TestSetStatusCooldownNeedsExpiry(t *testing.T) {
	a := New("alice", "secret")
	err := a.SetStatus(Cooldown)
	assert.True(t, errors.Is(err, ErrCooldownExpiry))
	assert.Equal(t, Unknown, a.Status)
}

func TestExpireCooldown(t *testing.T) {
	a := New("alice", "secret")
	require.NoError(t, a.StartCooldown(epoch, 0, 3))

	assert.False(t, a.ExpireCooldown(epoch.Add(2*time.Hour)))
	assert.Equal(t, Cooldown, a.Status)

	assert.True(t, a.ExpireCooldown(epoch.Add(3*time.Hour)))
	assert.Equal(t, Normal, a.Status)
	checkInvariant(t, a)

	assert.False(t, a.ExpireCooldown(epoch.Add(4*time.Hour)))
}

func TestApplyBans(t *testing.T) {
	week := 7 * 24 * time.Hour
	tests := map[string]struct {
		bans Bans
		want Status
	}{
		"vac wins over everything": {bans: Bans{VACBanned: true, GameBans: 2, EconomyBan: EconomyProbation}, want: VacBan},
		"game ban":                 {bans: Bans{GameBans: 1}, want: GameBan},
		"probation is a cooldown":  {bans: Bans{EconomyBan: EconomyProbation}, want: Cooldown},
		"clean":                    {bans: Bans{EconomyBan: "none"}, want: Normal},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			a := New("alice", "secret")
			a.ApplyBans(tc.bans, epoch, week)
			assert.Equal(t, tc.want, a.Status)
			checkInvariant(t, a)
		})
	}
}

func TestApplyBansKeepsRunningCooldown(t *testing.T) {
	a := New("alice", "secret")
	require.NoError(t, a.StartCooldown(epoch, 0, 5))
	before := a.CooldownExpiry.Time

	a.ApplyBans(Bans{EconomyBan: EconomyProbation}, epoch.Add(time.Hour), 7*24*time.Hour)
	assert.Equal(t, Cooldown, a.Status)
	assert.True(t, before.Equal(a.CooldownExpiry.Time))
}

func TestApplyNotFoundIsNormal(t *testing.T) {
	a := New("alice", "secret")
	a.VACBanned = true
	require.NoError(t, a.SetStatus(VacBan))

	a.ApplyNotFound()
	assert.Equal(t, Normal, a.Status)
	assert.False(t, a.VACBanned)
	checkInvariant(t, a)
}

func TestDisplayStatusCountsDown(t *testing.T) {
	a := New("alice", "secret")
	require.NoError(t, a.StartCooldown(epoch, 2, 1))

	assert.Equal(t, "cooldown (3d left)", a.DisplayStatus(epoch))
	assert.Equal(t, "cooldown (2d left)", a.DisplayStatus(epoch.Add(2*time.Hour)))
	assert.Equal(t, "cooldown (1h left)", a.DisplayStatus(epoch.Add(48*time.Hour+30*time.Minute)))
	assert.Equal(t, "cooldown (ended)", a.DisplayStatus(epoch.Add(60*time.Hour)))
	assert.Equal(t, time.Duration(0), a.Remaining(epoch.Add(60*time.Hour)))
}

func TestSortedOrdersPrimeThenPriority(t *testing.T) {
	vac := New("vac", "x")
	_ = vac.SetStatus(VacBan)
	vac.Prime = true
	normal := New("normal", "x")
	_ = normal.SetStatus(Normal)
	cooling := New("cooling", "x")
	_ = cooling.StartCooldown(epoch, 1, 0)
	cooling.Prime = true
	unknown := New("unknown", "x")

	got := Sorted([]*Account{vac, normal, cooling, unknown, nil})
	names := make([]string, 0, len(got))
	for _, a := range got {
		names = append(names, a.Username)
	}
	assert.Equal(t, []string{"cooling", "vac", "unknown", "normal"}, names)
}

func TestValidate(t *testing.T) {
	a := New("alice", "secret")
	assert.NoError(t, a.Validate())

	a.SteamID64 = "7656119x"
	a.Password = ""
	err := a.Validate()
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	fields := map[string]bool{}
	for _, f := range ve.Fields {
		fields[f.Field] = true
	}
	assert.True(t, fields["SteamID64"])
	assert.True(t, fields["Password"])
}

func TestJSONRoundTripAndUnknownStatus(t *testing.T) {
	a := New("alice", "secret")
	a.SteamID64 = "76561198000000000"
	a.Prime = true
	require.NoError(t, a.StartCooldown(epoch, 1, 0))

	b, err := json.Marshal(a)
	require.NoError(t, err)

	var back Account
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, a.ID, back.ID)
	assert.Equal(t, Cooldown, back.Status)
	assert.True(t, a.CooldownExpiry.Equal(back.CooldownExpiry.Time))

	var odd Account
	require.NoError(t, json.Unmarshal([]byte(`{"id":"x","username":"u","password":"p","status":"banana"}`), &odd))
	assert.Equal(t, Unknown, odd.Status)
}

func TestParseStatusLegacyLabels(t *testing.T) {
	tests := map[string]Status{
		"正常":     Normal,
		"✨正常✨":   Normal,
		"⏳冷却⏳":   Cooldown,
		"VAC":    VacBan,
		"Normal": Normal,
		"game_ban": GameBan,
	}
	for in, want := range tests {
		got, ok := ParseStatus(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}
	got, ok := ParseStatus("nope")
	assert.False(t, ok)
	assert.Equal(t, Unknown, got)
}

func TestNormalizeRepairsInvariant(t *testing.T) {
	a := &Account{Username: "a", Password: "b", Status: Cooldown}
	a.Normalize()
	assert.Equal(t, Unknown, a.Status)
	assert.NotEmpty(t, a.ID)

	b := &Account{ID: "b", Username: "a", Password: "b", Status: Normal, CooldownExpiry: NewTimestamp(epoch)}
	b.Normalize()
	assert.Nil(t, b.CooldownExpiry)
}

func TestParseTimeLegacyLayout(t *testing.T) {
	got, err := ParseTime("2025-03-10T12:00:00")
	require.NoError(t, err)
	assert.Equal(t, 12, got.Hour())
	assert.Equal(t, time.Local, got.Location())
}

func TestUnmarshalBanFields(t *testing.T) {
	tests := map[string]struct {
		doc   string
		want  Status
		prime bool
	}{
		"not banned":        {doc: `{"Username":"a","IsBanned":false,"BanReason":0}`, want: Normal},
		"cooldown":          {doc: `{"Username":"a","IsBanned":true,"BanReason":1,"IsPrime":true}`, want: Cooldown, prime: true},
		"vac":               {doc: `{"Username":"a","IsBanned":true,"BanReason":2}`, want: VacBan},
		"unknown reason":    {doc: `{"Username":"a","IsBanned":true,"BanReason":7}`, want: Unknown},
		"null status":       {doc: `{"Username":"a","status":null,"IsBanned":true,"BanReason":2}`, want: VacBan},
		"status wins":       {doc: `{"Username":"a","status":"正常","IsBanned":true,"BanReason":2}`, want: Normal},
		"no ban fields":     {doc: `{"Username":"a"}`, want: Unknown},
		"current prime key": {doc: `{"Username":"a","prime":true}`, want: Unknown, prime: true},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			var a Account
			require.NoError(t, json.Unmarshal([]byte(tc.doc), &a))
			assert.Equal(t, "a", a.Username)
			assert.Equal(t, tc.want, a.Status)
			assert.Equal(t, tc.prime, a.Prime)
		})
	}
}
