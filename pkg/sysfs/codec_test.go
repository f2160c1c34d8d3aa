package sysfs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type governor string

const (
	governorPerformance governor = "performance"
	governorPowersave   governor = "powersave"
)

type supplyState uint8

func TestUnsignedDecode(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    uint64
		wantErr bool
	}{
		{"zero", "0", 0, false},
		{"frequency", "3400000", 3400000, false},
		{"max uint64", "18446744073709551615", 18446744073709551615, false},
		{"overflow", "18446744073709551616", 0, true},
		{"negative", "-1", 0, true},
		{"empty", "", 0, true},
		{"leading space", " 1", 0, true},
		{"trailing garbage", "12kHz", 0, true},
		{"hex", "0x10", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Unsigned().Decode(tt.text)
			if tt.wantErr {
				var de *DecodeError
				assert.ErrorAs(t, err, &de)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSignedDecode(t *testing.T) {
	v, err := Signed().Decode("-1")
	require.NoError(t, err)
	assert.Equal(t, int64(-1), v)

	v, err = Signed().Decode("-1500000")
	require.NoError(t, err)
	assert.Equal(t, int64(-1500000), v)

	_, err = Signed().Decode("9223372036854775808")
	assert.Error(t, err)
	_, err = Signed().Decode("1.5")
	assert.Error(t, err)
}

func TestPercentScaling(t *testing.T) {
	v, err := Percent().Decode("42")
	require.NoError(t, err)
	assert.InDelta(t, 0.42, v, 1e-12)

	text, err := Percent().Encode(0.426)
	require.NoError(t, err)
	assert.Equal(t, "43", text)

	text, err = Percent().Encode(0.424)
	require.NoError(t, err)
	assert.Equal(t, "42", text)

	text, err = Percent().Encode(1)
	require.NoError(t, err)
	assert.Equal(t, "100", text)

	_, err = Percent().Decode("42.5")
	assert.Error(t, err)
}

func TestBoolDecode(t *testing.T) {
	v, err := Bool().Decode("1")
	require.NoError(t, err)
	assert.True(t, v)

	v, err = Bool().Decode("0")
	require.NoError(t, err)
	assert.False(t, v)

	for _, text := range []string{"2", "true", "Y", ""} {
		_, err = Bool().Decode(text)
		assert.Error(t, err, text)
	}
}

func TestEnum(t *testing.T) {
	c := EnumOf(governorPerformance, governorPowersave)

	v, err := c.Decode("powersave")
	require.NoError(t, err)
	assert.Equal(t, governorPowersave, v)

	_, err = c.Decode("Powersave")
	assert.Error(t, err, "lookup is case sensitive")

	_, err = c.Encode(governor("schedutil"))
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestEnumNonIdentityMapping(t *testing.T) {
	c := Enum(map[string]supplyState{"0": 0, "1": 1, "2": 2})
	v, err := c.Decode("2")
	require.NoError(t, err)
	assert.Equal(t, supplyState(2), v)

	text, err := c.Encode(1)
	require.NoError(t, err)
	assert.Equal(t, "1", text)
}

func TestEnumPanicsOnAmbiguousMapping(t *testing.T) {
	assert.Panics(t, func() {
		Enum(map[string]int{"a": 1, "b": 1})
	})
}

func TestParseSelected(t *testing.T) {
	tests := []struct {
		text string
		want string
		ok   bool
	}{
		{"a [b] c", "b", true},
		{"[auto] inhibit-charge force-discharge", "auto", true},
		{"auto inhibit-charge [force-discharge]", "force-discharge", true},
		{"auto inhibit-charge", "", false},
		{"[] auto", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, ok := ParseSelected(tt.text)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSelected(t *testing.T) {
	c := Selected(EnumOf(governorPerformance, governorPowersave))

	v, err := c.Decode("performance [powersave]")
	require.NoError(t, err)
	assert.Equal(t, governorPowersave, v)

	_, err = c.Decode("performance powersave")
	assert.Error(t, err)

	_, err = c.Decode("performance [schedutil]")
	assert.Error(t, err, "selection must still be a known label")

	text, err := c.Encode(governorPerformance)
	require.NoError(t, err)
	assert.Equal(t, "performance", text, "writes take the bare label")
	assert.Equal(t, ValueSelected, c.Kind())
}

func TestListDecode(t *testing.T) {
	cpus, err := List(Unsigned()).Decode("0 1 2 3")
	require.NoError(t, err)
	assert.Equal(t, []uint64{0, 1, 2, 3}, cpus)

	governors, err := List(Text()).Decode("ondemand performance")
	require.NoError(t, err)
	assert.Equal(t, []string{"ondemand", "performance"}, governors)

	_, err = List(Unsigned()).Decode("0 x 2")
	assert.Error(t, err)

	cpus, err = List(Unsigned()).Decode("0 4 ")
	require.NoError(t, err, "one trailing separator is tolerated")
	assert.Equal(t, []uint64{0, 4}, cpus)

	_, err = List(Unsigned()).Decode("0  4")
	assert.Error(t, err, "separator is a single space")

	_, err = List(Unsigned()).Decode("")
	assert.Error(t, err, "empty list not valid unless declared")

	empty, err := OptionalList(Unsigned()).Decode("")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestRoundTrip(t *testing.T) {
	t.Run("unsigned", func(t *testing.T) {
		for _, v := range []uint64{0, 1, 800000, 18446744073709551615} {
			assertRoundTrip(t, Unsigned(), v)
		}
	})
	t.Run("signed", func(t *testing.T) {
		for _, v := range []int64{-9223372036854775808, -1, 0, 42} {
			assertRoundTrip(t, Signed(), v)
		}
	})
	t.Run("percent", func(t *testing.T) {
		for i := 0; i <= 100; i++ {
			assertRoundTrip(t, Percent(), float64(i)/100.0)
		}
	})
	t.Run("bool", func(t *testing.T) {
		assertRoundTrip(t, Bool(), true)
		assertRoundTrip(t, Bool(), false)
	})
	t.Run("text", func(t *testing.T) {
		assertRoundTrip(t, Text(), "schedutil")
	})
	t.Run("enum", func(t *testing.T) {
		assertRoundTrip(t, EnumOf(governorPerformance, governorPowersave), governorPerformance)
	})
	t.Run("list", func(t *testing.T) {
		assertRoundTrip(t, List(Unsigned()), []uint64{0, 4})
	})
}

func assertRoundTrip[T any](t *testing.T, c Codec[T], v T) {
	t.Helper()
	text, err := c.Encode(v)
	require.NoError(t, err)
	got, err := c.Decode(text)
	require.NoError(t, err)
	assert.Equal(t, v, got)
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNone, KindOf(nil))
	assert.Equal(t, KindIO, KindOf(errors.New("other")))
	assert.Equal(t, KindDecode, KindOf(&DecodeError{Type: "x", Text: "y"}))
	assert.Equal(t, KindUnsupported, KindOf(&Error{Kind: KindUnsupported}))
	assert.Equal(t, "not_found", KindNotFound.String())
}

func TestFloat(t *testing.T) {
	tests := []struct {
		in   any
		want float64
		ok   bool
	}{
		{uint64(7), 7, true},
		{int64(-3), -3, true},
		{0.42, 0.42, true},
		{true, 1, true},
		{false, 0, true},
		{"performance", 0, false},
		{[]uint64{1}, 0, false},
	}
	for _, tt := range tests {
		got, ok := Float(tt.in)
		assert.Equal(t, tt.ok, ok)
		assert.Equal(t, tt.want, got)
	}
}

func TestInvalidValueIsNotDecodeError(t *testing.T) {
	err := error(&Error{Kind: KindInvalidValue, Op: "write", Path: "/x", Err: &DecodeError{Type: "unsigned", Text: "fast"}})
	assert.ErrorIs(t, err, ErrInvalidValue)
	assert.NotErrorIs(t, err, ErrDecode)
	assert.Equal(t, KindInvalidValue, KindOf(err))

	var de *DecodeError
	assert.ErrorAs(t, err, &de, "the codec failure stays reachable")
}

func TestAttrLabels(t *testing.T) {
	scaling := NewRWAttr("scaling_governor", EnumOf(governorPowersave, governorPerformance))
	assert.Equal(t, []string{"performance", "powersave"}, scaling.Labels())

	selected := NewAttr("usb_type", Selected(EnumOf(governorPerformance)))
	assert.Equal(t, []string{"performance"}, selected.Labels())

	assert.Nil(t, NewAttr("scaling_cur_freq", Unsigned()).Labels())
}
