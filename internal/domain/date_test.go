package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		kind DateKind
		want time.Time
	}{
		{"ordinary date", "19490713", DateKnown, time.Date(1949, 7, 13, 0, 0, 0, 0, time.UTC)},
		{"unknown start sentinel", "00010101", DateUnknown, time.Date(1, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"open end sentinel", "99991231", DateOpenEnded, time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)},
		{"leap day", "20200229", DateKnown, time.Date(2020, 2, 29, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := ParseDate(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, d.Kind())
			assert.True(t, tt.want.Equal(d.Time()))
			assert.Equal(t, tt.in, d.Format())
		})
	}
}

func TestParseDate_Errors(t *testing.T) {
	for _, in := range []string{"", "1949071", "194907130", "19491313", "2021-01-01", "abcdefgh", "20210230", "00000101", "00001231"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseDate(in)
			assert.Error(t, err)
		})
	}
}

func TestDate_Ordering(t *testing.T) {
	unknown := UnknownDate()
	open := OpenEndedDate()
	mid := KnownDate(1991, time.July, 3)

	assert.True(t, unknown.Before(mid))
	assert.True(t, mid.Before(open))
	assert.True(t, open.After(unknown))
	assert.False(t, mid.Before(mid))
	assert.True(t, mid.Equal(KnownDate(1991, time.July, 3)))
}

func TestKnownDate_SentinelDaysMapToSentinelKinds(t *testing.T) {
	assert.Equal(t, DateUnknown, KnownDate(1, time.January, 1).Kind())
	assert.Equal(t, DateOpenEnded, KnownDate(9999, time.December, 31).Kind())
}

func TestDate_String(t *testing.T) {
	assert.Equal(t, "2018-11-09", KnownDate(2018, time.November, 9).String())
	assert.Equal(t, "0001-01-01", UnknownDate().String())
	assert.Equal(t, "9999-12-31", OpenEndedDate().String())
	assert.Equal(t, "unset", Date{}.String())
	assert.Empty(t, Date{}.Format())
}
