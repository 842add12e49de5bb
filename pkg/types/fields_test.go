package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPersonName(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr error
	}{
		{name: "ascii letters", raw: "John", want: "John"},
		{name: "non-ascii letters", raw: "Олена", want: "Олена"},
		{name: "combining accent is composed", raw: "Jose\u0301", want: "Jos\u00e9"},
		{name: "empty rejected", raw: "", wantErr: ErrValidation},
		{name: "digit rejected", raw: "John2", wantErr: ErrValidation},
		{name: "space rejected", raw: "John Smith", wantErr: ErrValidation},
		{name: "punctuation rejected", raw: "O'Brien", wantErr: ErrValidation},
		{name: "hyphen rejected", raw: "Anne-Marie", wantErr: ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewPersonName(tt.raw)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestNewPersonNameRoundTripsLetters(t *testing.T) {
	for _, raw := range []string{"a", "Z", "Mary", "Ärzte", "Łukasz", "名前"} {
		got, err := NewPersonName(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, raw, got.String())
	}
}

func TestNewPhoneNumber(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr error
	}{
		{name: "plain digits", raw: "12345"},
		{name: "international with groups", raw: "+380(12)3456789"},
		{name: "decoration anywhere", raw: "(0)+1)2("},
		{name: "empty rejected", raw: "", wantErr: ErrValidation},
		{name: "decoration only rejected", raw: "+()", wantErr: ErrValidation},
		{name: "dash rejected", raw: "123-456", wantErr: ErrValidation},
		{name: "space rejected", raw: "123 456", wantErr: ErrValidation},
		{name: "letter rejected", raw: "12a45", wantErr: ErrValidation},
		{name: "date rejected", raw: "1990-01-01", wantErr: ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewPhoneNumber(tt.raw)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.raw, got.String(), "phone is stored exactly as entered")
		})
	}
}

func TestNewBirthdayKeepsRawText(t *testing.T) {
	valid := NewBirthday("1990-05-17")
	assert.Equal(t, "1990-05-17", valid.String())
	d, ok := valid.Date()
	require.True(t, ok)
	assert.Equal(t, time.Date(1990, time.May, 17, 0, 0, 0, 0, time.UTC), d)

	malformed := NewBirthday("17.05")
	assert.Equal(t, "17.05", malformed.String())
	_, ok = malformed.Date()
	assert.False(t, ok)
}

func TestParseBirthday(t *testing.T) {
	b, err := ParseBirthday("2000-02-29")
	require.NoError(t, err)
	assert.Equal(t, "2000-02-29", b.String())

	for _, raw := range []string{"", "17.05.1990", "1990-13-01", "1990-02-30", "tomorrow"} {
		_, err := ParseBirthday(raw)
		assert.ErrorIs(t, err, ErrValidation, raw)
	}
}
