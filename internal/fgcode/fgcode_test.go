package fgcode

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse_Straight(t *testing.T) {
	code, err := Parse("100|65|B|2775|")

	assert.NoError(t, err)
	assert.Equal(t, 100, code.OuterA)
	assert.Equal(t, 65, code.OuterB)
	assert.Equal(t, "B", code.Profile)
	assert.Equal(t, 2775, code.Length1)
	assert.Nil(t, code.Length2)
}

func TestParse_Corner(t *testing.T) {
	code, err := Parse("350|100|BC|1200|900")

	assert.NoError(t, err)
	assert.Equal(t, "BC", code.Profile)
	assert.Equal(t, 1200, code.Length1)
	if assert.NotNil(t, code.Length2) {
		assert.Equal(t, 900, *code.Length2)
	}
}

func TestParse_GarbledNumbersBecomeZero(t *testing.T) {
	code, err := Parse("abc|65|IC|12x4|")

	assert.NoError(t, err)
	assert.Equal(t, 0, code.OuterA)
	assert.Equal(t, 65, code.OuterB)
	assert.Equal(t, 0, code.Length1)
}

func TestParse_TrimsWhitespace(t *testing.T) {
	code, err := Parse(" 150 | 100 | IC | 2400 | ")

	assert.NoError(t, err)
	assert.Equal(t, 150, code.OuterA)
	assert.Equal(t, "IC", code.Profile)
	assert.Nil(t, code.Length2)
}

func TestParse_WrongFieldCount(t *testing.T) {
	_, err := Parse("100|65|B|2775")

	var malformed *MalformedCodeError
	if assert.ErrorAs(t, err, &malformed) {
		assert.Equal(t, 4, malformed.Fields)
		assert.Equal(t, "100|65|B|2775", malformed.Raw)
	}
}

func TestClassify_Families(t *testing.T) {
	cases := []struct {
		profile string
		family  Family
	}{
		{"B", ChannelStraight},
		{"WXS", ChannelStraight},
		{"BCE", ChannelCorner},
		{"IC", InnerCornerStraight},
		{"SLR", InnerCornerStraight},
		{"SCY", InnerCornerCorner},
		{"JLX", JStraight},
		{"SXCE", JCorner},
		{"WRSE", TProfile},
		{"RK", Misc},
		{"ECX", Misc},
	}

	for _, tc := range cases {
		fam, err := Classify(tc.profile)
		assert.NoError(t, err, tc.profile)
		assert.Equal(t, tc.family, fam, tc.profile)
	}
}

func TestClassify_UnknownProfile(t *testing.T) {
	_, err := Classify("ZZ")

	var unknown *UnknownProfileError
	assert.True(t, errors.As(err, &unknown))
	assert.Equal(t, "ZZ", unknown.Profile)
}

func TestFamily_Corner(t *testing.T) {
	assert.True(t, ChannelCorner.Corner())
	assert.True(t, InnerCornerCorner.Corner())
	assert.True(t, JCorner.Corner())
	assert.False(t, ChannelStraight.Corner())
	assert.False(t, TProfile.Corner())
	assert.False(t, Misc.Corner())
}
