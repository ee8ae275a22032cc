package metadata

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const constitutionText = `Article I. The name of this organization shall be the Accessibility Club.
Article II. The club meets every Tuesday. Sessions run from 6 PM in the Union.
Article III. Membership eligibility: open to all enrolled students with an interest in accessible design.
Article IV. Annual dues are $10.00 per member. Updated 12 January 2024`

func TestExtract_FullDocument(t *testing.T) {
	meta := Extract(constitutionText, "accessibility_club.pdf")

	assert.Equal(t, "Accessibility Club", meta.OrganizationName)
	require.NotNil(t, meta.Dues)
	assert.Equal(t, 10.0, *meta.Dues)
	assert.Equal(t, "meets every Tuesday", meta.MeetingFrequency)
	assert.Equal(t, "12 January 2024", meta.LastUpdated)
	assert.Equal(t, "accessibility_club.pdf", meta.SourceFile)
	require.Len(t, meta.MembershipRequirements, 1)
	assert.Contains(t, meta.MembershipRequirements[0], "open to all enrolled students")
}

func TestExtract_OrganizationNameFallback(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		want     string
	}{
		{"underscores to spaces", "robotics_society.pdf", "Robotics Society"},
		{"single word", "chess.txt", "Chess"},
		{"already titled", "Debate_Union.pdf", "Debate Union"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := Extract("no recognisable phrasing here", tt.fileName)
			assert.Equal(t, tt.want, meta.OrganizationName)
		})
	}
}

func TestExtract_Dues(t *testing.T) {
	tests := []struct {
		name string
		text string
		want *float64
	}{
		{"dollar amount after dues", "dues are $25 per year", ptr(25.0)},
		{"decimal amount", "the membership fee is $12.50", ptr(12.50)},
		{"cost keyword", "cost: 15 dollars", ptr(15.0)},
		{"no amount", "there are no dues", nil},
		{"no keyword", "we collected $40 at the fundraiser", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := Extract(tt.text, "x.txt")
			if tt.want == nil {
				assert.Nil(t, meta.Dues)
				return
			}
			require.NotNil(t, meta.Dues)
			assert.Equal(t, *tt.want, *meta.Dues)
		})
	}
}

func TestExtract_MeetingFrequencyPrecedence(t *testing.T) {
	// The "meets every X" pattern wins over a bare cadence token even when
	// the cadence token appears first in the text.
	text := "A weekly gathering: the society meets every Thursday."
	meta := Extract(text, "x.txt")
	assert.Equal(t, "meets every Thursday", meta.MeetingFrequency)

	// Bare cadence tokens are the fallback.
	meta = Extract("gatherings are bi-weekly during term", "x.txt")
	assert.Equal(t, "bi-weekly", meta.MeetingFrequency)
}

func TestExtract_MembershipTruncation(t *testing.T) {
	long := "Membership requirements: " + strings.Repeat("all students welcome ", 60)
	meta := Extract(long, "x.txt")
	require.Len(t, meta.MembershipRequirements, 1)
	assert.LessOrEqual(t, len(meta.MembershipRequirements[0]), 200)
}

func TestExtract_AbsentFieldsAreZero(t *testing.T) {
	meta := Extract("nothing useful in this text", "plain.txt")

	assert.Equal(t, "Plain", meta.OrganizationName)
	assert.Nil(t, meta.Dues)
	assert.Empty(t, meta.MeetingFrequency)
	assert.Empty(t, meta.LastUpdated)
	assert.Empty(t, meta.MembershipRequirements)
}

func TestExtract_Idempotent(t *testing.T) {
	first := Extract(constitutionText, "accessibility_club.pdf")
	second := Extract(constitutionText, "accessibility_club.pdf")
	assert.Equal(t, first, second)
}

func ptr(v float64) *float64 { return &v }
