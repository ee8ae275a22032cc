package normaliser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "collapses whitespace runs",
			in:   "The  Chess\t\tClub\n\nmeets   weekly",
			want: "The Chess Club meets weekly",
		},
		{
			name: "strips page footer artifact",
			in:   "Article I. 3 Updated 12 January 2024 Article II.",
			want: "Article I.  Article II.",
		},
		{
			name: "trims leading and trailing whitespace",
			in:   "   dues are $10   ",
			want: "dues are $10",
		},
		{
			name: "identity on clean input",
			in:   "The Accessibility Club meets every Tuesday.",
			want: "The Accessibility Club meets every Tuesday.",
		},
		{
			name: "empty input",
			in:   "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Clean(tt.in))
		})
	}
}

func TestClean_Idempotent(t *testing.T) {
	in := "  Membership:\n open to all students.\n\n 2 Updated 5 March 2023 "
	once := Clean(in)
	assert.Equal(t, once, Clean(once))
}
