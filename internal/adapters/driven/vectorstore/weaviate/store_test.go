package weaviate

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weaviate/weaviate/entities/models"

	"github.com/campus-labs/clubscout-cli/internal/core/domain"
)

func TestObjectIDDeterministic(t *testing.T) {
	a := ObjectID("chess_club_0_aabbccdd")
	b := ObjectID("chess_club_0_aabbccdd")
	c := ObjectID("chess_club_1_eeff0011")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)

	_, err := uuid.Parse(a)
	require.NoError(t, err)
}

func TestBuildWhere(t *testing.T) {
	assert.Nil(t, buildWhere(domain.Filters{}))

	assert.NotNil(t, buildWhere(domain.Filters{OrganizationName: "Chess Club"}))

	maxDues := 20.0
	assert.NotNil(t, buildWhere(domain.Filters{MaxDues: &maxDues}))
	assert.NotNil(t, buildWhere(domain.Filters{OrganizationName: "Chess Club", MaxDues: &maxDues}))
}

func TestParseMatches(t *testing.T) {
	s := &Store{class: "ClubDocuments"}

	data := map[string]models.JSONObject{
		"Get": map[string]any{
			"ClubDocuments": []any{
				map[string]any{
					"chunk_id":          "chess_club_0_aabbccdd",
					"text":              "Dues are $10 per semester.",
					"organization_name": "Chess Club",
					"chunk_index":       float64(0),
					"dues":              10.0,
					"meeting_frequency": nil,
					"_additional": map[string]any{
						"certainty": 0.91,
					},
				},
			},
		},
	}

	matches := s.parseMatches(data)
	require.Len(t, matches, 1)

	m := matches[0]
	assert.Equal(t, "chess_club_0_aabbccdd", m.ID)
	assert.Equal(t, "Dues are $10 per semester.", m.Text)
	assert.InDelta(t, 0.91, m.Score, 1e-9)
	assert.Equal(t, "Chess Club", m.Metadata["organization_name"])
	// Null properties are dropped, not carried as nils.
	assert.NotContains(t, m.Metadata, "meeting_frequency")
	assert.NotContains(t, m.Metadata, "text")
}

func TestParseMatchesEmptyPayload(t *testing.T) {
	s := &Store{class: "ClubDocuments"}
	assert.Empty(t, s.parseMatches(nil))
	assert.Empty(t, s.parseMatches(map[string]models.JSONObject{"Get": map[string]any{}}))
}
