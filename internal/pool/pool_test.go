package pool

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wandermatch/matchengine/pkg/types"
)

const samplePoolCSV = `candidate_id,name,age,nationality,destination,budget,travel_season,stay_duration,interests,personality_type,communication_style,travel_style,accommodation_preference,cultural_symbol,bucket_list
p1,Alice,25-34,French,Japan,$100-200,Spring,1-2 weeks,Food,Outgoing,Direct,Adventure,Hostels,Temples,Climb Mt Fuji
p2,Bob,35-44,German,Italy,$200-300,Autumn,1 week,History,Thoughtful,Reserved,Cultural immersion,Boutique hotels,Renaissance art,See the Colosseum
`

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "user_pool.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeTempCSV(t, samplePoolCSV)

	p, err := LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, 2, p.Len())
	assert.Equal(t, path, p.Source)

	alice := p.Candidates[0]
	assert.Equal(t, "p1", alice.ID)
	assert.Equal(t, "Alice", alice.Name)
	assert.Equal(t, "Japan", alice.Destination)
	assert.Equal(t, "Climb Mt Fuji", alice.BucketList)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

func TestRead_PositionalIDs(t *testing.T) {
	csv := "name,destination\nAlice,Japan\nBob,Italy\n"
	p, err := Read(strings.NewReader(csv))
	require.NoError(t, err)
	require.Equal(t, 2, p.Len())
	assert.Equal(t, "user_1", p.Candidates[0].ID)
	assert.Equal(t, "user_2", p.Candidates[1].ID)
}

func TestRead_LegacyHeaders(t *testing.T) {
	csv := "real_name,age_group,destination\nAlice,25-34,Japan\n"
	p, err := Read(strings.NewReader(csv))
	require.NoError(t, err)
	require.Equal(t, 1, p.Len())
	assert.Equal(t, "Alice", p.Candidates[0].Name)
	assert.Equal(t, "25-34", p.Candidates[0].Age)
}

func TestRead_Empty(t *testing.T) {
	p, err := Read(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, 0, p.Len())
}

func TestRead_UppercaseHeader(t *testing.T) {
	csv := "Name,Destination\nAlice,Japan\n"
	p, err := Read(strings.NewReader(csv))
	require.NoError(t, err)
	require.Equal(t, 1, p.Len())
	assert.Equal(t, "Japan", p.Candidates[0].Destination)
}

func TestFingerprint_Deterministic(t *testing.T) {
	path := writeTempCSV(t, samplePoolCSV)

	p1, err := LoadFile(path)
	require.NoError(t, err)
	p2, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, p1.Fingerprint(), p2.Fingerprint())
	assert.Len(t, p1.Fingerprint(), 64)
}

func TestFingerprint_SingleCellChange(t *testing.T) {
	p, err := Read(strings.NewReader(samplePoolCSV))
	require.NoError(t, err)
	before := p.Fingerprint()

	p.Candidates[1].Interests = "Historz"
	assert.NotEqual(t, before, p.Fingerprint())
}

func TestFingerprint_CoversEveryCell(t *testing.T) {
	base, err := Read(strings.NewReader(samplePoolCSV))
	require.NoError(t, err)
	before := base.Fingerprint()

	mutations := []func(c *types.SurveyResponse){
		func(c *types.SurveyResponse) { c.Name = "Alicia" },
		func(c *types.SurveyResponse) { c.Age = "45-54" },
		func(c *types.SurveyResponse) { c.Gender = "Female" },
		func(c *types.SurveyResponse) { c.Nationality = "Belgian" },
		func(c *types.SurveyResponse) { c.ID = "p1b" },
		func(c *types.SurveyResponse) { c.CulturalSymbol = "Gardens" },
	}

	for i, mutate := range mutations {
		p, err := Read(strings.NewReader(samplePoolCSV))
		require.NoError(t, err)
		mutate(&p.Candidates[0])
		assert.NotEqual(t, before, p.Fingerprint(), "mutation %d left the fingerprint unchanged", i)
	}
}

func TestFingerprint_OrderSensitive(t *testing.T) {
	p, err := Read(strings.NewReader(samplePoolCSV))
	require.NoError(t, err)
	before := p.Fingerprint()

	p.Candidates[0], p.Candidates[1] = p.Candidates[1], p.Candidates[0]
	assert.NotEqual(t, before, p.Fingerprint())
}

func TestIndexOf(t *testing.T) {
	p, err := Read(strings.NewReader(samplePoolCSV))
	require.NoError(t, err)

	assert.Equal(t, 0, p.IndexOf("p1"))
	assert.Equal(t, 1, p.IndexOf("p2"))
	assert.Equal(t, -1, p.IndexOf("p3"))
}

func TestDefaultPool(t *testing.T) {
	p := DefaultPool()
	require.Equal(t, 3, p.Len())
	assert.Equal(t, SourceBuiltin, p.Source)

	names := map[string]bool{}
	for _, c := range p.Candidates {
		names[c.Name] = true
		// Every default partner must be fully answerable.
		for _, v := range c.MatchingValues() {
			assert.True(t, types.HasValue(v), "candidate %s has an empty matching field", c.ID)
		}
	}
	assert.True(t, names["Alex"])
	assert.True(t, names["Jamie"])
	assert.True(t, names["Sam"])
}
