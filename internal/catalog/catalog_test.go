package catalog

import (
	"encoding/json"
	"testing"

	"github.com/phrazzld/physref/internal/domain"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTopicsInOrder(t *testing.T) {
	t.Parallel()

	var keys, titles []string
	for _, topic := range Default().Topics() {
		keys = append(keys, topic.Key)
		titles = append(titles, topic.Title)
		assert.NotEmpty(t, topic.Formulas, "topic %s has no formulas", topic.Key)
	}

	assert.Equal(t, []string{"mechanics", "thermodynamics", "electromagnetism", "optics"}, keys)
	assert.Equal(t, []string{"Mechanics", "Thermodynamics", "Electromagnetism", "Optics"}, titles)
}

func TestGetIsDeterministic(t *testing.T) {
	t.Parallel()

	c := Default()
	for _, topic := range c.Topics() {
		first, err := c.Get(topic.Key)
		require.NoError(t, err)
		for i := 0; i < 10; i++ {
			again, err := c.Get(topic.Key)
			require.NoError(t, err)
			assert.Equal(t, first, again)
		}
	}
}

func TestGetUnknownTopic(t *testing.T) {
	t.Parallel()

	for _, key := range []string{"unknown", "", "Mechanics"} {
		_, err := Default().Get(key)
		assert.ErrorIs(t, err, domain.ErrTopicNotFound, key)
		assert.ErrorIs(t, err, domain.ErrNotFound, key)
	}
}

func TestGetReturnsCopy(t *testing.T) {
	t.Parallel()

	c := Default()
	entries, err := c.Get("mechanics")
	require.NoError(t, err)
	entries[0].Name = "changed"

	again, err := c.Get("mechanics")
	require.NoError(t, err)
	assert.Equal(t, "Newton's second law", again[0].Name)
}

func TestElectromagnetismGolden(t *testing.T) {
	t.Parallel()

	entries, err := Default().Get("electromagnetism")
	require.NoError(t, err)

	out, err := json.MarshalIndent(entries, "", "  ")
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "electromagnetism", append(out, '\n'))
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
	}{
		{"invalid yaml", "topics: [:"},
		{"no topics", "topics: []"},
		{"missing key", "topics:\n  - formulas: []"},
		{"duplicate key", "topics:\n  - key: optics\n  - key: optics"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load([]byte(tc.doc))
			assert.Error(t, err)
		})
	}

	assert.Panics(t, func() { MustLoad([]byte("topics: []")) })
}
