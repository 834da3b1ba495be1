package bloodlines

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nonoumasy/bloodlines/pkg/config"
	"github.com/nonoumasy/bloodlines/pkg/tree"
	"github.com/nonoumasy/bloodlines/pkg/types"
)

// fakeKB is an in-memory knowledge base for exercising the facade
// end to end.
type fakeKB struct {
	hits     []types.SearchHit
	entities map[string]types.RawEntity
}

func (f *fakeKB) SearchEntities(ctx context.Context, query string, limit int) ([]types.SearchHit, error) {
	return f.hits, nil
}

func (f *fakeKB) GetEntities(ctx context.Context, ids []string) (map[string]types.RawEntity, error) {
	out := make(map[string]types.RawEntity, len(ids))
	for _, id := range ids {
		if e, ok := f.entities[id]; ok {
			out[id] = e
		}
	}
	return out, nil
}

func claim(valueType, raw string) types.Claim {
	return types.Claim{
		MainSnak: types.Snak{
			SnakType:  "value",
			DataValue: &types.DataValue{Type: valueType, Value: json.RawMessage(raw)},
		},
	}
}

func itemClaim(id string) types.Claim {
	return claim("wikibase-entityid", fmt.Sprintf(`{"entity-type":"item","id":%q}`, id))
}

func yearClaim(value string) types.Claim {
	return claim("time", fmt.Sprintf(`{"time":%q,"precision":9}`, value))
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Search.SettleMillis = 1
	cfg.CircuitBreaker.Enabled = false
	return cfg
}

func charlemagneKB() *fakeKB {
	return &fakeKB{
		hits: []types.SearchHit{
			{ID: "Q3044", Label: "Charlemagne", Description: "King of the Franks"},
			{ID: "Q1465283", Label: "Charlemagne", Description: "ocean liner"},
		},
		entities: map[string]types.RawEntity{
			"Q3044": {
				ID:     "Q3044",
				Labels: map[string]types.Term{"en": {Language: "en", Value: "Charlemagne"}},
				Claims: map[string][]types.Claim{
					types.PropertyInstanceOf:  {itemClaim(types.ClassHuman)},
					types.PropertyDateOfBirth: {yearClaim("+0748-00-00T00:00:00Z")},
					types.PropertyDateOfDeath: {yearClaim("+0814-00-00T00:00:00Z")},
					types.PropertyFather:      {itemClaim("Q3023")},
					types.PropertyMother:      {itemClaim("Q260437")},
				},
				Sitelinks: map[string]types.Sitelink{
					"enwiki": {Site: "enwiki", Title: "Charlemagne"},
				},
			},
			"Q1465283": {
				ID:     "Q1465283",
				Claims: map[string][]types.Claim{types.PropertyInstanceOf: {itemClaim("Q697196")}},
			},
			"Q3023": {
				ID:     "Q3023",
				Labels: map[string]types.Term{"en": {Language: "en", Value: "Pepin the Short"}},
				Claims: map[string][]types.Claim{types.PropertyInstanceOf: {itemClaim(types.ClassHuman)}},
			},
			"Q260437": {
				ID:     "Q260437",
				Labels: map[string]types.Term{"en": {Language: "en", Value: "Bertrada of Laon"}},
				Claims: map[string][]types.Claim{types.PropertyInstanceOf: {itemClaim(types.ClassHuman)}},
			},
		},
	}
}

func TestServiceSearch(t *testing.T) {
	svc := New(charlemagneKB(), testConfig(), nil)
	defer svc.Close()

	hits, err := svc.Search(context.Background(), "Charlemagne")
	require.NoError(t, err)

	// The ocean liner is filtered out during the bulk-fetch phase.
	require.Len(t, hits, 1)
	assert.Equal(t, "Q3044", hits[0].ID)
	assert.Equal(t, "King of the Franks", hits[0].Description)
}

func TestServicePerson(t *testing.T) {
	svc := New(charlemagneKB(), testConfig(), nil)
	defer svc.Close()

	person, err := svc.Person(context.Background(), "Q3044")
	require.NoError(t, err)

	assert.Equal(t, "Charlemagne", person.Label)
	assert.Equal(t, "https://en.wikipedia.org/wiki/Charlemagne", person.WikipediaURL)
	require.NotNil(t, person.Age)
	assert.Equal(t, 66, *person.Age)
	assert.Equal(t, []string{"Q3023", "Q260437"}, person.ParentIDs)
}

func TestServicePersonErrors(t *testing.T) {
	svc := New(charlemagneKB(), testConfig(), nil)
	defer svc.Close()

	_, err := svc.Person(context.Background(), "Q999999")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Person(context.Background(), "not-an-id")
	assert.ErrorIs(t, err, ErrInvalidID)
}

func TestServiceTree(t *testing.T) {
	svc := New(charlemagneKB(), testConfig(), nil)
	defer svc.Close()

	node, err := svc.Tree(context.Background(), "Q3044", 1)
	require.NoError(t, err)
	require.Equal(t, tree.StatusReady, node.Status)

	require.Len(t, node.Parents, 2)
	assert.Equal(t, "Pepin the Short", node.Parents[0].Person.Label)
	assert.Equal(t, "Bertrada of Laon", node.Parents[1].Person.Label)
}

func TestServiceTreeRootNotFound(t *testing.T) {
	svc := New(charlemagneKB(), testConfig(), nil)
	defer svc.Close()

	node, err := svc.Tree(context.Background(), "Q999999", 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	require.NotNil(t, node)
	assert.Equal(t, tree.StatusFailed, node.Status)
}

func TestServiceTreeSharesResolverCache(t *testing.T) {
	svc := New(charlemagneKB(), testConfig(), nil)
	defer svc.Close()

	_, err := svc.Person(context.Background(), "Q3044")
	require.NoError(t, err)

	_, err = svc.Tree(context.Background(), "Q3044", 1)
	require.NoError(t, err)

	// Person and Tree share one session cache.
	assert.True(t, svc.Resolver().Has("Q3044"))
	assert.True(t, svc.Resolver().Has("Q3023"))
}
