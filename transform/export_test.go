package transform

import (
	"testing"

	"github.com/c360studio/modelgraph/catalog"
	"github.com/c360studio/modelgraph/hypergraph"
	"github.com/c360studio/modelgraph/identifier"
	"github.com/c360studio/modelgraph/metamodel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportLeafComponent(t *testing.T) {
	store := hypergraph.New()
	doc := &catalog.Document{
		Domain: "SOFTWARE", Type: "Task", Name: "Foo",
		Versions: []catalog.Version{
			{Name: "v1", Interfaces: []catalog.Interface{{Name: "in1", Type: "Data", Direction: "INCOMING"}}},
		},
	}
	ok, _ := Import(store, doc, nil)
	require.True(t, ok)

	out, _ := Export(store, identifier.Component("SOFTWARE", "Foo", ""), nil)
	require.NotEmpty(t, out)

	exported, err := catalog.Parse([]byte(out))
	require.NoError(t, err)
	assert.Equal(t, "SOFTWARE", exported.Domain)
	assert.Equal(t, "Task", exported.Type)
	assert.Equal(t, "Foo", exported.Name)
	require.Len(t, exported.Versions, 1)
	assert.Equal(t, "v1", exported.Versions[0].Name)
	require.Len(t, exported.Versions[0].Interfaces, 1)
	assert.Equal(t, "in1", exported.Versions[0].Interfaces[0].Name)
	assert.Equal(t, "Data", exported.Versions[0].Interfaces[0].Type)
	assert.Equal(t, "INCOMING", exported.Versions[0].Interfaces[0].Direction)
}

// scenario g: export ambiguity.
func TestExportAmbiguousDomainReturnsEmpty(t *testing.T) {
	store := hypergraph.New()
	metamodel.Bootstrap(store)

	typeUID := identifier.Type("Task")
	store.CreateComponent(typeUID, "Task", []string{metamodel.ComponentType})

	unversioned := identifier.Component("SOFTWARE", "Ambi", "")
	store.CreateComponent(unversioned, "Ambi", []string{typeUID})

	versionUID := identifier.Component("SOFTWARE", "Ambi", "v1")
	store.CreateComponent(versionUID, "v1", []string{unversioned})

	store.IsA([]string{unversioned}, []string{identifier.Domain("SOFTWARE")})
	store.IsA([]string{unversioned}, []string{identifier.Domain("COMPUTATION")})

	out, _ := Export(store, unversioned, nil)
	assert.Empty(t, out)
}

func TestExportReturnsTouchedEdgeFacts(t *testing.T) {
	store := hypergraph.New()
	store.Create(identifier.Relation("Triggers"), "Triggers")

	for _, name := range []string{"A", "B"} {
		doc := &catalog.Document{
			Domain: "SOFTWARE", Type: "Task", Name: name,
			Versions: []catalog.Version{{Name: "v1"}},
		}
		ok, _ := Import(store, doc, nil)
		require.True(t, ok)
	}

	top := &catalog.Document{
		Domain: "SOFTWARE", Type: "Task", Name: "Top",
		Versions: []catalog.Version{
			{
				Name: "v1",
				Components: &catalog.Components{
					Nodes: []catalog.Node{
						{Name: "A", Model: catalog.ModelRef{Name: "A", Domain: "SOFTWARE", Version: "v1"}},
						{Name: "B", Model: catalog.ModelRef{Name: "B", Domain: "SOFTWARE", Version: "v1"}},
					},
					Edges: []catalog.Edge{
						{Name: "e1", Type: "Triggers", From: catalog.NodeRef{Name: "A"}, To: catalog.NodeRef{Name: "B"}},
					},
				},
			},
		},
	}
	ok, _ := Import(store, top, nil)
	require.True(t, ok)

	out, touched := Export(store, identifier.Component("SOFTWARE", "Top", ""), nil)
	require.NotEmpty(t, out)
	require.Len(t, touched, 1)

	fact, ok2 := store.Fact(touched[0])
	require.True(t, ok2)
	assert.Equal(t, "e1", fact.Label)
}

func TestExportUnknownIdentifierReturnsEmpty(t *testing.T) {
	store := hypergraph.New()
	metamodel.Bootstrap(store)
	out, _ := Export(store, "Component::SOFTWARE::Nope", nil)
	assert.Empty(t, out)
}
