package transform

import (
	"testing"

	"github.com/c360studio/modelgraph/catalog"
	"github.com/c360studio/modelgraph/hypergraph"
	"github.com/c360studio/modelgraph/identifier"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// invariant 3: round-trip structure, order-insensitive on field values.
func TestRoundTripStructure(t *testing.T) {
	store := hypergraph.New()

	bar := &catalog.Document{
		Domain: "SOFTWARE", Type: "Task", Name: "Bar",
		Versions: []catalog.Version{
			{Name: "v1", Interfaces: []catalog.Interface{{Name: "p", Type: "Data", Direction: "BIDIRECTIONAL"}}},
		},
	}
	ok, _ := Import(store, bar, nil)
	require.True(t, ok)

	store.Create(identifier.Relation("Triggers"), "Triggers")

	foo := &catalog.Document{
		Domain: "SOFTWARE", Type: "Task", Name: "Foo",
		Versions: []catalog.Version{
			{
				Name: "v1",
				Components: &catalog.Components{
					Nodes: []catalog.Node{
						{Name: "a", Model: catalog.ModelRef{Name: "Bar", Domain: "SOFTWARE", Version: "v1"}},
						{Name: "b", Model: catalog.ModelRef{Name: "Bar", Domain: "SOFTWARE", Version: "v1"}},
					},
					Edges: []catalog.Edge{
						{Name: "e1", Type: "Triggers", From: catalog.NodeRef{Name: "a"}, To: catalog.NodeRef{Name: "b"}},
						{Name: "c1", From: catalog.NodeRef{Name: "a", Interface: "p"}, To: catalog.NodeRef{Name: "b", Interface: "p"}},
					},
				},
				DefaultConfiguration: &catalog.ConfigItem{Name: "v1", Data: "k=1"},
			},
		},
	}
	ok, _ = Import(store, foo, nil)
	require.True(t, ok)

	out, _ := Export(store, identifier.Component("SOFTWARE", "Foo", ""), nil)
	require.NotEmpty(t, out)

	exported, err := catalog.Parse([]byte(out))
	require.NoError(t, err)

	assert.Equal(t, foo.Domain, exported.Domain)
	assert.Equal(t, foo.Type, exported.Type)
	assert.Equal(t, foo.Name, exported.Name)
	require.Len(t, exported.Versions, 1)

	gotVersion := exported.Versions[0]
	assert.Equal(t, "v1", gotVersion.Name)
	require.NotNil(t, gotVersion.DefaultConfiguration)
	assert.Equal(t, "k=1", gotVersion.DefaultConfiguration.Data)

	require.NotNil(t, gotVersion.Components)
	assert.Len(t, gotVersion.Components.Nodes, 2)
	assert.Len(t, gotVersion.Components.Edges, 2)

	var names []string
	for _, n := range gotVersion.Components.Nodes {
		names = append(names, n.Name)
		assert.Equal(t, "Bar", n.Model.Name)
		assert.Equal(t, "SOFTWARE", n.Model.Domain)
		assert.Equal(t, "v1", n.Model.Version)
	}
	assert.ElementsMatch(t, []string{"a", "b"}, names)

	var sawInterDomain, sawInterfaceConn bool
	for _, e := range gotVersion.Components.Edges {
		switch e.Name {
		case "e1":
			sawInterDomain = true
			assert.Equal(t, "Triggers", e.Type)
		case "c1":
			sawInterfaceConn = true
			assert.True(t, e.IsInterfaceConnection())
			assert.Equal(t, "p", e.From.Interface)
			assert.Equal(t, "p", e.To.Interface)
		}
	}
	assert.True(t, sawInterDomain)
	assert.True(t, sawInterfaceConn)
}
