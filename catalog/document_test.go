package catalog

import "testing"

const sampleDoc = `
domain: SOFTWARE
type: Task
name: Foo
versions:
  - name: v1
    interfaces:
      - name: in1
        type: Data
        direction: INCOMING
`

func TestParseRoundTrip(t *testing.T) {
	doc, err := Parse([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if doc.Domain != "SOFTWARE" || doc.Type != "Task" || doc.Name != "Foo" {
		t.Fatalf("unexpected top-level fields: %+v", doc)
	}
	if len(doc.Versions) != 1 || doc.Versions[0].Name != "v1" {
		t.Fatalf("unexpected versions: %+v", doc.Versions)
	}
	if len(doc.Versions[0].Interfaces) != 1 || doc.Versions[0].Interfaces[0].Name != "in1" {
		t.Fatalf("unexpected interfaces: %+v", doc.Versions[0].Interfaces)
	}

	data, err := doc.Marshal()
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	reparsed, err := Parse(data)
	if err != nil {
		t.Fatalf("re-parse error = %v", err)
	}
	if reparsed.Name != doc.Name || len(reparsed.Versions) != len(doc.Versions) {
		t.Errorf("round trip mismatch: %+v vs %+v", reparsed, doc)
	}
}

func TestEdgeIsInterfaceConnection(t *testing.T) {
	cases := []struct {
		edge Edge
		want bool
	}{
		{Edge{}, true},
		{Edge{Type: NotSet}, true},
		{Edge{Type: "Triggers"}, false},
	}
	for _, c := range cases {
		if got := c.edge.IsInterfaceConnection(); got != c.want {
			t.Errorf("Edge{Type:%q}.IsInterfaceConnection() = %v, want %v", c.edge.Type, got, c.want)
		}
	}
}

func TestYAMLCodecImplementsDocumentCodec(t *testing.T) {
	var _ DocumentCodec = YAMLCodec{}
}
