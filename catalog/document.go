// Package catalog defines the hierarchical component-catalog document
// format (§6.2) and the codec that parses and serializes it, grounded
// on config/config.go's yaml.v3 load/save pair. The format is YAML
// throughout: the CLI reads documents with Parse and transform.Export
// writes them with (*Document).Marshal.
package catalog

import "gopkg.in/yaml.v3"

// Document is the top-level catalog document: a component identified
// by (domain, type, name), with one or more versions.
type Document struct {
	Domain   string    `yaml:"domain"`
	Type     string    `yaml:"type"`
	Name     string    `yaml:"name"`
	Versions []Version `yaml:"versions"`
}

// Version is a single versioned model of a component: its
// sub-components, edges, interfaces and configuration.
type Version struct {
	Name                 string      `yaml:"name"`
	DefaultConfiguration *ConfigItem `yaml:"defaultConfiguration,omitempty"`
	Components           *Components `yaml:"components,omitempty"`
	Interfaces           []Interface `yaml:"interfaces,omitempty"`
}

// Components holds a version's sub-component graph: the nodes
// (sub-component instances), the edges among them, and any
// configuration attached to either.
type Components struct {
	Nodes         []Node         `yaml:"nodes,omitempty"`
	Edges         []Edge         `yaml:"edges,omitempty"`
	Configuration *Configuration `yaml:"configuration,omitempty"`
}

// Node is a sub-component reference: a local name bound to a
// (domain, name, version) model template.
type Node struct {
	Name  string   `yaml:"name"`
	Model ModelRef `yaml:"model"`
}

// ModelRef names the model template a Node instantiates.
type ModelRef struct {
	Name    string `yaml:"name"`
	Domain  string `yaml:"domain"`
	Version string `yaml:"version"`
}

// Edge is either an inter-domain relation (Type set) or an interface
// connection (Type absent/NOT_SET, From/To carrying Interface names).
type Edge struct {
	Name string  `yaml:"name"`
	Type string  `yaml:"type,omitempty"`
	From NodeRef `yaml:"from"`
	To   NodeRef `yaml:"to"`
}

// NodeRef names an edge endpoint: a sub-component, optionally one of
// its interfaces.
type NodeRef struct {
	Name      string `yaml:"name"`
	Interface string `yaml:"interface,omitempty"`
}

// Configuration groups the configuration entries attached to a
// version's nodes and edges.
type Configuration struct {
	Nodes []ConfigItem `yaml:"nodes,omitempty"`
	Edges []ConfigItem `yaml:"edges,omitempty"`
}

// ConfigItem names the owner (by label) a configuration blob attaches
// to, and the blob itself.
type ConfigItem struct {
	Name string `yaml:"name"`
	Data string `yaml:"data"`
}

// Interface is a version-level interface descriptor: either a plain
// interface of (Type, Direction), or — when LinkToNode/LinkToInterface
// are both set — an alias that forwards to a sub-component's
// interface.
type Interface struct {
	Name            string `yaml:"name"`
	Type            string `yaml:"type"`
	Direction       string `yaml:"direction"`
	LinkToNode      string `yaml:"linkToNode,omitempty"`
	LinkToInterface string `yaml:"linkToInterface,omitempty"`
}

// NotSet is the sentinel edge type meaning "this edge is an interface
// connection, not an inter-domain relation".
const NotSet = "NOT_SET"

// IsInterfaceConnection reports whether e is an interface connection
// rather than an inter-domain relation.
func (e Edge) IsInterfaceConnection() bool {
	return e.Type == "" || e.Type == NotSet
}

// DocumentCodec parses and serializes catalog documents. YAMLCodec is
// its only implementation. Neither transform nor the CLI takes a
// DocumentCodec: they call Parse and (*Document).Marshal directly.
type DocumentCodec interface {
	Parse(data []byte) (*Document, error)
	Marshal(doc *Document) ([]byte, error)
}

// YAMLCodec is the default DocumentCodec, backed by yaml.v3.
type YAMLCodec struct{}

// Parse decodes a YAML catalog document.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Marshal encodes doc as YAML.
func (doc *Document) Marshal() ([]byte, error) {
	return yaml.Marshal(doc)
}

// Parse implements DocumentCodec.
func (YAMLCodec) Parse(data []byte) (*Document, error) { return Parse(data) }

// Marshal implements DocumentCodec.
func (YAMLCodec) Marshal(doc *Document) ([]byte, error) { return doc.Marshal() }
