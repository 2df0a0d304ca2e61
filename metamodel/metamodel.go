// Package metamodel installs the fixed upper concepts and their
// relationships on a hypergraph, once per model instance and again,
// idempotently, after loading an existing one.
package metamodel

import "github.com/c360studio/modelgraph/hypergraph"

// Fixed upper-concept identifiers, per the identifier scheme table.
const (
	Domain        = "Domain"
	Component     = "Component"
	ComponentType = "Component::Type"
	Interface     = "Interface"
	Direction     = "Interface::Direction"
	InterfaceType = "Interface::Type"
	Relation      = "Relation"
	Configuration = "Configuration"
	HasConfig     = "Relation::HasConfig"
	AliasOf       = "Relation::AliasOf"

	DomainSoftware    = "Domain::SOFTWARE"
	DomainComputation = "Domain::COMPUTATION"
)

// SoftwareGraph upper concepts: the embedded meta-model of the software
// graph domain, per original_source/BasicModel.cpp's is-a wiring of
// Algorithm/Interface/Input/Output onto every SOFTWARE-domain concept.
const (
	SoftwareGraphAlgorithm = "SoftwareGraph::Algorithm"
	SoftwareGraphInterface = "SoftwareGraph::Interface"
	SoftwareGraphInput     = "SoftwareGraph::Input"
	SoftwareGraphOutput    = "SoftwareGraph::Output"
)

// ComputationNetwork upper concepts: the embedded meta-model of the
// hardware computational network domain, per
// original_source/ComputationDomain.cpp. Installed for Invariant 1
// completeness; COMPUTATION documents flow through the same
// Import/Export Engine as SOFTWARE ones rather than a second pipeline.
const (
	ComputationNetworkDevice    = "ComputationNetwork::Device"
	ComputationNetworkProcessor = "ComputationNetwork::Processor"
	ComputationNetworkBus       = "ComputationNetwork::Bus"
	ComputationNetworkNetwork   = "ComputationNetwork::Network"
)

// Bootstrap installs every fixed upper concept on store. It is safe to
// call repeatedly — Create and SubrelationFrom are no-ops on concepts
// that already exist, so Bootstrap may run once per model construction
// and again after loading a persisted hypergraph.
func Bootstrap(store *hypergraph.Store) {
	store.Create(Domain, "Domain")
	store.Create(Component, "Component")
	store.CreateSubclassOf(ComponentType, []string{Component}, "Component::Type")
	store.Create(Interface, "Interface")
	store.CreateSubclassOf(Direction, []string{Interface}, "Interface::Direction")
	store.CreateSubclassOf(InterfaceType, []string{Interface}, "Interface::Type")
	store.Create(Relation, "Relation")
	store.Create(Configuration, "Configuration")

	store.SubrelationFrom(HasConfig, nil, []string{Configuration}, hypergraph.BaseHasA)
	store.SubrelationFrom(AliasOf, []string{Interface}, []string{Interface}, hypergraph.BaseHasA)

	store.CreateSubclassOf(DomainSoftware, []string{Domain}, "SOFTWARE")
	store.CreateSubclassOf(DomainComputation, []string{Domain}, "COMPUTATION")

	store.Create(SoftwareGraphAlgorithm, "Algorithm")
	store.Create(SoftwareGraphInterface, "Interface")
	store.Create(SoftwareGraphInput, "Input")
	store.Create(SoftwareGraphOutput, "Output")

	store.Create(ComputationNetworkDevice, "Device")
	store.Create(ComputationNetworkProcessor, "Processor")
	store.Create(ComputationNetworkBus, "Bus")
	store.CreateSubclassOf(ComputationNetworkNetwork, nil, "Network")
}
