// Package transform implements the bidirectional model <-> hypergraph
// transformation: Import materializes a catalog.Document into a
// hypergraph.Store, Export reconstructs a catalog.Document from a
// hypergraph identifier.
package transform

import (
	"log/slog"

	"github.com/c360studio/modelgraph/catalog"
	"github.com/c360studio/modelgraph/hypergraph"
	"github.com/c360studio/modelgraph/identifier"
	"github.com/c360studio/modelgraph/metamodel"
	"github.com/google/uuid"
)

// Import parses doc's structure into store, per §4.D. It returns true
// on successful structural import and the identifiers of the edge,
// interface-connection, HasConfig and AliasOf facts created or reused
// along the way (for the optional publish side-channel); it returns
// false if a required top-level field is
// missing. Missing optional sections, unknown templates and unknown
// relation kinds are logged and skipped rather than aborting the call.
func Import(store *hypergraph.Store, doc *catalog.Document, logger *slog.Logger) (bool, []string) {
	if logger == nil {
		logger = slog.Default()
	}
	correlationID := uuid.NewString()
	log := logger.With(slog.String("correlation_id", correlationID), slog.String("op", "import"))

	if doc.Domain == "" {
		log.Error("import failed", slog.Any("error", ErrMissingRequiredField("domain")))
		return false, nil
	}
	if doc.Type == "" {
		log.Error("import failed", slog.Any("error", ErrMissingRequiredField("type")))
		return false, nil
	}
	if doc.Name == "" {
		log.Error("import failed", slog.Any("error", ErrMissingRequiredField("name")))
		return false, nil
	}
	if len(doc.Versions) == 0 {
		log.Error("import failed", slog.Any("error", ErrMissingRequiredField("versions")))
		return false, nil
	}

	metamodel.Bootstrap(store)

	domainUID := identifier.Domain(doc.Domain)
	store.CreateSubclassOf(domainUID, []string{metamodel.Domain}, doc.Domain)

	typeUID := identifier.Type(doc.Type)
	store.CreateComponent(typeUID, doc.Type, []string{metamodel.ComponentType})

	unversionedUID := identifier.Component(doc.Domain, doc.Name, "")
	store.CreateComponent(unversionedUID, doc.Name, []string{typeUID})
	store.IsA([]string{unversionedUID}, []string{domainUID})
	if doc.Domain == "SOFTWARE" {
		store.IsA([]string{unversionedUID}, []string{metamodel.SoftwareGraphAlgorithm})
	}

	var touchedFacts []string

	for _, version := range doc.Versions {
		facts := importVersion(store, doc, unversionedUID, version, log)
		touchedFacts = append(touchedFacts, facts...)
	}

	return true, touchedFacts
}

func importVersion(store *hypergraph.Store, doc *catalog.Document, unversionedUID string, version catalog.Version, log *slog.Logger) []string {
	versionUID := identifier.Component(doc.Domain, doc.Name, version.Name)
	store.CreateComponent(versionUID, version.Name, []string{unversionedUID})

	validNodes := importNodes(store, versionUID, version, log)
	validEdges := importEdges(store, validNodes, version, log)

	var touched []string
	for _, uids := range validEdges {
		touched = append(touched, uids...)
	}
	touched = append(touched, importConfiguration(store, validNodes, validEdges, version)...)
	touched = append(touched, importInterfaces(store, doc, versionUID, validNodes, version, log)...)

	if version.DefaultConfiguration != nil {
		touched = append(touched, instantiateConfigOnce(store, versionUID, version.DefaultConfiguration.Data))
	}

	return touched
}

func importNodes(store *hypergraph.Store, versionUID string, version catalog.Version, log *slog.Logger) map[string]string {
	validNodes := make(map[string]string)
	if version.Components == nil {
		return validNodes
	}
	for _, node := range version.Components.Nodes {
		if existing := store.ComponentsOf([]string{versionUID}, node.Name); len(existing) > 0 {
			validNodes[node.Name] = existing[0]
			continue
		}

		templateUID := identifier.Component(node.Model.Domain, node.Model.Name, node.Model.Version)
		if templateUID == "" || !store.Exists(templateUID) {
			log.Warn("skipping sub-component", slog.Any("error", ErrUnknownTemplate(templateUID)), slog.String("node", node.Name))
			continue
		}

		instance := store.InstantiateComponent([]string{templateUID}, node.Name)[0]
		store.PartOf([]string{instance}, []string{versionUID})
		// The instance gets its own copy of every template interface, so
		// edges and alias interfaces can address it by label.
		for _, tmplIface := range store.InterfacesOf([]string{templateUID}, "", hypergraph.FORWARD) {
			ifaceLabel, _ := store.Get(tmplIface)
			classes := store.InstancesOf([]string{tmplIface}, "", hypergraph.FORWARD)
			store.HasInterface([]string{instance}, store.InstantiateFrom(classes, ifaceLabel))
		}
		validNodes[node.Name] = instance
	}
	return validNodes
}

func importEdges(store *hypergraph.Store, validNodes map[string]string, version catalog.Version, log *slog.Logger) map[string][]string {
	validEdges := make(map[string][]string)
	if version.Components == nil {
		return validEdges
	}
	for _, edge := range version.Components.Edges {
		if edge.From.Name == "" || edge.To.Name == "" {
			log.Warn("skipping edge", slog.Any("error", ErrMissingRequiredField("from/to")), slog.String("edge", edge.Name))
			continue
		}
		fromUID, fromOK := validNodes[edge.From.Name]
		toUID, toOK := validNodes[edge.To.Name]
		if !fromOK || !toOK {
			continue
		}

		if !edge.IsInterfaceConnection() {
			relUID := identifier.Relation(edge.Type)
			if !store.Exists(relUID) {
				log.Warn("skipping edge", slog.Any("error", ErrUnknownRelationKind(edge.Type)), slog.String("edge", edge.Name))
				continue
			}
			factUID := findFact(store, relUID, edge.Name, fromUID, toUID)
			if factUID == "" {
				factUID = store.FactFrom([]string{fromUID}, []string{toUID}, relUID)[0]
				store.UpdateLabel(factUID, edge.Name)
			}
			validEdges[edge.Name] = append(validEdges[edge.Name], factUID)
			continue
		}

		fromIface := findInterfaceByLabel(store, fromUID, edge.From.Interface)
		toIface := findInterfaceByLabel(store, toUID, edge.To.Interface)
		if fromIface == "" || toIface == "" {
			log.Warn("skipping interface connection", slog.String("edge", edge.Name))
			continue
		}
		factUID := findFact(store, hypergraph.BaseConnectedToIface, edge.Name, fromIface, toIface)
		if factUID == "" {
			factUID = store.ConnectInterface([]string{fromIface}, []string{toIface})[0]
			store.UpdateLabel(factUID, edge.Name)
		}
		validEdges[edge.Name] = append(validEdges[edge.Name], factUID)
	}
	return validEdges
}

func importConfiguration(store *hypergraph.Store, validNodes map[string]string, validEdges map[string][]string, version catalog.Version) []string {
	var touched []string
	if version.Components == nil || version.Components.Configuration == nil {
		return touched
	}
	cfg := version.Components.Configuration
	for _, entry := range cfg.Nodes {
		if owner, ok := validNodes[entry.Name]; ok {
			touched = append(touched, instantiateConfigOnce(store, owner, entry.Data))
		}
	}
	for _, entry := range cfg.Edges {
		for _, owner := range validEdges[entry.Name] {
			touched = append(touched, instantiateConfigOnce(store, owner, entry.Data))
		}
	}
	return touched
}

func importInterfaces(store *hypergraph.Store, doc *catalog.Document, versionUID string, validNodes map[string]string, version catalog.Version, log *slog.Logger) []string {
	var touched []string
	for _, iface := range version.Interfaces {
		directionUID := identifier.Direction(iface.Direction)
		store.CreateSubclassOf(directionUID, []string{metamodel.Direction}, iface.Direction)

		typeUID := identifier.InterfaceType(iface.Type)
		store.CreateSubclassOf(typeUID, []string{metamodel.InterfaceType}, iface.Type)

		specificUID := identifier.Interface(iface.Type, iface.Direction)
		store.CreateInterface(specificUID, iface.Type+"::"+iface.Direction, []string{typeUID, directionUID})

		if doc.Domain == "SOFTWARE" {
			store.IsA([]string{specificUID}, []string{metamodel.SoftwareGraphInterface})
			if isInput(iface.Direction) {
				store.IsA([]string{specificUID}, []string{metamodel.SoftwareGraphInput})
			}
			if isOutput(iface.Direction) {
				store.IsA([]string{specificUID}, []string{metamodel.SoftwareGraphOutput})
			}
		}

		if existing := store.InterfacesOf([]string{versionUID}, iface.Name, hypergraph.FORWARD); len(existing) > 0 {
			continue
		}

		if iface.LinkToNode != "" && iface.LinkToInterface != "" {
			ownerNode, ok := validNodes[iface.LinkToNode]
			if !ok {
				log.Warn("skipping alias interface: unknown node", slog.String("node", iface.LinkToNode))
				continue
			}
			original := findInterfaceByLabel(store, ownerNode, iface.LinkToInterface)
			if original == "" {
				log.Warn("skipping alias interface: unknown original", slog.String("interface", iface.LinkToInterface))
				continue
			}
			aliases := store.InstantiateAliasInterfaceFor(versionUID, []string{original}, iface.Name)
			touched = append(touched, store.RelationsFrom(aliases, "")...)
			continue
		}

		store.InstantiateInterfaceFor(versionUID, specificUID, iface.Name)
	}
	return touched
}

func instantiateConfigOnce(store *hypergraph.Store, owner, label string) string {
	if existing := store.ConfigsOf([]string{owner}); len(existing) > 0 {
		store.UpdateLabel(existing[0], label)
		return findFact(store, metamodel.HasConfig, "", owner, existing[0])
	}
	cfg := store.InstantiateFrom([]string{metamodel.Configuration}, label)[0]
	return store.FactFrom([]string{owner}, []string{cfg}, metamodel.HasConfig)[0]
}

func findFact(store *hypergraph.Store, relation, label, from, to string) string {
	for _, uid := range store.FactsOf(relation, label) {
		fact, ok := store.Fact(uid)
		if !ok {
			continue
		}
		if containsString(fact.From, from) && containsString(fact.To, to) {
			return uid
		}
	}
	return ""
}

func findInterfaceByLabel(store *hypergraph.Store, owner, label string) string {
	matches := store.InterfacesOf([]string{owner}, label, hypergraph.FORWARD)
	if len(matches) == 0 {
		return ""
	}
	return matches[0]
}

func containsString(haystack []string, needle string) bool {
	for _, v := range haystack {
		if v == needle {
			return true
		}
	}
	return false
}

// isInput mirrors original_source/BasicModel.cpp: a direction is an
// input direction if it is INCOMING or BIDIRECTIONAL.
func isInput(direction string) bool {
	return direction == "INCOMING" || direction == "BIDIRECTIONAL"
}

// isOutput mirrors original_source/BasicModel.cpp: a direction is an
// output direction if it is OUTGOING or BIDIRECTIONAL. Both helpers
// return true for BIDIRECTIONAL.
func isOutput(direction string) bool {
	return direction == "OUTGOING" || direction == "BIDIRECTIONAL"
}
