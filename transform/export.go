package transform

import (
	"log/slog"

	"github.com/c360studio/modelgraph/catalog"
	"github.com/c360studio/modelgraph/hypergraph"
	"github.com/c360studio/modelgraph/metamodel"
	"github.com/google/uuid"
)

// modelIdentity is the resolved (domain, type, name, version) tuple for
// a version-level model concept, per §4.E steps 1-3.
type modelIdentity struct {
	Domain  string
	Type    string
	Name    string
	Version string
}

// Export reconstructs a catalog.Document from the hypergraph rooted at
// the un-versioned component class identified by target, per §4.E. It
// returns the empty string on ambiguity (0 or >1 candidate for any of
// domain/type/name), alongside the identifiers of every edge/interface
// fact read along the way (for the optional publish side-channel,
// mirroring Import's touched-facts return).
func Export(store *hypergraph.Store, target string, logger *slog.Logger) (string, []string) {
	if logger == nil {
		logger = slog.Default()
	}
	correlationID := uuid.NewString()
	log := logger.With(slog.String("correlation_id", correlationID), slog.String("op", "export"))

	versionClasses := store.DirectSubclassesOf([]string{target}, "", hypergraph.INVERSE)
	if len(versionClasses) == 0 {
		log.Error("export failed", slog.Any("error", ErrAmbiguousExport("no versions found for "+target)))
		return "", nil
	}

	identity, ok := resolveModelIdentity(store, versionClasses[0])
	if !ok {
		log.Error("export failed", slog.Any("error", ErrAmbiguousExport("domain/type/name resolution for "+target)))
		return "", nil
	}

	doc := &catalog.Document{
		Domain: identity.Domain,
		Type:   identity.Type,
		Name:   identity.Name,
	}

	var touched []string
	for _, versionUID := range versionClasses {
		version, facts := exportVersion(store, versionUID, log)
		doc.Versions = append(doc.Versions, version)
		touched = append(touched, facts...)
	}

	data, err := doc.Marshal()
	if err != nil {
		log.Error("export failed: marshal", slog.Any("error", err))
		return "", nil
	}
	return string(data), touched
}

// resolveModelIdentity walks the fixed subclass-of/is-a chain upward
// from a version-level concept to recover its (domain, type, name,
// version) tuple. It fails (ok=false) if any step finds zero or more
// than one candidate, mirroring ambiguous-export handling.
func resolveModelIdentity(store *hypergraph.Store, versionUID string) (modelIdentity, bool) {
	unversioned := store.DirectSubclassesOf([]string{versionUID}, "", hypergraph.FORWARD)
	if len(unversioned) != 1 {
		return modelIdentity{}, false
	}

	typeCandidates := store.DirectSubclassesOf(unversioned, "", hypergraph.FORWARD)
	if len(typeCandidates) != 1 {
		return modelIdentity{}, false
	}

	domainMarkers := store.DirectSubclassesOf([]string{metamodel.Domain}, "", hypergraph.INVERSE)
	domainCandidates := hypergraph.Intersect(isaTargetsOf(store, unversioned[0]), domainMarkers)
	if len(domainCandidates) != 1 {
		return modelIdentity{}, false
	}

	name, _ := store.Get(unversioned[0])
	typ, _ := store.Get(typeCandidates[0])
	domain, _ := store.Get(domainCandidates[0])
	version, _ := store.Get(versionUID)

	return modelIdentity{Domain: domain, Type: typ, Name: name, Version: version}, true
}

// isaTargetsOf returns the objects of every is-a fact whose subject is
// uid.
func isaTargetsOf(store *hypergraph.Store, uid string) []string {
	var out []string
	for _, factUID := range store.RelationsFrom([]string{uid}, "") {
		fact, ok := store.Fact(factUID)
		if !ok || fact.Relation != hypergraph.BaseIsA {
			continue
		}
		out = append(out, fact.To...)
	}
	return hypergraph.Unite(out)
}

func exportVersion(store *hypergraph.Store, versionUID string, log *slog.Logger) (catalog.Version, []string) {
	label, _ := store.Get(versionUID)
	version := catalog.Version{Name: label}
	var touched []string

	nodes := store.ComponentsOf([]string{versionUID}, "")
	components := &catalog.Components{}
	nodeOwner := make(map[string]string) // node label -> instance uid

	for _, inst := range nodes {
		node, ok := exportNode(store, inst, log)
		if !ok {
			continue
		}
		components.Nodes = append(components.Nodes, node)
		nodeOwner[node.Name] = inst

		for _, cfg := range store.ConfigsOf([]string{inst}) {
			data, _ := store.Get(cfg)
			if components.Configuration == nil {
				components.Configuration = &catalog.Configuration{}
			}
			components.Configuration.Nodes = append(components.Configuration.Nodes, catalog.ConfigItem{Name: node.Name, Data: data})
		}
	}

	for _, from := range nodes {
		for _, to := range nodes {
			edges := exportRelationEdges(store, from, to)
			edges = append(edges, exportInterfaceConnectionEdges(store, from, to)...)
			for _, edge := range edges {
				components.Edges = append(components.Edges, edge.Edge)
				touched = append(touched, edge.factUIDs...)
				for _, cfgUID := range edge.factUIDs {
					for _, cfg := range store.ConfigsOf([]string{cfgUID}) {
						data, _ := store.Get(cfg)
						if components.Configuration == nil {
							components.Configuration = &catalog.Configuration{}
						}
						components.Configuration.Edges = append(components.Configuration.Edges, catalog.ConfigItem{Name: edge.Edge.Name, Data: data})
					}
				}
			}
		}
	}

	if len(components.Nodes) > 0 || len(components.Edges) > 0 || components.Configuration != nil {
		version.Components = components
	}

	version.Interfaces = exportInterfaces(store, versionUID, log)

	if configs := store.ConfigsOf([]string{versionUID}); len(configs) > 0 {
		data, _ := store.Get(configs[0])
		version.DefaultConfiguration = &catalog.ConfigItem{Name: label, Data: data}
	}

	return version, touched
}

func exportNode(store *hypergraph.Store, inst string, log *slog.Logger) (catalog.Node, bool) {
	name, _ := store.Get(inst)

	templates := store.InstancesOf([]string{inst}, "", hypergraph.FORWARD)
	if len(templates) != 1 {
		log.Warn("skipping node export: ambiguous template", slog.String("node", name))
		return catalog.Node{}, false
	}

	identity, ok := resolveModelIdentity(store, templates[0])
	if !ok {
		log.Warn("skipping node export: ambiguous model identity", slog.String("node", name))
		return catalog.Node{}, false
	}

	return catalog.Node{
		Name: name,
		Model: catalog.ModelRef{
			Name:    identity.Name,
			Domain:  identity.Domain,
			Version: identity.Version,
		},
	}, true
}

type exportedEdge struct {
	Edge     catalog.Edge
	factUIDs []string
}

func exportRelationEdges(store *hypergraph.Store, from, to string) []exportedEdge {
	var out []exportedEdge
	fromName, _ := store.Get(from)
	toName, _ := store.Get(to)

	candidates := hypergraph.Intersect(store.RelationsFrom([]string{from}, ""), store.RelationsTo([]string{to}, ""))
	for _, factUID := range candidates {
		fact, ok := store.Fact(factUID)
		if !ok || fact.Relation == hypergraph.BaseConnectedToIface || fact.Relation == hypergraph.BaseIsA {
			continue
		}
		relLabel, _ := store.Get(fact.Relation)
		out = append(out, exportedEdge{
			Edge: catalog.Edge{
				Name: fact.Label,
				Type: relLabel,
				From: catalog.NodeRef{Name: fromName},
				To:   catalog.NodeRef{Name: toName},
			},
			factUIDs: []string{factUID},
		})
	}
	return out
}

func exportInterfaceConnectionEdges(store *hypergraph.Store, from, to string) []exportedEdge {
	var out []exportedEdge
	fromName, _ := store.Get(from)
	toName, _ := store.Get(to)

	fromIfaces := store.InterfacesOf([]string{from}, "", hypergraph.FORWARD)
	toIfaces := store.InterfacesOf([]string{to}, "", hypergraph.FORWARD)

	for _, fi := range fromIfaces {
		for _, ti := range toIfaces {
			candidates := hypergraph.Intersect(store.RelationsFrom([]string{fi}, ""), store.RelationsTo([]string{ti}, ""))
			for _, factUID := range candidates {
				fact, ok := store.Fact(factUID)
				if !ok || fact.Relation != hypergraph.BaseConnectedToIface {
					continue
				}
				fiName, _ := store.Get(fi)
				tiName, _ := store.Get(ti)
				out = append(out, exportedEdge{
					Edge: catalog.Edge{
						Name: fact.Label,
						Type: catalog.NotSet,
						From: catalog.NodeRef{Name: fromName, Interface: fiName},
						To:   catalog.NodeRef{Name: toName, Interface: tiName},
					},
					factUIDs: []string{factUID},
				})
			}
		}
	}
	return out
}

func exportInterfaces(store *hypergraph.Store, versionUID string, log *slog.Logger) []catalog.Interface {
	var out []catalog.Interface

	typeMarkers := store.DirectSubclassesOf([]string{metamodel.InterfaceType}, "", hypergraph.INVERSE)
	directionMarkers := store.DirectSubclassesOf([]string{metamodel.Direction}, "", hypergraph.INVERSE)

	for _, iface := range store.InterfacesOf([]string{versionUID}, "", hypergraph.FORWARD) {
		name, _ := store.Get(iface)

		classes := store.InstancesOf([]string{iface}, "", hypergraph.FORWARD)
		ancestors := store.DirectSubclassesOf(classes, "", hypergraph.FORWARD)

		typeCandidates := hypergraph.Intersect(ancestors, typeMarkers)
		directionCandidates := hypergraph.Intersect(ancestors, directionMarkers)
		if len(typeCandidates) != 1 || len(directionCandidates) != 1 {
			log.Warn("skipping interface export: ambiguous class", slog.String("interface", name))
			continue
		}
		typ, _ := store.Get(typeCandidates[0])
		direction, _ := store.Get(directionCandidates[0])

		entry := catalog.Interface{Name: name, Type: typ, Direction: direction}

		if originals := store.OriginalInterfacesOf([]string{iface}); len(originals) > 0 {
			original := originals[0]
			owners := store.InterfacesOf([]string{original}, "", hypergraph.INVERSE)
			if len(owners) > 0 {
				ownerName, _ := store.Get(owners[0])
				originalName, _ := store.Get(original)
				entry.LinkToNode = ownerName
				entry.LinkToInterface = originalName
			}
		}

		out = append(out, entry)
	}
	return out
}
