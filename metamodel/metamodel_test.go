package metamodel

import (
	"testing"

	"github.com/c360studio/modelgraph/hypergraph"
)

func TestBootstrapInstallsUpperConceptsExactlyOnce(t *testing.T) {
	store := hypergraph.New()
	Bootstrap(store)
	Bootstrap(store) // idempotent re-run, e.g. after loading a persisted hypergraph

	for _, uid := range []string{
		Domain, Component, ComponentType, Interface, Direction, InterfaceType,
		Relation, Configuration, HasConfig, AliasOf, DomainSoftware, DomainComputation,
		SoftwareGraphAlgorithm, SoftwareGraphInterface, SoftwareGraphInput, SoftwareGraphOutput,
		ComputationNetworkDevice, ComputationNetworkProcessor, ComputationNetworkBus, ComputationNetworkNetwork,
	} {
		if !store.Exists(uid) {
			t.Errorf("expected upper concept %s to exist", uid)
		}
	}
}

func TestDomainMarkersAreDirectSubclassesOfDomain(t *testing.T) {
	store := hypergraph.New()
	Bootstrap(store)

	direct := store.DirectSubclassesOf([]string{DomainSoftware, DomainComputation}, "", hypergraph.FORWARD)
	if len(direct) != 1 || direct[0] != Domain {
		t.Errorf("expected both domain markers direct-subclass-of Domain, got %v", direct)
	}
}

func TestHasConfigAndAliasOfAreSubrelationsOfHasA(t *testing.T) {
	store := hypergraph.New()
	Bootstrap(store)

	parents := store.DirectSubclassesOf([]string{HasConfig}, "", hypergraph.FORWARD)
	if len(parents) != 1 || parents[0] != hypergraph.BaseHasA {
		t.Errorf("expected HasConfig subrelation of has-a, got %v", parents)
	}

	parents = store.DirectSubclassesOf([]string{AliasOf}, "", hypergraph.FORWARD)
	if len(parents) != 1 || parents[0] != hypergraph.BaseHasA {
		t.Errorf("expected AliasOf subrelation of has-a, got %v", parents)
	}
}
