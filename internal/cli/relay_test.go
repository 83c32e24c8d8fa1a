package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/YOU54F/pact-cli/internal/invoker"
	"github.com/YOU54F/pact-cli/internal/registry"
)

func findRelaySpec(t *testing.T, use string) relaySpec {
	t.Helper()
	for _, spec := range relaySpecs {
		if spec.use == use {
			return spec
		}
	}
	t.Fatalf("relay spec %s not found", use)
	return relaySpec{}
}

func TestRelayTarget_PrefersInstalledExtension(t *testing.T) {
	store := newRouteStore(t)
	registerInstalled(t, store, "verifier-legacy")
	t.Setenv("PATH", t.TempDir())

	inv := invoker.New(store)
	spec := findRelaySpec(t, "verifier")

	name, args := relayTarget(inv, spec, []string{"--provider-base-url", "http://localhost"})
	assert.Equal(t, "verifier-legacy", name)
	assert.Equal(t, []string{"--provider-base-url", "http://localhost"}, args)
}

func TestRelayTarget_FallsBackToPathConvention(t *testing.T) {
	store := newRouteStore(t)
	t.Setenv("PATH", t.TempDir())

	inv := invoker.New(store)
	spec := findRelaySpec(t, "broker")

	name, args := relayTarget(inv, spec, []string{"list"})
	assert.Equal(t, "broker", name)
	assert.Equal(t, []string{"list"}, args)
}

func TestRelayTarget_PactflowContainerRoutesNestedExtension(t *testing.T) {
	store := newRouteStore(t)
	registerInstalled(t, store, registry.AIExtensionName)
	t.Setenv("PATH", t.TempDir())

	inv := invoker.New(store)
	spec := findRelaySpec(t, "pactflow")

	name, args := relayTarget(inv, spec, []string{"ai", "generate", "--help"})
	assert.Equal(t, registry.AIExtensionName, name)
	assert.Equal(t, []string{"generate", "--help"}, args)
}

func TestRelayTarget_PactflowWithoutNestedExtension(t *testing.T) {
	store := newRouteStore(t)
	registerInstalled(t, store, "pactflow-legacy")
	t.Setenv("PATH", t.TempDir())

	inv := invoker.New(store)
	spec := findRelaySpec(t, "pactflow")

	name, args := relayTarget(inv, spec, []string{"publish-provider-contract"})
	assert.Equal(t, "pactflow-legacy", name)
	assert.Equal(t, []string{"publish-provider-contract"}, args)
}

func TestRelaySpecs_CoverWrappedTools(t *testing.T) {
	t.Parallel()

	uses := make([]string, 0, len(relaySpecs))
	for _, spec := range relaySpecs {
		uses = append(uses, spec.use)
	}
	assert.ElementsMatch(t,
		[]string{"broker", "verifier", "mock", "stub", "plugin", "pactflow"}, uses)
}
