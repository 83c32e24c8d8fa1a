package cli

import (
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/YOU54F/pact-cli/internal/invoker"
	"github.com/YOU54F/pact-cli/internal/registry"
)

// RouteKind classifies a top-level command token. The set is closed:
// every token resolves to exactly one of these.
type RouteKind int

const (
	// RouteStatic matches a built-in command or flag token.
	RouteStatic RouteKind = iota
	// RouteRegisteredExtension matches a name present in the registry.
	RouteRegisteredExtension
	// RoutePathExternalBinary matches a pact-<name> binary on PATH.
	RoutePathExternalBinary
	// RouteUnknown matches nothing; cobra reports it.
	RouteUnknown
)

func (k RouteKind) String() string {
	switch k {
	case RouteStatic:
		return "static"
	case RouteRegisteredExtension:
		return "registered-extension"
	case RoutePathExternalBinary:
		return "path-external-binary"
	default:
		return "unknown"
	}
}

// ResolveRoute computes the route for a top-level token. Static commands
// win over extensions of the same name, registered extensions win over
// PATH binaries. The route is computed once per invocation.
func ResolveRoute(root *cobra.Command, store *registry.Store, token string) RouteKind {
	if token == "" || token[0] == '-' {
		return RouteStatic
	}
	for _, cmd := range root.Commands() {
		if cmd.Name() == token || cmd.HasAlias(token) {
			return RouteStatic
		}
	}
	if token == "help" || token == "completion" {
		return RouteStatic
	}
	if _, ok := store.Load()[token]; ok {
		return RouteRegisteredExtension
	}
	if _, err := exec.LookPath(invoker.PathPrefix + token); err == nil {
		return RoutePathExternalBinary
	}
	return RouteUnknown
}
