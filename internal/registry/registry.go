// Package registry persists the mapping of extension name to extension
// record. The registry document is the single source of truth for what is
// installed; a missing or corrupt document is treated as an empty registry
// so config loss never blocks a first-time install.
package registry

// Kind determines an extension's version-resolution and uninstall strategy.
type Kind string

const (
	// KindPactflowAI marks a remote single-binary extension.
	KindPactflowAI Kind = "PactflowAi"
	// KindRubyStandalone marks a tool bridged from the legacy multi-tool
	// bundle, or the bundle's master record.
	KindRubyStandalone Kind = "PactRubyStandalone"
	// KindExternal marks a binary resolved from PATH, never managed here.
	KindExternal Kind = "External"
)

// Record is one entry per installable command.
type Record struct {
	Name       string `json:"name"`
	Version    string `json:"version"`
	BinaryPath string `json:"binary_path"`
	Kind       Kind   `json:"extension_type"`
	Installed  bool   `json:"installed"`
}

// Registry maps extension name to record. Names are globally unique;
// inserting under an existing name replaces that record.
type Registry map[string]Record

// MasterBundleName is the registry entry owning the legacy bundle's
// extraction directory. Derived bundle records cannot outlive it.
const MasterBundleName = "pact-legacy"

// AIExtensionName is the remote single-binary extension name.
const AIExtensionName = "pactflow-ai"

// builtinNames is the fixed list of extension names that always appear in a
// listing, even when never installed.
var builtinNames = []struct {
	name string
	kind Kind
}{
	{AIExtensionName, KindPactflowAI},
	{"pact-broker-legacy", KindRubyStandalone},
	{"pactflow-legacy", KindRubyStandalone},
	{"message-legacy", KindRubyStandalone},
	{"mock-legacy", KindRubyStandalone},
	{"verifier-legacy", KindRubyStandalone},
	{"stub-legacy", KindRubyStandalone},
}

// BuiltinNames returns the well-known extension names in listing order.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtinNames))
	for _, b := range builtinNames {
		names = append(names, b.name)
	}
	return names
}

// DerivedBundleNames returns the names of records derived from the legacy
// bundle (every bundled builtin except the master itself).
func DerivedBundleNames() []string {
	var names []string
	for _, b := range builtinNames {
		if b.kind == KindRubyStandalone {
			names = append(names, b.name)
		}
	}
	return names
}
