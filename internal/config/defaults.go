package config

const defaultHTTPTimeoutSeconds = 60

// GetDefaults returns the default configuration values.
func GetDefaults() map[string]any {
	return map[string]any{
		"extensions_home":      "~/.pact/extensions",
		"ai_base_url":          "https://download.pactflow.io/ai/dist",
		"standalone_base_url":  "https://github.com/pact-foundation/pact-standalone/releases/download",
		"standalone_api_url":   "https://api.github.com/repos/pact-foundation/pact-standalone/releases/latest",
		"http_timeout_seconds": defaultHTTPTimeoutSeconds,
	}
}
