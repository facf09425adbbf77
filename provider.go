package relay

// Provider identifies an AI provider.
type Provider string

// String returns the provider identifier.
func (p Provider) String() string { return string(p) }

// Supported providers.
const (
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
	ProviderGoogle    Provider = "google"
)

// Providers lists every supported provider.
var Providers = []Provider{ProviderOpenAI, ProviderAnthropic, ProviderGoogle}

// Known reports whether p is a supported provider.
func (p Provider) Known() bool {
	for _, known := range Providers {
		if p == known {
			return true
		}
	}
	return false
}

// Model identifies a chat model and the provider that serves it.
type Model interface {
	// String returns the provider-side model name.
	String() string
	// Provider returns which provider this model belongs to.
	Provider() Provider
}
