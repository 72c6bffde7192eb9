package handlers

import (
	"github.com/openfda-labs/fdadrugs-api/fdaclient"
	"github.com/openfda-labs/fdadrugs-api/interfaces"
)

// Compile-time check
var _ interfaces.SearcherProvider = (*ClientProvider)(nil)

// ClientProvider hands out openFDA clients, cloning the base client when a
// request carries its own API key.
type ClientProvider struct {
	base *fdaclient.Client
}

func NewClientProvider(base *fdaclient.Client) *ClientProvider {
	return &ClientProvider{base: base}
}

// SearcherFor returns the base client, or a per-key clone when apiKey is
// set. Clones share the base client's outbound rate limiter.
func (p *ClientProvider) SearcherFor(apiKey string) interfaces.DrugSearcher {
	if apiKey == "" {
		return p.base
	}
	return p.base.WithAPIKey(apiKey)
}
