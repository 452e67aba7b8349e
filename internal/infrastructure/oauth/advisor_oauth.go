package oauth

import (
	"context"
	"net/http"

	"crewrecovery-service/pkg/logger"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// AdvisorOAuth handles client-credentials authentication against the
// policy advisor and ops feed APIs.
type AdvisorOAuth struct {
	config *clientcredentials.Config
	logger logger.Logger
}

// NewAdvisorOAuth creates a new OAuth handler
func NewAdvisorOAuth(tokenURL, clientID, clientSecret string, logger logger.Logger) *AdvisorOAuth {
	config := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     tokenURL,
	}

	return &AdvisorOAuth{
		config: config,
		logger: logger,
	}
}

// GetTokenSource returns a reusable token source for API clients
func (o *AdvisorOAuth) GetTokenSource(ctx context.Context) oauth2.TokenSource {
	return o.config.TokenSource(ctx)
}

// HTTPClient returns an HTTP client that injects bearer tokens. When no
// client ID is configured the plain default client is returned, so local
// setups can run against unauthenticated stubs.
func (o *AdvisorOAuth) HTTPClient(ctx context.Context) *http.Client {
	if o.config.ClientID == "" {
		o.logger.Warn("No advisor client ID configured, using unauthenticated client")
		return http.DefaultClient
	}
	return oauth2.NewClient(ctx, o.GetTokenSource(ctx))
}
