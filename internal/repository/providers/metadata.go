package providers

import (
	"context"
	"fmt"

	"encoreTrips/domain"

	"github.com/go-resty/resty/v2"
	gobreaker "github.com/sony/gobreaker/v2"
)

type MetadataConfig struct {
	BaseURL string
	APIKey  string
}

// MetadataClient talks to the artist enrichment service. Lookups are always
// off the request path, so a slow or dead service only delays enrichment.
type MetadataClient struct {
	client  *resty.Client
	breaker *gobreaker.CircuitBreaker[domain.ArtistMetadata]
}

func NewMetadataClient(cfg MetadataConfig) *MetadataClient {
	return &MetadataClient{
		client:  newRestClient(cfg.BaseURL).SetHeader("X-Api-Key", cfg.APIKey),
		breaker: newBreaker[domain.ArtistMetadata]("metadata-provider"),
	}
}

type metadataPayload struct {
	Name            string   `json:"name"`
	Genres          []string `json:"genres"`
	Popularity      int      `json:"popularity"`
	Verified        bool     `json:"verified"`
	Tribute         bool     `json:"tribute"`
	Collaboration   bool     `json:"collaboration"`
	SocialPlatforms []string `json:"social_platforms"`
}

func (c *MetadataClient) FetchMetadata(ctx context.Context, artist string) (domain.ArtistMetadata, error) {
	if err := ctx.Err(); err != nil {
		return domain.ArtistMetadata{}, fmt.Errorf("context error: %w", err)
	}

	meta, err := c.breaker.Execute(func() (domain.ArtistMetadata, error) {
		var payload metadataPayload
		resp, err := c.client.R().
			SetContext(ctx).
			SetQueryParam("name", artist).
			SetResult(&payload).
			Get("/v1/artists/lookup")
		if err != nil {
			return domain.ArtistMetadata{}, err
		}
		if err := checkStatus("metadata provider", resp); err != nil {
			return domain.ArtistMetadata{}, err
		}

		meta := domain.ArtistMetadata{
			Artist:          payload.Name,
			Genres:          payload.Genres,
			Popularity:      payload.Popularity,
			Verified:        payload.Verified,
			IsTribute:       payload.Tribute,
			IsCollaboration: payload.Collaboration,
			SocialPlatforms: payload.SocialPlatforms,
		}
		meta.QualityScore = qualityScore(meta)
		return meta, nil
	})
	if err != nil {
		return domain.ArtistMetadata{}, unavailable("metadata provider", err)
	}

	return meta, nil
}

// qualityScore grades record completeness: each populated facet contributes
// an equal share.
func qualityScore(meta domain.ArtistMetadata) float64 {
	facets := 0
	filled := 0

	facets++
	if len(meta.Genres) > 0 {
		filled++
	}
	facets++
	if meta.Popularity > 0 {
		filled++
	}
	facets++
	if meta.Verified {
		filled++
	}
	facets++
	if len(meta.SocialPlatforms) > 0 {
		filled++
	}

	return float64(filled) / float64(facets)
}
