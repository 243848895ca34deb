package domain

// ArtistMetadata is enrichment data from the metadata provider. It lives in
// the cache only; a miss triggers a background refresh and scoring proceeds
// without it.
type ArtistMetadata struct {
	Artist          string   `json:"artist"`
	Genres          []string `json:"genres"`
	Popularity      int      `json:"popularity"` // 0-100
	Verified        bool     `json:"verified"`
	IsTribute       bool     `json:"is_tribute"`
	IsCollaboration bool     `json:"is_collaboration"`
	SocialPlatforms []string `json:"social_platforms"`
	QualityScore    float64  `json:"quality_score"` // 0-1, completeness of the record
}
