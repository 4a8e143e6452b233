package storefront

import (
	"context"
	"strings"
)

// recommendClient is the slice of the collaborator the adapter needs.
type recommendClient interface {
	Recommend(ctx context.Context, preferences, category string) (Recommendation, error)
}

// RecommendationAdapter turns free-text preferences into a product
// subset via the external recommender.
type RecommendationAdapter struct {
	client recommendClient
}

// NewRecommendationAdapter builds the adapter.
func NewRecommendationAdapter(client recommendClient) (*RecommendationAdapter, error) {
	if client == nil {
		return nil, newError(KindValidation, "recommendation client is required")
	}
	return &RecommendationAdapter{client: client}, nil
}

// Recommend sends the shopper's preference text to the recommender.
// Blank preference text is rejected locally without any network call.
// A successful lookup that matches nothing returns an EmptyResult error
// so the caller can fall back to the unfiltered catalog instead of
// rendering a hard empty state.
func (a *RecommendationAdapter) Recommend(ctx context.Context, preferences, category string) (Recommendation, error) {
	if strings.TrimSpace(preferences) == "" {
		return Recommendation{}, newError(KindValidation, "preference text must not be empty")
	}

	rec, err := a.client.Recommend(ctx, preferences, category)
	if err != nil {
		return Recommendation{}, err
	}
	if len(rec.Products) == 0 {
		return Recommendation{}, newError(KindEmptyResult, "no products matched the preferences")
	}
	return rec, nil
}
