package storefront

import (
	"context"
	"errors"
	"testing"
)

type stubRecommender struct {
	rec   Recommendation
	err   error
	calls int
}

func (s *stubRecommender) Recommend(_ context.Context, _, _ string) (Recommendation, error) {
	s.calls++
	if s.err != nil {
		return Recommendation{}, s.err
	}
	return s.rec, nil
}

func TestRecommendBlankPreferencesRejectedWithoutNetwork(t *testing.T) {
	t.Parallel()

	stub := &stubRecommender{}
	adapter, err := NewRecommendationAdapter(stub)
	if err != nil {
		t.Fatalf("NewRecommendationAdapter: %v", err)
	}

	for _, prefs := range []string{"", "   ", "\t\n"} {
		_, err := adapter.Recommend(context.Background(), prefs, "phones")
		if !IsValidation(err) {
			t.Errorf("Recommend(%q) kind = %v, want validation", prefs, KindOf(err))
		}
	}
	if stub.calls != 0 {
		t.Errorf("blank preferences reached the network %d times", stub.calls)
	}
}

func TestRecommendEmptyMatchIsDistinctFromFailure(t *testing.T) {
	t.Parallel()

	adapter, _ := NewRecommendationAdapter(&stubRecommender{rec: Recommendation{Explanation: "nothing fits"}})

	_, err := adapter.Recommend(context.Background(), "underwater basket weaving gear", "")
	if !IsEmptyResult(err) {
		t.Fatalf("kind = %v, want empty result", KindOf(err))
	}
	if IsNetwork(err) || IsValidation(err) {
		t.Error("empty result must not read as a failure kind")
	}
}

func TestRecommendPassesThroughMatches(t *testing.T) {
	t.Parallel()

	stub := &stubRecommender{rec: Recommendation{
		Products:    named("NeoPhone X", "Ghost Cam"),
		Explanation: "both handle low light well",
	}}
	adapter, _ := NewRecommendationAdapter(stub)

	rec, err := adapter.Recommend(context.Background(), "low-light photography", "all")
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(rec.Products) != 2 {
		t.Fatalf("products = %v, want 2", names(rec.Products))
	}
	if rec.Explanation == "" {
		t.Error("explanation dropped")
	}
}

func TestRecommendSurfacesCollaboratorFailure(t *testing.T) {
	t.Parallel()

	adapter, _ := NewRecommendationAdapter(&stubRecommender{err: wrapError(KindNetwork, errors.New("bad gateway"), "call collaborator")})

	_, err := adapter.Recommend(context.Background(), "phones for gaming", "")
	if !IsNetwork(err) {
		t.Fatalf("kind = %v, want network", KindOf(err))
	}
}
