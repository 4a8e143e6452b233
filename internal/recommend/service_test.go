package recommend

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cryptogear/backend/pkg/db/models"
	"github.com/cryptogear/backend/pkg/enums"
	"github.com/cryptogear/backend/pkg/errors"
)

type stubCompleter struct {
	reply string
	err   error
	calls int
	last  string
}

func (s *stubCompleter) CompleteChat(_ context.Context, _ string, userPrompt string) (string, error) {
	s.calls++
	s.last = userPrompt
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

type stubLister struct {
	products []models.Product
	category string
}

func (s *stubLister) ListByCategory(_ context.Context, category string) ([]models.Product, error) {
	s.category = category
	if category == "" {
		return s.products, nil
	}
	var out []models.Product
	for _, p := range s.products {
		if string(p.Category) == category {
			out = append(out, p)
		}
	}
	return out, nil
}

func gadget(name string, category enums.ProductCategory) models.Product {
	return models.Product{
		ID:       uuid.New(),
		Name:     name,
		Category: category,
		Price:    decimal.RequireFromString("199.99"),
		Stock:    5,
	}
}

func catalogFixture() []models.Product {
	return []models.Product{
		gadget("NeoPhone X", enums.ProductCategoryPhones),
		gadget("MetaGlass Pro", enums.ProductCategoryMetaglass),
		gadget("Ghost Cam", enums.ProductCategoryCameras),
		gadget("HoloLens Ultra", enums.ProductCategoryMetaglass),
		gadget("ByteBook Air", enums.ProductCategoryLaptops),
		gadget("Quantum Laptop", enums.ProductCategoryLaptops),
	}
}

func TestRecommendMatchesReplyNames(t *testing.T) {
	t.Parallel()

	completer := &stubCompleter{reply: "NeoPhone X, Ghost Cam. Both suit night shoots."}
	svc, err := NewService(completer, &stubLister{products: catalogFixture()})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	result, err := svc.Recommend(context.Background(), Input{Preferences: "low-light photography"})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}

	if len(result.Recommendations) != 2 {
		t.Fatalf("recommendations = %d, want 2", len(result.Recommendations))
	}
	if result.Recommendations[0].Name != "NeoPhone X" || result.Recommendations[1].Name != "Ghost Cam" {
		t.Errorf("recommendations = %v, want reply order preserved", result.Recommendations)
	}
	if result.Explanation == "" {
		t.Error("explanation is empty")
	}
	if !strings.Contains(completer.last, "low-light photography") {
		t.Errorf("prompt %q does not carry the shopper preferences", completer.last)
	}
}

func TestRecommendCapsAtFour(t *testing.T) {
	t.Parallel()

	reply := "NeoPhone X, MetaGlass Pro, Ghost Cam, HoloLens Ultra, ByteBook Air, Quantum Laptop"
	svc, err := NewService(&stubCompleter{reply: reply}, &stubLister{products: catalogFixture()})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	result, err := svc.Recommend(context.Background(), Input{Preferences: "everything"})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(result.Recommendations) != 4 {
		t.Errorf("recommendations = %d, want cap of 4", len(result.Recommendations))
	}
}

func TestRecommendRejectsBlankPreferencesWithoutCalling(t *testing.T) {
	t.Parallel()

	completer := &stubCompleter{reply: "NeoPhone X"}
	svc, err := NewService(completer, &stubLister{products: catalogFixture()})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	for _, prefs := range []string{"", "   ", "\n\t"} {
		_, err := svc.Recommend(context.Background(), Input{Preferences: prefs})
		if errors.CodeOf(err) != errors.CodeValidation {
			t.Errorf("preferences %q: err = %v, want validation error", prefs, err)
		}
	}
	if completer.calls != 0 {
		t.Errorf("completer calls = %d, want 0 for blank preferences", completer.calls)
	}
}

func TestRecommendAllCategoryDropsFilter(t *testing.T) {
	t.Parallel()

	lister := &stubLister{products: catalogFixture()}
	svc, err := NewService(&stubCompleter{reply: "NeoPhone X"}, lister)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	if _, err := svc.Recommend(context.Background(), Input{Preferences: "phones", Category: "all"}); err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if lister.category != "" {
		t.Errorf("category filter = %q, want unfiltered listing for %q", lister.category, "all")
	}
}

func TestRecommendSurfacesModelFailure(t *testing.T) {
	t.Parallel()

	completer := &stubCompleter{err: fmt.Errorf("upstream timeout")}
	svc, err := NewService(completer, &stubLister{products: catalogFixture()})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	_, err = svc.Recommend(context.Background(), Input{Preferences: "anything"})
	if errors.CodeOf(err) != errors.CodeDependency {
		t.Fatalf("err = %v, want dependency error", err)
	}
}

func TestRecommendUnmatchedReplyYieldsEmptyList(t *testing.T) {
	t.Parallel()

	svc, err := NewService(&stubCompleter{reply: "Sorry, nothing fits."}, &stubLister{products: catalogFixture()})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	result, err := svc.Recommend(context.Background(), Input{Preferences: "submarines"})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(result.Recommendations) != 0 {
		t.Errorf("recommendations = %v, want none", result.Recommendations)
	}
}
