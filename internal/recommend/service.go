package recommend

import (
	"context"
	"fmt"
	"strings"

	"github.com/cryptogear/backend/internal/catalog"
	"github.com/cryptogear/backend/pkg/db/models"
	"github.com/cryptogear/backend/pkg/enums"
	"github.com/cryptogear/backend/pkg/errors"
)

// maxRecommendations caps how many products a single advisory run can
// surface.
const maxRecommendations = 4

const systemPrompt = "You are a shopping assistant for a crypto-gadget " +
	"storefront. Given the catalog and a shopper's preferences, reply with " +
	"the names of the products that fit best, separated by commas, followed " +
	"by one short sentence explaining the picks."

// chatCompleter is the slice of the language-model client this service
// needs.
type chatCompleter interface {
	CompleteChat(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// productLister loads the candidate products for a recommendation run.
type productLister interface {
	ListByCategory(ctx context.Context, category string) ([]models.Product, error)
}

// Input is the recommendation request payload.
type Input struct {
	Preferences string `json:"user_preferences" validate:"required"`
	Category    string `json:"category"`
}

// Result carries the matched products plus the model's own wording.
type Result struct {
	Recommendations []catalog.ProductDTO `json:"recommendations"`
	Explanation     string               `json:"explanation"`
}

// Service asks a language model to pick products for a shopper.
type Service interface {
	Recommend(ctx context.Context, input Input) (Result, error)
}

type service struct {
	completer chatCompleter
	products  productLister
}

// NewService wires the recommendation service.
func NewService(completer chatCompleter, products productLister) (Service, error) {
	if completer == nil {
		return nil, fmt.Errorf("recommend: chat completer is required")
	}
	if products == nil {
		return nil, fmt.Errorf("recommend: product lister is required")
	}
	return &service{completer: completer, products: products}, nil
}

func (s *service) Recommend(ctx context.Context, input Input) (Result, error) {
	preferences := strings.TrimSpace(input.Preferences)
	if preferences == "" {
		return Result{}, errors.New(errors.CodeValidation, "preferences must not be empty")
	}

	category := strings.TrimSpace(input.Category)
	if category == enums.CategoryAll {
		category = ""
	}

	products, err := s.products.ListByCategory(ctx, category)
	if err != nil {
		return Result{}, errors.Wrap(errors.CodeDependency, err, "list candidate products")
	}
	if len(products) == 0 {
		return Result{Recommendations: []catalog.ProductDTO{}}, nil
	}

	reply, err := s.completer.CompleteChat(ctx, systemPrompt, buildUserPrompt(preferences, products))
	if err != nil {
		return Result{}, errors.Wrap(errors.CodeDependency, err, "complete recommendation chat")
	}

	matched := matchProducts(reply, products)
	return Result{
		Recommendations: catalog.NewProductDTOs(matched),
		Explanation:     strings.TrimSpace(reply),
	}, nil
}

func buildUserPrompt(preferences string, products []models.Product) string {
	var sb strings.Builder
	sb.WriteString("Catalog:\n")
	for _, p := range products {
		description := p.Description
		if len(description) > 100 {
			description = description[:100]
		}
		fmt.Fprintf(&sb, "- %s (%s): $%s - %s\n", p.Name, p.Category, p.Price.StringFixed(2), description)
	}
	sb.WriteString("\nShopper preferences: ")
	sb.WriteString(preferences)
	return sb.String()
}

// matchProducts maps the model's comma-separated reply back onto catalog
// products. Matching is case-insensitive and tolerates the model quoting
// a name inside a longer phrase. At most maxRecommendations survive.
func matchProducts(reply string, products []models.Product) []models.Product {
	var matched []models.Product
	seen := map[string]bool{}
	for _, fragment := range strings.Split(reply, ",") {
		fragment = strings.ToLower(strings.TrimSpace(fragment))
		if fragment == "" {
			continue
		}
		for i := range products {
			name := strings.ToLower(products[i].Name)
			if seen[name] {
				continue
			}
			if fragment == name || strings.Contains(fragment, name) {
				seen[name] = true
				matched = append(matched, products[i])
				break
			}
		}
		if len(matched) == maxRecommendations {
			break
		}
	}
	return matched
}
