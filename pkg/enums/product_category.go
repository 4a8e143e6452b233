package enums

import "fmt"

// ProductCategory identifies the catalog section a product belongs to.
type ProductCategory string

const (
	ProductCategoryPhones    ProductCategory = "phones"
	ProductCategoryLaptops   ProductCategory = "laptops"
	ProductCategoryMetaglass ProductCategory = "metaglass"
	ProductCategoryCameras   ProductCategory = "cameras"
)

// CategoryAll is the query value meaning "no category filter". It is not a
// valid stored category.
const CategoryAll = "all"

var validProductCategories = []ProductCategory{
	ProductCategoryPhones,
	ProductCategoryLaptops,
	ProductCategoryMetaglass,
	ProductCategoryCameras,
}

// String implements fmt.Stringer.
func (c ProductCategory) String() string {
	return string(c)
}

// IsValid reports whether the value is a known ProductCategory.
func (c ProductCategory) IsValid() bool {
	for _, candidate := range validProductCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseProductCategory converts raw input into a ProductCategory.
func ParseProductCategory(value string) (ProductCategory, error) {
	for _, candidate := range validProductCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product category %q", value)
}
