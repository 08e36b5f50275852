package enums

import "fmt"

// ProductCategory represents the canonical menu categories supported by the catalog.
type ProductCategory string

const (
	ProductCategorySignaturePizza ProductCategory = "signature_pizza"
	ProductCategoryWhitePie       ProductCategory = "white_pie"
	ProductCategorySpicyBold      ProductCategory = "spicy_bold"
	ProductCategoryPlantBased     ProductCategory = "plant_based"
	ProductCategoryCalzone        ProductCategory = "calzone"
	ProductCategoryWings          ProductCategory = "wings"
	ProductCategorySalad          ProductCategory = "salad"
	ProductCategorySide           ProductCategory = "side"
	ProductCategoryDip            ProductCategory = "dip"
	ProductCategoryDessert        ProductCategory = "dessert"
)

var validProductCategories = []ProductCategory{
	ProductCategorySignaturePizza,
	ProductCategoryWhitePie,
	ProductCategorySpicyBold,
	ProductCategoryPlantBased,
	ProductCategoryCalzone,
	ProductCategoryWings,
	ProductCategorySalad,
	ProductCategorySide,
	ProductCategoryDip,
	ProductCategoryDessert,
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

// IsPizza reports whether the category counts toward pizza-based promotions.
func (c ProductCategory) IsPizza() bool {
	switch c {
	case ProductCategorySignaturePizza, ProductCategoryWhitePie, ProductCategorySpicyBold, ProductCategoryPlantBased:
		return true
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
