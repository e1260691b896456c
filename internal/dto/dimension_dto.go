package dto

// CategoryResponse is one canonical (category, subcategory) pair.
type CategoryResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Subcategory *string `json:"subcategory"`
}

// DimensionValueResponse is one canonical stone/color/finish value.
type DimensionValueResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
