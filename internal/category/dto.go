package category

type CreateCategoryDTO struct {
	Name     string `json:"name"`
	IsActive *bool  `json:"is_active"`
}

type UpdateCategoryDTO struct {
	Name     *string `json:"name"`
	IsActive *bool   `json:"is_active"`
}
