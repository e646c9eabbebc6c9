package dto

// CategoryResponse proyección de una categoría.
type CategoryResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	IconName string `json:"icon_name,omitempty"`
}
