package entity

// Category clasifica ofertas en el catálogo público. Catálogo de solo lectura
// para este núcleo (se siembra con cmd/seed).
type Category struct {
	ID       string
	Name     string
	IconName string
}
