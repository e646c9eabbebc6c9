package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ImageUpload bytes de una imagen subida por multipart. nil = no se subió
// imagen (en update significa "sin cambio", nunca error).
type ImageUpload struct {
	Data     []byte
	Filename string
}

// CreateOfferRequest alta de oferta. Las ofertas llegan por FormData (por la
// imagen), así que el handler arma este DTO a mano.
type CreateOfferRequest struct {
	LocationID   string
	CategoryID   string
	Title        string
	Description  string
	DiscountText string
	PriceNormal  decimal.Decimal
	PriceOffer   decimal.Decimal
	StartDate    *time.Time
	EndDate      *time.Time
	IsVisible    *bool // default true
	IsFeatured   *bool // default false
	PromoType    string
	Image        *ImageUpload
}

// UpdateOfferRequest update parcial de oferta. Punteros nil = sin cambio.
// StartDate/EndDate distinguen "sin cambio" (puntero nil) de "borrar fecha"
// (ClearStartDate/ClearEndDate en true).
type UpdateOfferRequest struct {
	Title          *string
	Description    *string
	DiscountText   *string
	CategoryID     *string
	PriceNormal    *decimal.Decimal
	PriceOffer     *decimal.Decimal
	StartDate      *time.Time
	EndDate        *time.Time
	ClearStartDate bool
	ClearEndDate   bool
	PromoType      *string
	Image          *ImageUpload
}

// OfferResponse proyección de una oferta.
type OfferResponse struct {
	ID           string          `json:"id"`
	LocationID   string          `json:"location_id"`
	CategoryID   string          `json:"category_id"`
	Title        string          `json:"title"`
	Description  string          `json:"description,omitempty"`
	DiscountText string          `json:"discount_text"`
	PriceNormal  decimal.Decimal `json:"price_normal"`
	PriceOffer   decimal.Decimal `json:"price_offer"`
	ImageURL     string          `json:"image_url,omitempty"`
	StartDate    *time.Time      `json:"start_date,omitempty"`
	EndDate      *time.Time      `json:"end_date,omitempty"`
	IsVisible    bool            `json:"is_visible"`
	IsFeatured   bool            `json:"is_featured"`
	PromoType    string          `json:"promo_type"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// OfferListResponse listado de ofertas.
type OfferListResponse struct {
	Items []OfferResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
