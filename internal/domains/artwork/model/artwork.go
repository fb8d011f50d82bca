package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Artwork is a gallery piece, optionally attributed to an artist and
// optionally listed for sale. Price is present exactly when OnSale is true.
type Artwork struct {
	ID         uuid.UUID        `json:"id" db:"id"`
	Title      string           `json:"title" db:"title"`
	OnSale     bool             `json:"on_sale" db:"on_sale"`
	Price      *decimal.Decimal `json:"price,omitempty" db:"price"`
	ImgSrc     string           `json:"img_src" db:"img_src"`
	ArtistID   *uuid.UUID       `json:"artist_id,omitempty" db:"artist_id"`
	ArtistName *string          `json:"artist_name,omitempty" db:"artist_name"`
	CreatedAt  time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at" db:"updated_at"`
}

// ArtworkRequest covers create and update. Price arrives as a plain number
// and is converted to decimal before the write; it is discarded outright
// when the piece is not on sale.
type ArtworkRequest struct {
	Title    string   `json:"title" form:"title"`
	OnSale   bool     `json:"on_sale" form:"on_sale"`
	Price    *float64 `json:"price,omitempty" form:"price"`
	ArtistID string   `json:"artist_id,omitempty" form:"artist_id"`

	RemoveImage bool `json:"remove_image" form:"remove_image"`
}

func (r ArtworkRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("artwork title is required"),
			validation.Length(1, 255),
		),
		validation.Field(&r.Price,
			validation.Min(0.0).Error("price cannot be negative"),
		),
	)
}

// ImageUpload is a pending artwork image payload.
type ImageUpload struct {
	Data     []byte
	Filename string
}
