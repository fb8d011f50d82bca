package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

const MaxBioLength = 500

// Artist is a catalog record for a featured artist. Optional contact
// fields are pointers: nil means the profile simply doesn't list it.
type Artist struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Bio         *string   `json:"bio,omitempty" db:"bio"`
	PortraitSrc *string   `json:"portrait_src,omitempty" db:"portrait_src"`
	Website     *string   `json:"website,omitempty" db:"website"`
	Email       *string   `json:"email,omitempty" db:"email"`
	Twitter     *string   `json:"twitter,omitempty" db:"twitter"`
	LinkedIn    *string   `json:"linkedin,omitempty" db:"linkedin"`
	Instagram   *string   `json:"instagram,omitempty" db:"instagram"`
	Facebook    *string   `json:"facebook,omitempty" db:"facebook"`
	YouTube     *string   `json:"youtube,omitempty" db:"youtube"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// ArtistRequest covers both create and update: profiles are replaced
// whole, empty fields clear the stored value.
type ArtistRequest struct {
	Name      string `json:"name" form:"name"`
	Bio       string `json:"bio" form:"bio"`
	Website   string `json:"website" form:"website"`
	Email     string `json:"email" form:"email"`
	Twitter   string `json:"twitter" form:"twitter"`
	LinkedIn  string `json:"linkedin" form:"linkedin"`
	Instagram string `json:"instagram" form:"instagram"`
	Facebook  string `json:"facebook" form:"facebook"`
	YouTube   string `json:"youtube" form:"youtube"`

	RemovePortrait bool `json:"remove_portrait" form:"remove_portrait"`
}

func (r ArtistRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("artist name is required"),
			validation.Length(1, 255),
		),
		validation.Field(&r.Bio,
			validation.Length(0, MaxBioLength).Error("bio exceeds 500 characters"),
		),
		validation.Field(&r.Email, is.EmailFormat.Error("invalid email address")),
	)
}

// ImageUpload is a pending portrait payload.
type ImageUpload struct {
	Data     []byte
	Filename string
}
