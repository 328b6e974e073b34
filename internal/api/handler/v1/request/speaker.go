package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type CreateSpeakerRequest struct {
	Name         string `json:"name"`
	Title        string `json:"title"`
	Specialty    string `json:"specialty"`
	Organization string `json:"organization"`
	Bio          string `json:"bio"`
	PhotoURL     string `json:"photo_url"`
	ContactEmail string `json:"contact_email"`
}

func (req *CreateSpeakerRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.ContactEmail, is.Email),
		validation.Field(&req.PhotoURL, is.URL),
	)
}

type CreateSponsorRequest struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	LogoURL      string `json:"logo_url"`
	Website      string `json:"website"`
	ContactEmail string `json:"contact_email"`
}

func (req *CreateSponsorRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.LogoURL, is.URL),
		validation.Field(&req.Website, is.URL),
		validation.Field(&req.ContactEmail, is.Email),
	)
}
