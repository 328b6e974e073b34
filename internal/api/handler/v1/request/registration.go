package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type RegisterRequest struct {
	PricingCategoryID uint `json:"pricing_category_id"`
}

func (req *RegisterRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.PricingCategoryID, validation.Required),
	)
}

type IssueCertificateRequest struct {
	RegistrationID uint `json:"registration_id"`
}

func (req *IssueCertificateRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.RegistrationID, validation.Required),
	)
}
