package handler

import (
	"time"

	"github.com/deppfellow/sports-federation/internal/model"
	"github.com/deppfellow/sports-federation/internal/validation"
)

const dateLayout = "2006-01-02"

// EmptyRequest is bound by endpoints without input.
type EmptyRequest struct{}

func (r *EmptyRequest) Validate() error { return nil }

// IDRequest carries the :id path parameter.
type IDRequest struct {
	ID int64 `param:"id" json:"-" validate:"gt=0"`
}

func (r *IDRequest) Validate() error { return validation.Validator().Struct(r) }

// AddressRequest is one address of the desired state. ID 0 creates it; the
// id of an existing address updates it in place.
type AddressRequest struct {
	ID         int64   `json:"id" validate:"min=0"`
	Street     string  `json:"street" validate:"required,max=200"`
	Number     string  `json:"number" validate:"required,max=20"`
	Complement *string `json:"complement" validate:"omitempty,max=100"`
	District   string  `json:"district" validate:"required,max=100"`
	City       string  `json:"city" validate:"required,max=100"`
	State      string  `json:"state" validate:"required,uf"`
	PostalCode string  `json:"postalCode" validate:"required,cep"`
}

type PhoneRequest struct {
	ID     int64  `json:"id" validate:"min=0"`
	Area   string `json:"area" validate:"required,max=4"`
	Number string `json:"number" validate:"required,min=8,max=20"`
	Kind   string `json:"kind" validate:"required,max=20"`
}

// SocialLinkRequest links a catalog network. Links are matched by network,
// so no link id is accepted.
type SocialLinkRequest struct {
	SocialNetworkID int64  `json:"socialNetworkId" validate:"gt=0"`
	Profile         string `json:"profile" validate:"required,max=200"`
}

func toAddresses(in []AddressRequest) []model.Address {
	out := make([]model.Address, 0, len(in))
	for _, a := range in {
		out = append(out, model.Address{
			ID:         a.ID,
			Street:     a.Street,
			Number:     a.Number,
			Complement: a.Complement,
			District:   a.District,
			City:       a.City,
			State:      a.State,
			PostalCode: a.PostalCode,
		})
	}
	return out
}

func toPhones(in []PhoneRequest) []model.Phone {
	out := make([]model.Phone, 0, len(in))
	for _, p := range in {
		out = append(out, model.Phone{ID: p.ID, Area: p.Area, Number: p.Number, Kind: p.Kind})
	}
	return out
}

func toSocialLinks(in []SocialLinkRequest) []model.SocialLink {
	out := make([]model.SocialLink, 0, len(in))
	for _, l := range in {
		out = append(out, model.SocialLink{SocialNetworkID: l.SocialNetworkID, Profile: l.Profile})
	}
	return out
}

// AcademyRequest is the body of academy create and update. ID is the :id
// path parameter on update and 0 on create. The child lists are the full
// desired state: an omitted list removes every child of that kind.
type AcademyRequest struct {
	ID           int64   `param:"id" json:"-" validate:"min=0"`
	Name         string  `json:"name" validate:"required,min=2,max=200"`
	CNPJ         string  `json:"cnpj" validate:"required,cnpj"`
	Email        *string `json:"email" validate:"omitempty,email"`
	FederationID *int64  `json:"federationId" validate:"omitempty,gt=0"`

	Addresses   []AddressRequest    `json:"addresses" validate:"dive"`
	Phones      []PhoneRequest      `json:"phones" validate:"dive"`
	SocialLinks []SocialLinkRequest `json:"socialLinks" validate:"unique=SocialNetworkID,dive"`
}

func (r *AcademyRequest) Validate() error { return validation.Validator().Struct(r) }

func (r *AcademyRequest) toModel() *model.Academy {
	return &model.Academy{
		Name:         r.Name,
		CNPJ:         r.CNPJ,
		Email:        r.Email,
		FederationID: r.FederationID,
		Addresses:    toAddresses(r.Addresses),
		Phones:       toPhones(r.Phones),
		SocialLinks:  toSocialLinks(r.SocialLinks),
	}
}

// FederationRequest is the body of federation create and update, with the
// same id and child list rules as AcademyRequest.
type FederationRequest struct {
	ID        int64   `param:"id" json:"-" validate:"min=0"`
	Name      string  `json:"name" validate:"required,min=2,max=200"`
	Acronym   string  `json:"acronym" validate:"required,max=20"`
	CNPJ      string  `json:"cnpj" validate:"required,cnpj"`
	Email     *string `json:"email" validate:"omitempty,email"`
	FoundedOn *string `json:"foundedOn" validate:"omitempty,datetime=2006-01-02"`

	Addresses   []AddressRequest    `json:"addresses" validate:"dive"`
	Phones      []PhoneRequest      `json:"phones" validate:"dive"`
	SocialLinks []SocialLinkRequest `json:"socialLinks" validate:"unique=SocialNetworkID,dive"`
}

func (r *FederationRequest) Validate() error { return validation.Validator().Struct(r) }

func (r *FederationRequest) toModel() *model.Federation {
	var foundedOn *time.Time
	if r.FoundedOn != nil {
		// Validated by the datetime tag.
		if d, err := time.Parse(dateLayout, *r.FoundedOn); err == nil {
			foundedOn = &d
		}
	}

	return &model.Federation{
		Name:        r.Name,
		Acronym:     r.Acronym,
		CNPJ:        r.CNPJ,
		Email:       r.Email,
		FoundedOn:   foundedOn,
		Addresses:   toAddresses(r.Addresses),
		Phones:      toPhones(r.Phones),
		SocialLinks: toSocialLinks(r.SocialLinks),
	}
}
