package service

import (
	"strings"
	"unicode"

	"github.com/deppfellow/sports-federation/internal/model"
)

func digitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
}

// optionalText trims s and turns blank values into nil.
func optionalText(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func optionalEmail(s *string) *string {
	v := optionalText(s)
	if v == nil {
		return nil
	}
	lower := strings.ToLower(*v)
	return &lower
}

func normalizeAddresses(in []model.Address) []model.Address {
	out := make([]model.Address, 0, len(in))
	for _, a := range in {
		out = append(out, model.Address{
			ID:         a.ID,
			Street:     strings.TrimSpace(a.Street),
			Number:     strings.TrimSpace(a.Number),
			Complement: optionalText(a.Complement),
			District:   strings.TrimSpace(a.District),
			City:       strings.TrimSpace(a.City),
			State:      strings.ToUpper(strings.TrimSpace(a.State)),
			PostalCode: digitsOnly(a.PostalCode),
		})
	}
	return out
}

func normalizePhones(in []model.Phone) []model.Phone {
	out := make([]model.Phone, 0, len(in))
	for _, p := range in {
		out = append(out, model.Phone{
			ID:     p.ID,
			Area:   digitsOnly(p.Area),
			Number: digitsOnly(p.Number),
			Kind:   strings.ToLower(strings.TrimSpace(p.Kind)),
		})
	}
	return out
}

// normalizeSocialLinks drops link ids: links are matched by network.
func normalizeSocialLinks(in []model.SocialLink) []model.SocialLink {
	out := make([]model.SocialLink, 0, len(in))
	for _, l := range in {
		out = append(out, model.SocialLink{
			SocialNetworkID: l.SocialNetworkID,
			Profile:         strings.TrimSpace(l.Profile),
		})
	}
	return out
}

func normalizeAcademy(a *model.Academy) *model.Academy {
	return &model.Academy{
		ID:           a.ID,
		Name:         strings.TrimSpace(a.Name),
		CNPJ:         digitsOnly(a.CNPJ),
		Email:        optionalEmail(a.Email),
		FederationID: a.FederationID,
		Addresses:    normalizeAddresses(a.Addresses),
		Phones:       normalizePhones(a.Phones),
		SocialLinks:  normalizeSocialLinks(a.SocialLinks),
	}
}

func normalizeFederation(f *model.Federation) *model.Federation {
	return &model.Federation{
		ID:          f.ID,
		Name:        strings.TrimSpace(f.Name),
		Acronym:     strings.ToUpper(strings.TrimSpace(f.Acronym)),
		CNPJ:        digitsOnly(f.CNPJ),
		Email:       optionalEmail(f.Email),
		FoundedOn:   f.FoundedOn,
		Addresses:   normalizeAddresses(f.Addresses),
		Phones:      normalizePhones(f.Phones),
		SocialLinks: normalizeSocialLinks(f.SocialLinks),
	}
}
