// Package model holds the aggregates persisted by the repository layer.
//
// Academy and Federation are aggregate roots. Each owns addresses and phones
// and links to entries of the social network catalog.
package model

import "time"

// OperationNature records the kind of the last write to a row.
type OperationNature string

const (
	OperationInsert     OperationNature = "I"
	OperationUpdate     OperationNature = "U"
	OperationDeactivate OperationNature = "D"
)

// Audit is carried by every root, owned child and link row.
type Audit struct {
	CreatedBy       int64           `json:"createdBy"`
	CreatedAt       time.Time       `json:"createdAt"`
	OperationNature OperationNature `json:"operationNature"`
	OperatedBy      int64           `json:"operatedBy"`
	OperatedAt      time.Time       `json:"operatedAt"`
	Active          bool            `json:"active"`
}

// Address is owned by exactly one root. Id 0 means not yet created.
type Address struct {
	ID         int64   `json:"id"`
	Street     string  `json:"street"`
	Number     string  `json:"number"`
	Complement *string `json:"complement"`
	District   string  `json:"district"`
	City       string  `json:"city"`
	State      string  `json:"state"`
	PostalCode string  `json:"postalCode"`
	Audit
}

// Phone is owned by exactly one root. Id 0 means not yet created.
type Phone struct {
	ID     int64  `json:"id"`
	Area   string `json:"area"`
	Number string `json:"number"`
	Kind   string `json:"kind"`
	Audit
}

// SocialNetwork is a catalog entry. It is referenced by links and never
// written by the aggregate repositories.
type SocialNetwork struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// SocialLink associates a root with a catalog entry. SocialNetworkID is the
// natural key: a root links to each network at most once.
type SocialLink struct {
	ID                int64  `json:"id"`
	SocialNetworkID   int64  `json:"socialNetworkId"`
	SocialNetworkName string `json:"socialNetworkName"`
	Profile           string `json:"profile"`
	Audit
}

// Academy is an aggregate root.
type Academy struct {
	ID           int64        `json:"id"`
	Name         string       `json:"name"`
	CNPJ         string       `json:"cnpj"`
	Email        *string      `json:"email"`
	FederationID *int64       `json:"federationId"`
	Addresses    []Address    `json:"addresses"`
	Phones       []Phone      `json:"phones"`
	SocialLinks  []SocialLink `json:"socialLinks"`
	Audit
}

// Federation is an aggregate root.
type Federation struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	Acronym     string       `json:"acronym"`
	CNPJ        string       `json:"cnpj"`
	Email       *string      `json:"email"`
	FoundedOn   *time.Time   `json:"foundedOn"`
	Addresses   []Address    `json:"addresses"`
	Phones      []Phone      `json:"phones"`
	SocialLinks []SocialLink `json:"socialLinks"`
	Audit
}
