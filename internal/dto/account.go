package dto

import (
	"time"

	"github.com/treeledger/treeledger/internal/core/domain"
)

// CreateAccountRequest is the request body for creating an account.
// ParentAccountID may only be omitted when creating the tree root.
type CreateAccountRequest struct {
	Name            string  `json:"name" binding:"required"`
	Type            string  `json:"type" binding:"required,oneof=ROOT BRANCH LEAF"`
	ParentAccountID *string `json:"parentAccountID" binding:"omitempty,uuid"`
	Description     string  `json:"description"`
}

// UpdateAccountRequest is the request body for updating account details.
// The account type is immutable and cannot appear here.
type UpdateAccountRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1"`
	Description *string `json:"description"`
}

// AccountResponse is the serialized form of an account.
type AccountResponse struct {
	AccountID       string    `json:"accountID"`
	Name            string    `json:"name"`
	Type            string    `json:"type"`
	ParentAccountID *string   `json:"parentAccountID,omitempty"`
	Description     string    `json:"description,omitempty"`
	Left            int       `json:"left"`
	Right           int       `json:"right"`
	Depth           int       `json:"depth"`
	CreatedAt       time.Time `json:"createdAt"`
}

// ToAccountResponse converts a domain account to its response DTO.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:       a.AccountID,
		Name:            a.Name,
		Type:            a.Type.Name,
		ParentAccountID: a.ParentAccountID,
		Description:     a.Description,
		Left:            a.Left,
		Right:           a.Right,
		Depth:           a.Depth,
		CreatedAt:       a.CreatedAt,
	}
}

// ToAccountResponses converts a slice of domain accounts.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	resp := make([]AccountResponse, len(accounts))
	for i := range accounts {
		resp[i] = ToAccountResponse(&accounts[i])
	}
	return resp
}
