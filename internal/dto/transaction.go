package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/treeledger/treeledger/internal/core/domain"
)

// TagRequest is one (name, value) annotation on a transaction.
type TagRequest struct {
	Name  string `json:"name" binding:"required"`
	Value string `json:"value"`
}

// MovementSpecRequest is one movement of a candidate transaction. Amounts are
// signed: credits negative, debits positive.
type MovementSpecRequest struct {
	AccountID    string          `json:"accountID" binding:"required,uuid"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	CurrencyCode string          `json:"currencyCode" binding:"required,currencycode"`
	Comment      string          `json:"comment"`
}

// ToMovementSpec converts the request to its domain value object.
func (r MovementSpecRequest) ToMovementSpec() domain.MovementSpec {
	return domain.MovementSpec{
		AccountID: r.AccountID,
		Money:     domain.NewMoney(r.Amount, r.CurrencyCode),
		Comment:   r.Comment,
	}
}

// CreateTransactionRequest is the request body for creating a transaction.
type CreateTransactionRequest struct {
	Description string                `json:"description" binding:"required"`
	Date        time.Time             `json:"date" binding:"required"`
	Reference   string                `json:"reference"`
	Tags        []TagRequest          `json:"tags" binding:"omitempty,dive"`
	Movements   []MovementSpecRequest `json:"movements" binding:"required,min=2,dive"`
}

// UpdateTransactionRequest replaces the transaction's fields and full
// movement set; the new set is validated as a whole.
type UpdateTransactionRequest struct {
	Description string                `json:"description" binding:"required"`
	Date        time.Time             `json:"date" binding:"required"`
	Reference   string                `json:"reference"`
	Tags        []TagRequest          `json:"tags" binding:"omitempty,dive"`
	Movements   []MovementSpecRequest `json:"movements" binding:"required,min=2,dive"`
}

// MovementResponse is the serialized form of a persisted movement.
type MovementResponse struct {
	MovementID   string          `json:"movementID"`
	AccountID    string          `json:"accountID"`
	Amount       decimal.Decimal `json:"amount"`
	CurrencyCode string          `json:"currencyCode"`
	Comment      string          `json:"comment,omitempty"`
}

// TransactionResponse is the serialized form of a transaction.
type TransactionResponse struct {
	TransactionID string             `json:"transactionID"`
	Description   string             `json:"description"`
	Date          time.Time          `json:"date"`
	Reference     string             `json:"reference,omitempty"`
	Tags          []TagRequest       `json:"tags,omitempty"`
	Movements     []MovementResponse `json:"movements"`
	CreatedAt     time.Time          `json:"createdAt"`
}

// ToTransactionResponse converts a domain transaction to its response DTO.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	tags := make([]TagRequest, len(t.Tags))
	for i, tag := range t.Tags {
		tags[i] = TagRequest{Name: tag.Name, Value: tag.Value}
	}
	movements := make([]MovementResponse, len(t.Movements))
	for i, m := range t.Movements {
		movements[i] = MovementResponse{
			MovementID:   m.MovementID,
			AccountID:    m.AccountID,
			Amount:       m.Money.Amount,
			CurrencyCode: m.Money.CurrencyCode,
			Comment:      m.Comment,
		}
	}
	return TransactionResponse{
		TransactionID: t.TransactionID,
		Description:   t.Description,
		Date:          t.Date,
		Reference:     t.Reference,
		Tags:          tags,
		Movements:     movements,
		CreatedAt:     t.CreatedAt,
	}
}
