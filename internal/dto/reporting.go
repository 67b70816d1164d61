package dto

import (
	"time"

	"github.com/treeledger/treeledger/internal/core/domain"
)

// BalanceEvolutionRowResponse is one (date, account, balance) report row.
type BalanceEvolutionRowResponse struct {
	Date      time.Time       `json:"date"`
	AccountID string          `json:"accountID"`
	Balance   []MoneyResponse `json:"balance"`
}

// BalanceEvolutionResponse is the serialized balance evolution report.
type BalanceEvolutionResponse struct {
	Rows []BalanceEvolutionRowResponse `json:"rows"`
}

// ToBalanceEvolutionResponse converts report rows to their response DTO.
func ToBalanceEvolutionResponse(rows []domain.BalanceEvolutionRow) BalanceEvolutionResponse {
	resp := BalanceEvolutionResponse{Rows: make([]BalanceEvolutionRowResponse, len(rows))}
	for i, row := range rows {
		resp.Rows[i] = BalanceEvolutionRowResponse{
			Date:      row.Date,
			AccountID: row.AccountID,
			Balance:   ToBalanceResponse(row.Balance),
		}
	}
	return resp
}

// FlowResponse is the net flow of one period.
type FlowResponse struct {
	Start  time.Time       `json:"start"`
	End    time.Time       `json:"end"`
	Moneys []MoneyResponse `json:"moneys"`
}

// AccountFlowsResponse groups the flows of one queried account.
type AccountFlowsResponse struct {
	AccountID string         `json:"accountID"`
	Flows     []FlowResponse `json:"flows"`
}

// FlowEvolutionResponse is the serialized flow evolution report.
type FlowEvolutionResponse struct {
	Accounts []AccountFlowsResponse `json:"accounts"`
}

// ToFlowEvolutionResponse converts account flows to their response DTO.
func ToFlowEvolutionResponse(accountFlows []domain.AccountFlows) FlowEvolutionResponse {
	resp := FlowEvolutionResponse{Accounts: make([]AccountFlowsResponse, len(accountFlows))}
	for i, af := range accountFlows {
		flows := make([]FlowResponse, len(af.Flows))
		for k, f := range af.Flows {
			flows[k] = FlowResponse{
				Start:  f.Period.Start,
				End:    f.Period.End,
				Moneys: ToBalanceResponse(f.Balance),
			}
		}
		resp.Accounts[i] = AccountFlowsResponse{AccountID: af.AccountID, Flows: flows}
	}
	return resp
}
