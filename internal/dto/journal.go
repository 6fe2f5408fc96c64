package dto

import (
	"time"

	"github.com/SscSPs/manna/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalLineRequest is one debit or credit posting of a new journal entry.
type JournalLineRequest struct {
	ChartAccountID string          `json:"chartAccountID" binding:"required"`
	DebitAmount    decimal.Decimal `json:"debitAmount" binding:"gte=0"`
	CreditAmount   decimal.Decimal `json:"creditAmount" binding:"gte=0"`
	Description    string          `json:"description" binding:"max=500"`
}

// CreateJournalEntryRequest defines the data needed to post a manual journal entry.
type CreateJournalEntryRequest struct {
	EntryDate   time.Time            `json:"entryDate" binding:"required"`
	Description string               `json:"description" binding:"required,max=500"`
	Reference   string               `json:"reference" binding:"max=100"`
	Lines       []JournalLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// ListJournalEntriesParams defines query parameters for listing journal entries.
type ListJournalEntriesParams struct {
	Limit     int     `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	NextToken *string `form:"nextToken"`
}

// JournalLineResponse defines the data returned for a journal line.
type JournalLineResponse struct {
	LineID         string          `json:"lineID"`
	LineNumber     int             `json:"lineNumber"`
	ChartAccountID string          `json:"chartAccountID"`
	DebitAmount    decimal.Decimal `json:"debitAmount"`
	CreditAmount   decimal.Decimal `json:"creditAmount"`
	Description    string          `json:"description,omitempty"`
}

// JournalEntryResponse defines the data returned for a journal entry.
type JournalEntryResponse struct {
	EntryID             string                `json:"entryID"`
	EntryNumber         int64                 `json:"entryNumber"`
	EntryDate           time.Time             `json:"entryDate"`
	Description         string                `json:"description"`
	Reference           string                `json:"reference,omitempty"`
	Status              domain.JournalStatus  `json:"status"`
	SourceTransactionID *string               `json:"sourceTransactionID,omitempty"`
	ReversalOfEntryID   *string               `json:"reversalOfEntryID,omitempty"`
	TotalDebits         decimal.Decimal       `json:"totalDebits"`
	TotalCredits        decimal.Decimal       `json:"totalCredits"`
	IsBalanced          bool                  `json:"isBalanced"`
	Lines               []JournalLineResponse `json:"lines,omitempty"`
	CreatedAt           time.Time             `json:"createdAt"`
	CreatedBy           string                `json:"createdBy"`
}

// ListJournalEntriesResponse wraps a page of journal entries.
type ListJournalEntriesResponse struct {
	Entries   []JournalEntryResponse `json:"entries"`
	NextToken *string                `json:"nextToken,omitempty"`
}

// ToJournalEntryResponse converts a domain.JournalEntry to JournalEntryResponse DTO.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	res := JournalEntryResponse{
		EntryID:             e.EntryID,
		EntryNumber:         e.EntryNumber,
		EntryDate:           e.EntryDate,
		Description:         e.Description,
		Reference:           e.Reference,
		Status:              e.Status,
		SourceTransactionID: e.SourceTransactionID,
		ReversalOfEntryID:   e.ReversalOfEntryID,
		TotalDebits:         e.TotalDebits,
		TotalCredits:        e.TotalCredits,
		IsBalanced:          e.IsBalanced,
		CreatedAt:           e.CreatedAt,
		CreatedBy:           e.CreatedBy,
	}
	for _, l := range e.Lines {
		res.Lines = append(res.Lines, JournalLineResponse{
			LineID:         l.LineID,
			LineNumber:     l.LineNumber,
			ChartAccountID: l.ChartAccountID,
			DebitAmount:    l.DebitAmount,
			CreditAmount:   l.CreditAmount,
			Description:    l.Description,
		})
	}
	return res
}

// ToJournalEntryResponses converts a slice of journal entries.
func ToJournalEntryResponses(entries []domain.JournalEntry) []JournalEntryResponse {
	res := make([]JournalEntryResponse, len(entries))
	for i := range entries {
		res[i] = ToJournalEntryResponse(&entries[i])
	}
	return res
}
