package handlers_test

import (
	"fmt"
	"net/http"

	"github.com/SscSPs/manna/internal/apperrors"
	"github.com/SscSPs/manna/internal/core/domain"
	"github.com/SscSPs/manna/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

func journalBody(debit, credit string) map[string]any {
	return map[string]any{
		"entryDate":   "2024-02-15T00:00:00Z",
		"description": "Owner contribution",
		"lines": []map[string]any{
			{"chartAccountID": uuid.NewString(), "debitAmount": debit, "creditAmount": "0"},
			{"chartAccountID": uuid.NewString(), "debitAmount": "0", "creditAmount": credit},
		},
	}
}

func (suite *HandlerTestSuite) TestCreateJournalEntry_Success() {
	entryID := uuid.NewString()
	suite.mockJournal.On("CreateJournalEntry", mock.Anything, suite.userID,
		mock.MatchedBy(func(req dto.CreateJournalEntryRequest) bool { return len(req.Lines) == 2 }),
	).Return(&domain.JournalEntry{
		EntryID:      entryID,
		EntryNumber:  1,
		Status:       domain.JournalPosted,
		TotalDebits:  decimal.NewFromInt(500),
		TotalCredits: decimal.NewFromInt(500),
		IsBalanced:   true,
	}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/journal-entries", journalBody("500", "500"))

	suite.Equal(http.StatusCreated, w.Code, w.Body.String())
	var resp dto.JournalEntryResponse
	suite.decode(w, &resp)
	suite.Equal(entryID, resp.EntryID)
	suite.True(resp.IsBalanced)
}

func (suite *HandlerTestSuite) TestCreateJournalEntry_Unbalanced() {
	suite.mockJournal.On("CreateJournalEntry", mock.Anything, suite.userID, mock.Anything).
		Return(nil, fmt.Errorf("%w: debits 500 do not equal credits 400", apperrors.ErrValidation)).Once()

	w := suite.do(http.MethodPost, "/api/v1/journal-entries", journalBody("500", "400"))

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "do not equal")
}

func (suite *HandlerTestSuite) TestCreateJournalEntry_SingleLineRejected() {
	body := journalBody("10", "10")
	body["lines"] = body["lines"].([]map[string]any)[:1]

	w := suite.do(http.MethodPost, "/api/v1/journal-entries", body)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockJournal.AssertNotCalled(suite.T(), "CreateJournalEntry")
}

func (suite *HandlerTestSuite) TestReverseJournalEntry_Success() {
	entryID := uuid.NewString()
	reversalID := uuid.NewString()
	suite.mockJournal.On("ReverseJournalEntry", mock.Anything, suite.userID, entryID).
		Return(&domain.JournalEntry{EntryID: reversalID, ReversalOfEntryID: &entryID, Status: domain.JournalPosted}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/journal-entries/"+entryID+"/reverse", nil)

	suite.Equal(http.StatusCreated, w.Code, w.Body.String())
	var resp dto.JournalEntryResponse
	suite.decode(w, &resp)
	suite.Require().NotNil(resp.ReversalOfEntryID)
	suite.Equal(entryID, *resp.ReversalOfEntryID)
}

func (suite *HandlerTestSuite) TestReverseJournalEntry_AlreadyReversed() {
	entryID := uuid.NewString()
	suite.mockJournal.On("ReverseJournalEntry", mock.Anything, suite.userID, entryID).
		Return(nil, fmt.Errorf("%w: entry is reversed", apperrors.ErrConflict)).Once()

	w := suite.do(http.MethodPost, "/api/v1/journal-entries/"+entryID+"/reverse", nil)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *HandlerTestSuite) TestListJournalEntries_BadToken() {
	suite.mockJournal.On("ListJournalEntries", mock.Anything, suite.userID, mock.Anything).
		Return(nil, fmt.Errorf("%w: invalid pagination token", apperrors.ErrValidation)).Once()

	w := suite.do(http.MethodGet, "/api/v1/journal-entries?nextToken=garbage", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
}
