package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/manna/internal/apperrors"
	"github.com/SscSPs/manna/internal/core/domain"
	portssvc "github.com/SscSPs/manna/internal/core/ports/services"
	"github.com/SscSPs/manna/internal/core/services"
	"github.com/SscSPs/manna/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	service      portssvc.UserSvcFacade
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewUserService(suite.mockUserRepo)
}

// --- CreateUser Tests ---
func (suite *UserServiceTestSuite) TestCreateUser_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	req := dto.CreateUserRequest{Email: "owner@example.com", Name: "Owner"}

	suite.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(user domain.User) bool {
		return user.UserID == userID && user.Email == req.Email && user.CreatedBy == userID
	})).Return(nil).Once()

	user, err := suite.service.CreateUser(ctx, userID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(user)
	suite.Equal(userID, user.UserID)
	suite.Equal("Owner", user.Name)
	suite.False(user.CreatedAt.IsZero())
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestCreateUser_NoSubject() {
	user, err := suite.service.CreateUser(context.Background(), "", dto.CreateUserRequest{Email: "a@b.c", Name: "x"})

	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestCreateUser_Duplicate() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockUserRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).Return(apperrors.ErrDuplicate).Once()

	user, err := suite.service.CreateUser(ctx, userID, dto.CreateUserRequest{Email: "a@b.c", Name: "x"})

	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

// --- GetUserByID Tests ---
func (suite *UserServiceTestSuite) TestGetUserByID_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	expectedUser := &domain.User{UserID: userID, Name: "Found User"}

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(expectedUser, nil).Once()

	user, err := suite.service.GetUserByID(ctx, userID)

	suite.Require().NoError(err)
	suite.Equal(expectedUser, user)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestGetUserByID_NotFound() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(nil, apperrors.ErrNotFound).Once()

	user, err := suite.service.GetUserByID(ctx, userID)

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

// --- UpdateUser Tests ---
func (suite *UserServiceTestSuite) TestUpdateUser_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	newName := "Updated Name"
	originalUser := &domain.User{
		UserID: userID,
		Name:   "Original Name",
		AuditFields: domain.AuditFields{
			LastUpdatedAt: time.Now().Add(-time.Hour),
			LastUpdatedBy: userID,
		},
	}
	originalTimestamp := originalUser.LastUpdatedAt

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(originalUser, nil).Once()
	suite.mockUserRepo.On("UpdateUser", ctx, mock.AnythingOfType("domain.User")).Return(nil).Once().Run(func(args mock.Arguments) {
		userArg := args.Get(1).(domain.User)
		suite.Equal(newName, userArg.Name)
		suite.True(userArg.LastUpdatedAt.After(originalTimestamp))
	})

	user, err := suite.service.UpdateUser(ctx, userID, dto.UpdateUserRequest{Name: &newName})

	suite.Require().NoError(err)
	suite.Equal(newName, user.Name)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestUpdateUser_NoChange() {
	ctx := context.Background()
	userID := uuid.NewString()
	originalUser := &domain.User{UserID: userID, Name: "Original Name"}

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(originalUser, nil).Once()

	user, err := suite.service.UpdateUser(ctx, userID, dto.UpdateUserRequest{})

	suite.Require().NoError(err)
	suite.Equal(originalUser, user)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "UpdateUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestUpdateUser_UpdateError() {
	ctx := context.Background()
	userID := uuid.NewString()
	newName := "Updated Name"

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(&domain.User{UserID: userID}, nil).Once()
	suite.mockUserRepo.On("UpdateUser", ctx, mock.AnythingOfType("domain.User")).Return(assert.AnError).Once()

	user, err := suite.service.UpdateUser(ctx, userID, dto.UpdateUserRequest{Name: &newName})

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, assert.AnError)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

// --- Run Suite ---
func TestUserService(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
