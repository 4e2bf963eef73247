package usecase_test

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/xavierca1/leadflow/internal/entity"
	"github.com/xavierca1/leadflow/internal/infra/integration/hubspot"
	"github.com/xavierca1/leadflow/internal/usecase"
)

// MockApprovalRepository
type MockApprovalRepository struct {
	mock.Mock
}

func (m *MockApprovalRepository) Save(ctx context.Context, approval *entity.Approval) error {
	args := m.Called(ctx, approval)
	return args.Error(0)
}

func (m *MockApprovalRepository) FindByID(ctx context.Context, id string) (*entity.Approval, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Approval), args.Error(1)
}

func (m *MockApprovalRepository) FindAll(ctx context.Context) ([]*entity.Approval, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Approval), args.Error(1)
}

func (m *MockApprovalRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCRMGateway
type MockCRMGateway struct {
	mock.Mock
}

func (m *MockCRMGateway) CreateLead(ctx context.Context, input hubspot.CreateLeadInput) (*hubspot.CreateLeadOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*hubspot.CreateLeadOutput), args.Error(1)
}

func (m *MockCRMGateway) AddNote(ctx context.Context, contactID, text string) error {
	args := m.Called(ctx, contactID, text)
	return args.Error(0)
}

// MockNotificationGateway
type MockNotificationGateway struct {
	mock.Mock
}

func (m *MockNotificationGateway) SendApprovalPrompt(ctx context.Context, approvalID string, lead *entity.ScoredLead) error {
	args := m.Called(ctx, approvalID, lead)
	return args.Error(0)
}

func (m *MockNotificationGateway) SendMessage(ctx context.Context, text string) error {
	args := m.Called(ctx, text)
	return args.Error(0)
}

// MockProspectSource
type MockProspectSource struct {
	mock.Mock
}

func (m *MockProspectSource) Research(ctx context.Context, batchSize int) ([]entity.Prospect, error) {
	args := m.Called(ctx, batchSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Prospect), args.Error(1)
}

// MockOutreachMailer
type MockOutreachMailer struct {
	mock.Mock
}

func (m *MockOutreachMailer) SendOutreach(to, name, orgName string) error {
	args := m.Called(to, name, orgName)
	return args.Error(0)
}

var _ entity.ApprovalRepositoryInterface = (*MockApprovalRepository)(nil)
var _ usecase.CRMGateway = (*MockCRMGateway)(nil)
var _ usecase.NotificationGateway = (*MockNotificationGateway)(nil)
var _ usecase.ProspectSource = (*MockProspectSource)(nil)
var _ usecase.OutreachMailer = (*MockOutreachMailer)(nil)
