package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xavierca1/leadflow/internal/entity"
	"github.com/xavierca1/leadflow/internal/infra/http/handlers"
	"github.com/xavierca1/leadflow/internal/infra/integration/hubspot"
	"github.com/xavierca1/leadflow/internal/infra/store"
	"github.com/xavierca1/leadflow/internal/scoring"
	"github.com/xavierca1/leadflow/internal/usecase"
)

// MockQueueProducer
type MockQueueProducer struct {
	mock.Mock
}

func (m *MockQueueProducer) PublishDecision(ctx context.Context, payload usecase.DecisionPayload) error {
	args := m.Called(ctx, payload)
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

// MockNotifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) SendApprovalPrompt(ctx context.Context, approvalID string, lead *entity.ScoredLead) error {
	args := m.Called(ctx, approvalID, lead)
	return args.Error(0)
}

func (m *MockNotifier) SendMessage(ctx context.Context, text string) error {
	args := m.Called(ctx, text)
	return args.Error(0)
}

func pendingApprovalRepo(t *testing.T, id string) entity.ApprovalRepositoryInterface {
	t.Helper()
	repo, err := store.NewFileApprovalStore(filepath.Join(t.TempDir(), "approvals.json"))
	require.NoError(t, err)

	scorer := &scoring.Scorer{ReferenceYear: 2026}
	lead := scorer.ScoreLead(entity.Prospect{
		Name:             "Summit Elite Soccer Academy",
		EstimatedReach:   450,
		FacilityCount:    3,
		FoundedYear:      2008,
		CompetitionLevel: entity.CompetitionNational,
		AgeGroups:        []string{"Youth", "HS", "College Prep"},
	})
	require.NoError(t, repo.Save(context.Background(), entity.NewApproval(id, *lead)))
	return repo
}

func interactionRequest(t *testing.T, actionID, value string) *http.Request {
	t.Helper()
	payload := map[string]interface{}{
		"type": "block_actions",
		"user": map[string]string{"id": "U-alice", "name": "alice"},
		"actions": []map[string]string{
			{"action_id": actionID, "value": value},
		},
	}
	raw, err := json.Marshal(payload)
	require.NoError(t, err)

	form := url.Values{"payload": {string(raw)}}
	req := httptest.NewRequest(http.MethodPost, "/interactivity", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestInteractivityApproveIsEnqueued(t *testing.T) {
	repo := pendingApprovalRepo(t, "apr_q_1")

	mockProducer := new(MockQueueProducer)
	mockProducer.On("PublishDecision", mock.Anything, mock.MatchedBy(func(p usecase.DecisionPayload) bool {
		return p.ApprovalID == "apr_q_1" &&
			p.Decision == usecase.DecisionApprove &&
			p.ActorName == "alice"
	})).Return(nil)

	mockCRM := new(MockCRMGateway)
	decider := usecase.NewDecideApprovalUseCase(repo, mockCRM, new(MockNotifier), &scoring.Scorer{ReferenceYear: 2026})
	h := handlers.NewInteractivityHandler(mockProducer, decider)

	rec := httptest.NewRecorder()
	h.Handle(rec, interactionRequest(t, "create_hubspot_deal", "apr_q_1"))

	assert.Equal(t, http.StatusOK, rec.Code)
	mockProducer.AssertNumberOfCalls(t, "PublishDecision", 1)
	// The CRM call happens in the worker, never in the callback window.
	mockCRM.AssertNotCalled(t, "CreateLead", mock.Anything, mock.Anything)

	var resp struct {
		ResponseType string `json:"response_type"`
		Text         string `json:"text"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ephemeral", resp.ResponseType)
	assert.NotEmpty(t, resp.Text)
}

func TestInteractivitySkipIsDecidedInline(t *testing.T) {
	repo := pendingApprovalRepo(t, "apr_q_2")

	mockNotifier := new(MockNotifier)
	mockNotifier.On("SendMessage", mock.Anything, mock.Anything).Return(nil)
	decider := usecase.NewDecideApprovalUseCase(repo, new(MockCRMGateway), mockNotifier, &scoring.Scorer{ReferenceYear: 2026})
	h := handlers.NewInteractivityHandler(new(MockQueueProducer), decider)

	rec := httptest.NewRecorder()
	h.Handle(rec, interactionRequest(t, "skip_lead", "apr_q_2"))

	assert.Equal(t, http.StatusOK, rec.Code)

	stored, err := repo.FindByID(context.Background(), "apr_q_2")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusRejected, stored.Status)
	assert.Equal(t, "alice", stored.DecidedByName)
}

func TestInteractivitySkipUnknownApprovalIsGraceful(t *testing.T) {
	repo := pendingApprovalRepo(t, "apr_q_3")

	decider := usecase.NewDecideApprovalUseCase(repo, new(MockCRMGateway), new(MockNotifier), &scoring.Scorer{ReferenceYear: 2026})
	h := handlers.NewInteractivityHandler(new(MockQueueProducer), decider)

	rec := httptest.NewRecorder()
	h.Handle(rec, interactionRequest(t, "skip_lead", "expired-id"))

	// Slack users always get a readable answer, not an error status.
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "expired")
}

func TestInteractivityMalformedPayload(t *testing.T) {
	decider := usecase.NewDecideApprovalUseCase(
		pendingApprovalRepo(t, "apr_q_4"), new(MockCRMGateway), new(MockNotifier),
		&scoring.Scorer{ReferenceYear: 2026},
	)
	h := handlers.NewInteractivityHandler(new(MockQueueProducer), decider)

	form := url.Values{"payload": {"{not json"}}
	req := httptest.NewRequest(http.MethodPost, "/interactivity", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := httptest.NewRecorder()
	h.Handle(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestInteractivityMissingPayloadField(t *testing.T) {
	decider := usecase.NewDecideApprovalUseCase(
		pendingApprovalRepo(t, "apr_q_5"), new(MockCRMGateway), new(MockNotifier),
		&scoring.Scorer{ReferenceYear: 2026},
	)
	h := handlers.NewInteractivityHandler(new(MockQueueProducer), decider)

	req := httptest.NewRequest(http.MethodPost, "/interactivity", strings.NewReader(""))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := httptest.NewRecorder()
	h.Handle(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
