package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/xavierca1/leadflow/internal/infra/http/handlers"
)

func TestWebhookAutomationEnvelope(t *testing.T) {
	h := handlers.NewWebhookHandler(new(MockNotifier))

	body := `{"type":"status_update","automation":"daily-research","status":"completed","details":{"leads":4}}`
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Handle(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())
}

func TestWebhookFailedAutomationAlerts(t *testing.T) {
	mockNotifier := new(MockNotifier)
	mockNotifier.On("SendMessage", mock.Anything, mock.Anything).Return(nil)
	h := handlers.NewWebhookHandler(mockNotifier)

	body := `{"type":"status_update","automation":"weekly-report","status":"failed"}`
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Handle(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	mockNotifier.AssertCalled(t, "SendMessage", mock.Anything, mock.Anything)
}

func TestWebhookCRMEventArray(t *testing.T) {
	h := handlers.NewWebhookHandler(new(MockNotifier))

	body := `[{"subscriptionType":"deal.propertyChange","objectId":123,"propertyName":"dealstage","propertyValue":"closedwon"}]`
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Handle(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())
}

func TestWebhookBadJSON(t *testing.T) {
	h := handlers.NewWebhookHandler(new(MockNotifier))

	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader("{broken"))
	rec := httptest.NewRecorder()

	h.Handle(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "error")
}
