package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/koungkub/pushco/internal/repository"
	"github.com/koungkub/pushco/internal/service"
	mockservice "github.com/koungkub/pushco/internal/service/mock"
	"github.com/koungkub/pushco/pkg/push"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func ptr[T any](v T) *T {
	return &v
}

func newTestRouter(handler *Push) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/apps/:app/push", handler.PushHandler)
	return router
}

func TestNewPushHandler(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockService := mockservice.NewMockPushProvider(ctrl)

	handler := NewPushHandler(PushParams{
		Services: mockService,
	})

	assert.NotNil(t, handler)
	assert.Equal(t, mockService, handler.services)
}

func TestPush_PushHandler(t *testing.T) {
	tests := []struct {
		name               string
		app                string
		requestBody        string
		setupMocks         func(*mockservice.MockPushProvider)
		expectedStatusCode int
		expectedResponse   map[string]any
	}{
		{
			name:        "message view",
			app:         "newsroom",
			requestBody: `{"message":"Test message.","article":"Longer text.","image":"http://push.co/logo.png"}`,
			setupMocks: func(mockService *mockservice.MockPushProvider) {
				mockService.EXPECT().Send(gomock.Any(), "newsroom", service.PushRequest{
					Message: "Test message.",
					Article: ptr("Longer text."),
					Image:   ptr("http://push.co/logo.png"),
				}).Return(map[string]any{"success": true}, nil)
			},
			expectedStatusCode: http.StatusOK,
			expectedResponse: map[string]any{
				"result": map[string]any{"success": true},
			},
		},
		{
			name:        "web view",
			app:         "newsroom",
			requestBody: `{"message":"Test message.","view_mode":1,"url":"http://push.co/","notification_type":"breaking"}`,
			setupMocks: func(mockService *mockservice.MockPushProvider) {
				mockService.EXPECT().Send(gomock.Any(), "newsroom", service.PushRequest{
					Message:          "Test message.",
					ViewMode:         ptr(push.ViewModeWeb),
					URL:              ptr("http://push.co/"),
					NotificationType: ptr("breaking"),
				}).Return(map[string]any{"success": true}, nil)
			},
			expectedStatusCode: http.StatusOK,
			expectedResponse: map[string]any{
				"result": map[string]any{"success": true},
			},
		},
		{
			name:        "explicit message view mode",
			app:         "weather",
			requestBody: `{"message":"Storm ahead","view_mode":0,"latitude":"13.7563","longitude":"100.5018"}`,
			setupMocks: func(mockService *mockservice.MockPushProvider) {
				mockService.EXPECT().Send(gomock.Any(), "weather", service.PushRequest{
					Message:   "Storm ahead",
					ViewMode:  ptr(push.ViewModeMessage),
					Latitude:  ptr("13.7563"),
					Longitude: ptr("100.5018"),
				}).Return(true, nil)
			},
			expectedStatusCode: http.StatusOK,
			expectedResponse: map[string]any{
				"result": true,
			},
		},
		{
			name:               "missing message",
			app:                "newsroom",
			requestBody:        `{"view_mode":1}`,
			setupMocks:         func(*mockservice.MockPushProvider) {},
			expectedStatusCode: http.StatusUnprocessableEntity,
			expectedResponse: map[string]any{
				"error_code": "E101",
			},
		},
		{
			name:               "message longer than 140 characters",
			app:                "newsroom",
			requestBody:        `{"message":"` + strings.Repeat("é", 141) + `"}`,
			setupMocks:         func(*mockservice.MockPushProvider) {},
			expectedStatusCode: http.StatusUnprocessableEntity,
			expectedResponse: map[string]any{
				"error_code": "E101",
			},
		},
		{
			name:               "view mode out of range",
			app:                "newsroom",
			requestBody:        `{"message":"Test message.","view_mode":3}`,
			setupMocks:         func(*mockservice.MockPushProvider) {},
			expectedStatusCode: http.StatusUnprocessableEntity,
			expectedResponse: map[string]any{
				"error_code": "E101",
			},
		},
		{
			name:               "malformed JSON body",
			app:                "newsroom",
			requestBody:        `{"message": "Test`,
			setupMocks:         func(*mockservice.MockPushProvider) {},
			expectedStatusCode: http.StatusUnprocessableEntity,
			expectedResponse: map[string]any{
				"error_code": "E101",
			},
		},
		{
			name:        "unknown application",
			app:         "ghost",
			requestBody: `{"message":"Test message."}`,
			setupMocks: func(mockService *mockservice.MockPushProvider) {
				mockService.EXPECT().Send(gomock.Any(), "ghost", gomock.Any()).
					Return(nil, repository.ErrApplicationNotFound)
			},
			expectedStatusCode: http.StatusNotFound,
			expectedResponse: map[string]any{
				"error_code": "E105",
				"message":    "application not found",
			},
		},
		{
			name:        "web view without url",
			app:         "newsroom",
			requestBody: `{"message":"Test message.","view_mode":1}`,
			setupMocks: func(mockService *mockservice.MockPushProvider) {
				mockService.EXPECT().Send(gomock.Any(), "newsroom", gomock.Any()).
					Return(nil, &push.ValidationError{Field: "url", Message: `"url" not set`})
			},
			expectedStatusCode: http.StatusUnprocessableEntity,
			expectedResponse: map[string]any{
				"error_code": "E101",
				"message":    `push: validation error: url: "url" not set`,
			},
		},
		{
			name:        "bad stored credentials",
			app:         "newsroom",
			requestBody: `{"message":"Test message."}`,
			setupMocks: func(mockService *mockservice.MockPushProvider) {
				mockService.EXPECT().Send(gomock.Any(), "newsroom", gomock.Any()).
					Return(nil, &push.ConfigurationError{Message: "expected api_key to be a hexadecimal"})
			},
			expectedStatusCode: http.StatusInternalServerError,
			expectedResponse: map[string]any{
				"error_code": "E102",
			},
		},
		{
			name:        "upstream unreachable",
			app:         "newsroom",
			requestBody: `{"message":"Test message."}`,
			setupMocks: func(mockService *mockservice.MockPushProvider) {
				mockService.EXPECT().Send(gomock.Any(), "newsroom", gomock.Any()).
					Return(nil, &push.NetworkError{Cause: errors.New("connection refused")})
			},
			expectedStatusCode: http.StatusBadGateway,
			expectedResponse: map[string]any{
				"error_code": "E103",
			},
		},
		{
			name:        "upstream answered garbage",
			app:         "newsroom",
			requestBody: `{"message":"Test message."}`,
			setupMocks: func(mockService *mockservice.MockPushProvider) {
				mockService.EXPECT().Send(gomock.Any(), "newsroom", gomock.Any()).
					Return(nil, &push.DecodeError{StatusCode: 503, Body: []byte("<html>"), Cause: errors.New("invalid character")})
			},
			expectedStatusCode: http.StatusBadGateway,
			expectedResponse: map[string]any{
				"error_code": "E104",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			mockService := mockservice.NewMockPushProvider(ctrl)
			tt.setupMocks(mockService)

			router := newTestRouter(NewPushHandler(PushParams{Services: mockService}))

			req := httptest.NewRequest(http.MethodPost, "/apps/"+tt.app+"/push", bytes.NewBufferString(tt.requestBody))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatusCode, w.Code)

			var response map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			for key, expectedValue := range tt.expectedResponse {
				assert.Equal(t, expectedValue, response[key], "Mismatch for key %s", key)
			}
		})
	}
}

func TestPush_PushHandler_ContextPropagation(t *testing.T) {
	ctrl := gomock.NewController(t)

	type ctxKey struct{}

	mockService := mockservice.NewMockPushProvider(ctrl)
	mockService.EXPECT().Send(gomock.Any(), "newsroom", gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string, _ service.PushRequest) (any, error) {
			assert.Equal(t, "request-scoped", ctx.Value(ctxKey{}))
			return map[string]any{}, nil
		})

	router := newTestRouter(NewPushHandler(PushParams{Services: mockService}))

	req := httptest.NewRequest(http.MethodPost, "/apps/newsroom/push", bytes.NewBufferString(`{"message":"Test message."}`))
	req = req.WithContext(context.WithValue(req.Context(), ctxKey{}, "request-scoped"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPushRequest_ToService(t *testing.T) {
	t.Run("leaves unset fields nil", func(t *testing.T) {
		req := PushRequest{Message: "Test message."}.toService()

		assert.Equal(t, "Test message.", req.Message)
		assert.Nil(t, req.ViewMode)
		assert.Nil(t, req.NotificationType)
		assert.Nil(t, req.URL)
	})

	t.Run("converts view mode", func(t *testing.T) {
		req := PushRequest{Message: "Test message.", ViewMode: ptr(2)}.toService()

		require.NotNil(t, req.ViewMode)
		assert.Equal(t, push.ViewModeMap, *req.ViewMode)
	})
}
