package controllers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"healthbuddy/internal/models"
	"healthbuddy/internal/store"
	"healthbuddy/internal/store/mocks"
)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func performRequest(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRegister(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    map[string]interface{}
		setupMocks     func(*mocks.MockStore)
		expectedStatus int
		expectedError  string
	}{
		{
			name:        "successful registration",
			requestBody: map[string]interface{}{"name": "Ann", "email": "ann@x.com", "password": "pw"},
			setupMocks: func(m *mocks.MockStore) {
				m.On("CreateUser", mock.Anything, "Ann", "ann@x.com", "pw").
					Return(&models.User{ID: "1", Name: "Ann", Email: "ann@x.com"}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing fields",
			requestBody:    map[string]interface{}{"name": "Ann"},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Missing required fields",
		},
		{
			name:           "blank password",
			requestBody:    map[string]interface{}{"name": "Ann", "email": "ann@x.com", "password": "  "},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Missing required fields",
		},
		{
			name:        "duplicate email",
			requestBody: map[string]interface{}{"name": "Ann", "email": "ann@x.com", "password": "pw"},
			setupMocks: func(m *mocks.MockStore) {
				m.On("CreateUser", mock.Anything, "Ann", "ann@x.com", "pw").
					Return(nil, store.ErrUserExists)
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "User already exists",
		},
		{
			name:        "backend failure",
			requestBody: map[string]interface{}{"name": "Ann", "email": "ann@x.com", "password": "pw"},
			setupMocks: func(m *mocks.MockStore) {
				m.On("CreateUser", mock.Anything, "Ann", "ann@x.com", "pw").
					Return(nil, errors.New("connection reset"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockStore := new(mocks.MockStore)
			if tt.setupMocks != nil {
				tt.setupMocks(mockStore)
			}
			router := setupTestRouter()
			router.POST("/api/users/register", NewUserController(mockStore).Register)

			w := performRequest(router, http.MethodPost, "/api/users/register", tt.requestBody)
			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedError != "" {
				var body map[string]string
				assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				assert.Equal(t, tt.expectedError, body["error"])
			}
			mockStore.AssertExpectations(t)
		})
	}
}

func TestRegisterDoesNotLeakPassword(t *testing.T) {
	mockStore := new(mocks.MockStore)
	mockStore.On("CreateUser", mock.Anything, "Ann", "ann@x.com", "pw").
		Return(&models.User{ID: "1", Name: "Ann", Email: "ann@x.com", Password: "$2a$hash"}, nil)
	router := setupTestRouter()
	router.POST("/api/users/register", NewUserController(mockStore).Register)

	w := performRequest(router, http.MethodPost, "/api/users/register",
		map[string]interface{}{"name": "Ann", "email": "ann@x.com", "password": "pw"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "$2a$hash")
	assert.NotContains(t, w.Body.String(), `"password"`)
}

func TestLogin(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    map[string]interface{}
		setupMocks     func(*mocks.MockStore)
		expectedStatus int
		expectedError  string
	}{
		{
			name:        "successful login",
			requestBody: map[string]interface{}{"email": "ann@x.com", "password": "pw"},
			setupMocks: func(m *mocks.MockStore) {
				m.On("FindUserByCredentials", mock.Anything, "ann@x.com", "pw").
					Return(&models.User{ID: "1", Email: "ann@x.com"}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing credentials",
			requestBody:    map[string]interface{}{"email": "ann@x.com"},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Missing credentials",
		},
		{
			name:        "invalid credentials",
			requestBody: map[string]interface{}{"email": "ann@x.com", "password": "wrong"},
			setupMocks: func(m *mocks.MockStore) {
				m.On("FindUserByCredentials", mock.Anything, "ann@x.com", "wrong").
					Return(nil, nil)
			},
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "Invalid credentials",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockStore := new(mocks.MockStore)
			if tt.setupMocks != nil {
				tt.setupMocks(mockStore)
			}
			router := setupTestRouter()
			router.POST("/api/users/login", NewUserController(mockStore).Login)

			w := performRequest(router, http.MethodPost, "/api/users/login", tt.requestBody)
			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedError != "" {
				var body map[string]string
				assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				assert.Equal(t, tt.expectedError, body["error"])
			}
			mockStore.AssertExpectations(t)
		})
	}
}

func TestGetUserByID(t *testing.T) {
	tests := []struct {
		name           string
		userID         string
		setupMocks     func(*mocks.MockStore)
		expectedStatus int
	}{
		{
			name:   "found",
			userID: "1",
			setupMocks: func(m *mocks.MockStore) {
				m.On("FindUserByID", mock.Anything, "1").
					Return(&models.User{ID: "1", Email: "ann@x.com"}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "not found",
			userID: "42",
			setupMocks: func(m *mocks.MockStore) {
				m.On("FindUserByID", mock.Anything, "42").Return(nil, store.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:   "invalid id",
			userID: "zzz",
			setupMocks: func(m *mocks.MockStore) {
				m.On("FindUserByID", mock.Anything, "zzz").Return(nil, store.ErrInvalidID)
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockStore := new(mocks.MockStore)
			tt.setupMocks(mockStore)
			router := setupTestRouter()
			router.GET("/api/users/:userId", NewUserController(mockStore).GetUserByID)

			w := performRequest(router, http.MethodGet, "/api/users/"+tt.userID, nil)
			assert.Equal(t, tt.expectedStatus, w.Code)
			mockStore.AssertExpectations(t)
		})
	}
}

func TestUpdateProfile(t *testing.T) {
	height := 170.0
	mockStore := new(mocks.MockStore)
	mockStore.On("UpdateUserProfile", mock.Anything, "1", mock.MatchedBy(func(u models.ProfileUpdate) bool {
		return u.Height != nil && *u.Height == 170.0
	})).Return(&models.User{ID: "1", Email: "ann@x.com", Height: &height}, nil)

	router := setupTestRouter()
	router.PUT("/api/users/:userId/profile", NewUserController(mockStore).UpdateProfile)

	w := performRequest(router, http.MethodPut, "/api/users/1/profile",
		map[string]interface{}{"height": 170.0})
	assert.Equal(t, http.StatusOK, w.Code)

	var user models.User
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))
	assert.NotNil(t, user.Height)
	mockStore.AssertExpectations(t)
}

func TestUpdateProfileNotFound(t *testing.T) {
	mockStore := new(mocks.MockStore)
	mockStore.On("UpdateUserProfile", mock.Anything, "42", mock.Anything).
		Return(nil, store.ErrNotFound)

	router := setupTestRouter()
	router.PUT("/api/users/:userId/profile", NewUserController(mockStore).UpdateProfile)

	w := performRequest(router, http.MethodPut, "/api/users/42/profile", map[string]interface{}{})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
