package controllers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"healthbuddy/internal/models"
	"healthbuddy/internal/store"
	"healthbuddy/internal/store/mocks"
)

func TestAddReading(t *testing.T) {
	mockStore := new(mocks.MockStore)
	mockStore.On("AddReading", mock.Anything, "1", 120, 80, 70).
		Return(&models.BloodPressureReading{
			ID: "10", UserID: "1", Systolic: 120, Diastolic: 80, HeartRate: 70,
			Timestamp: time.Now().UTC(),
		}, nil)

	router := setupTestRouter()
	router.POST("/api/blood-pressure", NewReadingController(mockStore).AddReading)

	w := performRequest(router, http.MethodPost, "/api/blood-pressure", map[string]interface{}{
		"userId": "1", "systolic": 120, "diastolic": 80, "heartRate": 70,
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var reading models.BloodPressureReading
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &reading))
	assert.Equal(t, 120, reading.Systolic)
	assert.False(t, reading.Timestamp.IsZero())
	mockStore.AssertExpectations(t)
}

func TestAddReadingMissingFields(t *testing.T) {
	mockStore := new(mocks.MockStore)
	router := setupTestRouter()
	router.POST("/api/blood-pressure", NewReadingController(mockStore).AddReading)

	w := performRequest(router, http.MethodPost, "/api/blood-pressure", map[string]interface{}{
		"userId": "1", "systolic": 120,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]string
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Missing required fields", body["error"])
	mockStore.AssertNotCalled(t, "AddReading",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGetReadingsNewestFirst(t *testing.T) {
	now := time.Now().UTC()
	mockStore := new(mocks.MockStore)
	mockStore.On("GetReadings", mock.Anything, "1").Return([]models.BloodPressureReading{
		{ID: "2", UserID: "1", Systolic: 130, Diastolic: 85, HeartRate: 75, Timestamp: now},
		{ID: "1", UserID: "1", Systolic: 120, Diastolic: 80, HeartRate: 70, Timestamp: now.Add(-time.Hour)},
	}, nil)

	router := setupTestRouter()
	router.GET("/api/blood-pressure/:userId", NewReadingController(mockStore).GetReadings)

	w := performRequest(router, http.MethodGet, "/api/blood-pressure/1", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var readings []models.BloodPressureReading
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &readings))
	assert.Len(t, readings, 2)
	assert.Equal(t, "2", readings[0].ID)
}

func TestGetReadingsEmptyOnFailure(t *testing.T) {
	mockStore := new(mocks.MockStore)
	mockStore.On("GetReadings", mock.Anything, "1").Return(nil, assert.AnError)

	router := setupTestRouter()
	router.GET("/api/blood-pressure/:userId", NewReadingController(mockStore).GetReadings)

	w := performRequest(router, http.MethodGet, "/api/blood-pressure/1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestDeleteReading(t *testing.T) {
	tests := []struct {
		name           string
		readingID      string
		setupMocks     func(*mocks.MockStore)
		expectedStatus int
		expectedError  string
	}{
		{
			name:      "deleted",
			readingID: "10",
			setupMocks: func(m *mocks.MockStore) {
				m.On("DeleteReading", mock.Anything, "10").Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:      "not found",
			readingID: "99",
			setupMocks: func(m *mocks.MockStore) {
				m.On("DeleteReading", mock.Anything, "99").Return(store.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedError:  "Reading not found",
		},
		{
			name:      "invalid id",
			readingID: "zzz",
			setupMocks: func(m *mocks.MockStore) {
				m.On("DeleteReading", mock.Anything, "zzz").Return(store.ErrInvalidID)
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockStore := new(mocks.MockStore)
			tt.setupMocks(mockStore)
			router := setupTestRouter()
			router.DELETE("/api/blood-pressure/:readingId", NewReadingController(mockStore).DeleteReading)

			w := performRequest(router, http.MethodDelete, "/api/blood-pressure/"+tt.readingID, nil)
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
