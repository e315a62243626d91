package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"healthbuddy/internal/models"
)

// APIStore is the remote backend: an HTTP+JSON client for the server in
// cmd/. This is the path a thin client takes when it cannot talk to a
// database directly.
type APIStore struct {
	baseURL    string
	httpClient *http.Client
}

func NewAPIStore(baseURL string) *APIStore {
	return &APIStore{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// apiError carries the server's error body plus the status code, so callers
// can translate specific messages into sentinel errors.
type apiError struct {
	Status  int
	Message string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

func (s *APIStore) call(ctx context.Context, method, endpoint string, payload, out interface{}) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+endpoint, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errBody struct {
			Error string `json:"error"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&errBody); decodeErr != nil || errBody.Error == "" {
			errBody.Error = fmt.Sprintf("unexpected status %d", resp.StatusCode)
		}
		return &apiError{Status: resp.StatusCode, Message: errBody.Error}
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

func (s *APIStore) Init(ctx context.Context) error {
	var health struct {
		Status string `json:"status"`
	}
	if err := s.call(ctx, http.MethodGet, "/health", nil, &health); err != nil {
		return fmt.Errorf("%w: health check failed: %v", ErrUnavailable, err)
	}
	return nil
}

func (s *APIStore) Close(ctx context.Context) error {
	s.httpClient.CloseIdleConnections()
	return nil
}

func (s *APIStore) CreateUser(ctx context.Context, name, email, password string) (*models.User, error) {
	var user models.User
	err := s.call(ctx, http.MethodPost, "/users/register", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	}, &user)
	if err != nil {
		var apiErr *apiError
		if errors.As(err, &apiErr) && strings.Contains(apiErr.Message, "already exists") {
			return nil, ErrUserExists
		}
		return nil, err
	}
	return &user, nil
}

func (s *APIStore) FindUserByCredentials(ctx context.Context, email, password string) (*models.User, error) {
	var user models.User
	err := s.call(ctx, http.MethodPost, "/users/login", map[string]string{
		"email":    email,
		"password": password,
	}, &user)
	if err != nil {
		var apiErr *apiError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (s *APIStore) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := s.call(ctx, http.MethodGet, "/users/"+id, nil, &user)
	if err != nil {
		var apiErr *apiError
		if errors.As(err, &apiErr) {
			switch apiErr.Status {
			case http.StatusNotFound:
				return nil, ErrNotFound
			case http.StatusBadRequest:
				return nil, ErrInvalidID
			}
		}
		return nil, err
	}
	return &user, nil
}

func (s *APIStore) UpdateUserProfile(ctx context.Context, id string, update models.ProfileUpdate) (*models.User, error) {
	var user models.User
	err := s.call(ctx, http.MethodPut, "/users/"+id+"/profile", update, &user)
	if err != nil {
		var apiErr *apiError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *APIStore) CreateSession(ctx context.Context, userID string) error {
	return s.call(ctx, http.MethodPost, "/sessions", map[string]string{"userId": userID}, nil)
}

func (s *APIStore) GetActiveSession(ctx context.Context) (*models.User, error) {
	var user models.User
	err := s.call(ctx, http.MethodGet, "/sessions/active", nil, &user)
	if err != nil {
		var apiErr *apiError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (s *APIStore) ClearSession(ctx context.Context) error {
	return s.call(ctx, http.MethodPost, "/sessions/clear", nil, nil)
}

func (s *APIStore) AddReading(ctx context.Context, userID string, systolic, diastolic, heartRate int) (*models.BloodPressureReading, error) {
	var reading models.BloodPressureReading
	err := s.call(ctx, http.MethodPost, "/blood-pressure", map[string]interface{}{
		"userId":    userID,
		"systolic":  systolic,
		"diastolic": diastolic,
		"heartRate": heartRate,
	}, &reading)
	if err != nil {
		return nil, err
	}
	return &reading, nil
}

func (s *APIStore) GetReadings(ctx context.Context, userID string) ([]models.BloodPressureReading, error) {
	var readings []models.BloodPressureReading
	if err := s.call(ctx, http.MethodGet, "/blood-pressure/"+userID, nil, &readings); err != nil {
		return []models.BloodPressureReading{}, nil
	}
	if readings == nil {
		readings = []models.BloodPressureReading{}
	}
	return readings, nil
}

func (s *APIStore) DeleteReading(ctx context.Context, id string) error {
	err := s.call(ctx, http.MethodDelete, "/blood-pressure/"+id, nil, nil)
	if err != nil {
		var apiErr *apiError
		if errors.As(err, &apiErr) {
			switch apiErr.Status {
			case http.StatusNotFound:
				return ErrNotFound
			case http.StatusBadRequest:
				return ErrInvalidID
			}
		}
		return err
	}
	return nil
}
