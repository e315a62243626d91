package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"healthbuddy/internal/models"
)

// RedisStore is the key-value backend, standing in for the browser
// key-value-collection deployment. Layout:
//
//	users:seq                counter for user ids
//	user:<id>                user JSON
//	user:email:<email>       email -> id, doubles as the uniqueness guard
//	session:active           id of the logged-in user
//	readings:seq             counter for reading ids
//	reading:<id>             reading JSON
//	readings:user:<id>       sorted set of reading ids, scored by timestamp
type RedisStore struct {
	url    string
	client *redis.Client
}

func NewRedisStore(url string) *RedisStore {
	return &RedisStore{url: url}
}

func (s *RedisStore) Init(ctx context.Context) error {
	opt, err := redis.ParseURL(s.url)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	client := redis.NewClient(opt)
	if _, err := client.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	s.client = client
	return nil
}

func (s *RedisStore) Close(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}

func userKey(id string) string     { return "user:" + id }
func emailKey(email string) string { return "user:email:" + email }
func readingKey(id string) string  { return "reading:" + id }
func userReadingsKey(userID string) string {
	return "readings:user:" + userID
}

const activeSessionKey = "session:active"

func (s *RedisStore) CreateUser(ctx context.Context, name, email, password string) (*models.User, error) {
	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	seq, err := s.client.Incr(ctx, "users:seq").Result()
	if err != nil {
		return nil, err
	}
	id := strconv.FormatInt(seq, 10)

	// SETNX on the email key is the uniqueness guard.
	claimed, err := s.client.SetNX(ctx, emailKey(email), id, 0).Result()
	if err != nil {
		return nil, err
	}
	if !claimed {
		return nil, ErrUserExists
	}

	now := time.Now().UTC()
	user := models.User{
		ID:        id,
		Name:      name,
		Email:     email,
		Password:  hash,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.putUser(ctx, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *RedisStore) FindUserByCredentials(ctx context.Context, email, password string) (*models.User, error) {
	id, err := s.client.Get(ctx, emailKey(email)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	user, err := s.getUser(ctx, id)
	if err != nil || user == nil {
		return nil, err
	}
	if !checkPassword(user.Password, password) {
		return nil, nil
	}
	return user, nil
}

func (s *RedisStore) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	if _, err := strconv.ParseInt(id, 10, 64); err != nil {
		return nil, ErrInvalidID
	}
	user, err := s.getUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

func (s *RedisStore) UpdateUserProfile(ctx context.Context, id string, update models.ProfileUpdate) (*models.User, error) {
	user, err := s.getUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}

	user.Height = update.Height
	user.Weight = update.Weight
	user.Age = update.Age
	user.BloodGroup = update.BloodGroup
	user.Allergies = update.Allergies
	user.UpdatedAt = time.Now().UTC()

	if err := s.putUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *RedisStore) CreateSession(ctx context.Context, userID string) error {
	// A single key holds the active session, so the overwrite is the
	// invalidate-then-establish step in one atomic command.
	return s.client.Set(ctx, activeSessionKey, userID, 0).Err()
}

func (s *RedisStore) GetActiveSession(ctx context.Context) (*models.User, error) {
	id, err := s.client.Get(ctx, activeSessionKey).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s.getUser(ctx, id)
}

func (s *RedisStore) ClearSession(ctx context.Context) error {
	// DEL on a missing key is a no-op, which makes this idempotent.
	return s.client.Del(ctx, activeSessionKey).Err()
}

func (s *RedisStore) AddReading(ctx context.Context, userID string, systolic, diastolic, heartRate int) (*models.BloodPressureReading, error) {
	seq, err := s.client.Incr(ctx, "readings:seq").Result()
	if err != nil {
		return nil, err
	}

	reading := models.BloodPressureReading{
		ID:        strconv.FormatInt(seq, 10),
		UserID:    userID,
		Systolic:  systolic,
		Diastolic: diastolic,
		HeartRate: heartRate,
		Timestamp: time.Now().UTC(),
	}
	data, err := json.Marshal(&reading)
	if err != nil {
		return nil, err
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, readingKey(reading.ID), data, 0)
	pipe.ZAdd(ctx, userReadingsKey(userID), redis.Z{
		Score:  float64(reading.Timestamp.UnixNano()),
		Member: reading.ID,
	})
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}
	return &reading, nil
}

func (s *RedisStore) GetReadings(ctx context.Context, userID string) ([]models.BloodPressureReading, error) {
	ids, err := s.client.ZRevRange(ctx, userReadingsKey(userID), 0, -1).Result()
	if err != nil || len(ids) == 0 {
		return []models.BloodPressureReading{}, nil
	}

	readings := make([]models.BloodPressureReading, 0, len(ids))
	for _, id := range ids {
		data, err := s.client.Get(ctx, readingKey(id)).Result()
		if err != nil {
			continue
		}
		var reading models.BloodPressureReading
		if err := json.Unmarshal([]byte(data), &reading); err != nil {
			continue
		}
		readings = append(readings, reading)
	}
	return readings, nil
}

func (s *RedisStore) DeleteReading(ctx context.Context, id string) error {
	data, err := s.client.Get(ctx, readingKey(id)).Result()
	if errors.Is(err, redis.Nil) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	var reading models.BloodPressureReading
	if err := json.Unmarshal([]byte(data), &reading); err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, readingKey(id))
	pipe.ZRem(ctx, userReadingsKey(reading.UserID), id)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *RedisStore) putUser(ctx context.Context, user *models.User) error {
	data, err := json.Marshal(struct {
		*models.User
		Password string `json:"password"`
	}{user, user.Password})
	if err != nil {
		return err
	}
	return s.client.Set(ctx, userKey(user.ID), data, 0).Err()
}

func (s *RedisStore) getUser(ctx context.Context, id string) (*models.User, error) {
	data, err := s.client.Get(ctx, userKey(id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var stored struct {
		models.User
		Password string `json:"password"`
	}
	if err := json.Unmarshal([]byte(data), &stored); err != nil {
		return nil, err
	}
	user := stored.User
	user.Password = stored.Password
	return &user, nil
}
