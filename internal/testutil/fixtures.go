package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/larrytao05/forum-backend/internal/domain"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	username string
	password string
	pfp      string
	skin     string
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		username: fmt.Sprintf("testuser_%s", uuid.New().String()[:8]),
		password: "testpassword123",
		skin:     "default",
	}
}

// WithUsername sets the username
func (b *UserBuilder) WithUsername(name string) *UserBuilder {
	b.username = name
	return b
}

// WithPassword sets the password
func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

// WithPfp sets the profile picture reference
func (b *UserBuilder) WithPfp(pfp string) *UserBuilder {
	b.pfp = pfp
	return b
}

// WithSkin sets the display theme
func (b *UserBuilder) WithSkin(skin string) *UserBuilder {
	b.skin = skin
	return b
}

// Build creates the user in the database and returns the user with the raw password
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.User, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		Username:     b.username,
		PasswordHash: string(hashedPassword),
		Pfp:          b.pfp,
		Skin:         b.skin,
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

// SessionBuilder creates test work sessions with a builder pattern
type SessionBuilder struct {
	userID  uuid.UUID
	start   float64
	elapsed float64
	active  bool
}

// NewSessionBuilder creates a builder for an active session owned by userID
func NewSessionBuilder(userID uuid.UUID) *SessionBuilder {
	return &SessionBuilder{
		userID: userID,
		active: true,
	}
}

// WithStart sets the start timestamp (epoch seconds)
func (b *SessionBuilder) WithStart(start float64) *SessionBuilder {
	b.start = start
	return b
}

// Ended marks the session closed with the given elapsed seconds
func (b *SessionBuilder) Ended(elapsed float64) *SessionBuilder {
	b.active = false
	b.elapsed = elapsed
	return b
}

// Build creates the session in the database
func (b *SessionBuilder) Build(t *testing.T, db *gorm.DB) *domain.WorkSession {
	t.Helper()

	session := &domain.WorkSession{
		ID:          uuid.New(),
		UserID:      b.userID,
		Start:       b.start,
		TimeElapsed: b.elapsed,
		Active:      b.active,
	}

	if err := db.Create(session).Error; err != nil {
		t.Fatalf("failed to create session: %v", err)
	}

	return session
}

// CreateJSONRequest creates an HTTP request with a JSON body and optional bearer token
func CreateJSONRequest(t *testing.T, method, url string, body interface{}, token string) *http.Request {
	t.Helper()

	var bodyReader *bytes.Buffer
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		bodyReader = bytes.NewBuffer(jsonBody)
	} else {
		bodyReader = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, url, bodyReader)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req
}
