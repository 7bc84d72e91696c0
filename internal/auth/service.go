// Package auth orchestrates validation, throttling, the user registry,
// password verification, and the session lifecycle. It is the only
// component with contracts consumed by the rest of the application.
package auth

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/BAWimmer/lockbox/internal/codec"
	"github.com/BAWimmer/lockbox/internal/common"
	"github.com/BAWimmer/lockbox/internal/config"
	"github.com/BAWimmer/lockbox/internal/logging"
	"github.com/BAWimmer/lockbox/internal/ratelimit"
	"github.com/BAWimmer/lockbox/internal/securestore"
	"github.com/BAWimmer/lockbox/internal/validate"
)

// Logical storage keys. The secure store maps each onto its two
// physical slots.
const (
	registryKey     = "users"
	sessionKey      = "session"
	digestKeyPrefix = "pwd_"
)

// weakPasswords is the registration denylist. Matching is a
// case-insensitive exact comparison, not a substring check.
var weakPasswords = map[string]struct{}{
	"password":    {},
	"password123": {},
	"12345678":    {},
	"qwerty123":   {},
	"abc12345":    {},
	"admin123":    {},
}

// Service is the authentication service. Stateless itself; all state
// lives in its collaborators, which are injected once at construction.
// Operations are meant to be invoked sequentially by a single caller;
// overlapping calls against the same keys can interleave.
type Service struct {
	store      *securestore.Store
	codec      codec.Codec
	limiter    *ratelimit.Limiter
	sessionTTL time.Duration
	log        logging.Logger

	now          func() time.Time
	newSessionID func() string
}

func NewService(store *securestore.Store, c codec.Codec, limiter *ratelimit.Limiter, cfg *config.Config, log logging.Logger) *Service {
	return &Service{
		store:        store,
		codec:        c,
		limiter:      limiter,
		sessionTTL:   cfg.SessionTTL,
		log:          log,
		now:          time.Now,
		newSessionID: uuid.NewString,
	}
}

// Register creates a new user. Field-level validation errors come back
// as a ValidationError; a duplicate username as common.ErrUsernameTaken.
// The password digest is persisted before the registry is rewritten, and
// rolled back if the registry write fails, so the two records cannot
// diverge on this path.
func (s *Service) Register(ctx context.Context, username, password string) (*User, error) {
	uRes := validate.Check(username, validate.Username)
	pRes := validate.Check(password, validate.Password)

	var fields []string
	fields = append(fields, uRes.Errors...)
	fields = append(fields, pRes.Errors...)
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	if _, weak := weakPasswords[strings.ToLower(pRes.Sanitized)]; weak {
		return nil, &ValidationError{Fields: []string{"Password is too common, choose another"}}
	}

	users, err := s.loadUsers(ctx)
	if err != nil {
		return nil, s.fail(ctx, "register: load registry", err)
	}

	for _, u := range users {
		if u.Username == uRes.Sanitized {
			return nil, common.ErrUsernameTaken
		}
	}

	user := User{
		Username:  uRes.Sanitized,
		UserID:    s.codec.UserID(uRes.Sanitized),
		CreatedAt: s.now().UnixMilli(),
	}

	// Digest first, registry second.
	digest := s.codec.Digest(pRes.Sanitized)
	if err := s.store.Put(ctx, digestKeyPrefix+user.UserID, digest); err != nil {
		return nil, s.fail(ctx, "register: store digest", err)
	}

	if err := s.saveUsers(ctx, append(users, user)); err != nil {
		// Roll the digest back so no orphaned credential survives.
		if derr := s.store.Delete(ctx, digestKeyPrefix+user.UserID); derr != nil {
			s.log.Error(ctx, "digest rollback failed", "userId", user.UserID, "error", derr)
		}
		return nil, s.fail(ctx, "register: store registry", err)
	}

	s.log.Info(ctx, "user registered", "username", user.Username, "userId", user.UserID)
	return &user, nil
}

// Authenticate verifies credentials and opens a session. Unknown users
// and wrong passwords return the identical common.ErrInvalidCredentials
// so callers cannot enumerate usernames. Throttled identities get a
// RateLimitError carrying the remaining wait.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*User, error) {
	// Shape checks only: the strength rules belong to registration. A
	// wrong guess must still reach the limiter and the digest compare.
	uRes := validate.Check(username, validate.Username)
	sanitizedPassword := validate.Sanitize(password)
	if !uRes.OK || sanitizedPassword == "" {
		// One generic message; per-field detail would leak which part
		// was malformed.
		return nil, &ValidationError{Fields: []string{"invalid username or password format"}}
	}

	if out := s.limiter.Allow(uRes.Sanitized); !out.Allowed {
		return nil, &RateLimitError{RetryAfter: out.RetryAfter}
	}

	users, err := s.loadUsers(ctx)
	if err != nil {
		return nil, s.fail(ctx, "authenticate: load registry", err)
	}

	var user *User
	for i := range users {
		if users[i].Username == uRes.Sanitized {
			user = &users[i]
			break
		}
	}
	if user == nil {
		return nil, common.ErrInvalidCredentials
	}

	stored, err := s.store.Get(ctx, digestKeyPrefix+user.UserID)
	if err != nil {
		return nil, s.fail(ctx, "authenticate: load digest", err)
	}
	if stored == "" || stored != s.codec.Digest(sanitizedPassword) {
		return nil, common.ErrInvalidCredentials
	}

	session := Session{
		UserID:    user.UserID,
		Username:  user.Username,
		LoginTime: s.now().UnixMilli(),
		SessionID: s.newSessionID(),
	}
	raw, err := json.Marshal(session)
	if err != nil {
		return nil, s.fail(ctx, "authenticate: encode session", err)
	}
	if err := s.store.Put(ctx, sessionKey, string(raw)); err != nil {
		return nil, s.fail(ctx, "authenticate: store session", err)
	}

	s.log.Info(ctx, "session opened", "username", user.Username, "sessionId", session.SessionID)
	return user, nil
}

// CurrentSession returns the logged-in user, or (nil, nil) when no
// session exists. A session older than the TTL triggers an implicit
// logout and reads as absent.
func (s *Service) CurrentSession(ctx context.Context) (*User, error) {
	raw, err := s.store.Get(ctx, sessionKey)
	if err != nil {
		return nil, s.fail(ctx, "session: read", err)
	}
	if raw == "" {
		return nil, nil
	}

	var session Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		s.log.Warn(ctx, "corrupt session record, treating as absent", "error", err)
		return nil, nil
	}

	age := s.now().Sub(time.UnixMilli(session.LoginTime))
	if age > s.sessionTTL {
		s.log.Info(ctx, "session expired", "username", session.Username, "age", age)
		if err := s.Logout(ctx); err != nil {
			return nil, err
		}
		return nil, nil
	}

	return &User{Username: session.Username, UserID: session.UserID}, nil
}

// Logout clears the session slot and resets the attempt table. The
// limiter reset is global: logging out unthrottles every identity.
func (s *Service) Logout(ctx context.Context) error {
	if err := s.store.Put(ctx, sessionKey, ""); err != nil {
		return s.fail(ctx, "logout: clear session", err)
	}
	s.limiter.Reset()
	return nil
}

func (s *Service) loadUsers(ctx context.Context) ([]User, error) {
	raw, err := s.store.Get(ctx, registryKey)
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, nil
	}
	var users []User
	if err := json.Unmarshal([]byte(raw), &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *Service) saveUsers(ctx context.Context, users []User) error {
	raw, err := json.Marshal(users)
	if err != nil {
		return err
	}
	return s.store.Put(ctx, registryKey, string(raw))
}

// fail logs the internal cause and degrades to the generic failure
// result. Storage and encoding detail never crosses the service
// boundary.
func (s *Service) fail(ctx context.Context, op string, err error) error {
	s.log.Error(ctx, "operation failed", "op", op, "error", err)
	return common.ErrOperationFailed
}
