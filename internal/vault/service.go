// Package vault stores per-user notes through the secure store. Notes
// for a user live as one JSON array under the logical key notes_{userId}.
package vault

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/BAWimmer/lockbox/internal/codec"
	"github.com/BAWimmer/lockbox/internal/common"
	"github.com/BAWimmer/lockbox/internal/dbx"
	"github.com/BAWimmer/lockbox/internal/logging"
	"github.com/BAWimmer/lockbox/internal/repositories/keyvalue"
	"github.com/BAWimmer/lockbox/internal/securestore"
	"github.com/BAWimmer/lockbox/internal/validate"
)

const notesKeyPrefix = "notes_"

// ErrInvalidNote wraps title/body validation failures.
var ErrInvalidNote = errors.New("invalid note")

// Note is a single stored note.
type Note struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	CreatedAt int64  `json:"createdAt"` // unix millis
	UpdatedAt int64  `json:"updatedAt"` // unix millis
}

// Service manages a user's notes. Mutating operations run inside a
// transaction so the read-modify-write of the notes array cannot leave
// a torn envelope behind.
type Service struct {
	db    *sql.DB
	codec codec.Codec
	log   logging.Logger

	now   func() time.Time
	newID func() string
}

func NewService(db *sql.DB, c codec.Codec, log logging.Logger) *Service {
	return &Service{
		db:    db,
		codec: c,
		log:   log,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

func (s *Service) storeFor(db dbx.DBTX) *securestore.Store {
	return securestore.New(keyvalue.NewSQLiteRepository(db), s.codec, s.log)
}

// List returns all notes for the user, oldest first.
func (s *Service) List(ctx context.Context, userID string) ([]Note, error) {
	return s.load(ctx, s.storeFor(s.db), userID)
}

// Add validates and appends a note, returning the stored copy.
func (s *Service) Add(ctx context.Context, userID, title, body string) (*Note, error) {
	titleRes := validate.Check(title, validate.Text)
	bodyRes := validate.Check(body, validate.Text)
	if !titleRes.OK || !bodyRes.OK {
		msgs := append(titleRes.Errors, bodyRes.Errors...)
		return nil, fmt.Errorf("%w: %s", ErrInvalidNote, strings.Join(msgs, "; "))
	}
	if titleRes.Sanitized == "" {
		return nil, fmt.Errorf("%w: title must not be empty", ErrInvalidNote)
	}

	note := Note{
		ID:        s.newID(),
		Title:     titleRes.Sanitized,
		Body:      bodyRes.Sanitized,
		CreatedAt: s.now().UnixMilli(),
		UpdatedAt: s.now().UnixMilli(),
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		store := s.storeFor(tx)
		notes, err := s.load(ctx, store, userID)
		if err != nil {
			return err
		}
		return s.save(ctx, store, userID, append(notes, note))
	})
	if err != nil {
		return nil, err
	}
	return &note, nil
}

// Update rewrites the title and body of an existing note.
func (s *Service) Update(ctx context.Context, userID, noteID, title, body string) error {
	titleRes := validate.Check(title, validate.Text)
	bodyRes := validate.Check(body, validate.Text)
	if !titleRes.OK || !bodyRes.OK {
		msgs := append(titleRes.Errors, bodyRes.Errors...)
		return fmt.Errorf("%w: %s", ErrInvalidNote, strings.Join(msgs, "; "))
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		store := s.storeFor(tx)
		notes, err := s.load(ctx, store, userID)
		if err != nil {
			return err
		}
		for i := range notes {
			if notes[i].ID == noteID {
				notes[i].Title = titleRes.Sanitized
				notes[i].Body = bodyRes.Sanitized
				notes[i].UpdatedAt = s.now().UnixMilli()
				return s.save(ctx, store, userID, notes)
			}
		}
		return common.ErrNotFound
	})
}

// Delete removes a note by id.
func (s *Service) Delete(ctx context.Context, userID, noteID string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		store := s.storeFor(tx)
		notes, err := s.load(ctx, store, userID)
		if err != nil {
			return err
		}
		for i := range notes {
			if notes[i].ID == noteID {
				return s.save(ctx, store, userID, append(notes[:i], notes[i+1:]...))
			}
		}
		return common.ErrNotFound
	})
}

func (s *Service) load(ctx context.Context, store *securestore.Store, userID string) ([]Note, error) {
	raw, err := store.Get(ctx, notesKeyPrefix+userID)
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, nil
	}
	var notes []Note
	if err := json.Unmarshal([]byte(raw), &notes); err != nil {
		return nil, fmt.Errorf("decode notes for %s: %w", userID, err)
	}
	return notes, nil
}

func (s *Service) save(ctx context.Context, store *securestore.Store, userID string, notes []Note) error {
	raw, err := json.Marshal(notes)
	if err != nil {
		return err
	}
	return store.Put(ctx, notesKeyPrefix+userID, string(raw))
}
