// Package editflow implements editing a single user from the users view: a
// draft is opened from a row, changed field by field, and either saved to the
// backend with a partial update or discarded.
package editflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/octofit/dashboard/internal/collection"
	"github.com/octofit/dashboard/internal/endpoint"
	"github.com/octofit/dashboard/internal/remotelist"
)

// ErrNoDraft is returned when a draft operation runs while no edit is open.
var ErrNoDraft = errors.New("no user is being edited")

// ErrUnknownField is returned by ChangeField for fields outside the draft.
var ErrUnknownField = errors.New("unknown draft field")

// ErrSaveInProgress is returned by Save while the same draft is already being saved.
var ErrSaveInProgress = errors.New("save already in progress")

// Editable fields.
const (
	FieldName   = "name"
	FieldEmail  = "email"
	FieldTeamID = "team_id"
)

// Draft is the editable copy of one user.
type Draft struct {
	UserID string `json:"userId"`
	Name   string `json:"name" validate:"required"`
	Email  string `json:"email" validate:"required,email"`
	TeamID string `json:"teamId"`
}

// State is a copy of the flow's state for rendering.
type State struct {
	Open      bool   `json:"open"`
	Draft     Draft  `json:"draft"`
	SaveError string `json:"saveError,omitempty"`
	Saving    bool   `json:"saving,omitempty"`
}

// Patcher sends a partial update and returns the updated record.
type Patcher interface {
	Patch(ctx context.Context, url string, body any) (collection.Record, error)
}

type userPatch struct {
	Name   string  `json:"name"`
	Email  string  `json:"email"`
	TeamID *string `json:"team_id"`
}

// Flow is the edit state machine bound to one users list.
type Flow struct {
	users   *remotelist.List
	patcher Patcher

	mu      sync.Mutex
	draft   *Draft
	saveErr string
	// gen identifies the open draft; it changes on every OpenEdit and Cancel.
	gen       uint64
	saving    bool
	savingGen uint64
}

// New creates a closed Flow editing records of users.
func New(users *remotelist.List, patcher Patcher) *Flow {
	return &Flow{users: users, patcher: patcher}
}

// OpenEdit seeds a new draft from user and clears any previous save error.
func (f *Flow) OpenEdit(user collection.Record) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.draft = &Draft{
		UserID: user.ID(),
		Name:   user.String(FieldName),
		Email:  user.String(FieldEmail),
		TeamID: user.String(FieldTeamID),
	}
	f.saveErr = ""
	f.gen++
}

// ChangeField overwrites one draft field.
func (f *Flow) ChangeField(field, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.draft == nil {
		return ErrNoDraft
	}

	switch field {
	case FieldName:
		f.draft.Name = value
	case FieldEmail:
		f.draft.Email = value
	case FieldTeamID:
		f.draft.TeamID = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}

// Save submits the draft. Without an open draft it does nothing. The lock is
// not held during the request, so the draft can be read or cancelled meanwhile.
// On failure the draft stays open and the message is kept as the save error;
// on success the matching users are replaced in the list and, if the same draft
// is still open, the flow closes.
func (f *Flow) Save(ctx context.Context) error {
	f.mu.Lock()
	if f.draft == nil {
		f.mu.Unlock()
		return nil
	}
	if f.saving && f.savingGen == f.gen {
		f.mu.Unlock()
		return ErrSaveInProgress
	}
	if err := validateDraft(*f.draft); err != nil {
		f.saveErr = err.Error()
		f.mu.Unlock()
		return err
	}

	gen := f.gen
	userID := f.draft.UserID
	patch := userPatch{Name: f.draft.Name, Email: f.draft.Email}
	if f.draft.TeamID != "" {
		teamID := f.draft.TeamID
		patch.TeamID = &teamID
	}
	f.saving = true
	f.savingGen = gen
	f.mu.Unlock()

	url := endpoint.ItemURL(f.users.Endpoint(), userID)
	updated, err := f.patcher.Patch(ctx, url, patch)

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.savingGen == gen {
		f.saving = false
	}
	current := f.draft != nil && f.gen == gen

	if err != nil {
		slog.Warn("user update failed", "userId", userID, "endpoint", url, "error", err)
		if current {
			f.saveErr = err.Error()
		}
		return err
	}

	if n := f.users.Replace(updated); n == 0 {
		slog.Warn("updated user not present in list", "userId", updated.ID())
	}
	slog.Info("user updated", "userId", updated.ID())

	if current {
		f.draft = nil
		f.saveErr = ""
		f.gen++
	}
	return nil
}

// Cancel discards the draft and any pending error. A save already sent is not
// recalled, but its outcome no longer affects the flow.
func (f *Flow) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.draft = nil
	f.saveErr = ""
	f.gen++
}

// State returns a copy of the current state.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.draft == nil {
		return State{}
	}
	return State{
		Open:      true,
		Draft:     *f.draft,
		SaveError: f.saveErr,
		Saving:    f.saving && f.savingGen == f.gen,
	}
}
