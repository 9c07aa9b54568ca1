package access

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strconv"
	"time"

	"github.com/vytor/pastorprompt/internal/logger"
)

// DefaultTTL is how long a successful password entry keeps a folder unlocked.
const DefaultTTL = 10 * time.Minute

// SessionIDKey holds the opaque player id.
const SessionIDKey = "session_id"

// ErrAccessDenied is returned by Guard when the entered password does not match.
var ErrAccessDenied = stderrors.New("access denied: incorrect folder password")

// Record is the stored grant for one folder.
type Record struct {
	Granted   bool      `json:"granted"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Prompter asks the user for a folder's password.
type Prompter interface {
	PromptPassword(ctx context.Context, folderID int64) (string, error)
}

// PrompterFunc adapts a function to Prompter.
type PrompterFunc func(ctx context.Context, folderID int64) (string, error)

func (f PrompterFunc) PromptPassword(ctx context.Context, folderID int64) (string, error) {
	return f(ctx, folderID)
}

func passwordKey(folderID int64) string {
	return "folder_password_" + strconv.FormatInt(folderID, 10)
}

func accessKey(folderID int64) string {
	return "folder_access_" + strconv.FormatInt(folderID, 10)
}

// Gate decides whether protected folder actions may run.
type Gate struct {
	store Store
	ttl   time.Duration
	now   func() time.Time
	log   *logger.Logger
}

type Option func(*Gate)

// WithTTL overrides DefaultTTL.
func WithTTL(ttl time.Duration) Option {
	return func(g *Gate) { g.ttl = ttl }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(g *Gate) { g.now = now }
}

func NewGate(store Store, opts ...Option) *Gate {
	g := &Gate{
		store: store,
		ttl:   DefaultTTL,
		now:   time.Now,
		log:   logger.Default().WithPrefix("access"),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// SetFolderPassword locks a folder. An empty password clears it instead.
func (g *Gate) SetFolderPassword(folderID int64, password string) error {
	if password == "" {
		return g.ClearFolderPassword(folderID)
	}
	if err := g.store.Set(passwordKey(folderID), password); err != nil {
		return err
	}
	// A new password invalidates any grant made under the old one.
	return g.RevokeFolderAccess(folderID)
}

// ClearFolderPassword unlocks a folder and drops its grant.
func (g *Gate) ClearFolderPassword(folderID int64) error {
	if err := g.store.Delete(passwordKey(folderID)); err != nil {
		return err
	}
	return g.RevokeFolderAccess(folderID)
}

func (g *Gate) HasPassword(folderID int64) (bool, error) {
	_, ok, err := g.store.Get(passwordKey(folderID))
	return ok, err
}

// IsAccessGranted reports whether a live grant exists for folderID. An expired
// or unreadable record is removed and reported as absent.
func (g *Gate) IsAccessGranted(folderID int64) (bool, error) {
	raw, ok, err := g.store.Get(accessKey(folderID))
	if err != nil || !ok {
		return false, err
	}

	var rec Record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		g.log.Warn("discarding unreadable access record for folder %d: %v", folderID, err)
		return false, g.RevokeFolderAccess(folderID)
	}
	if !rec.Granted {
		return false, nil
	}
	if g.now().After(rec.ExpiresAt) {
		g.log.Debug("access to folder %d expired at %s", folderID, rec.ExpiresAt.Format(time.RFC3339))
		return false, g.RevokeFolderAccess(folderID)
	}
	return true, nil
}

// GrantFolderAccess records a grant lasting the gate's TTL from now.
func (g *Gate) GrantFolderAccess(folderID int64) error {
	raw, err := json.Marshal(Record{Granted: true, ExpiresAt: g.now().Add(g.ttl)})
	if err != nil {
		return err
	}
	return g.store.Set(accessKey(folderID), string(raw))
}

func (g *Gate) RevokeFolderAccess(folderID int64) error {
	return g.store.Delete(accessKey(folderID))
}

// Guard runs action if the folder is unlocked, currently granted, or the user
// enters its password. A wrong password returns ErrAccessDenied without
// running action.
func (g *Gate) Guard(ctx context.Context, folderID int64, prompter Prompter, action func(context.Context) error) error {
	password, locked, err := g.store.Get(passwordKey(folderID))
	if err != nil {
		return err
	}
	if !locked {
		return action(ctx)
	}

	granted, err := g.IsAccessGranted(folderID)
	if err != nil {
		return err
	}
	if granted {
		return action(ctx)
	}

	entered, err := prompter.PromptPassword(ctx, folderID)
	if err != nil {
		return fmt.Errorf("prompt for folder %d password: %w", folderID, err)
	}
	if entered != password {
		g.log.Warn("wrong password for folder %d", folderID)
		return ErrAccessDenied
	}
	if err := g.GrantFolderAccess(folderID); err != nil {
		return err
	}
	return action(ctx)
}

// SessionID returns the stored player id, creating one with generate on first
// use.
func SessionID(store Store, generate func() string) (string, error) {
	id, ok, err := store.Get(SessionIDKey)
	if err != nil {
		return "", err
	}
	if ok && id != "" {
		return id, nil
	}
	id = generate()
	if err := store.Set(SessionIDKey, id); err != nil {
		return "", err
	}
	return id, nil
}
