package autosave

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"
	"time"
)

// Status is the autosave indicator state machine:
// idle -> saving -> (saved | error) -> idle. Terminal display states clear
// back to idle after a fixed window.
type Status string

const (
	StatusIdle   Status = "idle"
	StatusSaving Status = "saving"
	StatusSaved  Status = "saved"
	StatusError  Status = "error"
)

// Snapshot is the composite editable document state. Autosave debounces on a
// hash of the whole snapshot, not on individual fields, so focus/blur cycles
// with no real edits never reach the store.
type Snapshot struct {
	Title      string
	Content    string // encoded document string
	Importance string
	Tags       []string
	Color      string
	Icon       string
	FolderID   string
}

// Hash fingerprints the snapshot for the redundancy gate.
func (s Snapshot) Hash() string {
	h := sha256.New()
	for _, field := range []string{s.Title, s.Content, s.Importance, strings.Join(s.Tags, ","), s.Color, s.Icon, s.FolderID} {
		h.Write([]byte(field))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Store is the draft persistence collaborator.
type Store interface {
	SaveDraft(ctx context.Context, snap Snapshot) (draftID string, err error)
	UpdateDraft(ctx context.Context, draftID string, snap Snapshot) error
	DeleteDraft(ctx context.Context, draftID string) error
}

// Logger is the subset of the app logger the controller needs.
type Logger interface {
	Warn(module, message string, details map[string]interface{})
}

// Options tune the controller timers. Zero values fall back to defaults.
type Options struct {
	Debounce    time.Duration // after last edit
	Interval    time.Duration // periodic safety net
	SavedWindow time.Duration // saved -> idle
	ErrorWindow time.Duration // error -> idle
}

func (o Options) withDefaults() Options {
	if o.Debounce <= 0 {
		o.Debounce = 2500 * time.Millisecond
	}
	if o.Interval <= 0 {
		o.Interval = 30 * time.Second
	}
	if o.SavedWindow <= 0 {
		o.SavedWindow = 2 * time.Second
	}
	if o.ErrorWindow <= 0 {
		o.ErrorWindow = 4 * time.Second
	}
	return o
}

// Controller drives debounced, idempotent draft persistence for one editing
// session. The first successful save creates the draft record and captures
// its id; later saves update that record. Promote deletes the draft after
// the final report save; a failed cleanup is logged, never rolled back.
type Controller struct {
	mu sync.Mutex

	store  Store
	source func() Snapshot
	logger Logger
	opts   Options

	draftID  string
	lastHash string
	status   Status
	inFlight bool
	rerun    bool

	debounce    *time.Timer
	statusTimer *time.Timer
	ticker      *time.Ticker
	done        chan struct{}
	closed      bool
}

// New creates a controller. source returns the latest editable state; it is
// called at fire time so a debounced save always persists current content.
func New(store Store, source func() Snapshot, logger Logger, opts Options) *Controller {
	c := &Controller{
		store:  store,
		source: source,
		logger: logger,
		opts:   opts.withDefaults(),
		status: StatusIdle,
		done:   make(chan struct{}),
	}
	c.ticker = time.NewTicker(c.opts.Interval)
	go c.runPeriodic()
	return c
}

// Status returns the current indicator state.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// DraftID returns the id assigned by the first successful save, empty until
// then.
func (c *Controller) DraftID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draftID
}

// NotifyChange restarts the debounce window after an edit to any field of
// the composite state. Only the most recent scheduling fires.
func (c *Controller) NotifyChange() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	if c.debounce != nil {
		c.debounce.Stop()
	}
	c.debounce = time.AfterFunc(c.opts.Debounce, func() {
		c.save(context.Background())
	})
}

// SaveNow persists immediately, bypassing the debounce (manual trigger).
func (c *Controller) SaveNow(ctx context.Context) error {
	c.mu.Lock()
	if c.debounce != nil {
		c.debounce.Stop()
		c.debounce = nil
	}
	c.mu.Unlock()
	return c.save(ctx)
}

// Promote finalizes the session after the report itself has been saved: the
// draft record is deleted as cleanup. Deletion failure is logged only; the
// save it follows is already committed.
func (c *Controller) Promote(ctx context.Context) {
	c.mu.Lock()
	id := c.draftID
	c.draftID = ""
	c.lastHash = ""
	c.mu.Unlock()

	if id == "" {
		return
	}
	if err := c.store.DeleteDraft(ctx, id); err != nil && c.logger != nil {
		c.logger.Warn("Autosave", "Draft cleanup after promote failed", map[string]interface{}{
			"draft_id": id,
			"error":    err.Error(),
		})
	}
}

// Close tears the session down: pending timers are cancelled and any save
// completing afterwards is a no-op against the discarded context.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	if c.debounce != nil {
		c.debounce.Stop()
	}
	if c.statusTimer != nil {
		c.statusTimer.Stop()
	}
	c.ticker.Stop()
	close(c.done)
	c.mu.Unlock()
}

func (c *Controller) runPeriodic() {
	for {
		select {
		case <-c.ticker.C:
			c.save(context.Background())
		case <-c.done:
			return
		}
	}
}

// save is the single persistence path for all three triggers. The content
// hash gate makes redundant fires cheap no-ops. Saves are single-flight:
// a trigger landing while the store round trip is still out queues exactly
// one re-run instead of racing it, so the first save alone creates the
// draft record and every later save updates it.
func (c *Controller) save(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	if c.inFlight {
		c.rerun = true
		c.mu.Unlock()
		return nil
	}
	snap := c.source()
	hash := snap.Hash()
	if hash == c.lastHash {
		c.mu.Unlock()
		return nil
	}
	draftID := c.draftID
	c.inFlight = true
	c.setStatusLocked(StatusSaving)
	c.mu.Unlock()

	var err error
	var newID string
	if draftID == "" {
		newID, err = c.store.SaveDraft(ctx, snap)
	} else {
		err = c.store.UpdateDraft(ctx, draftID, snap)
	}

	c.mu.Lock()
	c.inFlight = false
	rerun := c.rerun
	c.rerun = false
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	if err != nil {
		if c.logger != nil {
			c.logger.Warn("Autosave", "Draft save failed", map[string]interface{}{"error": err.Error()})
		}
		c.setStatusLocked(StatusError)
		c.clearStatusAfterLocked(c.opts.ErrorWindow)
		c.mu.Unlock()
		return err
	}
	if draftID == "" {
		c.draftID = newID
	}
	c.lastHash = hash
	c.setStatusLocked(StatusSaved)
	c.clearStatusAfterLocked(c.opts.SavedWindow)
	c.mu.Unlock()

	// Edits that arrived mid-flight still need to land.
	if rerun {
		return c.save(ctx)
	}
	return nil
}

func (c *Controller) setStatusLocked(s Status) {
	if c.statusTimer != nil {
		c.statusTimer.Stop()
		c.statusTimer = nil
	}
	c.status = s
}

func (c *Controller) clearStatusAfterLocked(d time.Duration) {
	c.statusTimer = time.AfterFunc(d, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if !c.closed && (c.status == StatusSaved || c.status == StatusError) {
			c.status = StatusIdle
		}
	})
}
