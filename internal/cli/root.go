package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/agenda/internal/backup"
	"github.com/julianstephens/agenda/internal/constants"
	apperrors "github.com/julianstephens/agenda/internal/errors"
	"github.com/julianstephens/agenda/internal/keys"
	"github.com/julianstephens/agenda/internal/logger"
	"github.com/julianstephens/agenda/internal/repository"
	"github.com/julianstephens/agenda/internal/router"
	"github.com/julianstephens/agenda/internal/storage"
	"github.com/julianstephens/agenda/internal/storage/sqlite"
)

// ConfirmFunc asks the user a yes/no question.
type ConfirmFunc func(title, description string) (bool, error)

type Context struct {
	Store storage.Provider
	// Date is the reference date commands default to.
	Date time.Time
	Out  io.Writer
	// Confirm is used for destructive actions when --yes is not given.
	Confirm ConfirmFunc

	repo   *repository.Repository
	router *router.Router
}

// NewContext wires a context around store with stdout output and huh prompts.
func NewContext(store storage.Provider, date time.Time) *Context {
	return &Context{
		Store:   store,
		Date:    date,
		Out:     os.Stdout,
		Confirm: huhConfirm,
	}
}

// OpenStore picks the backend from path: ":memory:" is the in-memory
// store, a .json suffix the JSON file store and anything else SQLite.
func OpenStore(path string) storage.Provider {
	switch {
	case path == constants.MemoryStorePath:
		return storage.NewMemoryStore()
	case strings.HasSuffix(strings.ToLower(path), ".json"):
		return storage.NewJSONStore(path)
	default:
		return sqlite.NewStore(path)
	}
}

// Repo returns the repository over the loaded store.
func (c *Context) Repo() *repository.Repository {
	if c.repo == nil {
		c.repo = repository.New(c.Store)
	}
	return c.repo
}

// Router returns the router, created on first use at the context date.
func (c *Context) Router() *router.Router {
	if c.router == nil {
		c.router = router.New(c.Repo(), c.Date)
	}
	return c.router
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	mgr, err := backup.NewManager(c.Store.GetConfigPath())
	if err != nil {
		logger.Debug("Skipping automatic backup", "reason", err)
		return
	}
	if _, err := mgr.CreateBackup(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

func (c *Context) printf(format string, args ...interface{}) {
	fmt.Fprintf(c.Out, format, args...)
}

func (c *Context) println(args ...interface{}) {
	fmt.Fprintln(c.Out, args...)
}

// ParseDate accepts YYYY-MM-DD, "today", "tomorrow" and "yesterday"
// relative to ref. An empty string is ref itself.
func ParseDate(s string, ref time.Time) (time.Time, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "today":
		return ref, nil
	case "tomorrow":
		return keys.AddDays(ref, 1), nil
	case "yesterday":
		return keys.AddDays(ref, -1), nil
	}
	d, err := keys.ParseDayKey(s, ref.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, use YYYY-MM-DD, today, tomorrow or yesterday", s)
	}
	// Noon keeps day arithmetic clear of DST transitions.
	return d.Add(12 * time.Hour), nil
}

// dayKey resolves an optional date argument to a day key.
func (c *Context) dayKey(s string) (string, error) {
	d, err := ParseDate(s, c.Date)
	if err != nil {
		return "", err
	}
	return keys.DayKey(d), nil
}

// confirm asks through c.Confirm and returns ErrConfirmationDeclined when
// the answer is no.
func (c *Context) confirm(title, description string) error {
	ok, err := c.Confirm(title, description)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.ErrConfirmationDeclined
	}
	return nil
}

func huhConfirm(title, description string) (bool, error) {
	var ok bool
	err := huh.NewConfirm().
		Title(title).
		Description(description).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		Run()
	if err != nil {
		return false, err
	}
	return ok, nil
}
