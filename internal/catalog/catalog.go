// Package catalog exposes the status reference data as an injected
// capability for the lifecycle engine: find a status by name, pick the
// default status for new complaints, and resolve the canonical targets for
// resolve/close/reopen transitions.
//
// Matching rule: exact name match first (case-insensitive), flag-based
// fallback second. Reads go straight to the store; the catalog holds no
// cache.
package catalog

import (
	"sort"
	"strings"

	"helpdesk/backend/internal/config"
	"helpdesk/backend/internal/models"
	"helpdesk/backend/internal/storage"
)

type Catalog struct {
	Storage storage.Storage
}

func New(s storage.Storage) *Catalog {
	return &Catalog{Storage: s}
}

// FindByName returns the active status with the given name
// (case-insensitive), or nil when none exists.
func (c *Catalog) FindByName(name string) (*models.Status, error) {
	statuses, err := c.Storage.ListStatuses()
	if err != nil {
		return nil, err
	}
	for i := range statuses {
		if statuses[i].IsActive && strings.EqualFold(statuses[i].Name, name) {
			return &statuses[i], nil
		}
	}
	return nil, nil
}

// Default returns the active status with the lowest order, the state every
// new complaint starts in.
func (c *Catalog) Default() (*models.Status, error) {
	statuses, err := c.activeByOrder()
	if err != nil {
		return nil, err
	}
	for i := range statuses {
		if !statuses[i].IsClosed {
			return &statuses[i], nil
		}
	}
	return nil, nil
}

// ResolvedTarget picks the closed status a Resolve operation moves to:
// the closed status named "Resolved" when present, otherwise the first
// closed status by order. Returns nil when no closed status exists.
func (c *Catalog) ResolvedTarget() (*models.Status, error) {
	return c.closedPreferring(config.StatusResolved)
}

// ClosedTarget picks the terminal status a satisfied user response moves to,
// preferring the one named "Closed".
func (c *Catalog) ClosedTarget() (*models.Status, error) {
	return c.closedPreferring(config.StatusClosed)
}

// ReopenTarget picks the status a dissatisfied response reverts to. It
// prefers "In Progress"; failing that, the first active non-closed status
// that is not "Open" (so a reopened complaint does not rejoin the back of
// the queue); as a last resort any active non-closed status.
func (c *Catalog) ReopenTarget() (*models.Status, error) {
	statuses, err := c.activeByOrder()
	if err != nil {
		return nil, err
	}
	var fallback, any *models.Status
	for i := range statuses {
		st := &statuses[i]
		if st.IsClosed {
			continue
		}
		if strings.EqualFold(st.Name, config.StatusInProgress) {
			return st, nil
		}
		if fallback == nil && !strings.EqualFold(st.Name, config.StatusOpen) {
			fallback = st
		}
		if any == nil {
			any = st
		}
	}
	if fallback != nil {
		return fallback, nil
	}
	return any, nil
}

// IsTerminal reports whether a status ends the resolution workflow.
func (c *Catalog) IsTerminal(status *models.Status) bool {
	return status != nil && status.IsClosed
}

func (c *Catalog) closedPreferring(name string) (*models.Status, error) {
	statuses, err := c.activeByOrder()
	if err != nil {
		return nil, err
	}
	var first *models.Status
	for i := range statuses {
		st := &statuses[i]
		if !st.IsClosed {
			continue
		}
		if strings.EqualFold(st.Name, name) {
			return st, nil
		}
		if first == nil {
			first = st
		}
	}
	return first, nil
}

func (c *Catalog) activeByOrder() ([]models.Status, error) {
	statuses, err := c.Storage.ListStatuses()
	if err != nil {
		return nil, err
	}
	active := statuses[:0:0]
	for _, st := range statuses {
		if st.IsActive {
			active = append(active, st)
		}
	}
	sort.SliceStable(active, func(i, j int) bool { return active[i].Order < active[j].Order })
	return active, nil
}
