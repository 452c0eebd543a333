// Package lifecycle implements the complaint lifecycle engine: it validates
// and applies status transitions, writes the status history ledger, and
// triggers the notification side effects.
//
// Every operation is atomic against the store: the complaint row update, the
// history insert, and any closing/feedback/remark insert commit together or
// not at all. Capability checks run before any write. Notifications are
// dispatched strictly after the transaction commits and are best-effort.
package lifecycle

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"helpdesk/backend/internal/catalog"
	"helpdesk/backend/internal/config"
	"helpdesk/backend/internal/models"
	"helpdesk/backend/internal/notify"
	"helpdesk/backend/internal/storage"

	log "github.com/sirupsen/logrus"
)

// Actor is the identity and capability of the caller, resolved once at the
// API boundary.
type Actor struct {
	ID   uint
	Role models.Role
}

// Service is the lifecycle engine.
type Service struct {
	Storage  storage.Storage
	Catalog  *catalog.Catalog
	Notifier *notify.Dispatcher
}

func NewService(s storage.Storage, c *catalog.Catalog, n *notify.Dispatcher) *Service {
	return &Service{Storage: s, Catalog: c, Notifier: n}
}

// CreateInput carries the fields a user submits for a new complaint.
type CreateInput struct {
	OwnerID       uint
	TypeID        uint
	Title         string
	Description   string
	Urgency       models.Urgency
	Location      string
	ContactNumber string
}

// Create registers a new complaint in the default status and writes the
// initial history row. Confirmation and staff notifications are dispatched
// after commit; their failure never fails the creation.
func (s *Service) Create(in CreateInput) (*models.Complaint, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, &ValidationError{Field: "title", Reason: "must not be blank"}
	}
	if strings.TrimSpace(in.Description) == "" {
		return nil, &ValidationError{Field: "description", Reason: "must not be blank"}
	}
	if in.Urgency == "" {
		in.Urgency = models.UrgencyMedium
	}
	if !in.Urgency.Valid() {
		return nil, &ValidationError{Field: "urgency", Reason: "must be low, medium, high or critical"}
	}

	owner, err := s.Storage.GetUserByID(in.OwnerID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, &NotFoundError{Entity: "user", ID: in.OwnerID}
	}

	ctype, err := s.Storage.GetComplaintTypeByID(in.TypeID)
	if err != nil {
		return nil, err
	}
	if ctype == nil || !ctype.IsActive {
		return nil, &NotFoundError{Entity: "complaint type", ID: in.TypeID}
	}

	defaultStatus, err := s.Catalog.Default()
	if err != nil {
		return nil, err
	}
	if defaultStatus == nil {
		return nil, &ConfigurationError{Reason: "no active open status defined"}
	}

	complaint := &models.Complaint{
		UserID:        in.OwnerID,
		TypeID:        in.TypeID,
		StatusID:      defaultStatus.ID,
		Title:         strings.TrimSpace(in.Title),
		Description:   in.Description,
		Urgency:       in.Urgency,
		Location:      in.Location,
		ContactNumber: in.ContactNumber,
	}

	err = s.Storage.Transaction(func(tx storage.Storage) error {
		if err := tx.CreateComplaint(complaint); err != nil {
			return err
		}
		return tx.AppendStatusHistory(&models.StatusHistory{
			ComplaintID: complaint.ID,
			NewStatusID: defaultStatus.ID,
			ChangedByID: in.OwnerID,
			Notes:       "Complaint created",
		})
	})
	if err != nil {
		return nil, err
	}

	created, err := s.Storage.GetComplaintByID(complaint.ID)
	if err != nil || created == nil {
		// The row committed; reload failure only degrades side effects.
		log.WithError(err).WithField("complaint_id", complaint.ID).Warn("reload after create failed")
		return complaint, nil
	}

	s.publishEvent(models.ComplaintEvent{
		Type:        models.EventComplaintCreated,
		ComplaintID: created.ID,
		Title:       created.Title,
		NewStatus:   defaultStatus.Name,
		ActorID:     in.OwnerID,
		ActorName:   owner.DisplayName(),
		OccurredAt:  time.Now(),
	})
	s.Notifier.ComplaintCreated(created)

	return created, nil
}

// AssignEngineer sets or clears the assigned engineer. A nil engineerID
// unassigns without a status change. When an active "Assigned" status exists
// and the complaint is open, a fresh assignment transitions to it.
func (s *Service) AssignEngineer(complaintID uint, engineerID *uint, actor Actor) error {
	if !actor.Role.IsStaff() {
		return &PolicyViolation{Reason: "only engineers and admins may assign complaints"}
	}

	complaint, err := s.Storage.GetComplaintByID(complaintID)
	if err != nil {
		return err
	}
	if complaint == nil {
		return &NotFoundError{Entity: "complaint", ID: complaintID}
	}

	actorUser, err := s.Storage.GetUserByID(actor.ID)
	if err != nil {
		return err
	}
	if actorUser == nil {
		return &NotFoundError{Entity: "user", ID: actor.ID}
	}

	if engineerID == nil {
		return s.unassign(complaint, actorUser)
	}

	engineer, err := s.Storage.GetUserByID(*engineerID)
	if err != nil {
		return err
	}
	if engineer == nil {
		return &NotFoundError{Entity: "engineer", ID: *engineerID}
	}
	if engineer.Role != models.RoleEngineer || !engineer.IsActive {
		return &PolicyViolation{Reason: fmt.Sprintf("user %q does not hold the engineer capability", engineer.Username)}
	}

	sameEngineer := complaint.AssignedToID != nil && *complaint.AssignedToID == engineer.ID

	var assignedStatus *models.Status
	if !sameEngineer && !complaint.IsClosed() {
		assignedStatus, err = s.Catalog.FindByName(config.StatusAssigned)
		if err != nil {
			return err
		}
	}

	previousStatus := complaint.Status
	version := complaint.Version
	complaint.AssignedToID = &engineer.ID
	statusChanged := assignedStatus != nil && assignedStatus.ID != complaint.StatusID
	if statusChanged {
		complaint.StatusID = assignedStatus.ID
	}

	note := fmt.Sprintf("Complaint assigned to %s by %s", engineer.DisplayName(), actorUser.DisplayName())

	err = s.Storage.Transaction(func(tx storage.Storage) error {
		if err := tx.UpdateComplaint(complaint, version); err != nil {
			return err
		}
		if statusChanged {
			if err := tx.AppendStatusHistory(&models.StatusHistory{
				ComplaintID:      complaint.ID,
				PreviousStatusID: &previousStatus.ID,
				NewStatusID:      assignedStatus.ID,
				ChangedByID:      actor.ID,
				Notes:            note,
			}); err != nil {
				return err
			}
		}
		return tx.CreateRemark(&models.Remark{
			ComplaintID:    complaint.ID,
			UserID:         &actor.ID,
			Text:           note,
			IsInternalNote: true,
		})
	})
	if err != nil {
		return s.mapConflict(err)
	}

	newStatusName := previousStatus.Name
	if statusChanged {
		newStatusName = assignedStatus.Name
	}
	s.publishEvent(models.ComplaintEvent{
		Type:           models.EventComplaintAssigned,
		ComplaintID:    complaint.ID,
		Title:          complaint.Title,
		PreviousStatus: previousStatus.Name,
		NewStatus:      newStatusName,
		ActorID:        actor.ID,
		ActorName:      actorUser.DisplayName(),
		Notes:          note,
		OccurredAt:     time.Now(),
	})
	s.Notifier.ComplaintAssigned(complaint, engineer)
	if statusChanged {
		s.Notifier.StatusChanged(complaint, previousStatus.Name, assignedStatus.Name)
	}

	return nil
}

func (s *Service) unassign(complaint *models.Complaint, actorUser *models.User) error {
	version := complaint.Version
	complaint.AssignedToID = nil

	note := fmt.Sprintf("Complaint unassigned by %s", actorUser.DisplayName())
	err := s.Storage.Transaction(func(tx storage.Storage) error {
		if err := tx.UpdateComplaint(complaint, version); err != nil {
			return err
		}
		return tx.CreateRemark(&models.Remark{
			ComplaintID:    complaint.ID,
			UserID:         &actorUser.ID,
			Text:           note,
			IsInternalNote: true,
		})
	})
	return s.mapConflict(err)
}

// AdvanceStatus moves an open complaint to one of the pre-approved
// non-terminal statuses. Closed statuses are rejected here; resolving goes
// through Resolve.
func (s *Service) AdvanceStatus(complaintID uint, newStatusName string, actor Actor, notes string) error {
	if !actor.Role.IsStaff() {
		return &PolicyViolation{Reason: "only engineers and admins may change complaint status"}
	}
	if !statusAllowed(newStatusName) {
		return &PolicyViolation{
			Reason: fmt.Sprintf("status %q is not in the allowed set; closed statuses require resolve", newStatusName),
		}
	}

	complaint, err := s.Storage.GetComplaintByID(complaintID)
	if err != nil {
		return err
	}
	if complaint == nil {
		return &NotFoundError{Entity: "complaint", ID: complaintID}
	}
	if complaint.IsClosed() {
		return &StateError{Reason: "complaint is closed; it reopens only through a dissatisfied response"}
	}

	target, err := s.Catalog.FindByName(newStatusName)
	if err != nil {
		return err
	}
	if target == nil {
		return &NotFoundError{Entity: "status " + newStatusName}
	}

	previousStatus := complaint.Status
	if target.ID == complaint.StatusID {
		// Status is already there: keep the remark, skip the transition.
		if strings.TrimSpace(notes) != "" {
			return s.Storage.CreateRemark(&models.Remark{
				ComplaintID: complaint.ID,
				UserID:      &actor.ID,
				Text:        notes,
			})
		}
		return nil
	}

	version := complaint.Version
	complaint.StatusID = target.ID

	err = s.Storage.Transaction(func(tx storage.Storage) error {
		if err := tx.UpdateComplaint(complaint, version); err != nil {
			return err
		}
		if err := tx.AppendStatusHistory(&models.StatusHistory{
			ComplaintID:      complaint.ID,
			PreviousStatusID: &previousStatus.ID,
			NewStatusID:      target.ID,
			ChangedByID:      actor.ID,
			Notes:            notes,
		}); err != nil {
			return err
		}
		if strings.TrimSpace(notes) != "" {
			return tx.CreateRemark(&models.Remark{
				ComplaintID: complaint.ID,
				UserID:      &actor.ID,
				Text:        notes,
			})
		}
		return nil
	})
	if err != nil {
		return s.mapConflict(err)
	}

	s.publishEvent(models.ComplaintEvent{
		Type:           models.EventStatusChanged,
		ComplaintID:    complaint.ID,
		Title:          complaint.Title,
		PreviousStatus: previousStatus.Name,
		NewStatus:      target.Name,
		ActorID:        actor.ID,
		Notes:          notes,
		OccurredAt:     time.Now(),
	})
	s.Notifier.StatusChanged(complaint, previousStatus.Name, target.Name)

	return nil
}

// Resolve closes a complaint with a mandatory staff remark: the status moves
// to the resolved target, resolved_at is stamped, and a closing record is
// created for the user to respond to.
func (s *Service) Resolve(complaintID uint, actor Actor, closingRemark string) error {
	if !actor.Role.IsStaff() {
		return &PolicyViolation{Reason: "only engineers and admins may resolve complaints"}
	}
	if strings.TrimSpace(closingRemark) == "" {
		return &ValidationError{Field: "closing_remark", Reason: "must not be blank"}
	}

	complaint, err := s.Storage.GetComplaintByID(complaintID)
	if err != nil {
		return err
	}
	if complaint == nil {
		return &NotFoundError{Entity: "complaint", ID: complaintID}
	}
	if complaint.IsClosed() {
		return &StateError{Reason: "complaint is already resolved"}
	}

	target, err := s.Catalog.ResolvedTarget()
	if err != nil {
		return err
	}
	if target == nil {
		log.Error("no closed status defined in the system")
		return &ConfigurationError{Reason: "no closed status defined"}
	}

	previousStatus := complaint.Status
	version := complaint.Version
	now := time.Now()
	complaint.StatusID = target.ID
	complaint.ResolvedAt = &now

	err = s.Storage.Transaction(func(tx storage.Storage) error {
		if err := tx.UpdateComplaint(complaint, version); err != nil {
			return err
		}
		if err := tx.CreateClosing(&models.ComplaintClosing{
			ComplaintID:        complaint.ID,
			ClosedByStaffID:    actor.ID,
			StaffClosingRemark: closingRemark,
		}); err != nil {
			return err
		}
		return tx.AppendStatusHistory(&models.StatusHistory{
			ComplaintID:      complaint.ID,
			PreviousStatusID: &previousStatus.ID,
			NewStatusID:      target.ID,
			ChangedByID:      actor.ID,
			Notes:            "Resolved: " + closingRemark,
		})
	})
	if err != nil {
		return s.mapConflict(err)
	}

	s.publishEvent(models.ComplaintEvent{
		Type:           models.EventStatusChanged,
		ComplaintID:    complaint.ID,
		Title:          complaint.Title,
		PreviousStatus: previousStatus.Name,
		NewStatus:      target.Name,
		ActorID:        actor.ID,
		Notes:          closingRemark,
		OccurredAt:     now,
	})
	s.Notifier.StatusChanged(complaint, previousStatus.Name, target.Name)

	return nil
}

// RespondSatisfied records the owner's acceptance of a resolution: the
// singleton feedback row is created or replaced, the closing record is
// marked satisfied, and the complaint moves to the terminal closed status.
func (s *Service) RespondSatisfied(complaintID, userID uint, rating int, feedbackText string) error {
	if rating < config.MinRating || rating > config.MaxRating {
		return &ValidationError{
			Field:  "rating",
			Reason: fmt.Sprintf("must be between %d and %d", config.MinRating, config.MaxRating),
		}
	}

	complaint, closing, err := s.loadForResponse(complaintID, userID)
	if err != nil {
		return err
	}

	target, err := s.Catalog.ClosedTarget()
	if err != nil {
		return err
	}
	if target == nil {
		return &ConfigurationError{Reason: "no closed status defined"}
	}

	previousStatus := complaint.Status
	version := complaint.Version
	now := time.Now()
	statusChanged := target.ID != complaint.StatusID
	if statusChanged {
		complaint.StatusID = target.ID
	}

	satisfied := true
	closing.UserSatisfied = &satisfied
	closing.UserClosedAt = &now

	err = s.Storage.Transaction(func(tx storage.Storage) error {
		if err := tx.UpsertFeedback(&models.ComplaintFeedback{
			ComplaintID: complaint.ID,
			UserID:      userID,
			Rating:      rating,
			Comment:     feedbackText,
		}); err != nil {
			return err
		}
		if err := tx.SaveClosing(closing); err != nil {
			return err
		}
		if !statusChanged {
			return nil
		}
		if err := tx.UpdateComplaint(complaint, version); err != nil {
			return err
		}
		return tx.AppendStatusHistory(&models.StatusHistory{
			ComplaintID:      complaint.ID,
			PreviousStatusID: &previousStatus.ID,
			NewStatusID:      target.ID,
			ChangedByID:      userID,
			Notes:            fmt.Sprintf("User confirmed resolution (rating %d/%d)", rating, config.MaxRating),
		})
	})
	if err != nil {
		return s.mapConflict(err)
	}

	if statusChanged {
		s.publishEvent(models.ComplaintEvent{
			Type:           models.EventComplaintClosed,
			ComplaintID:    complaint.ID,
			Title:          complaint.Title,
			PreviousStatus: previousStatus.Name,
			NewStatus:      target.Name,
			ActorID:        userID,
			OccurredAt:     now,
		})
		s.Notifier.StatusChanged(complaint, previousStatus.Name, target.Name)
	}

	return nil
}

// RespondDissatisfied reopens a resolved complaint: the user's remark is
// recorded for the engineer, the status reverts to an in-progress state, and
// resolved_at is cleared.
func (s *Service) RespondDissatisfied(complaintID, userID uint, remarkText string) error {
	if strings.TrimSpace(remarkText) == "" {
		return &ValidationError{Field: "remark", Reason: "must not be blank"}
	}

	complaint, closing, err := s.loadForResponse(complaintID, userID)
	if err != nil {
		return err
	}
	if closing.UserClosedAt != nil {
		return &StateError{Reason: "the resolution was already accepted and cannot be contested"}
	}

	target, err := s.Catalog.ReopenTarget()
	if err != nil {
		return err
	}
	if target == nil {
		return &ConfigurationError{Reason: "no active open status to reopen into"}
	}

	previousStatus := complaint.Status
	version := complaint.Version
	complaint.StatusID = target.ID
	complaint.ResolvedAt = nil

	dissatisfied := false
	closing.UserSatisfied = &dissatisfied
	closing.UserRemark = remarkText

	err = s.Storage.Transaction(func(tx storage.Storage) error {
		if err := tx.CreateComplaintRemark(&models.ComplaintRemark{
			ComplaintID: complaint.ID,
			UserID:      userID,
			Text:        remarkText,
		}); err != nil {
			return err
		}
		if err := tx.SaveClosing(closing); err != nil {
			return err
		}
		if err := tx.UpdateComplaint(complaint, version); err != nil {
			return err
		}
		return tx.AppendStatusHistory(&models.StatusHistory{
			ComplaintID:      complaint.ID,
			PreviousStatusID: &previousStatus.ID,
			NewStatusID:      target.ID,
			ChangedByID:      userID,
			Notes:            "Complaint reopened: " + remarkText,
		})
	})
	if err != nil {
		return s.mapConflict(err)
	}

	s.publishEvent(models.ComplaintEvent{
		Type:           models.EventComplaintReopened,
		ComplaintID:    complaint.ID,
		Title:          complaint.Title,
		PreviousStatus: previousStatus.Name,
		NewStatus:      target.Name,
		ActorID:        userID,
		Notes:          remarkText,
		OccurredAt:     time.Now(),
	})
	s.Notifier.StatusChanged(complaint, previousStatus.Name, target.Name)

	return nil
}

// DetailUpdate carries the owner-editable fields. Nil fields stay as they
// are.
type DetailUpdate struct {
	Title         *string
	Description   *string
	Urgency       *models.Urgency
	Location      *string
	ContactNumber *string
}

// UpdateDetails lets the submitting user amend their complaint while it is
// still open. Admins may edit any complaint; engineers and other users may
// not.
func (s *Service) UpdateDetails(complaintID uint, actor Actor, upd DetailUpdate) error {
	complaint, err := s.Storage.GetComplaintByID(complaintID)
	if err != nil {
		return err
	}
	if complaint == nil {
		return &NotFoundError{Entity: "complaint", ID: complaintID}
	}
	if actor.Role != models.RoleAdmin && complaint.UserID != actor.ID {
		return &PolicyViolation{Reason: "only the owner or an admin may edit a complaint"}
	}
	if complaint.IsClosed() && actor.Role != models.RoleAdmin {
		return &StateError{Reason: "closed complaints can no longer be edited"}
	}

	if upd.Title != nil {
		if strings.TrimSpace(*upd.Title) == "" {
			return &ValidationError{Field: "title", Reason: "must not be blank"}
		}
		complaint.Title = strings.TrimSpace(*upd.Title)
	}
	if upd.Description != nil {
		complaint.Description = *upd.Description
	}
	if upd.Urgency != nil {
		if !upd.Urgency.Valid() {
			return &ValidationError{Field: "urgency", Reason: "must be low, medium, high or critical"}
		}
		complaint.Urgency = *upd.Urgency
	}
	if upd.Location != nil {
		complaint.Location = *upd.Location
	}
	if upd.ContactNumber != nil {
		complaint.ContactNumber = *upd.ContactNumber
	}

	return s.mapConflict(s.Storage.UpdateComplaint(complaint, complaint.Version))
}

// loadForResponse fetches the complaint and its latest closing record and
// checks that the owner may respond to a staff resolution right now.
func (s *Service) loadForResponse(complaintID, userID uint) (*models.Complaint, *models.ComplaintClosing, error) {
	complaint, err := s.Storage.GetComplaintByID(complaintID)
	if err != nil {
		return nil, nil, err
	}
	if complaint == nil {
		return nil, nil, &NotFoundError{Entity: "complaint", ID: complaintID}
	}
	if complaint.UserID != userID {
		return nil, nil, &PolicyViolation{Reason: "only the submitting user may respond to a resolution"}
	}
	if !complaint.IsClosed() {
		return nil, nil, &StateError{Reason: "complaint has not been resolved by staff yet"}
	}

	closing, err := s.Storage.GetClosing(complaintID)
	if err != nil {
		return nil, nil, err
	}
	if closing == nil {
		return nil, nil, &StateError{Reason: "no closing record exists for this complaint"}
	}
	return complaint, closing, nil
}

func statusAllowed(name string) bool {
	for _, allowed := range config.EngineerAllowedStatuses {
		if strings.EqualFold(allowed, name) {
			return true
		}
	}
	return false
}

// mapConflict turns the storage optimistic-lock failure into the engine's
// error taxonomy.
func (s *Service) mapConflict(err error) error {
	if errors.Is(err, storage.ErrVersionConflict) {
		return &StateError{Reason: "complaint was modified concurrently, reload and retry"}
	}
	return err
}

func (s *Service) publishEvent(event models.ComplaintEvent) {
	if err := s.Storage.PublishEvent(event); err != nil {
		log.WithError(err).WithField("complaint_id", event.ComplaintID).Warn("event publish failed")
	}
}
