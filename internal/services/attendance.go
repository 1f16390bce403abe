package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"backhouse-backend/internal/attendance"
	"backhouse-backend/internal/models"
	"backhouse-backend/internal/repository"
)

// AttendanceService applies the session validation rules around a whole-
// document read-modify-write. Validation is local: two editors working from
// the same snapshot race at the document level and the last write wins,
// unless the caller supplies the version it read for a compare-and-swap.
type AttendanceService struct {
	repo *repository.AttendanceRepo
	now  func() time.Time
}

func NewAttendanceService(repo *repository.AttendanceRepo) *AttendanceService {
	return &AttendanceService{repo: repo, now: time.Now}
}

// SessionChange is a candidate check-in/check-out pair targeting one
// employee-day. Version carries the document version the editor read; zero
// or negative disables the compare-and-swap and falls back to last write
// wins.
type SessionChange struct {
	UserID   uuid.UUID
	Day      time.Time
	CheckIn  time.Time
	CheckOut *time.Time
	Editor   string
	Version  int
}

// GetMonth returns an employee's attendance document and its version.
func (s *AttendanceService) GetMonth(ctx context.Context, userID uuid.UUID, month string) (*attendance.Document, int, error) {
	if _, err := time.Parse("2006-01", month); err != nil {
		return nil, 0, &ValidationError{Fields: map[string]string{"month": "Month must be formatted YYYY-MM"}}
	}
	return s.repo.GetMonth(ctx, userID, month)
}

// AddSession validates and appends a new session to the employee's day.
func (s *AttendanceService) AddSession(ctx context.Context, role models.Role, change SessionChange) (*attendance.Session, error) {
	if err := s.authorizeEdit(role, change.Day); err != nil {
		return nil, err
	}

	now := s.now()
	if err := attendance.ValidateCandidateTimes(change.CheckIn, change.CheckOut, now); err != nil {
		return nil, mapAttendanceError(err)
	}

	doc, version, err := s.repo.GetMonth(ctx, change.UserID, attendance.MonthKey(change.Day))
	if err != nil {
		return nil, err
	}

	day := doc.Day(change.Day.Day())
	candidate := attendance.NewSession(change.CheckIn, change.CheckOut, change.Editor, now)
	if err := attendance.CheckOverlap(candidate, day.Sessions, uuid.Nil); err != nil {
		return nil, mapAttendanceError(err)
	}

	day.Sessions = append(day.Sessions, candidate)
	day.Recalculate()
	doc.Touch(now)

	if err := s.save(ctx, change, doc, version); err != nil {
		return nil, err
	}
	return &candidate, nil
}

// EditSession validates and replaces the endpoints of an existing session,
// addressed by its stable ID. The session under edit is excluded from its
// own overlap check.
func (s *AttendanceService) EditSession(ctx context.Context, role models.Role, sessionID uuid.UUID, change SessionChange) (*attendance.Session, error) {
	if err := s.authorizeEdit(role, change.Day); err != nil {
		return nil, err
	}

	now := s.now()
	if err := attendance.ValidateCandidateTimes(change.CheckIn, change.CheckOut, now); err != nil {
		return nil, mapAttendanceError(err)
	}

	doc, version, err := s.repo.GetMonth(ctx, change.UserID, attendance.MonthKey(change.Day))
	if err != nil {
		return nil, err
	}

	day := doc.Day(change.Day.Day())
	idx, existing, err := day.Find(sessionID)
	if err != nil {
		return nil, mapAttendanceError(err)
	}

	candidate := *existing
	candidate.CheckIn = change.CheckIn
	candidate.CheckOut = change.CheckOut
	if err := attendance.CheckOverlap(candidate, day.Sessions, sessionID); err != nil {
		return nil, mapAttendanceError(err)
	}

	day.Sessions[idx] = attendance.ApplyEdit(*existing, change.CheckIn, change.CheckOut, change.Editor, now)
	day.Recalculate()
	doc.Touch(now)

	if err := s.save(ctx, change, doc, version); err != nil {
		return nil, err
	}
	updated := day.Sessions[idx]
	return &updated, nil
}

// DeleteSession removes a session by ID.
func (s *AttendanceService) DeleteSession(ctx context.Context, role models.Role, sessionID uuid.UUID, change SessionChange) error {
	if err := s.authorizeEdit(role, change.Day); err != nil {
		return err
	}

	doc, version, err := s.repo.GetMonth(ctx, change.UserID, attendance.MonthKey(change.Day))
	if err != nil {
		return err
	}

	day := doc.Day(change.Day.Day())
	if err := day.Remove(sessionID); err != nil {
		return mapAttendanceError(err)
	}
	doc.Touch(s.now())

	return s.save(ctx, change, doc, version)
}

// authorizeEdit applies the editable-window policy for the caller's role.
func (s *AttendanceService) authorizeEdit(role models.Role, day time.Time) error {
	if !role.CanEditAttendance() {
		return &ForbiddenError{Message: "Role may not edit attendance"}
	}

	var window attendance.EditableWindow
	if role.EditsFullPayPeriod() {
		window = attendance.PayPeriodWindow(s.now())
	} else {
		window = attendance.SameDayWindow(s.now())
	}

	if !window.Contains(day) {
		return &ForbiddenError{Message: fmt.Sprintf(
			"Day %s is outside your editable window (%s to %s)",
			day.Format("2006-01-02"),
			window.From.Format("2006-01-02"),
			window.Until.AddDate(0, 0, -1).Format("2006-01-02"),
		)}
	}
	return nil
}

func (s *AttendanceService) save(ctx context.Context, change SessionChange, doc *attendance.Document, readVersion int) error {
	month := attendance.MonthKey(change.Day)
	if change.Version > 0 {
		if readVersion != change.Version {
			return &ConflictError{Message: "Attendance was changed by someone else. Reload and try again."}
		}
		err := s.repo.SaveVersioned(ctx, change.UserID, month, doc, readVersion)
		if errors.Is(err, repository.ErrVersionConflict) {
			return &ConflictError{Message: "Attendance was changed by someone else. Reload and try again."}
		}
		return err
	}
	return s.repo.Save(ctx, change.UserID, month, doc)
}

// mapAttendanceError converts the core's typed failures into service errors
// the handlers already know how to render.
func mapAttendanceError(err error) error {
	var overlap *attendance.OverlapError
	if errors.As(err, &overlap) {
		return &ConflictError{Message: fmt.Sprintf("Session overlaps an existing session (%s)", overlap.Conflict.Window())}
	}

	var badRef *attendance.InvalidSessionRefError
	if errors.As(err, &badRef) {
		return &NotFoundError{Message: err.Error()}
	}

	switch {
	case errors.Is(err, attendance.ErrFutureCheckIn):
		return &ValidationError{Fields: map[string]string{"check_in": err.Error()}}
	case errors.Is(err, attendance.ErrFutureCheckOut):
		return &ValidationError{Fields: map[string]string{"check_out": err.Error()}}
	case errors.Is(err, attendance.ErrCheckOutBeforeCheckIn):
		return &ValidationError{Fields: map[string]string{"check_out": err.Error()}}
	}
	return err
}
