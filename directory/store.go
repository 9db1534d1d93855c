package directory

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	"github.com/quorumhq/concierge/types"
)

// Store wraps the directory database with the query surface the agents
// need. Reads dominate: every turn may resolve a profile and each tool
// call maps to at most a couple of queries.
type Store struct {
	db     *gorm.DB
	group  singleflight.Group
	logger *zap.Logger
}

// NewStore wraps an open gorm handle.
func NewStore(db *gorm.DB, logger *zap.Logger) *Store {
	return &Store{
		db:     db,
		logger: logger.With(zap.String("component", "directory")),
	}
}

// Ping verifies database connectivity; used by readiness checks.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Stats reports connection pool statistics.
func (s *Store) Stats() sql.DBStats {
	sqlDB, err := s.db.DB()
	if err != nil {
		return sql.DBStats{}
	}
	return sqlDB.Stats()
}

// SessionFilter narrows the schedule query. Empty fields are ignored;
// text fields match as case-insensitive substrings, Date matches the ISO
// day exactly.
type SessionFilter struct {
	Speaker string
	Topic   string
	Room    string
	Track   string
	Date    string
}

// BusinessFilter narrows the business directory search. Query matches
// company name, sector, or description.
type BusinessFilter struct {
	Query    string
	Sector   string
	Location string
}

// IsNotFound reports whether err is a directory miss.
func IsNotFound(err error) bool {
	var terr *types.Error
	return errors.As(err, &terr) && terr.Code == types.ErrNotFound
}

// UserByRegistrationID resolves the external registration identifier.
func (s *Store) UserByRegistrationID(ctx context.Context, registrationID string) (*User, error) {
	var user User
	err := s.db.WithContext(ctx).Where("registration_id = ?", registrationID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, types.NewError(types.ErrNotFound, "user not found").WithHTTPStatus(404)
	}
	if err != nil {
		return nil, types.NewError(types.ErrStoreUnavailable, "user lookup failed").WithCause(err)
	}
	return &user, nil
}

// UserByQRCode resolves a badge scan. Concurrent scans of the same badge
// collapse into one query via singleflight.
func (s *Store) UserByQRCode(ctx context.Context, qrCode string) (*User, error) {
	v, err, _ := s.group.Do("qr:"+qrCode, func() (any, error) {
		var user User
		err := s.db.WithContext(ctx).Where("qr_code = ?", qrCode).First(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NewError(types.ErrNotFound, "user not found").WithHTTPStatus(404)
		}
		if err != nil {
			return nil, types.NewError(types.ErrStoreUnavailable, "user lookup failed").WithCause(err)
		}
		return &user, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*User), nil
}

// UsersByName matches first name, last name, or the joined full name as a
// case-insensitive substring.
func (s *Store) UsersByName(ctx context.Context, name string) ([]User, error) {
	pattern := "%" + strings.ToLower(strings.TrimSpace(name)) + "%"

	var users []User
	err := s.db.WithContext(ctx).
		Where("LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(first_name || ' ' || last_name) LIKE ?",
			pattern, pattern, pattern).
		Order("last_name, first_name").
		Find(&users).Error
	if err != nil {
		return nil, types.NewError(types.ErrStoreUnavailable, "user search failed").WithCause(err)
	}
	return users, nil
}

// AllAttendees lists registered attendees, capped at limit.
func (s *Store) AllAttendees(ctx context.Context, limit int) ([]User, error) {
	q := s.db.WithContext(ctx).Where("attendee = ?", true).Order("last_name, first_name")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var users []User
	if err := q.Find(&users).Error; err != nil {
		return nil, types.NewError(types.ErrStoreUnavailable, "attendee listing failed").WithCause(err)
	}
	return users, nil
}

// Sessions returns scheduled sessions matching the filter, ordered by day
// then start time.
func (s *Store) Sessions(ctx context.Context, filter SessionFilter) ([]Session, error) {
	q := s.db.WithContext(ctx).Model(&Session{})

	if filter.Speaker != "" {
		q = q.Where("LOWER(speaker_name) LIKE ?", "%"+strings.ToLower(filter.Speaker)+"%")
	}
	if filter.Topic != "" {
		pattern := "%" + strings.ToLower(filter.Topic) + "%"
		q = q.Where("LOWER(topic) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}
	if filter.Room != "" {
		q = q.Where("LOWER(room_name) LIKE ?", "%"+strings.ToLower(filter.Room)+"%")
	}
	if filter.Track != "" {
		q = q.Where("LOWER(track_name) LIKE ?", "%"+strings.ToLower(filter.Track)+"%")
	}
	if filter.Date != "" {
		q = q.Where("conference_date = ?", filter.Date)
	}

	var sessions []Session
	if err := q.Order("conference_date, start_time").Find(&sessions).Error; err != nil {
		return nil, types.NewError(types.ErrStoreUnavailable, "schedule query failed").WithCause(err)
	}
	return sessions, nil
}

// SessionDates returns the distinct conference days with sessions, sorted.
func (s *Store) SessionDates(ctx context.Context) ([]string, error) {
	var dates []string
	err := s.db.WithContext(ctx).Model(&Session{}).
		Distinct("conference_date").
		Order("conference_date").
		Pluck("conference_date", &dates).Error
	if err != nil {
		return nil, types.NewError(types.ErrStoreUnavailable, "schedule dates query failed").WithCause(err)
	}
	return dates, nil
}

// SearchBusinesses queries the business directory.
func (s *Store) SearchBusinesses(ctx context.Context, filter BusinessFilter) ([]Business, error) {
	q := s.db.WithContext(ctx).Model(&Business{})

	if filter.Query != "" {
		pattern := "%" + strings.ToLower(filter.Query) + "%"
		q = q.Where("LOWER(company_name) LIKE ? OR LOWER(industry_sector) LIKE ? OR LOWER(brief_description) LIKE ?",
			pattern, pattern, pattern)
	}
	if filter.Sector != "" {
		pattern := "%" + strings.ToLower(filter.Sector) + "%"
		q = q.Where("LOWER(industry_sector) LIKE ? OR LOWER(sub_sector) LIKE ?", pattern, pattern)
	}
	if filter.Location != "" {
		q = q.Where("LOWER(location) LIKE ?", "%"+strings.ToLower(filter.Location)+"%")
	}

	var businesses []Business
	if err := q.Order("company_name").Find(&businesses).Error; err != nil {
		return nil, types.NewError(types.ErrStoreUnavailable, "business search failed").WithCause(err)
	}
	return businesses, nil
}

// UserBusinesses lists the businesses a user has registered.
func (s *Store) UserBusinesses(ctx context.Context, userID string) ([]Business, error) {
	var businesses []Business
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at").
		Find(&businesses).Error
	if err != nil {
		return nil, types.NewError(types.ErrStoreUnavailable, "user business query failed").WithCause(err)
	}
	return businesses, nil
}

// AddBusiness inserts a listing for the user. The caller fills the
// descriptive fields; ID is assigned here when empty.
func (s *Store) AddBusiness(ctx context.Context, userID string, business Business) error {
	business.UserID = userID
	if business.ID == "" {
		business.ID = newRowID()
	}

	if err := s.db.WithContext(ctx).Create(&business).Error; err != nil {
		return types.NewError(types.ErrStoreUnavailable, "business insert failed").WithCause(err)
	}

	s.logger.Info("business registered",
		zap.String("user_id", userID),
		zap.String("company", business.CompanyName),
	)
	return nil
}

// OrganizationByID fetches one organization.
func (s *Store) OrganizationByID(ctx context.Context, id string) (*Organization, error) {
	var org Organization
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&org).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, types.NewError(types.ErrNotFound, "organization not found").WithHTTPStatus(404)
	}
	if err != nil {
		return nil, types.NewError(types.ErrStoreUnavailable, "organization lookup failed").WithCause(err)
	}
	return &org, nil
}
