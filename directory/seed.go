package directory

import "context"

// Seed helpers insert fixture rows. Tests and demo deployments use them;
// production data arrives through the conference registration system.

// SeedUsers inserts users, assigning ids when empty.
func (s *Store) SeedUsers(ctx context.Context, users ...User) error {
	for _, u := range users {
		if u.ID == "" {
			u.ID = newRowID()
		}
		if err := s.db.WithContext(ctx).Create(&u).Error; err != nil {
			return err
		}
	}
	return nil
}

// SeedSessions inserts schedule entries, assigning ids when empty.
func (s *Store) SeedSessions(ctx context.Context, sessions ...Session) error {
	for _, sess := range sessions {
		if sess.ID == "" {
			sess.ID = newRowID()
		}
		if err := s.db.WithContext(ctx).Create(&sess).Error; err != nil {
			return err
		}
	}
	return nil
}

// SeedOrganizations inserts organizations, assigning ids when empty.
func (s *Store) SeedOrganizations(ctx context.Context, orgs ...Organization) error {
	for _, org := range orgs {
		if org.ID == "" {
			org.ID = newRowID()
		}
		if err := s.db.WithContext(ctx).Create(&org).Error; err != nil {
			return err
		}
	}
	return nil
}
