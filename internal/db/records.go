package db

import (
	"context"
	"database/sql"
	"fmt"

	"adtables/internal/model"
)

// Accounts returns every account in data-set order.
func (s *Store) Accounts(ctx context.Context) ([]model.Account, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, email, creation_date FROM accounts ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var results []model.Account
	for rows.Next() {
		var a model.Account
		if err := rows.Scan(&a.ID, &a.Email, &a.CreationDate); err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		results = append(results, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return results, nil
}

// Profiles returns every profile in data-set order.
func (s *Store) Profiles(ctx context.Context) ([]model.Profile, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, account_id, country, marketplace FROM profiles ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	var results []model.Profile
	for rows.Next() {
		var p model.Profile
		if err := rows.Scan(&p.ID, &p.AccountID, &p.Country, &p.Marketplace); err != nil {
			return nil, fmt.Errorf("failed to scan profile row: %w", err)
		}
		results = append(results, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating profile rows: %w", err)
	}
	return results, nil
}

// Campaigns returns every campaign in data-set order.
func (s *Store) Campaigns(ctx context.Context) ([]model.Campaign, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, profile_id, clicks, cost, date FROM campaigns ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}
	defer rows.Close()

	var results []model.Campaign
	for rows.Next() {
		var c model.Campaign
		if err := rows.Scan(&c.ID, &c.ProfileID, &c.Clicks, &c.Cost, &c.Date); err != nil {
			return nil, fmt.Errorf("failed to scan campaign row: %w", err)
		}
		results = append(results, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating campaign rows: %w", err)
	}
	return results, nil
}

// CountAccounts returns the number of stored accounts.
func (s *Store) CountAccounts(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM accounts`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count accounts: %w", err)
	}
	return n, nil
}

// ReplaceDataset swaps the stored data set for ds in one transaction.
// Each record's position in ds becomes its read order.
func (s *Store) ReplaceDataset(ctx context.Context, ds model.Dataset) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"campaigns", "profiles", "accounts"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	if err := s.insertAll(ctx, tx, ds); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit data set: %w", err)
	}
	return nil
}

func (s *Store) insertAll(ctx context.Context, tx *sql.Tx, ds model.Dataset) error {
	stmt, err := tx.PrepareContext(ctx, rebind(s.driver,
		`INSERT INTO accounts (id, position, email, creation_date) VALUES (?, ?, ?, ?)`))
	if err != nil {
		return fmt.Errorf("failed to prepare account insert: %w", err)
	}
	defer stmt.Close()
	for i, a := range ds.Accounts {
		if _, err := stmt.ExecContext(ctx, a.ID, i, a.Email, a.CreationDate); err != nil {
			return fmt.Errorf("failed to insert account %s: %w", a.ID, err)
		}
	}

	pstmt, err := tx.PrepareContext(ctx, rebind(s.driver,
		`INSERT INTO profiles (id, position, account_id, country, marketplace) VALUES (?, ?, ?, ?, ?)`))
	if err != nil {
		return fmt.Errorf("failed to prepare profile insert: %w", err)
	}
	defer pstmt.Close()
	for i, p := range ds.Profiles {
		if _, err := pstmt.ExecContext(ctx, p.ID, i, p.AccountID, p.Country, p.Marketplace); err != nil {
			return fmt.Errorf("failed to insert profile %s: %w", p.ID, err)
		}
	}

	cstmt, err := tx.PrepareContext(ctx, rebind(s.driver,
		`INSERT INTO campaigns (id, position, profile_id, clicks, cost, date) VALUES (?, ?, ?, ?, ?, ?)`))
	if err != nil {
		return fmt.Errorf("failed to prepare campaign insert: %w", err)
	}
	defer cstmt.Close()
	for i, c := range ds.Campaigns {
		if _, err := cstmt.ExecContext(ctx, c.ID, i, c.ProfileID, c.Clicks, c.Cost, c.Date); err != nil {
			return fmt.Errorf("failed to insert campaign %s: %w", c.ID, err)
		}
	}
	return nil
}
