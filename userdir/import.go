package userdir

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/theeace/dashboard-go/models"
	"github.com/theeace/dashboard-go/store"
)

// BulkImport parses CSV rows with header username,userId,passkey and
// inserts each valid row. Uniqueness is checked against the directory
// as of the start of the batch plus rows already accepted within it.
// Results are reported per row; accepted rows stay persisted even when
// later rows fail.
func (d *Directory) BulkImport(r io.Reader) ([]models.ImportResult, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	cols := map[string]int{}
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{"username", "userId", "passkey"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("CSV header missing %q column", required)
		}
	}

	existing, err := d.List()
	if err != nil {
		return nil, err
	}
	takenNames := map[string]bool{}
	takenIDs := map[string]bool{}
	for _, u := range existing {
		takenNames[u.Username] = true
		takenIDs[u.UserID] = true
	}

	field := func(row []string, name string) string {
		i := cols[name]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	results := []models.ImportResult{}
	accepted := []models.User{}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			results = append(results, models.ImportResult{
				Success: false,
				Error:   "Invalid data format",
			})
			continue
		}

		username := field(row, "username")
		userID := field(row, "userId")
		passkey := field(row, "passkey")

		if username == "" || userID == "" || passkey == "" {
			results = append(results, models.ImportResult{
				Success:  false,
				Username: username,
				Error:    "Missing required fields",
			})
			continue
		}

		if takenNames[username] || takenIDs[userID] {
			results = append(results, models.ImportResult{
				Success:  false,
				Username: username,
				Error:    "Username or User ID already exists",
			})
			continue
		}

		takenNames[username] = true
		takenIDs[userID] = true
		accepted = append(accepted, models.User{
			Username:  username,
			UserID:    userID,
			Passkey:   passkey,
			CreatedAt: time.Now().UTC().Format(time.RFC3339),
		})
		results = append(results, models.ImportResult{
			Success:  true,
			Username: username,
		})
	}

	// Persist the accepted batch. A row that fails to insert here flips
	// its result; earlier inserts are not rolled back.
	for _, u := range accepted {
		_, err := d.conn.Exec(
			`INSERT INTO users (user_id, username, passkey, created_at, last_login) VALUES (?, ?, ?, ?, NULL)`,
			u.UserID, u.Username, u.Passkey, u.CreatedAt)
		if err != nil {
			for i := range results {
				if results[i].Username == u.Username && results[i].Success {
					results[i].Success = false
					results[i].Error = "Failed to save user"
					break
				}
			}
			log.Printf("Bulk import: failed to insert %s: %v", u.Username, err)
		}
	}

	return results, nil
}

// MigrateLegacyUsers imports accounts from the legacy users.json file
// into the directory. The file is never written back: it is a
// migration source only, and accounts already present are skipped, so
// the migration is safe to run on every startup.
func (d *Directory) MigrateLegacyUsers(s *store.Store) (int, error) {
	var legacy []models.User
	found, err := s.GetList("users", &legacy)
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, nil
	}

	migrated := 0
	for _, u := range legacy {
		if u.Username == "" || u.UserID == "" {
			continue
		}
		taken, err := d.exists(u.Username, u.UserID)
		if err != nil {
			return migrated, err
		}
		if taken {
			continue
		}
		createdAt := u.CreatedAt
		if createdAt == "" {
			createdAt = time.Now().UTC().Format(time.RFC3339)
		}
		var lastLogin any
		if u.LastLogin != nil {
			lastLogin = *u.LastLogin
		}
		_, err = d.conn.Exec(
			`INSERT INTO users (user_id, username, passkey, created_at, last_login) VALUES (?, ?, ?, ?, ?)`,
			u.UserID, u.Username, u.Passkey, createdAt, lastLogin)
		if err != nil {
			return migrated, fmt.Errorf("failed to migrate user %s: %w", u.Username, err)
		}
		migrated++
	}
	return migrated, nil
}
