/*
 * Copyright (c) 2026, DonorBridge LLC. (https://www.donorbridge.io).
 *
 * DonorBridge LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package integration

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/donorbridge/contact-data-service/internal/system/config"
	"github.com/donorbridge/contact-data-service/internal/system/database/provider"
	"github.com/donorbridge/contact-data-service/internal/system/log"
	"github.com/donorbridge/contact-data-service/test/setup"
)

var testDB *sql.DB

func TestMain(m *testing.M) {
	ctx := context.Background()
	os.Setenv("TEST_MODE", "true")

	conf := &config.Config{
		Log: config.LogConfig{LogLevel: "ERROR"},
		Dedup: config.DedupConfig{
			AcceptThreshold:          50,
			InlineMatchThreshold:     75,
			ScanChunkSize:            200,
			ScorerWorkers:            4,
			CandidateCacheTTLSeconds: 300,
		},
	}
	if err := config.InitializeCDSRuntime("", conf); err != nil {
		fmt.Println("Failed to initialize runtime:", err)
		os.Exit(1)
	}
	_ = log.Init("ERROR")

	pg, err := setup.SetupTestPostgres(ctx)
	if err != nil {
		fmt.Println("Failed to start test DB:", err)
		os.Exit(1)
	}

	if err := pg.ApplySchema(filepath.Join("..", "..", "dbscripts", "contactdb.sql")); err != nil {
		fmt.Println("Failed to apply schema:", err)
		_ = pg.Container.Terminate(ctx)
		os.Exit(1)
	}

	provider.SetTestDB(pg.DB)
	testDB = pg.DB

	code := m.Run()

	_ = pg.Container.Terminate(ctx)
	os.Exit(code)
}

// seedContact inserts a contact with optional email, phone and location rows
// and returns its id.
func seedContact(t *testing.T, accountID, first, last, email, phone string) string {
	t.Helper()

	contactID := uuid.New().String()
	_, err := testDB.Exec(
		`INSERT INTO contacts (contact_id, account_id, first_name, last_name)
		 VALUES ($1, $2, $3, $4);`, contactID, accountID, first, last)
	if err != nil {
		t.Fatalf("failed to seed contact: %v", err)
	}

	if email != "" {
		_, err = testDB.Exec(
			`INSERT INTO contact_emails (email_id, contact_id, address, is_primary)
			 VALUES ($1, $2, $3, true);`, uuid.New().String(), contactID, email)
		if err != nil {
			t.Fatalf("failed to seed email: %v", err)
		}
	}
	if phone != "" {
		_, err = testDB.Exec(
			`INSERT INTO contact_phones (phone_id, contact_id, number, is_primary)
			 VALUES ($1, $2, $3, true);`, uuid.New().String(), contactID, phone)
		if err != nil {
			t.Fatalf("failed to seed phone: %v", err)
		}
	}
	return contactID
}

func seedDonation(t *testing.T, contactID, amount string) string {
	t.Helper()

	donationID := uuid.New().String()
	_, err := testDB.Exec(
		`INSERT INTO donations (donation_id, contact_id, amount)
		 VALUES ($1, $2, $3);`, donationID, contactID, amount)
	if err != nil {
		t.Fatalf("failed to seed donation: %v", err)
	}
	return donationID
}

func countRows(t *testing.T, query string, args ...interface{}) int {
	t.Helper()

	var count int
	if err := testDB.QueryRow(query, args...).Scan(&count); err != nil {
		t.Fatalf("count query failed: %v", err)
	}
	return count
}
