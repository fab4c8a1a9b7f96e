package integration

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
)

// TestDatabase_SessionLifecycle exercises the conditional status updates the
// session engine relies on against a real Postgres.
func TestDatabase_SessionLifecycle(t *testing.T) {
	env := SetupTestEnvironment(t)
	if env == nil || env.DB == nil {
		t.Skip("Database not available")
	}

	SetupSchema(t, env.DB)
	CleanDatabase(t, env.DB)

	ctx := context.Background()
	sessionID := uuid.New().String()
	userID := uuid.New().String()
	qrCode := userID + "-abcdefghijklmnopqrstuvwxyz012345"

	t.Run("CreateSession", func(t *testing.T) {
		_, err := env.DB.ExecContext(ctx, `
			INSERT INTO parking_qr_codes (id, user_id, business_name, qr_code, status, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, sessionID, userID, "Garage Central", qrCode, "active", time.Now(), time.Now())

		if err != nil {
			t.Fatalf("Failed to create session: %v", err)
		}
	})

	t.Run("ValidateWrongVenueMatchesNothing", func(t *testing.T) {
		res, err := env.DB.ExecContext(ctx, `
			UPDATE parking_qr_codes SET status = 'validated', updated_at = $1
			WHERE qr_code = $2 AND business_name = $3 AND status = 'active'
		`, time.Now(), qrCode, "Other Garage")
		if err != nil {
			t.Fatalf("Failed to run conditional update: %v", err)
		}

		rows, _ := res.RowsAffected()
		if rows != 0 {
			t.Errorf("Expected 0 rows for the wrong venue, got %d", rows)
		}
	})

	t.Run("ValidateSession", func(t *testing.T) {
		res, err := env.DB.ExecContext(ctx, `
			UPDATE parking_qr_codes SET status = 'validated', updated_at = $1
			WHERE qr_code = $2 AND business_name = $3 AND status = 'active'
		`, time.Now(), qrCode, "Garage Central")
		if err != nil {
			t.Fatalf("Failed to validate session: %v", err)
		}

		rows, _ := res.RowsAffected()
		if rows != 1 {
			t.Fatalf("Expected 1 row validated, got %d", rows)
		}

		var status string
		env.DB.QueryRowContext(ctx, `SELECT status FROM parking_qr_codes WHERE id = $1`, sessionID).Scan(&status)
		if status != "validated" {
			t.Errorf("Expected status 'validated', got '%s'", status)
		}
	})

	t.Run("SecondValidationMatchesNothing", func(t *testing.T) {
		res, err := env.DB.ExecContext(ctx, `
			UPDATE parking_qr_codes SET status = 'validated', updated_at = $1
			WHERE qr_code = $2 AND business_name = $3 AND status = 'active'
		`, time.Now(), qrCode, "Garage Central")
		if err != nil {
			t.Fatalf("Failed to run conditional update: %v", err)
		}

		rows, _ := res.RowsAffected()
		if rows != 0 {
			t.Errorf("Expected 0 rows on replay, got %d", rows)
		}
	})

	t.Run("CompleteSession", func(t *testing.T) {
		res, err := env.DB.ExecContext(ctx, `
			UPDATE parking_qr_codes SET status = 'complete', updated_at = $1
			WHERE id = $2 AND status = 'validated'
		`, time.Now(), sessionID)
		if err != nil {
			t.Fatalf("Failed to complete session: %v", err)
		}

		rows, _ := res.RowsAffected()
		if rows != 1 {
			t.Fatalf("Expected 1 row completed, got %d", rows)
		}
	})

	t.Run("DuplicateTokenRejected", func(t *testing.T) {
		_, err := env.DB.ExecContext(ctx, `
			INSERT INTO parking_qr_codes (id, user_id, business_name, qr_code, status, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, uuid.New().String(), userID, "Garage Central", qrCode, "active", time.Now(), time.Now())

		if err == nil {
			t.Error("Expected unique constraint violation on duplicate token")
		}
	})
}

// TestDatabase_ConcurrentValidation checks that two venues racing to validate
// the same active session produce exactly one winner.
func TestDatabase_ConcurrentValidation(t *testing.T) {
	env := SetupTestEnvironment(t)
	if env == nil || env.DB == nil {
		t.Skip("Database not available")
	}

	SetupSchema(t, env.DB)
	CleanDatabase(t, env.DB)

	ctx := context.Background()
	userID := uuid.New().String()
	qrCode := userID + "-concurrentvalidationtoken000001"

	_, err := env.DB.ExecContext(ctx, `
		INSERT INTO parking_qr_codes (id, user_id, business_name, qr_code, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, uuid.New().String(), userID, "Garage Central", qrCode, "active", time.Now(), time.Now())
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	const attempts = 10
	var wg sync.WaitGroup
	wins := make(chan int64, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := env.DB.ExecContext(ctx, `
				UPDATE parking_qr_codes SET status = 'validated', updated_at = $1
				WHERE qr_code = $2 AND business_name = $3 AND status = 'active'
			`, time.Now(), qrCode, "Garage Central")
			if err != nil {
				return
			}
			rows, _ := res.RowsAffected()
			wins <- rows
		}()
	}

	wg.Wait()
	close(wins)

	var total int64
	for rows := range wins {
		total += rows
	}
	if total != 1 {
		t.Fatalf("Expected exactly 1 winning validation, got %d", total)
	}
}
