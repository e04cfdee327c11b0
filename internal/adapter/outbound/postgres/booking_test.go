package postgres

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestSlotLockKey(t *testing.T) {
	facilityA := uuid.New()
	facilityB := uuid.New()

	// Two commits for the same facility-day must contend on one lock.
	assert.Equal(t,
		slotLockKey(facilityA, "2026-09-01"),
		slotLockKey(facilityA, "2026-09-01"))

	// Different facilities or days must not serialize each other.
	assert.NotEqual(t,
		slotLockKey(facilityA, "2026-09-01"),
		slotLockKey(facilityB, "2026-09-01"))
	assert.NotEqual(t,
		slotLockKey(facilityA, "2026-09-01"),
		slotLockKey(facilityA, "2026-09-02"))
}
