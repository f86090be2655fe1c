package reconcile

import (
	"testing"
	"time"

	"fleet-device-manager/internal/domain/soti"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(imei string, active bool, updatedAt time.Time) *soti.PresenceRecord {
	return &soti.PresenceRecord{
		IMEI:      imei,
		IsActive:  active,
		UpdatedAt: updatedAt,
	}
}

func TestReconcile_ActiveWinsOverNewerInactive(t *testing.T) {
	t1 := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(48 * time.Hour)

	// The active record is older but must still win.
	overlays := Reconcile([]string{"123456789012345"}, []*soti.PresenceRecord{
		record("123456789012345", false, t2),
		record("123456789012345", true, t1),
	})

	require.Contains(t, overlays, "123456789012345")
	assert.True(t, overlays["123456789012345"].IsInSoti)
}

func TestReconcile_MostRecentWinsAmongEqualActivity(t *testing.T) {
	t1 := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)

	name1, name2 := "old-enrollment", "new-enrollment"
	recs := []*soti.PresenceRecord{
		{IMEI: "490154203237518", IsActive: true, UpdatedAt: t1, DeviceName: &name1},
		{IMEI: "490154203237518", IsActive: true, UpdatedAt: t2, DeviceName: &name2},
	}

	overlays := Reconcile([]string{"490154203237518"}, recs)

	require.NotNil(t, overlays["490154203237518"].DeviceName)
	assert.Equal(t, "new-enrollment", *overlays["490154203237518"].DeviceName)
}

func TestReconcile_MissingIMEIYieldsEmptyOverlay(t *testing.T) {
	overlays := Reconcile([]string{"000000000000000"}, nil)

	require.Contains(t, overlays, "000000000000000")
	assert.False(t, overlays["000000000000000"].IsInSoti)
	assert.Nil(t, overlays["000000000000000"].DeviceName)
	assert.Nil(t, overlays["000000000000000"].LastSync)
}

func TestReconcile_Deterministic(t *testing.T) {
	t1 := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	recs := []*soti.PresenceRecord{
		record("123456789012345", false, t1.Add(time.Minute)),
		record("123456789012345", true, t1),
		record("123456789012345", false, t1.Add(2*time.Minute)),
	}
	imeis := []string{"123456789012345"}

	first := Reconcile(imeis, recs)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Reconcile(imeis, recs))
	}
}

func TestReconcile_InactiveRecordStillCarriesMetadata(t *testing.T) {
	sync := time.Date(2026, 2, 28, 8, 0, 0, 0, time.UTC)
	user := "jperez"
	recs := []*soti.PresenceRecord{
		{IMEI: "356938035643809", IsActive: false, UpdatedAt: sync, AssignedUser: &user, LastSyncAt: &sync},
	}

	overlays := Reconcile([]string{"356938035643809"}, recs)

	ov := overlays["356938035643809"]
	assert.False(t, ov.IsInSoti)
	require.NotNil(t, ov.AssignedUser)
	assert.Equal(t, "jperez", *ov.AssignedUser)
}
