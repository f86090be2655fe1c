package reconcile

import (
	"fleet-device-manager/internal/domain/soti"
)

// Reconcile merges MDM presence records into one normalized overlay per IMEI.
// Among records for the same IMEI the authoritative one is selected by
// is_active descending, then updated_at descending. IMEIs without a record
// are present in the result with the zero overlay (IsInSoti false), so the
// caller never has to distinguish "absent" from "inactive".
//
// The function is pure: it never mutates registry or ledger state and has no
// error conditions.
func Reconcile(imeis []string, records []*soti.PresenceRecord) map[string]soti.Overlay {
	authoritative := make(map[string]*soti.PresenceRecord, len(records))
	for _, rec := range records {
		if rec == nil {
			continue
		}
		current, ok := authoritative[rec.IMEI]
		if !ok || moreAuthoritative(rec, current) {
			authoritative[rec.IMEI] = rec
		}
	}

	overlays := make(map[string]soti.Overlay, len(imeis))
	for _, imei := range imeis {
		rec, ok := authoritative[imei]
		if !ok {
			overlays[imei] = soti.Overlay{}
			continue
		}
		overlays[imei] = toOverlay(rec)
	}
	return overlays
}

// moreAuthoritative reports whether a wins over b: an active enrollment beats
// any inactive one regardless of timestamps; ties break on the most recent
// update.
func moreAuthoritative(a, b *soti.PresenceRecord) bool {
	if a.IsActive != b.IsActive {
		return a.IsActive
	}
	return a.UpdatedAt.After(b.UpdatedAt)
}

func toOverlay(rec *soti.PresenceRecord) soti.Overlay {
	return soti.Overlay{
		IsInSoti:     rec.IsActive,
		DeviceName:   rec.DeviceName,
		AssignedUser: rec.AssignedUser,
		LastSync:     rec.LastSyncAt,
	}
}
