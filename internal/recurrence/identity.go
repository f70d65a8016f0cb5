package recurrence

import (
	"crypto/sha256"
	"encoding/base64"
	"strconv"
	"time"
)

// OccurrenceID derives a stable identifier for one occurrence of a recurring
// event. The same (event, start) pair always maps to the same ID, so clients
// can treat recomputed occurrence lists as keyed collections even though
// occurrences are never stored.
//
// The ID is the SHA-256 of "<eventID>_<start RFC3339 UTC>", URL-safe base64
// without padding. It is not reversible.
func OccurrenceID(parentEventID int64, start time.Time) string {
	seed := strconv.FormatInt(parentEventID, 10) + "_" + start.UTC().Format(time.RFC3339)
	sum := sha256.Sum256([]byte(seed))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
