package feedback

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/bwmarrin/snowflake"
)

// SubmitHash derives the canonical deduplication fingerprint for one
// submission: SHA-256 over event code, tenant org id, response and owner
// joined with "-". Guests hash with an empty owner, so one anonymous
// submission per event and response value is accepted.
func SubmitHash(eventCode, orgID, response string, owner *snowflake.ID) string {
	ownerPart := ""
	if owner != nil {
		ownerPart = owner.String()
	}
	data := fmt.Sprintf("%s-%s-%s-%s", eventCode, orgID, response, ownerPart)
	sum := sha256.Sum256([]byte(data))
	return hex.EncodeToString(sum[:])
}
