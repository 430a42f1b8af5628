package panel

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// designNamespace scopes design IDs so they never collide with other
// name-based UUIDs.
var designNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/chazu/hitbox/design"))

// DesignID returns a content-addressed identifier for the Spec. Equal Specs
// always produce the same ID, so generated files can be traced back to the
// parameters that made them.
func (s Spec) DesignID() uuid.UUID {
	b, err := json.Marshal(s)
	if err != nil {
		// NaN or Inf fields; Validate rejects these, but the ID stays stable.
		b = []byte(fmt.Sprintf("%#v", s))
	}
	return uuid.NewSHA1(designNamespace, b)
}
