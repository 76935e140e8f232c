// internal/publish/event.go
package publish

import (
	"encoding/json"
	"fmt"

	"github.com/tamzrod/parkwatch/internal/poller"
)

// encode renders a cycle report as the published JSON event.
func encode(r poller.Report) ([]byte, error) {
	b, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("encode report %s: %w", r.ID, err)
	}
	return b, nil
}
