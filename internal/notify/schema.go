package notify

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema/tour_status_change.json
var tourStatusChangeSchema string

var eventSchema = jsonschema.MustCompileString("tour_status_change.json", tourStatusChangeSchema)

// ParseEvent validates raw against the event contract and decodes it.
// Malformed events are rejected here so the notifier only ever sees
// well-formed snapshots.
func ParseEvent(raw []byte) (ChangeEvent, error) {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return ChangeEvent{}, fmt.Errorf("event is not valid JSON: %w", err)
	}
	if err := eventSchema.Validate(doc); err != nil {
		return ChangeEvent{}, fmt.Errorf("event failed schema validation: %w", err)
	}
	var evt ChangeEvent
	if err := json.Unmarshal(raw, &evt); err != nil {
		return ChangeEvent{}, err
	}
	return evt, nil
}
