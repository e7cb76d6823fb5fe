package cli

import (
	"encoding/json"
	"fmt"
)

const (
	KindTask     = "Task"
	KindEvent    = "Event"
	KindMeal     = "Meal"
	KindSteps    = "Steps"
	KindVital    = "Vital"
	KindActivity = "Activity"
)

// orderedKinds is the order in which create -f sends documents.
var orderedKinds = []string{
	KindTask,
	KindEvent,
	KindMeal,
	KindSteps,
	KindVital,
	KindActivity,
}

func ValidateResourceKind(kind string) bool {
	switch kind {
	case KindTask, KindEvent, KindMeal, KindSteps, KindVital, KindActivity:
		return true
	default:
		return false
	}
}

// Resource is one document of a bulk file: a kind and the JSON body that
// is posted for it.
type Resource struct {
	Kind string
	Spec json.RawMessage
	// position of the document in the file, starting at 1
	Index int
}

// ResourceList holds the documents of one kind in file order.
type ResourceList []Resource

// label names a resource in status output.
func (r Resource) label() string {
	var spec map[string]any
	if err := json.Unmarshal(r.Spec, &spec); err == nil {
		for _, key := range []string{"title", "name", "type", "date"} {
			if v, ok := spec[key].(string); ok && v != "" {
				return v
			}
		}
	}
	return fmt.Sprintf("document %d", r.Index)
}
