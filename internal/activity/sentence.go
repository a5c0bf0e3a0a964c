package activity

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
)

// placeholder rendered when a log entry carries no details payload.
const placeholder = "—"

const fallbackMaxLen = 100

// Detail values end up interpolated into the dashboard feed, so markup is
// stripped before rendering.
var sanitizer = bluemonday.StrictPolicy()

// Details is the free-form payload attached to a log entry. Any subset of
// keys may be absent; readers never assume a key is present.
type Details map[string]interface{}

type sentenceFunc func(d Details) string

// Sentence templates per taxonomy action. Adding a new action kind means
// registering one entry here.
var sentences = map[string]sentenceFunc{
	ActionCreateUser: func(d Details) string {
		s := strings.TrimSpace("Created user " + d.field("user_name"))
		if email := d.field("email"); email != "" {
			s += " (" + email + ")"
		}
		if plan := d.field("plan", "plan_type"); plan != "" {
			s += " on plan " + plan
		}
		return s
	},
	ActionActivateUser: func(d Details) string {
		return strings.TrimSpace("Activated account for " + d.field("user_name", "email"))
	},
	ActionDeactivateUser: func(d Details) string {
		return strings.TrimSpace("Deactivated account for " + d.field("user_name", "email"))
	},
	ActionRenewPlan: func(d Details) string {
		s := "Renewed"
		if plan := d.field("plan_type", "plan"); plan != "" {
			s += " the " + plan + " plan"
		} else {
			s += " the plan"
		}
		if name := d.field("user_name", "email"); name != "" {
			s += " for " + name
		}
		if raw := d.field("end_date"); raw != "" {
			s += " until " + FormatDate(raw)
		}
		return s
	},
	ActionUpdateProfile: func(d Details) string {
		return strings.TrimSpace("Updated profile details for " + d.field("user_name", "email"))
	},
	ActionUpdateSubscription: func(d Details) string {
		s := "Changed subscription"
		if plan := d.field("plan_type", "plan"); plan != "" {
			s += " to " + plan
		}
		if name := d.field("user_name", "email"); name != "" {
			s += " for " + name
		}
		return s
	},
	ActionUpdateShopStatus: func(d Details) string {
		state := "paused"
		if d.boolField("accepting_orders") {
			state = "accepting orders"
		}
		s := "Set shop to " + state
		if orders := d.field("active_orders"); orders != "" {
			s += " with " + orders + " active orders"
		}
		return s
	},
	ActionUpdateProjectStatus: func(d Details) string {
		s := "Moved"
		if name := d.field("project_name", "name"); name != "" {
			s += " " + name
		} else {
			s += " project"
		}
		if status := d.field("status"); status != "" {
			s += " to " + status
		}
		return s
	},
}

// FormatSentence renders a log entry's details as a human-readable sentence.
// Unknown actions fall back to a generic "key: value" summary, and a nil
// details payload renders as a placeholder dash. Formatting never fails.
func FormatSentence(action string, details Details, entityType string) string {
	if details == nil {
		return placeholder
	}
	if format, ok := sentences[action]; ok {
		return strings.TrimSpace(format(details))
	}
	return fallbackSentence(details)
}

// fallbackSentence summarizes whichever well-known keys are present; when
// none are, it falls back to a truncated raw serialization of the payload.
func fallbackSentence(d Details) string {
	fragments := make([]string, 0, 3)
	for _, key := range []string{"user_name", "email"} {
		if value := d.field(key); value != "" {
			fragments = append(fragments, key+": "+value)
		}
	}
	if plan := d.field("plan", "plan_type"); plan != "" {
		fragments = append(fragments, "plan: "+plan)
	}
	if len(fragments) > 0 {
		return strings.Join(fragments, " · ")
	}

	raw, err := json.Marshal(d)
	if err != nil {
		return placeholder
	}
	return truncate(string(raw), fallbackMaxLen)
}

// field returns the first present, non-empty value among keys, rendered as a
// sanitized string.
func (d Details) field(keys ...string) string {
	for _, key := range keys {
		value, ok := d[key]
		if !ok || value == nil {
			continue
		}
		var s string
		switch v := value.(type) {
		case string:
			s = v
		case float64:
			// JSON numbers decode as float64; render integers without a fraction.
			s = strconv.FormatFloat(v, 'f', -1, 64)
		default:
			s = fmt.Sprintf("%v", v)
		}
		s = strings.TrimSpace(sanitizer.Sanitize(s))
		if s != "" {
			return s
		}
	}
	return ""
}

func (d Details) boolField(key string) bool {
	if value, ok := d[key]; ok {
		if b, ok := value.(bool); ok {
			return b
		}
	}
	return false
}

// FormatDate renders a stored date string as day/month/year. Malformed input
// is returned unchanged rather than failing.
func FormatDate(raw string) string {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("02 Jan 2006")
		}
	}
	return raw
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
