package activity

import "strings"

// Color categories understood by the dashboard badge components.
const (
	ColorSuccess     = "success"
	ColorDestructive = "destructive"
	ColorWarning     = "warning"
	ColorInfo        = "info"
	ColorDefault     = "default"
)

// Presentation describes how an action is rendered in the activity feed.
type Presentation struct {
	Label string `json:"label"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

// Action keys with dedicated presentation and sentence templates.
const (
	ActionCreateUser          = "create_user"
	ActionActivateUser        = "activate_user"
	ActionDeactivateUser      = "deactivate_user"
	ActionRenewPlan           = "renew_plan"
	ActionUpdateProfile       = "update_profile"
	ActionUpdateSubscription  = "update_subscription"
	ActionUpdateShopStatus    = "update_shop_status"
	ActionUpdateProjectStatus = "update_project_status"
)

var presentations = map[string]Presentation{
	ActionCreateUser:          {Label: "User created", Icon: "user-plus", Color: ColorSuccess},
	ActionActivateUser:        {Label: "User activated", Icon: "user-check", Color: ColorSuccess},
	ActionDeactivateUser:      {Label: "User deactivated", Icon: "user-x", Color: ColorDestructive},
	ActionRenewPlan:           {Label: "Plan renewed", Icon: "refresh-cw", Color: ColorInfo},
	ActionUpdateProfile:       {Label: "Profile updated", Icon: "pencil", Color: ColorInfo},
	ActionUpdateSubscription:  {Label: "Subscription updated", Icon: "credit-card", Color: ColorWarning},
	ActionUpdateShopStatus:    {Label: "Shop status updated", Icon: "store", Color: ColorInfo},
	ActionUpdateProjectStatus: {Label: "Project status updated", Icon: "kanban", Color: ColorWarning},
}

var entityLabels = map[string]string{
	"user":         "User",
	"project":      "Project",
	"client":       "Client",
	"task":         "Task",
	"payment":      "Payment",
	"profile":      "Profile",
	"subscription": "Subscription",
}

// ResolvePresentation maps an action key to its badge presentation. Unknown
// actions get a label derived from the key itself and the neutral color, so
// the feed can always render whatever the log contains.
func ResolvePresentation(action string) Presentation {
	if p, ok := presentations[action]; ok {
		return p
	}
	return Presentation{
		Label: humanizeAction(action),
		Icon:  "eye",
		Color: ColorDefault,
	}
}

// EntityLabel translates an entity type into its display noun. Lookups are
// case-insensitive; unrecognized types pass through unchanged.
func EntityLabel(entityType string) string {
	if label, ok := entityLabels[strings.ToLower(entityType)]; ok {
		return label
	}
	return entityType
}

func humanizeAction(action string) string {
	words := strings.Fields(strings.ReplaceAll(action, "_", " "))
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
