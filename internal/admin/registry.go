// Package admin declares the resources exposed on the admin surface.
package admin

// Operation is an action the admin surface allows on a resource.
type Operation string

const (
	OpList     Operation = "list"
	OpCreate   Operation = "create"
	OpUpdate   Operation = "update"
	OpDelete   Operation = "delete"
	OpModerate Operation = "moderate"
)

// Navigation groups.
const (
	GroupContent    = "Контент"
	GroupModeration = "Модерация"
	GroupTechnical  = "Техническое"
)

// Field documents one editable or displayed field.
type Field struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	Required   bool   `json:"required"`
	Constraint string `json:"constraint,omitempty"`
}

// Resource is one entry of the admin table.
type Resource struct {
	Name       string      `json:"name"`
	Label      string      `json:"label"`
	Navigation string      `json:"navigation"`
	Operations []Operation `json:"operations"`
	Fields     []Field     `json:"fields"`
}

// Allows reports whether op is permitted on r.
func (r Resource) Allows(op Operation) bool {
	for _, o := range r.Operations {
		if o == op {
			return true
		}
	}
	return false
}

var resources = []Resource{
	{
		Name: "users", Label: "Users", Navigation: GroupContent,
		Operations: []Operation{OpList, OpDelete},
		Fields: []Field{
			{Name: "username", Type: "string", Required: true, Constraint: "3-32 characters, unique"},
			{Name: "role", Type: "enum", Required: true, Constraint: "USER | ADMIN"},
			{Name: "avatarKey", Type: "string"},
		},
	},
	{
		Name: "titles", Label: "Titles", Navigation: GroupContent,
		Operations: []Operation{OpList, OpCreate, OpUpdate, OpDelete},
		Fields: []Field{
			{Name: "slug", Type: "string", Required: true, Constraint: "3-64 of [a-z0-9-], unique ignoring case"},
			{Name: "name", Type: "string", Required: true, Constraint: "3-128 characters"},
			{Name: "description", Type: "text", Constraint: "up to 5000 characters"},
			{Name: "coverKey", Type: "string", Constraint: "up to 255 characters"},
			{Name: "published", Type: "bool"},
			{Name: "ageRating", Type: "enum", Constraint: "G | PG | PG-13 | R | R+ | Rx"},
			{Name: "originalReleaseDate", Type: "date", Constraint: "YYYY-MM-DD"},
		},
	},
	{
		Name: "episodes", Label: "Episodes", Navigation: GroupContent,
		Operations: []Operation{OpList, OpCreate, OpUpdate, OpDelete},
		Fields: []Field{
			{Name: "number", Type: "int", Required: true, Constraint: "1-10000, unique per title"},
			{Name: "name", Type: "string", Required: true, Constraint: "3-128 characters"},
			{Name: "playerSrc", Type: "url", Required: true, Constraint: "allow-listed host"},
			{Name: "durationMinutes", Type: "int", Constraint: "1-2000"},
			{Name: "published", Type: "bool"},
		},
	},
	{
		Name: "team-members", Label: "Team members", Navigation: GroupContent,
		Operations: []Operation{OpList, OpCreate, OpDelete},
		Fields: []Field{
			{Name: "name", Type: "string", Required: true, Constraint: "1-128 characters"},
			{Name: "role", Type: "string", Required: true, Constraint: "1-128 characters"},
			{Name: "avatarKey", Type: "string", Constraint: "up to 256 characters"},
		},
	},
	{
		Name: "comments", Label: "Comments", Navigation: GroupModeration,
		Operations: []Operation{OpList, OpModerate},
		Fields: []Field{
			{Name: "body", Type: "text", Required: true, Constraint: "3-2000 characters"},
			{Name: "status", Type: "enum", Required: true, Constraint: "PENDING | APPROVED | REJECTED"},
		},
	},
	{
		Name: "sessions", Label: "Sessions", Navigation: GroupTechnical,
		Operations: []Operation{OpList},
		Fields: []Field{
			{Name: "userId", Type: "string", Required: true},
			{Name: "expiresAt", Type: "datetime", Required: true},
			{Name: "userAgent", Type: "string"},
			{Name: "ip", Type: "string"},
		},
	},
}

// Resources returns the admin table in navigation order.
func Resources() []Resource {
	return append([]Resource(nil), resources...)
}

// Lookup finds a resource by name.
func Lookup(name string) (Resource, bool) {
	for _, r := range resources {
		if r.Name == name {
			return r, true
		}
	}
	return Resource{}, false
}

// Group is a navigation section of the dashboard.
type Group struct {
	Name      string
	Resources []Resource
}

// Groups returns resources grouped by navigation, keeping first-seen order.
func Groups() []Group {
	var groups []Group
	index := map[string]int{}
	for _, r := range resources {
		i, ok := index[r.Navigation]
		if !ok {
			i = len(groups)
			index[r.Navigation] = i
			groups = append(groups, Group{Name: r.Navigation})
		}
		groups[i].Resources = append(groups[i].Resources, r)
	}
	return groups
}
