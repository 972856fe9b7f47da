package schema

// CoreTagTable represents the 'core.tag' table
type CoreTagTable struct {
	Table       string
	ID          string
	GroupID     string
	Name        string
	Description string
	CreatedAt   string
}

// CoreTag is the schema definition for core.tag
var CoreTag = CoreTagTable{
	Table:       "core.tag",
	ID:          "id",
	GroupID:     "groupid",
	Name:        "name",
	Description: "description",
	CreatedAt:   "createdat",
}

func (t CoreTagTable) Columns() []string {
	return []string{t.ID, t.GroupID, t.Name, t.Description, t.CreatedAt}
}
