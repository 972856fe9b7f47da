package schema

// CoreStudyGroupTable represents the 'core.studygroup' table
type CoreStudyGroupTable struct {
	Table       string
	ID          string
	Name        string
	Description string
	Owner       string
	CreatedAt   string
	UpdatedAt   string
}

// CoreStudyGroup is the schema definition for core.studygroup
var CoreStudyGroup = CoreStudyGroupTable{
	Table:       "core.studygroup",
	ID:          "id",
	Name:        "name",
	Description: "description",
	Owner:       "owner",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

func (t CoreStudyGroupTable) Columns() []string {
	return []string{t.ID, t.Name, t.Description, t.Owner, t.CreatedAt, t.UpdatedAt}
}
