package schema

// CoreCardTable represents the 'core.card' table
type CoreCardTable struct {
	Table      string
	ID         string
	GroupID    string
	Question   string
	Answer     string
	References string
	Tags       string
	CreatedAt  string
	UpdatedAt  string
}

// CoreCard is the schema definition for core.card
var CoreCard = CoreCardTable{
	Table:      "core.card",
	ID:         "id",
	GroupID:    "groupid",
	Question:   "question",
	Answer:     "answer",
	References: "refs",
	Tags:       "tags",
	CreatedAt:  "createdat",
	UpdatedAt:  "updatedat",
}

func (t CoreCardTable) Columns() []string {
	return []string{t.ID, t.GroupID, t.Question, t.Answer, t.References, t.Tags, t.CreatedAt, t.UpdatedAt}
}
