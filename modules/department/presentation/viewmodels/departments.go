package viewmodels

type SelectOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type DepartmentRow struct {
	RowNumber   int    `json:"rowNumber"`
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	HeadID      string `json:"headId,omitempty"`
	HeadEmail   string `json:"headEmail,omitempty"`
}

// DepartmentsPageProps is the full list. The department page is never
// paginated; the upstream returns every record in one response.
type DepartmentsPageProps struct {
	Rows []*DepartmentRow `json:"rows"`
}
