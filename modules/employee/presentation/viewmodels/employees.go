package viewmodels

type SelectOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// EmployeeRow is one rendered list row. Soft-deleted rows are visually
// distinct and offer restore/permanent-delete instead of edit/delete.
type EmployeeRow struct {
	RowNumber          int      `json:"rowNumber"`
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	Email              string   `json:"email"`
	Role               string   `json:"role"`
	Salary             string   `json:"salary"`
	Departments        []string `json:"departments"`
	HeadOf             []string `json:"headOf"`
	ProfileImageURL    string   `json:"profileImageUrl,omitempty"`
	Status             string   `json:"status"`
	IsDeleted          bool     `json:"isDeleted"`
	CanEdit            bool     `json:"canEdit"`
	CanSoftDelete      bool     `json:"canSoftDelete"`
	CanRestore         bool     `json:"canRestore"`
	CanPermanentDelete bool     `json:"canPermanentDelete"`
}

// PaginationVM drives the first/prev/next/last controls. At a boundary the
// target equals the current page, making the action a no-op.
type PaginationVM struct {
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	PerPage     int  `json:"perPage"`
	HasPrev     bool `json:"hasPrev"`
	HasNext     bool `json:"hasNext"`
	FirstPage   int  `json:"firstPage"`
	PrevPage    int  `json:"prevPage"`
	NextPage    int  `json:"nextPage"`
	LastPage    int  `json:"lastPage"`
}

type EmployeesPageProps struct {
	Rows              []*EmployeeRow  `json:"rows"`
	Pagination        PaginationVM    `json:"pagination"`
	DepartmentOptions []*SelectOption `json:"departmentOptions"`
}

type DashboardProps struct {
	TotalEmployees int `json:"totalEmployees"`
}
