package employee

import (
	"strings"
	"time"
)

// DepartmentRef is an employee's membership in a department, carrying just
// enough of the department to render list rows.
type DepartmentRef struct {
	id     string
	name   string
	headID string
}

func NewDepartmentRef(id, name, headID string) DepartmentRef {
	return DepartmentRef{id: id, name: name, headID: headID}
}

func (d DepartmentRef) ID() string     { return d.id }
func (d DepartmentRef) Name() string   { return d.name }
func (d DepartmentRef) HeadID() string { return d.headID }

type Employee struct {
	id               string
	name             string
	email            string
	role             string
	salary           float64
	departments      []DepartmentRef
	profileImagePath string
	isDeleted        bool
	createdAt        time.Time
}

func Hydrate(
	id string,
	name string,
	email string,
	role string,
	salary float64,
	departments []DepartmentRef,
	profileImagePath string,
	isDeleted bool,
	createdAt time.Time,
) Employee {
	return Employee{
		id:               id,
		name:             strings.TrimSpace(name),
		email:            strings.TrimSpace(email),
		role:             role,
		salary:           salary,
		departments:      departments,
		profileImagePath: profileImagePath,
		isDeleted:        isDeleted,
		createdAt:        createdAt,
	}
}

func (e Employee) ID() string                    { return e.id }
func (e Employee) Name() string                  { return e.name }
func (e Employee) Email() string                 { return e.email }
func (e Employee) Role() string                  { return e.role }
func (e Employee) Salary() float64               { return e.salary }
func (e Employee) Departments() []DepartmentRef  { return e.departments }
func (e Employee) ProfileImagePath() string      { return e.profileImagePath }
func (e Employee) IsDeleted() bool               { return e.isDeleted }
func (e Employee) CreatedAt() time.Time          { return e.createdAt }
func (e Employee) IsZero() bool                  { return e.id == "" && e.email == "" }

// DepartmentIDs returns the ordered membership ids, the shape the edit form
// seeds its multi-select from.
func (e Employee) DepartmentIDs() []string {
	ids := make([]string, 0, len(e.departments))
	for _, d := range e.departments {
		ids = append(ids, d.ID())
	}
	return ids
}

// HeadOfDepartments returns the names of the departments this employee heads.
func (e Employee) HeadOfDepartments() []string {
	var names []string
	for _, d := range e.departments {
		if d.HeadID() != "" && d.HeadID() == e.id {
			names = append(names, d.Name())
		}
	}
	return names
}
