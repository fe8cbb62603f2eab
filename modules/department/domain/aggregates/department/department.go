package department

// HeadRef is the employee currently heading a department.
type HeadRef struct {
	id    string
	email string
}

func NewHeadRef(id, email string) HeadRef {
	return HeadRef{id: id, email: email}
}

func (h HeadRef) ID() string    { return h.id }
func (h HeadRef) Email() string { return h.email }

// Department is a read-side working copy of a remote record. The remote API
// owns the data; this type only carries it between the wire and the views.
type Department struct {
	id          string
	name        string
	description string
	head        *HeadRef
}

func Hydrate(id, name, description string, head *HeadRef) Department {
	return Department{
		id:          id,
		name:        name,
		description: description,
		head:        head,
	}
}

func (d Department) ID() string          { return d.id }
func (d Department) Name() string        { return d.name }
func (d Department) Description() string { return d.description }

// Head returns the assigned head, if any.
func (d Department) Head() (HeadRef, bool) {
	if d.head == nil {
		return HeadRef{}, false
	}
	return *d.head, true
}
