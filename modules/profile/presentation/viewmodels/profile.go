package viewmodels

type ProfileProps struct {
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	Role            string   `json:"role"`
	Salary          string   `json:"salary"`
	ProfileImageURL string   `json:"profileImageUrl,omitempty"`
	Departments     []string `json:"departments"`
	HeadDepartments []string `json:"headDepartments"`
}

// SaveResponse answers a profile save. Saved is false for a no-op draft; the
// message tells the user nothing needed saving.
type SaveResponse struct {
	Profile *ProfileProps `json:"profile"`
	Saved   bool          `json:"saved"`
	Message string        `json:"message"`
}
