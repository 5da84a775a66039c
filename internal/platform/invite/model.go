package invite

// Submission is an application to join the organization, submitted through
// the portal's invitation form and forwarded verbatim to the hub backend.
type Submission struct {
	Name            string `json:"name" validate:"required,min=2,max=64"`
	Email           string `json:"email" validate:"required,email"`
	Age             int    `json:"age" validate:"required,gte=16,lte=120"`
	ExperienceHours int    `json:"experience_hours" validate:"gte=0"`
	Discord         string `json:"discord,omitempty" validate:"omitempty,max=64"`
	Motivation      string `json:"motivation" validate:"required,min=20,max=2000"`
}
