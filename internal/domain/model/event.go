package model

// Landing-page entities: the public schedule, problem statements, organizers,
// FAQs and resource links. All managed out-of-band (seeded or inserted by
// organizers directly), read-only through the API.

type ScheduleItem struct {
	ID                  string  `json:"id"`
	Day                 string  `json:"day"`
	StartTime           string  `json:"start_time"` // "15:04" wall-clock
	EndTime             *string `json:"end_time,omitempty"`
	TimeDisplayOverride *string `json:"time_display_override,omitempty"`
	Title               string  `json:"title"`
	Details             *string `json:"details,omitempty"`
}

type ProblemStatement struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`

	TeamsWorking int `json:"teams_working"` // How many teams currently hold it
}

type Organizer struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	RoleDesignation *string `json:"role_designation,omitempty"`
	ContactInfo     *string `json:"contact_info,omitempty"`
}

type FAQ struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type Resource struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	FileLink string `json:"file_link"`
}
