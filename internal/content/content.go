// Package content holds the structured document every section renders from.
package content

// SocialLinks are optional profile URLs. Empty values are omitted when rendering.
type SocialLinks struct {
	GitHub   string `json:"github,omitempty" yaml:"github,omitempty" toml:"github,omitempty" validate:"omitempty,url"`
	LinkedIn string `json:"linkedin,omitempty" yaml:"linkedin,omitempty" toml:"linkedin,omitempty" validate:"omitempty,url"`
	GitLab   string `json:"gitlab,omitempty" yaml:"gitlab,omitempty" toml:"gitlab,omitempty" validate:"omitempty,url"`
	Twitter  string `json:"twitter,omitempty" yaml:"twitter,omitempty" toml:"twitter,omitempty" validate:"omitempty,url"`
}

// Link is one rendered social link.
type Link struct {
	Name string
	URL  string
}

// List returns the configured links in display order.
func (s SocialLinks) List() []Link {
	candidates := []Link{
		{Name: "GitHub", URL: s.GitHub},
		{Name: "LinkedIn", URL: s.LinkedIn},
		{Name: "GitLab", URL: s.GitLab},
		{Name: "Twitter", URL: s.Twitter},
	}
	links := make([]Link, 0, len(candidates))
	for _, link := range candidates {
		if link.URL != "" {
			links = append(links, link)
		}
	}
	return links
}

type Hero struct {
	Name         string      `json:"name" yaml:"name" toml:"name"`
	Title        string      `json:"title" yaml:"title" toml:"title"`
	Description  string      `json:"description" yaml:"description" toml:"description"`
	CTA          string      `json:"cta" yaml:"cta" toml:"cta"`
	SocialLinks  SocialLinks `json:"socialLinks" yaml:"socialLinks" toml:"socialLinks"`
	ProfileImage string      `json:"profileImage,omitempty" yaml:"profileImage,omitempty" toml:"profileImage,omitempty"`
	Resume       string      `json:"resume,omitempty" yaml:"resume,omitempty" toml:"resume,omitempty"`
	Skills       []string    `json:"skills,omitempty" yaml:"skills,omitempty" toml:"skills,omitempty"`
}

type Highlight struct {
	Title       string `json:"title" yaml:"title" toml:"title"`
	Description string `json:"description" yaml:"description" toml:"description"`
}

type About struct {
	Title        string      `json:"title" yaml:"title" toml:"title"`
	Bio          string      `json:"bio" yaml:"bio" toml:"bio"`
	ProfileImage string      `json:"profileImage,omitempty" yaml:"profileImage,omitempty" toml:"profileImage,omitempty"`
	Highlights   []Highlight `json:"highlights,omitempty" yaml:"highlights,omitempty" toml:"highlights,omitempty"`
}

type SkillCategory struct {
	Name         string   `json:"name" yaml:"name" toml:"name"`
	Technologies []string `json:"technologies" yaml:"technologies" toml:"technologies"`
}

type Skills struct {
	Title      string          `json:"title" yaml:"title" toml:"title"`
	Categories []SkillCategory `json:"categories" yaml:"categories" toml:"categories"`
}

type Institution struct {
	Degree       string   `json:"degree" yaml:"degree" toml:"degree"`
	Institution  string   `json:"institution" yaml:"institution" toml:"institution"`
	Location     string   `json:"location" yaml:"location" toml:"location"`
	Period       string   `json:"period" yaml:"period" toml:"period"`
	Description  string   `json:"description" yaml:"description" toml:"description"`
	Achievements []string `json:"achievements,omitempty" yaml:"achievements,omitempty" toml:"achievements,omitempty"`
	GPA          string   `json:"gpa,omitempty" yaml:"gpa,omitempty" toml:"gpa,omitempty"`
}

type Education struct {
	Title        string        `json:"title" yaml:"title" toml:"title"`
	Institutions []Institution `json:"institutions" yaml:"institutions" toml:"institutions"`
}

type Project struct {
	ID          string   `json:"id" yaml:"id" toml:"id" validate:"required"`
	Title       string   `json:"title" yaml:"title" toml:"title"`
	Description string   `json:"description" yaml:"description" toml:"description"`
	TechStack   []string `json:"techStack" yaml:"techStack" toml:"techStack"`
	GithubLink  string   `json:"githubLink,omitempty" yaml:"githubLink,omitempty" toml:"githubLink,omitempty" validate:"omitempty,url"`
	LiveLink    string   `json:"liveLink,omitempty" yaml:"liveLink,omitempty" toml:"liveLink,omitempty" validate:"omitempty,url"`
	Image       string   `json:"image,omitempty" yaml:"image,omitempty" toml:"image,omitempty"`
	Status      string   `json:"status,omitempty" yaml:"status,omitempty" toml:"status,omitempty"`
	Year        string   `json:"year,omitempty" yaml:"year,omitempty" toml:"year,omitempty"`
	Featured    bool     `json:"featured,omitempty" yaml:"featured,omitempty" toml:"featured,omitempty"`
}

// EventType classifies a timeline event.
type EventType string

const (
	EventWork        EventType = "work"
	EventEducation   EventType = "education"
	EventAchievement EventType = "achievement"
	EventProject     EventType = "project"
)

type TimelineEvent struct {
	ID          string    `json:"id" yaml:"id" toml:"id" validate:"required"`
	Date        string    `json:"date" yaml:"date" toml:"date"`
	Title       string    `json:"title" yaml:"title" toml:"title"`
	Company     string    `json:"company" yaml:"company" toml:"company"`
	Description string    `json:"description" yaml:"description" toml:"description"`
	Type        EventType `json:"type,omitempty" yaml:"type,omitempty" toml:"type,omitempty" validate:"omitempty,oneof=work education achievement project"`
	Location    string    `json:"location,omitempty" yaml:"location,omitempty" toml:"location,omitempty"`
	Duration    string    `json:"duration,omitempty" yaml:"duration,omitempty" toml:"duration,omitempty"`
	Skills      []string  `json:"skills,omitempty" yaml:"skills,omitempty" toml:"skills,omitempty"`
	Featured    bool      `json:"featured,omitempty" yaml:"featured,omitempty" toml:"featured,omitempty"`
}

type Timeline struct {
	Title  string          `json:"title" yaml:"title" toml:"title"`
	Events []TimelineEvent `json:"events" yaml:"events" toml:"events" validate:"dive"`
}

type Contact struct {
	Email       string      `json:"email" yaml:"email" toml:"email" validate:"omitempty,email"`
	SocialLinks SocialLinks `json:"socialLinks" yaml:"socialLinks" toml:"socialLinks"`
	Location    string      `json:"location,omitempty" yaml:"location,omitempty" toml:"location,omitempty"`
}

// Portfolio is the whole document. It is treated as immutable once loaded;
// reloads produce a new value.
type Portfolio struct {
	Hero      Hero      `json:"hero" yaml:"hero" toml:"hero"`
	About     About     `json:"about" yaml:"about" toml:"about"`
	Skills    Skills    `json:"skills" yaml:"skills" toml:"skills"`
	Education Education `json:"education" yaml:"education" toml:"education"`
	Projects  []Project `json:"projects" yaml:"projects" toml:"projects" validate:"dive"`
	Timeline  Timeline  `json:"timeline" yaml:"timeline" toml:"timeline"`
	Contact   Contact   `json:"contact" yaml:"contact" toml:"contact"`
}

// Project returns the project with the given id.
func (p *Portfolio) Project(id string) (Project, bool) {
	if p == nil {
		return Project{}, false
	}
	for _, project := range p.Projects {
		if project.ID == id {
			return project, true
		}
	}
	return Project{}, false
}

// DefaultHighlights are shown in the about section when none are configured.
var DefaultHighlights = []Highlight{
	{Title: "Clean Code", Description: "Readable, maintainable software with tests that document intent."},
	{Title: "Problem Solving", Description: "Breaking hard problems into small, shippable steps."},
	{Title: "Continuous Learning", Description: "Picking up new tools and ideas and sharing what works."},
	{Title: "Collaboration", Description: "Working closely with designers, product and other engineers."},
}

func (p *Portfolio) applyDefaults() {
	if p.About.Title == "" {
		p.About.Title = "About Me"
	}
	if len(p.About.Highlights) == 0 {
		p.About.Highlights = append([]Highlight(nil), DefaultHighlights...)
	}
	if p.Skills.Title == "" {
		p.Skills.Title = "Skills"
	}
	if p.Education.Title == "" {
		p.Education.Title = "Education"
	}
	if p.Timeline.Title == "" {
		p.Timeline.Title = "Experience"
	}
}
