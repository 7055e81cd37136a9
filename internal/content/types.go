package content

import "html/template"

// PersonalInfo is the hero/contact identity block.
type PersonalInfo struct {
	Name           string `yaml:"name" json:"name"`
	Role           string `yaml:"role" json:"role"`
	Summary        string `yaml:"summary" json:"summary"`
	Location       string `yaml:"location" json:"location"`
	Phone          string `yaml:"phone" json:"phone,omitempty"`
	Email          string `yaml:"email" json:"email"`
	LinkedIn       string `yaml:"linkedin" json:"linkedin,omitempty"`
	GitHub         string `yaml:"github" json:"github,omitempty"`
	LinkedInHandle string `yaml:"linkedin_handle" json:"linkedin_handle,omitempty"`
	GitHubHandle   string `yaml:"github_handle" json:"github_handle,omitempty"`
	Headline       string `yaml:"headline" json:"headline"`
	Mission        string `yaml:"mission" json:"mission"`
	CTAPrimary     string `yaml:"cta_primary" json:"cta_primary"`
	CTASecondary   string `yaml:"cta_secondary" json:"cta_secondary"`
}

// Metric is a headline number shown in the hero strip.
type Metric struct {
	Value     int    `yaml:"value" json:"value"`
	Suffix    string `yaml:"suffix" json:"suffix,omitempty"`
	Label     string `yaml:"label" json:"label"`
	Highlight bool   `yaml:"highlight" json:"highlight"`
}

type Skill struct {
	Name     string `yaml:"name" json:"name"`
	Icon     string `yaml:"icon" json:"icon"`
	ImgClass string `yaml:"img_class" json:"img_class,omitempty"`
}

// SkillCategory groups skills under a heading. Authored order is kept.
type SkillCategory struct {
	Name   string  `yaml:"name" json:"name"`
	Skills []Skill `yaml:"skills" json:"skills"`
}

type Experience struct {
	Company     string   `yaml:"company" json:"company"`
	Role        string   `yaml:"role" json:"role"`
	Period      string   `yaml:"period" json:"period"`
	Location    string   `yaml:"location" json:"location"`
	Website     string   `yaml:"website" json:"website,omitempty"`
	Logo        string   `yaml:"logo" json:"logo,omitempty"`
	Tech        []string `yaml:"tech" json:"tech"`
	Description []string `yaml:"description" json:"description"`
}

// Key identifies an experience entry. The same company can appear once per role.
func (e Experience) Key() string { return e.Company + " / " + e.Role }

type ProjectMetric struct {
	Label string `yaml:"label" json:"label"`
	Value string `yaml:"value" json:"value"`
}

type Project struct {
	Title       string          `yaml:"title" json:"title"`
	Subtitle    string          `yaml:"subtitle" json:"subtitle,omitempty"`
	Tech        []string        `yaml:"tech" json:"tech"`
	Description string          `yaml:"description" json:"description"`
	Highlights  []string        `yaml:"highlights" json:"highlights,omitempty"`
	Metrics     []ProjectMetric `yaml:"metrics" json:"metrics,omitempty"`
	Category    string          `yaml:"category" json:"category"`
	Image       string          `yaml:"image" json:"image,omitempty"`
	Featured    bool            `yaml:"featured" json:"featured"`
	Link        string          `yaml:"link" json:"link,omitempty"`
	GitHub      string          `yaml:"github" json:"github,omitempty"`
}

func (p Project) Key() string           { return p.Title }
func (p Project) Categories() []string  { return []string{p.Category} }
func (p Project) IsFeatured() bool      { return p.Featured }
func (p Project) TechPreview() []string { return head(p.Tech, 4) }

type Certification struct {
	Name         string   `yaml:"name" json:"name"`
	Issuer       string   `yaml:"issuer" json:"issuer"`
	Date         string   `yaml:"date" json:"date"`
	Logo         string   `yaml:"logo" json:"logo,omitempty"`
	Skills       []string `yaml:"skills" json:"skills"`
	Description  string   `yaml:"description" json:"description"`
	CredentialID string   `yaml:"credential_id" json:"credential_id,omitempty"`
}

func (c Certification) Key() string { return c.Name }

// Categories returns the skill tags; a certification matches a filter when any tag does.
func (c Certification) Categories() []string { return c.Skills }
func (c Certification) IsFeatured() bool     { return false }
func (c Certification) SkillPreview() []string {
	return head(c.Skills, 3)
}

// ShortCredential is the first eight characters of the credential id.
func (c Certification) ShortCredential() string {
	if len(c.CredentialID) <= 8 {
		return c.CredentialID
	}
	return c.CredentialID[:8]
}

type Post struct {
	Title    string   `yaml:"title" json:"title"`
	Date     string   `yaml:"date" json:"date"`
	Category string   `yaml:"category" json:"category"`
	Featured bool     `yaml:"featured" json:"featured"`
	Summary  string   `yaml:"summary" json:"summary"`
	Body     string   `yaml:"body" json:"-"`
	Link     string   `yaml:"link" json:"link,omitempty"`
	Tags     []string `yaml:"tags" json:"tags,omitempty"`

	// HTML is Body rendered from markdown at load time.
	HTML template.HTML `yaml:"-" json:"-"`
}

func (p Post) Key() string          { return p.Title }
func (p Post) Categories() []string { return []string{p.Category} }
func (p Post) IsFeatured() bool     { return p.Featured }

type Education struct {
	Degree      string `yaml:"degree" json:"degree"`
	Institution string `yaml:"institution" json:"institution"`
	Period      string `yaml:"period" json:"period"`
	Grade       string `yaml:"grade" json:"grade,omitempty"`
}

// document is the on-disk shape of the content file.
type document struct {
	Personal       PersonalInfo    `yaml:"personal"`
	About          string          `yaml:"about"`
	HeroMetrics    []Metric        `yaml:"hero_metrics"`
	Skills         []SkillCategory `yaml:"skills"`
	Experience     []Experience    `yaml:"experience"`
	Projects       []Project       `yaml:"projects"`
	Education      []Education     `yaml:"education"`
	Certifications []Certification `yaml:"certifications"`
	Posts          []Post          `yaml:"posts"`
}

func head(s []string, n int) []string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
