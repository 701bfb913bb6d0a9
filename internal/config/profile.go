package config

// Profile is the resume blob rendered by the landing and about pages. It is loaded
// once with the rest of the configuration and handed to consumers explicitly.
type Profile struct {
	Name        string       `yaml:"name" json:"name"`
	Initials    string       `yaml:"initials" json:"initials"`
	URL         string       `yaml:"url" json:"url"`
	Location    string       `yaml:"location" json:"location"`
	Description string       `yaml:"description" json:"description"`
	Summary     string       `yaml:"summary" json:"summary"`
	AvatarURL   string       `yaml:"avatar_url" json:"avatarUrl"`
	Skills      []string     `yaml:"skills" json:"skills"`
	Languages   []string     `yaml:"languages" json:"languages"`
	Contact     Contact      `yaml:"contact" json:"contact"`
	Work        []Experience `yaml:"work" json:"work"`
	Education   []Education  `yaml:"education" json:"education"`
}

// Contact holds public contact channels.
type Contact struct {
	Email  string       `yaml:"email" json:"email,omitempty"`
	Tel    string       `yaml:"tel" json:"tel,omitempty"`
	Social []SocialLink `yaml:"social" json:"social,omitempty"`
}

// SocialLink is one entry of the navbar/social list.
type SocialLink struct {
	Name   string `yaml:"name" json:"name"`
	URL    string `yaml:"url" json:"url"`
	Navbar bool   `yaml:"navbar" json:"navbar"`
}

// Experience is a single position in the work history.
type Experience struct {
	Company     string   `yaml:"company" json:"company"`
	Href        string   `yaml:"href" json:"href,omitempty"`
	Title       string   `yaml:"title" json:"title"`
	Location    string   `yaml:"location" json:"location,omitempty"`
	Start       string   `yaml:"start" json:"start"`
	End         string   `yaml:"end" json:"end,omitempty"`
	Description string   `yaml:"description" json:"description,omitempty"`
	Badges      []string `yaml:"badges" json:"badges,omitempty"`
}

// Education is a single school entry.
type Education struct {
	School string `yaml:"school" json:"school"`
	Href   string `yaml:"href" json:"href,omitempty"`
	Degree string `yaml:"degree" json:"degree"`
	Start  string `yaml:"start" json:"start"`
	End    string `yaml:"end" json:"end,omitempty"`
}
