package config

// Catalogfile represents the structure of the labgen.yaml catalog file.
// Omitted sections fall back to the built-in catalog.
type Catalogfile struct {
	Version       string      `yaml:"version"`
	Distributions *[]string   `yaml:"distributions"`
	Variants      *[]string   `yaml:"variants"`
	Profile       *ProfileDTO `yaml:"profile"`
}

// ProfileDTO overrides fields of the default record profile.
type ProfileDTO struct {
	Header        *[]string `yaml:"header"`
	Groups        *[]string `yaml:"groups"`
	ServerOptions *string   `yaml:"server_options"`
	PostCreate    *string   `yaml:"postcreate"`
	Build         *BuildDTO `yaml:"build"`
}

// BuildDTO overrides the build block of build records.
type BuildDTO struct {
	SELinuxMode *string `yaml:"selinux_mode"`
	// GitRepo sets the repository of both roles; a role's own git_repo wins.
	GitRepo *string    `yaml:"git_repo"`
	Server  *TargetDTO `yaml:"server"`
	Client  *TargetDTO `yaml:"client"`
}

// TargetDTO overrides the build settings of one role.
type TargetDTO struct {
	InstallMethod *string `yaml:"install_method"`
	Force         *bool   `yaml:"force"`
	BuildDir      *string `yaml:"builddir"`
	DestDir       *string `yaml:"destdir"`
	FetchMethod   *string `yaml:"fetch_method"`
	GitRepo       *string `yaml:"git_repo"`
}
