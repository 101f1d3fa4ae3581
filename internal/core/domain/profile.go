package domain

import (
	"maps"
	"slices"
	"strings"
	"text/template"
)

// DefaultPostCreate is the post-provisioning command of the default profile.
// {scriptdir} and {playbookdir} are expanded by the provisioning tool, not here.
const DefaultPostCreate = "ansible-playbook -i {scriptdir}/inventory.sh {playbookdir}/local-dns.yaml\n" +
	"  {playbookdir}/wait.yaml {playbookdir}/testcell.yaml && ssh {{ .Hostname }} run-openafs-robotest.sh tests"

// sampleLabel is the label the post-create template is test-rendered with.
// The template must reach its host either as .Hostname or as .Label followed by 01.
const sampleLabel = "labgen-sample"

// BuildTarget holds the build settings of one role (server or client).
type BuildTarget struct {
	InstallMethod string
	Force         bool
	BuildDir      string
	DestDir       string
	FetchMethod   string
	GitRepo       string
}

// BuildSettings holds the variables every build record carries in addition to the server options.
type BuildSettings struct {
	SELinuxMode string
	Server      BuildTarget
	Client      BuildTarget
}

// Profile describes the body of the records: header, group flags, variables and
// the post-create command template.
type Profile struct {
	Header        []string
	Groups        []string
	ServerOptions string
	PostCreate    string
	Build         BuildSettings
}

// PostCreateData is the data a post-create template is executed with.
type PostCreateData struct {
	Hostname     string
	Label        string
	Distribution string
	Variant      string
}

// DefaultProfile returns the profile of the OpenAFS robotest lab.
func DefaultProfile() Profile {
	target := BuildTarget{
		InstallMethod: "rsync",
		Force:         false,
		BuildDir:      "/usr/local/src/openafs_server",
		DestDir:       "/tmp/openafs_server",
		FetchMethod:   "git",
		GitRepo:       "git://{ gateway }/openafs",
	}
	return Profile{
		Header: []string{"Auto Generated - Do Not Edit"},
		Groups: []string{
			"afs_cell",
			"afs_clients",
			"afs_kdcs",
			"afs_databases",
			"afs_fileservers",
			"afs_robotest",
		},
		ServerOptions: "-pidfiles",
		PostCreate:    DefaultPostCreate,
		Build: BuildSettings{
			SELinuxMode: "permissive",
			Server:      target,
			Client:      target,
		},
	}
}

// Validate checks the profile for problems that would produce a broken document.
func (p *Profile) Validate() error {
	if len(p.Groups) == 0 {
		return newConfigurationError(ErrNoGroups, "groups", "")
	}
	seen := make(map[string]struct{}, len(p.Groups))
	for _, g := range p.Groups {
		if !validName(g) || strings.ContainsRune(g, '=') {
			return newConfigurationError(ErrInvalidName, "groups", g)
		}
		if _, dup := seen[g]; dup {
			return newConfigurationError(ErrDuplicateGroup, "groups", g)
		}
		seen[g] = struct{}{}
	}

	if err := p.validateValues(); err != nil {
		return err
	}

	tmpl, err := p.CompilePostCreate()
	if err != nil {
		return err
	}
	sample := PostCreateData{Hostname: HostnameFor(sampleLabel), Label: sampleLabel}
	var sb strings.Builder
	if err := tmpl.Execute(&sb, sample); err != nil {
		return withCause(newConfigurationError(ErrInvalidTemplate, "postcreate", ""), err)
	}
	if !strings.Contains(sb.String(), sample.Hostname) {
		return withCause(newConfigurationError(ErrInvalidTemplate, "postcreate", ""), ErrHostnameNotReferenced)
	}
	return nil
}

// validateValues rejects single-line values that contain a line break, since
// the encoder writes them verbatim after "key = ".
func (p *Profile) validateValues() error {
	for _, h := range p.Header {
		if !singleLine(h) {
			return newConfigurationError(ErrInvalidValue, "header", h)
		}
	}

	// postcreate may span lines; the encoder indents every continuation.
	if strings.ContainsRune(p.PostCreate, '\r') {
		return newConfigurationError(ErrInvalidValue, "postcreate", p.PostCreate)
	}

	values := map[string]string{
		"server_options":     p.ServerOptions,
		"build.selinux_mode": p.Build.SELinuxMode,
	}
	p.Build.Server.collect(values, "build."+serverRole+".")
	p.Build.Client.collect(values, "build."+clientRole+".")

	fields := slices.Sorted(maps.Keys(values))
	for _, field := range fields {
		if !singleLine(values[field]) {
			return newConfigurationError(ErrInvalidValue, field, values[field])
		}
	}
	return nil
}

func (t BuildTarget) collect(values map[string]string, prefix string) {
	values[prefix+"install_method"] = t.InstallMethod
	values[prefix+"builddir"] = t.BuildDir
	values[prefix+"destdir"] = t.DestDir
	values[prefix+"fetch_method"] = t.FetchMethod
	values[prefix+"git_repo"] = t.GitRepo
}

func singleLine(s string) bool {
	return !strings.ContainsAny(s, "\r\n")
}

// CompilePostCreate parses the post-create template.
func (p *Profile) CompilePostCreate() (*template.Template, error) {
	tmpl, err := template.New("postcreate").Option("missingkey=error").Parse(p.PostCreate)
	if err != nil {
		return nil, withCause(newConfigurationError(ErrInvalidTemplate, "postcreate", ""), err)
	}
	return tmpl, nil
}
