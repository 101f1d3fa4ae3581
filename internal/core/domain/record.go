package domain

import "fmt"

// Role is the record group a lab record belongs to.
type Role string

const (
	// RolePlain records install packaged binaries.
	RolePlain Role = "plain"
	// RoleBuild records build the server and client from a source ref.
	RoleBuild Role = "build"
)

// Prefix returns the label prefix of the role.
func (r Role) Prefix() string {
	if r == RoleBuild {
		return "tb"
	}
	return "ta"
}

const (
	// VarServerOptions is carried by every record.
	VarServerOptions = "afs_bosserver_opts"
	// VarSELinuxMode opens the build block.
	VarSELinuxMode = "afs_selinux_mode"

	serverRole = "server"
	clientRole = "client"

	// hostSuffix names the first host of a lab.
	hostSuffix = "01"
)

// Variable is one var.<name> assignment of a record.
type Variable struct {
	Name  string
	Value string
}

// LabRecord is one provisioning target of the generated document.
type LabRecord struct {
	Label        string
	Role         Role
	Description  string
	Distribution DistributionName
	Variant      BuildVariant
	PostCreate   string
	Groups       []string
	Variables    []Variable
}

// Label formats the label of the n-th record (1-based) of a role group.
func Label(role Role, n int) string {
	return fmt.Sprintf("%s%02d", role.Prefix(), n)
}

// HostnameFor returns the host a lab with the given label is reached on.
func HostnameFor(label string) string {
	return label + hostSuffix
}

// Hostname returns the host the record's post-create command targets.
func (r *LabRecord) Hostname() string {
	return HostnameFor(r.Label)
}

// Variable returns the value of the named variable.
func (r *LabRecord) Variable(name string) (string, bool) {
	for _, v := range r.Variables {
		if v.Name == name {
			return v.Value, true
		}
	}
	return "", false
}

// PlainVariables returns the variables of a plain record.
func (p *Profile) PlainVariables() []Variable {
	return []Variable{{Name: VarServerOptions, Value: p.ServerOptions}}
}

// BuildVariables returns the variables of a build record for the given variant.
// Both the server and the client are built from the same ref.
func (p *Profile) BuildVariables(variant BuildVariant) []Variable {
	vars := make([]Variable, 0, 16)
	vars = append(vars, p.PlainVariables()...)
	vars = append(vars, Variable{Name: VarSELinuxMode, Value: p.Build.SELinuxMode})
	vars = append(vars, p.Build.Server.variables(serverRole, variant)...)
	vars = append(vars, p.Build.Client.variables(clientRole, variant)...)
	return vars
}

func (t BuildTarget) variables(role string, ref BuildVariant) []Variable {
	prefix := "afs_" + role + "_"
	return []Variable{
		{Name: prefix + "install_method", Value: t.InstallMethod},
		{Name: prefix + "build_force", Value: yesNo(t.Force)},
		{Name: prefix + "build_builddir", Value: t.BuildDir},
		{Name: prefix + "build_destdir", Value: t.DestDir},
		{Name: prefix + "build_fetch_method", Value: t.FetchMethod},
		{Name: prefix + "build_git_repo", Value: t.GitRepo},
		{Name: prefix + "build_git_ref", Value: string(ref)},
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
