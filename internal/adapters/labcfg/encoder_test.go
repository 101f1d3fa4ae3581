package labcfg_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/labgen/internal/adapters/labcfg"
	"go.trai.ch/labgen/internal/core/domain"
	"go.trai.ch/labgen/internal/engine/matrix"
)

func generate(t *testing.T, c *domain.Catalog) *domain.Document {
	t.Helper()
	doc, err := matrix.NewGenerator().Generate(c)
	require.NoError(t, err)
	return doc
}

func TestEncode_DefaultCatalogGolden(t *testing.T) {
	var buf bytes.Buffer
	err := labcfg.NewEncoder().Encode(&buf, generate(t, domain.DefaultCatalog()))
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "default_catalog", buf.Bytes())
}

func TestEncode_Example(t *testing.T) {
	c := &domain.Catalog{
		Distributions: []domain.DistributionName{"centos6"},
		Variants:      []domain.BuildVariant{"master"},
		Profile:       domain.DefaultProfile(),
	}
	c.Profile.Groups = []string{"afs_cell"}
	c.Profile.PostCreate = "run\n{{ .Hostname }}"

	got := string(labcfg.Marshal(generate(t, c)))

	want := strings.Join([]string{
		"# Auto Generated - Do Not Edit",
		"",
		"#-------------------------------------------------------------------",
		"# Package installs",
		"#-------------------------------------------------------------------",
		"",
		"[ta01]",
		"desc = centos6",
		"distro = centos6",
		"postcreate = run",
		"  ta0101",
		"group.afs_cell = 1",
		"var.afs_bosserver_opts = -pidfiles",
		"",
		"#-------------------------------------------------------------------",
		"# Build master",
		"#-------------------------------------------------------------------",
		"",
		"[tb01]",
		"desc = centos6 build master",
		"distro = centos6",
		"postcreate = run",
		"  tb0101",
		"group.afs_cell = 1",
		"var.afs_bosserver_opts = -pidfiles",
		"var.afs_selinux_mode = permissive",
		"var.afs_server_install_method = rsync",
		"var.afs_server_build_force = no",
		"var.afs_server_build_builddir = /usr/local/src/openafs_server",
		"var.afs_server_build_destdir = /tmp/openafs_server",
		"var.afs_server_build_fetch_method = git",
		"var.afs_server_build_git_repo = git://{ gateway }/openafs",
		"var.afs_server_build_git_ref = master",
		"var.afs_client_install_method = rsync",
		"var.afs_client_build_force = no",
		"var.afs_client_build_builddir = /usr/local/src/openafs_server",
		"var.afs_client_build_destdir = /tmp/openafs_server",
		"var.afs_client_build_fetch_method = git",
		"var.afs_client_build_git_repo = git://{ gateway }/openafs",
		"var.afs_client_build_git_ref = master",
		"",
	}, "\n") + "\n"

	assert.Equal(t, want, got)
}

func TestLines_NoHeader(t *testing.T) {
	c := domain.DefaultCatalog()
	c.Distributions = []domain.DistributionName{"debian9"}
	c.Variants = nil
	c.Profile.Header = nil

	lines := labcfg.Lines(generate(t, c))
	require.NotEmpty(t, lines)
	assert.Equal(t, "#-------------------------------------------------------------------", lines[0])
	assert.Equal(t, "[ta01]", lines[4])
}

func TestLines_ContinuationIsIndented(t *testing.T) {
	c := domain.DefaultCatalog()
	c.Distributions = []domain.DistributionName{"debian9"}
	c.Variants = nil
	c.Profile.PostCreate = "first\n\t   second\n\nssh {{ .Hostname }}"

	lines := labcfg.Lines(generate(t, c))
	assert.Contains(t, lines, "postcreate = first")
	assert.Contains(t, lines, "  second")
	assert.Contains(t, lines, "  ssh ta0101")
	assert.NotContains(t, lines, "  ")
}

func TestMarshal_Deterministic(t *testing.T) {
	first := labcfg.Marshal(generate(t, domain.DefaultCatalog()))
	second := labcfg.Marshal(generate(t, domain.DefaultCatalog()))
	assert.Equal(t, first, second)
}

var errDiskFull = errors.New("disk full")

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errDiskFull
}

func TestEncode_WriteError(t *testing.T) {
	err := labcfg.NewEncoder().Encode(failingWriter{}, generate(t, domain.DefaultCatalog()))
	require.Error(t, err)
	assert.ErrorIs(t, err, errDiskFull)
}
