package commands_test

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/labgen/cmd/labgen/commands"
	"go.trai.ch/labgen/internal/adapters/labcfg"
	"go.trai.ch/labgen/internal/adapters/telemetry"
	"go.trai.ch/labgen/internal/app"
	"go.trai.ch/labgen/internal/core/domain"
	"go.trai.ch/labgen/internal/core/ports/mocks"
	"go.trai.ch/labgen/internal/engine/matrix"
	"go.uber.org/mock/gomock"
)

type harness struct {
	cli    *commands.CLI
	loader *mocks.MockCatalogLoader
	store  *mocks.MockStampStore
	stdout *bytes.Buffer
	out    *bytes.Buffer
}

func newHarness(t *testing.T, args ...string) *harness {
	t.Helper()
	ctrl := gomock.NewController(t)

	h := &harness{
		loader: mocks.NewMockCatalogLoader(ctrl),
		store:  mocks.NewMockStampStore(ctrl),
		stdout: &bytes.Buffer{},
		out:    &bytes.Buffer{},
	}
	a := app.New(
		h.loader,
		matrix.NewGenerator(),
		labcfg.NewEncoder(),
		h.store,
		mocks.NewMockLogger(ctrl),
		telemetry.NewNoOp(),
	).WithStdout(h.stdout)

	h.cli = commands.New(a)
	h.cli.SetArgs(args)
	h.cli.SetOutput(h.out)
	return h
}

func labels(out string) []string {
	var got []string
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "[") {
			got = append(got, strings.Trim(line, "[]"))
		}
	}
	return got
}

func TestGenerate_Flags(t *testing.T) {
	h := newHarness(t, "generate", "-c", "custom.yaml", "--distro", "centos6", "--distro", "debian9", "--variant", "master")
	h.loader.EXPECT().Load("custom.yaml").Return(domain.DefaultCatalog(), nil)

	require.NoError(t, h.cli.Execute(context.Background()))
	assert.Equal(t, []string{"ta01", "ta02", "tb01", "tb02"}, labels(h.stdout.String()))
	assert.Contains(t, h.stdout.String(), "desc = debian9 build master")
}

func TestGenerate_NoVariants(t *testing.T) {
	h := newHarness(t, "generate", "--no-variants")
	h.loader.EXPECT().Load("").Return(domain.DefaultCatalog(), nil)

	require.NoError(t, h.cli.Execute(context.Background()))
	assert.Len(t, labels(h.stdout.String()), len(domain.DefaultDistributions()))
	assert.NotContains(t, h.stdout.String(), "# Build ")
}

func TestGenerate_RejectsArgs(t *testing.T) {
	h := newHarness(t, "generate", "extra")

	err := h.cli.Execute(context.Background())
	require.Error(t, err)
}

func TestCheck_RequiresOutput(t *testing.T) {
	h := newHarness(t, "check")

	err := h.cli.Execute(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output")
}

func TestCheck_Missing(t *testing.T) {
	output := filepath.Join(t.TempDir(), "lab.cfg")
	h := newHarness(t, "check", "-o", output)
	h.loader.EXPECT().Load("").Return(domain.DefaultCatalog(), nil)

	err := h.cli.Execute(context.Background())
	require.ErrorIs(t, err, domain.ErrOutputOutOfDate)
	assert.Equal(t, output+": missing\n", h.out.String())
}

func TestCatalog_List(t *testing.T) {
	h := newHarness(t, "catalog", "--distro", "fedora31", "--variant", "master")
	h.loader.EXPECT().Load("").Return(domain.DefaultCatalog(), nil)

	require.NoError(t, h.cli.Execute(context.Background()))
	lines := strings.Split(strings.TrimSpace(h.stdout.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"tb01", "tb0101", "fedora31", "master"}, strings.Fields(lines[2]))
}

func TestVersion(t *testing.T) {
	h := newHarness(t, "version")

	require.NoError(t, h.cli.Execute(context.Background()))
	assert.Equal(t, "labgen version dev\n", h.out.String())
}
