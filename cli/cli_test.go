package cli

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/bpschema/errors"
	"github.com/grovetools/bpschema/testutil"
)

func TestNewStandardCommandFlags(t *testing.T) {
	cmd := NewStandardCommand("bpschema", "Generate JSON Schemas")
	require.NoError(t, cmd.ParseFlags([]string{"-v", "--json", "-c", "custom.yml"}))

	opts := GetOptions(cmd)
	assert.True(t, opts.Verbose)
	assert.True(t, opts.JSONOutput)
	assert.Equal(t, "custom.yml", opts.ConfigFile)
}

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want []string
	}{
		{
			name: "serializer not found",
			err:  errors.SerializerNotFound("PostBlueprint"),
			want: []string{"Serializer 'PostBlueprint' not found", "bpschema check"},
		},
		{
			name: "invalid type",
			err:  errors.InvalidType("email", "invalid"),
			want: []string{"Field 'email' declares an invalid type: invalid", "Allowed types"},
		},
		{
			name: "cycle",
			err:  errors.CyclicAssociation([]string{"A", "B", "A"}),
			want: []string{"cyclic association: A -> B -> A", "Break the cycle"},
		},
		{
			name: "descriptor invalid",
			err:  errors.DescriptorInvalid("bad").WithDetail("path", "catalog.yml"),
			want: []string{"Invalid catalog", "File: catalog.yml", "catalog-schema"},
		},
		{
			name: "wrapped code survives fmt wrapping",
			err:  fmt.Errorf("generate: %w", errors.ViewNotFound("UserBlueprint", "extended")),
			want: []string{"serializer 'UserBlueprint' has no view 'extended'"},
		},
		{
			name: "plain error",
			err:  fmt.Errorf("boom"),
			want: []string{"Error: boom"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			h := &ErrorHandler{Out: &buf}

			assert.Equal(t, tt.err, h.Handle(tt.err))
			for _, want := range tt.want {
				assert.Contains(t, buf.String(), want)
			}
		})
	}

	assert.NoError(t, NewErrorHandler(false).Handle(nil))
}

func TestErrorHandlerVerbose(t *testing.T) {
	var buf bytes.Buffer
	h := &ErrorHandler{Verbose: true, Out: &buf}

	_ = h.Handle(errors.SerializerNotFound("X"))
	assert.Contains(t, buf.String(), "Error details:")
	assert.Contains(t, buf.String(), `"code": "SERIALIZER_NOT_FOUND"`)
}

func TestRenderHelp(t *testing.T) {
	root := NewStandardCommand("bpschema", "Generate JSON Schemas from serializer descriptors")
	sub := &cobra.Command{
		Use:     "generate <serializer>...",
		Short:   "Generate schemas",
		Example: "# one serializer\nbpschema generate UserBlueprint",
		RunE:    func(*cobra.Command, []string) error { return nil },
	}
	sub.Flags().String("view", "default", "Serializer view")
	root.AddCommand(sub)

	var buf bytes.Buffer
	renderHelp(&buf, root, 60)
	assert.Contains(t, buf.String(), "BPSCHEMA")
	assert.Contains(t, buf.String(), "generate")
	assert.Contains(t, buf.String(), "--config")

	buf.Reset()
	renderHelp(&buf, sub, 60)
	assert.Contains(t, buf.String(), "--view")
	assert.Contains(t, buf.String(), "(default: default)")
	assert.Contains(t, buf.String(), "bpschema generate UserBlueprint")
}

func TestWrapText(t *testing.T) {
	assert.Equal(t, "short", wrapText("short", 10))
	assert.Equal(t, "one two\nthree", wrapText("one two three", 8))
	assert.Equal(t, "a\nb", wrapText("a\nb", 10))
}

func TestProgressReporter(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgressReporter(&buf)

	p.Update("UserBlueprint", StatusWritten)
	p.Update("PostBlueprint", StatusFailed)
	p.Update("AddressBlueprint", StatusUnchanged)
	p.Done()

	assert.Equal(t, []string{"PostBlueprint"}, p.Failed())
	assert.Contains(t, buf.String(), "[*] UserBlueprint: written")
	assert.Contains(t, buf.String(), "[x] PostBlueprint: failed")
	assert.Contains(t, buf.String(), "3 serializer(s), 1 failed")
}

func TestLoadConfigWithoutFileReturnsDefaults(t *testing.T) {
	testutil.IsolateGlobalConfig(t)
	testutil.Chdir(t, t.TempDir())

	cmd := NewStandardCommand("bpschema", "test")
	cfg, err := LoadConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, "default", cfg.Generation.View)
	assert.Equal(t, "  ", cfg.Output.Indent)
}

func TestLoadConfigFromFlag(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "bpschema.yml", "generation:\n  view: extended\n")

	cmd := NewStandardCommand("bpschema", "test")
	require.NoError(t, cmd.ParseFlags([]string{"--config", path}))

	cfg, err := LoadConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, "extended", cfg.Generation.View)
	assert.Equal(t, path, cfg.Path())
}
