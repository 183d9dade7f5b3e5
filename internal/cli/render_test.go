package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/sunburst/pkg/errors"
	"github.com/matzehuels/sunburst/pkg/pipeline"
)

// layoutFile is the subset of a JSON artifact the tests look at.
type layoutFile struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Arcs   []struct {
		ID    string `json:"id"`
		Label string `json:"label"`
	} `json:"arcs"`
}

func readLayout(t *testing.T, path string) layoutFile {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	var l layoutFile
	if err := json.Unmarshal(data, &l); err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return l
}

func TestRenderMultipleFormats(t *testing.T) {
	env := newTestEnv(t)
	input := env.write(t, "langs.json", sampleJSON)
	base := filepath.Join(env.dir, "out", "langs")

	if _, err := env.run(t, "render", input, "-f", "svg,json", "-o", base); err != nil {
		t.Fatalf("render: %v", err)
	}

	svg, err := os.ReadFile(base + ".svg")
	if err != nil {
		t.Fatalf("svg not written: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("svg output lacks <svg element")
	}

	l := readLayout(t, base+".json")
	if len(l.Arcs) != 6 {
		t.Errorf("arcs = %d, want 6", len(l.Arcs))
	}

	status := env.status.String()
	for _, want := range []string{"Rendered sunburst", base + ".svg", base + ".json", "7 nodes", "6 arcs", "fresh"} {
		if !strings.Contains(status, want) {
			t.Errorf("status output missing %q:\n%s", want, status)
		}
	}
}

func TestRenderUsesCache(t *testing.T) {
	env := newTestEnv(t)
	input := env.write(t, "langs.json", sampleJSON)
	dsl := env.write(t, "langs.sb", sampleDSL)

	if _, err := env.run(t, "render", input); err != nil {
		t.Fatalf("first render: %v", err)
	}
	env.status.Reset()

	// Same tree in another input format hits the same entries.
	if _, err := env.run(t, "render", dsl, "-o", filepath.Join(env.dir, "again.svg")); err != nil {
		t.Fatalf("second render: %v", err)
	}
	if !strings.Contains(env.status.String(), "cached") {
		t.Errorf("second render should be cached:\n%s", env.status.String())
	}
	env.status.Reset()

	if _, err := env.run(t, "render", input, "--no-cache"); err != nil {
		t.Fatalf("uncached render: %v", err)
	}
	if !strings.Contains(env.status.String(), "fresh") {
		t.Errorf("--no-cache render should be fresh:\n%s", env.status.String())
	}
}

func TestRenderDefaultOutputPath(t *testing.T) {
	env := newTestEnv(t)
	input := env.write(t, "chart.toml", `
name = "root"

[[children]]
name = "a"
value = 1

[[children]]
name = "b"
value = 3
`)

	if _, err := env.run(t, "render", input, "-f", "json"); err != nil {
		t.Fatalf("render: %v", err)
	}
	l := readLayout(t, filepath.Join(env.dir, "chart.json"))
	if len(l.Arcs) != 2 {
		t.Errorf("arcs = %d, want 2", len(l.Arcs))
	}
}

func TestRenderConfigAndFlags(t *testing.T) {
	env := newTestEnv(t)
	env.writeConfig(t, `
[render]
width = 300
height = 300
formats = ["json"]
`)
	input := env.write(t, "langs.json", sampleJSON)
	out := filepath.Join(env.dir, "layout.json")

	if _, err := env.run(t, "render", input, "-o", out); err != nil {
		t.Fatalf("render: %v", err)
	}
	if l := readLayout(t, out); l.Width != 300 || l.Height != 300 {
		t.Errorf("config frame = %gx%g, want 300x300", l.Width, l.Height)
	}

	if _, err := env.run(t, "render", input, "-o", out, "--width", "200"); err != nil {
		t.Fatalf("render: %v", err)
	}
	if l := readLayout(t, out); l.Width != 200 || l.Height != 300 {
		t.Errorf("flag frame = %gx%g, want 200x300", l.Width, l.Height)
	}
}

func TestRenderScaleHelp(t *testing.T) {
	cmd, _, err := New(io.Discard, LogInfo).RootCommand().Find([]string{"render"})
	if err != nil {
		t.Fatal(err)
	}
	usage := cmd.Flags().Lookup("scale").Usage
	if want := fmt.Sprintf("%g", pipeline.DefaultScale); !strings.Contains(usage, want) {
		t.Errorf("--scale usage %q does not name default %s", usage, want)
	}
}

func TestRenderErrors(t *testing.T) {
	env := newTestEnv(t)
	input := env.write(t, "langs.json", sampleJSON)
	unknown := env.write(t, "langs.txt", sampleJSON)

	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"missing file", []string{"render", filepath.Join(env.dir, "nope.json")}, errors.ErrCodeFileNotFound},
		{"unknown extension", []string{"render", unknown}, errors.ErrCodeInvalidFormat},
		{"bad input format", []string{"render", input, "--input-format", "xml"}, errors.ErrCodeInvalidFormat},
		{"bad output format", []string{"render", input, "-f", "gif"}, errors.ErrCodeInvalidFormat},
		{"bad style", []string{"render", input, "--style", "neon"}, errors.ErrCodeInvalidStyle},
		{"bad viz type", []string{"render", input, "-t", "treemap"}, errors.ErrCodeInvalidVizType},
		{"stdout with two formats", []string{"render", input, "-f", "svg,json", "-o", "-"}, errors.ErrCodeInvalidInput},
		{"nodelink pdf", []string{"render", input, "-t", "nodelink", "-f", "pdf"}, errors.ErrCodeUnsupported},
		{"huge scale", []string{"render", input, "-f", "png", "--scale", "1e5"}, errors.ErrCodeInvalidInput},
		{"huge font size", []string{"render", input, "--font-size", "500"}, errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.run(t, tt.args...)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("code = %v, want %v (%v)", errors.GetCode(err), tt.code, err)
			}
		})
	}
}

func TestOutputPaths(t *testing.T) {
	tests := []struct {
		name    string
		formats []string
		input   string
		output  string
		want    map[string]string
	}{
		{
			name:    "single format default",
			formats: []string{"svg"},
			input:   "data/langs.json",
			want:    map[string]string{"svg": "data/langs.svg"},
		},
		{
			name:    "single format explicit",
			formats: []string{"png"},
			input:   "langs.json",
			output:  "chart.img",
			want:    map[string]string{"png": "chart.img"},
		},
		{
			name:    "multiple formats strip known extension",
			formats: []string{"svg", "pdf"},
			input:   "langs.json",
			output:  "out/chart.svg",
			want:    map[string]string{"svg": "out/chart.svg", "pdf": "out/chart.pdf"},
		},
		{
			name:    "multiple formats keep unknown extension",
			formats: []string{"svg", "json"},
			input:   "langs.json",
			output:  "chart.v2",
			want:    map[string]string{"svg": "chart.v2.svg", "json": "chart.v2.json"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := outputPaths(tt.formats, tt.input, tt.output)
			if len(got) != len(tt.want) {
				t.Fatalf("outputPaths() = %v, want %v", got, tt.want)
			}
			for f, p := range tt.want {
				if got[f] != p {
					t.Errorf("outputPaths()[%s] = %q, want %q", f, got[f], p)
				}
			}
		})
	}
}
